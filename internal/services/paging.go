package services

const (
	defaultRecipeLimit     = 10
	defaultIngredientLimit = 50
	maxPageLimit           = 100
)

// Page is one slice of a listing plus the total number of matches.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func normalizePaging(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
