package repositories

import (
	"context"

	"cookbook/internal/database"

	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle. A Store handed to a
// WithinTransaction callback is bound to that transaction.
type Store struct {
	db      *gorm.DB
	matcher database.TextMatcher

	Users       UserRepository
	Categories  CategoryRepository
	Ingredients IngredientRepository
	Recipes     RecipeRepository
	Ratings     RatingRepository
}

// NewStore builds the GORM repositories for db. The text matcher is resolved once from
// the connection's dialect.
func NewStore(db *gorm.DB) *Store {
	return newStore(db, database.MatcherFor(db.Dialector.Name()))
}

func newStore(db *gorm.DB, matcher database.TextMatcher) *Store {
	return &Store{
		db:          db,
		matcher:     matcher,
		Users:       NewGORMUserRepository(db),
		Categories:  NewGORMCategoryRepository(db),
		Ingredients: NewGORMIngredientRepository(db, matcher),
		Recipes:     NewGORMRecipeRepository(db, matcher),
		Ratings:     NewGORMRatingRepository(db),
	}
}

// WithinTransaction runs fn in one transaction. fn's error rolls everything back and is
// returned as is; commit failures are translated like any other store error.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStore(tx, s.matcher))
	})
	return translate(err, "", "")
}
