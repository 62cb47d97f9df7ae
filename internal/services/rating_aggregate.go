package services

import "cookbook/internal/models"

// AverageRating returns the mean score rounded half up to two decimals, or 0 for no ratings.
// The rounding is done on integers so equal inputs always give equal outputs.
func AverageRating(ratings []models.Rating) float64 {
	n := len(ratings)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	// floor(100*sum/n + 1/2) == floor((200*sum + n) / 2n)
	hundredths := (200*sum + n) / (2 * n)
	return float64(hundredths) / 100
}

func withAverage(recipe *models.Recipe) *models.Recipe {
	recipe.AverageRating = AverageRating(recipe.Ratings)
	return recipe
}
