package services_test

import (
	"testing"

	"cookbook/internal/models"
	"cookbook/internal/services"

	"github.com/stretchr/testify/assert"
)

func scores(values ...int) []models.Rating {
	ratings := make([]models.Rating, len(values))
	for i, v := range values {
		ratings[i] = models.Rating{Score: v}
	}
	return ratings
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.Rating
		want    float64
	}{
		{"no ratings", nil, 0},
		{"single", scores(4), 4},
		{"exact half", scores(3, 4), 3.5},
		{"rounds down", scores(1, 1, 2), 1.33},
		{"rounds up", scores(1, 2, 2), 1.67},
		{"half rounds up", scores(1, 1, 1, 1, 1, 1, 1, 2), 1.13},
		{"upsert example", scores(5), 5},
		{"all max", scores(5, 5, 5), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.AverageRating(tt.ratings))
		})
	}
}

func TestAssertOwner(t *testing.T) {
	recipe := &models.Recipe{AuthorID: "author-1"}
	rating := &models.Rating{UserID: "rater-1"}

	assert.NoError(t, services.AssertOwner(recipe, "author-1", "update recipe"))
	assert.NoError(t, services.AssertOwner(rating, "rater-1", "update rating"))

	err := services.AssertOwner(recipe, "someone-else", "update recipe")
	assert.EqualError(t, err, "permission denied to update recipe")
	assert.Error(t, services.AssertOwner(rating, "author-1", "delete rating"))
	assert.Error(t, services.AssertOwner(recipe, "", "delete recipe"))
}
