package services_test

import (
	"testing"

	"cookbook/internal/apperrors"
	"cookbook/internal/models"
	"cookbook/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_UpsertTwice(t *testing.T) {
	f := newRecipeFixture(t)
	recipe, err := f.recipes.Create(f.ctx, f.cakeInput(), f.author.ID)
	require.NoError(t, err)

	first, err := f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: 3}, f.other.ID)
	require.NoError(t, err)
	second, err := f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: 5, Comment: "better the second time"}, f.other.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)
	assert.Equal(t, "better the second time", second.Comment)

	var count int64
	require.NoError(t, f.db.Model(&models.Rating{}).
		Where("user_id = ? AND recipe_id = ?", f.other.ID, recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := f.recipes.FindByID(f.ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.AverageRating)
}

func TestRatingService_UpsertUnknownRecipe(t *testing.T) {
	f := newRecipeFixture(t)

	_, err := f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: "missing", Score: 4}, f.other.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "recipe", appErr.Entity)
}

func TestRatingService_ScoreRange(t *testing.T) {
	f := newRecipeFixture(t)
	recipe, err := f.recipes.Create(f.ctx, f.cakeInput(), f.author.ID)
	require.NoError(t, err)

	for _, score := range []int{0, 6, -1} {
		_, err := f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: score}, f.other.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "score %d", score)
	}
}

func TestRatingService_UpdateAndDeleteOwnership(t *testing.T) {
	f := newRecipeFixture(t)
	recipe, err := f.recipes.Create(f.ctx, f.cakeInput(), f.author.ID)
	require.NoError(t, err)
	rating, err := f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: 2, Comment: "dry"}, f.other.ID)
	require.NoError(t, err)

	score, outOfRange := 4, 9
	_, err = f.ratings.Update(f.ctx, rating.ID, services.UpdateRatingInput{Score: &score}, f.author.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = f.ratings.Update(f.ctx, rating.ID, services.UpdateRatingInput{Score: &outOfRange}, f.author.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = f.ratings.Update(f.ctx, "missing", services.UpdateRatingInput{Score: &outOfRange}, f.author.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.ratings.Update(f.ctx, rating.ID, services.UpdateRatingInput{Score: &outOfRange}, f.other.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, f.ratings.Delete(f.ctx, rating.ID, f.author.ID), apperrors.ErrPermissionDenied)

	updated, err := f.ratings.Update(f.ctx, rating.ID, services.UpdateRatingInput{Score: &score}, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Score)
	assert.Equal(t, "dry", updated.Comment)
	require.NotNil(t, updated.User)
	assert.Equal(t, f.other.Name, updated.User.Name)

	_, err = f.ratings.Update(f.ctx, "missing", services.UpdateRatingInput{Score: &score}, f.other.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, f.ratings.Delete(f.ctx, rating.ID, f.other.ID))
	_, err = f.ratings.FindByID(f.ctx, rating.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	got, err := f.recipes.FindByID(f.ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AverageRating)
}

func TestRatingService_FindAll(t *testing.T) {
	f := newRecipeFixture(t)
	recipe, err := f.recipes.Create(f.ctx, f.cakeInput(), f.author.ID)
	require.NoError(t, err)
	_, err = f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: 1}, f.author.ID)
	require.NoError(t, err)
	_, err = f.ratings.Upsert(f.ctx, services.RatingInput{RecipeID: recipe.ID, Score: 5}, f.other.ID)
	require.NoError(t, err)

	page, err := f.ratings.FindAll(f.ctx, services.RatingFilter{RecipeID: recipe.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)

	page, err = f.ratings.FindAll(f.ctx, services.RatingFilter{UserID: f.other.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 5, page.Items[0].Score)
}
