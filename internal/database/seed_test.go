package database_test

import (
	"context"
	"testing"

	"cookbook/internal/database"
	"cookbook/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsIdempotent(t *testing.T) {
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	data, err := database.ParseSeed(nil)
	require.NoError(t, err)
	require.NotEmpty(t, data.Categories)
	require.NotEmpty(t, data.Ingredients)

	first, err := database.Seed(context.Background(), db, data)
	require.NoError(t, err)
	assert.Equal(t, len(data.Categories), first.Categories)
	assert.Equal(t, len(data.Ingredients), first.Ingredients)

	second, err := database.Seed(context.Background(), db, data)
	require.NoError(t, err)
	assert.Zero(t, second.Categories)
	assert.Zero(t, second.Ingredients)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(len(data.Ingredients)), count)
}

func TestParseSeed_Custom(t *testing.T) {
	data, err := database.ParseSeed([]byte("ingredients:\n  - name: Yeast\n"))
	require.NoError(t, err)
	require.Len(t, data.Ingredients, 1)
	assert.Equal(t, "Yeast", data.Ingredients[0].Name)
	assert.Empty(t, data.Categories)
}
