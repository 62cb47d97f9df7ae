// Package testutil provides an isolated, migrated database per test.
package testutil

import (
	"context"
	"testing"

	"cookbook/internal/database"
	"cookbook/internal/models"
	"cookbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore is NewDB wrapped in a repositories.Store.
func NewStore(t *testing.T) (*repositories.Store, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return repositories.NewStore(db), db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    name + "-" + uuid.NewString()[:8] + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.NewString(), Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{ID: uuid.NewString(), Name: name, Unit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}
