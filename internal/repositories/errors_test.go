package repositories

import (
	"errors"
	"fmt"
	"testing"

	"cookbook/internal/apperrors"
	"cookbook/internal/database"
	"cookbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, apperrors.KindNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), apperrors.KindNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, apperrors.KindConflict},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, apperrors.KindReferential},
		{"pg unique", &pgconn.PgError{Code: "23505"}, apperrors.KindConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, apperrors.KindReferential},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, apperrors.KindTransient},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, apperrors.KindTransient},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, apperrors.KindConflict},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, apperrors.KindConflict},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, apperrors.KindReferential},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, apperrors.KindTransient},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, apperrors.KindTransient},
		{"unknown", errors.New("connection reset"), apperrors.KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "recipe", "id")
			assert.Equal(t, tt.want, apperrors.KindOf(got))
		})
	}
}

func TestTranslate_KeepsExistingKind(t *testing.T) {
	in := apperrors.PermissionDenied("update recipe")
	assert.Same(t, in, translate(in, "recipe", ""))
	assert.NoError(t, translate(nil, "recipe", ""))
}

func TestTranslate_NamesEntityAndField(t *testing.T) {
	err := translate(gorm.ErrDuplicatedKey, "ingredient", "name")
	appErr, ok := apperrors.As(err)
	if assert.True(t, ok) {
		assert.Equal(t, "ingredient", appErr.Entity)
		assert.Equal(t, "name", appErr.Field)
	}
}

func TestTranslate_SQLiteForeignKeyErrors(t *testing.T) {
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

	user := &models.User{ID: uuid.NewString(), Name: "dana", Email: "dana@example.com", Password: "x"}
	category := &models.Category{ID: uuid.NewString(), Name: "Soups"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(category).Error)
	recipe := &models.Recipe{
		ID: uuid.NewString(), Title: "Broth", Instructions: "Simmer.", Servings: 2,
		Difficulty: models.DifficultyEasy, AuthorID: user.ID, CategoryID: category.ID,
	}
	require.NoError(t, db.Create(recipe).Error)

	// RESTRICT on delete surfaces as a trigger constraint
	restrictErr := db.Delete(&models.Category{}, "id = ?", category.ID).Error
	require.Error(t, restrictErr)
	var sqliteErr sqlite3.Error
	require.True(t, errors.As(restrictErr, &sqliteErr), "got %T: %v", restrictErr, restrictErr)
	assert.Equal(t, sqlite3.ErrConstraintTrigger, sqliteErr.ExtendedCode)
	assert.Equal(t, apperrors.KindReferential, apperrors.KindOf(translate(restrictErr, "category", "")))

	orphan := &models.Recipe{
		ID: uuid.NewString(), Title: "Orphan", Instructions: "None.", Servings: 1,
		Difficulty: models.DifficultyEasy, AuthorID: user.ID, CategoryID: "missing-category",
	}
	insertErr := db.Omit("Author", "Category", "Ingredients", "Ratings").Create(orphan).Error
	require.Error(t, insertErr)
	assert.Equal(t, apperrors.KindReferential, apperrors.KindOf(translate(insertErr, "recipe", "")))
}
