package services

import (
	"context"
	"errors"

	"cookbook/internal/apperrors"
	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

// IngredientRef points at an ingredient either by id or by exact name.
// When both are set the id wins.
type IngredientRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Unit string `json:"unit,omitempty" validate:"omitempty,max=20"`
}

// IngredientResolver turns references into stored ingredients, creating named ones on demand.
type IngredientResolver struct{}

func NewIngredientResolver() *IngredientResolver {
	return &IngredientResolver{}
}

// Resolve looks ref up through repo, which should be bound to the caller's transaction.
// A reference by name that loses a concurrent create race fails with a Transient error
// wrapping the uniqueness conflict; the whole surrounding operation can be retried.
func (r *IngredientResolver) Resolve(ctx context.Context, ref IngredientRef, repo repositories.IngredientRepository) (*models.Ingredient, error) {
	if ref.ID != "" {
		return repo.GetByID(ctx, ref.ID)
	}
	if ref.Name == "" {
		return nil, apperrors.Validation(map[string]string{
			"ingredients": "each ingredient needs an id or a name",
		})
	}

	existing, err := repo.GetByName(ctx, ref.Name)
	if err == nil {
		ingredientResolutions.WithLabelValues("found").Inc()
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	unit := ref.Unit
	if unit == "" {
		unit = models.DefaultIngredientUnit
	}
	created := &models.Ingredient{Name: ref.Name, Unit: unit}
	if err := repo.Create(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Transient("ingredient "+ref.Name+" was created concurrently", err)
		}
		return nil, err
	}
	ingredientResolutions.WithLabelValues("created").Inc()
	return created, nil
}
