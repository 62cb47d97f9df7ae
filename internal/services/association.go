package services

import (
	"context"

	"cookbook/internal/apperrors"
	"cookbook/internal/models"
)

// IngredientPair is one desired (ingredient, quantity) entry of a recipe.
type IngredientPair struct {
	IngredientID string
	Quantity     float64
}

// AssociationStore is the part of the recipe store the synchronizer writes through.
type AssociationStore interface {
	RemoveIngredients(ctx context.Context, recipeID string) error
	InsertIngredient(ctx context.Context, row *models.RecipeIngredient) error
}

// AssociationSynchronizer replaces a recipe's ingredient set as a whole.
type AssociationSynchronizer struct{}

func NewAssociationSynchronizer() *AssociationSynchronizer {
	return &AssociationSynchronizer{}
}

// Synchronize removes every association of recipeID and inserts pairs one by one.
// A quantity of zero or less is stored as 1. It must run inside the caller's transaction.
func (s *AssociationSynchronizer) Synchronize(ctx context.Context, recipeID string, pairs []IngredientPair, store AssociationStore) error {
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p.IngredientID]; dup {
			return apperrors.Conflict("recipe_ingredient", "ingredient_id", nil)
		}
		seen[p.IngredientID] = struct{}{}
	}

	if err := store.RemoveIngredients(ctx, recipeID); err != nil {
		return err
	}
	for _, p := range pairs {
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		row := &models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: p.IngredientID,
			Quantity:     quantity,
		}
		if err := store.InsertIngredient(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
