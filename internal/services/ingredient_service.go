package services

import (
	"context"
	"time"

	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

type IngredientInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Unit string `json:"unit" validate:"omitempty,max=20"`
}

type UpdateIngredientInput struct {
	Name *string `json:"name" validate:"omitnil,min=2,max=100"`
	Unit *string `json:"unit" validate:"omitnil,min=1,max=20"`
}

type IngredientFilter struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// IngredientService handles business logic related to ingredients.
type IngredientService struct {
	store *repositories.Store
}

func NewIngredientService(store *repositories.Store) *IngredientService {
	return &IngredientService{store: store}
}

// Create adds an ingredient; a taken name is a uniqueness conflict.
func (s *IngredientService) Create(ctx context.Context, input IngredientInput) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{Name: input.Name, Unit: input.Unit}
	if err := s.store.Ingredients.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) FindByID(ctx context.Context, id string) (*models.Ingredient, error) {
	return s.store.Ingredients.GetByID(ctx, id)
}

// FindAll lists ingredients by name, optionally narrowed by a case-insensitive search.
func (s *IngredientService) FindAll(ctx context.Context, filter IngredientFilter) (*Page[models.Ingredient], error) {
	limit, offset := normalizePaging(filter.Limit, filter.Offset, defaultIngredientLimit)
	items, total, err := s.store.Ingredients.List(ctx, repositories.IngredientFilter{
		Search: filter.Search,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &Page[models.Ingredient]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *IngredientService) Update(ctx context.Context, id string, input UpdateIngredientInput) (*models.Ingredient, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Unit != nil {
		fields["unit"] = *input.Unit
	}
	if err := s.store.Ingredients.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.Ingredients.GetByID(ctx, id)
}

// Delete removes an ingredient from the catalogue and from every recipe using it.
func (s *IngredientService) Delete(ctx context.Context, id string) error {
	return s.store.Ingredients.Delete(ctx, id)
}
