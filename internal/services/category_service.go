package services

import (
	"context"
	"time"

	"cookbook/internal/apperrors"
	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitnil,min=2,max=50"`
	Description *string `json:"description"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store *repositories.Store
}

func NewCategoryService(store *repositories.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{Name: input.Name, Description: input.Description}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id string) (*models.Category, error) {
	return s.store.Categories.GetByID(ctx, id)
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if err := s.store.Categories.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.Categories.GetByID(ctx, id)
}

// Delete removes a category that no recipe references.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Categories.GetByID(ctx, id); err != nil {
			return err
		}
		count, err := tx.Categories.CountRecipes(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Referential("category is still used by recipes", nil)
		}
		return tx.Categories.Delete(ctx, id)
	})
}
