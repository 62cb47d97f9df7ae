package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cookbook/internal/apperrors"
	"cookbook/internal/logger"
	"cookbook/internal/models"
	"cookbook/internal/repositories"

	"github.com/google/uuid"
)

// RecipeIngredientInput is one entry of a recipe's ingredient list.
type RecipeIngredientInput struct {
	IngredientRef
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// CreateRecipeInput is the accepted shape of a new recipe.
type CreateRecipeInput struct {
	Title        string                  `json:"title" validate:"required,min=3,max=200"`
	Description  string                  `json:"description"`
	Instructions string                  `json:"instructions" validate:"required"`
	PrepTime     int                     `json:"prepTime" validate:"gte=0"`
	CookTime     int                     `json:"cookTime" validate:"gte=0"`
	Servings     int                     `json:"servings" validate:"required,gte=1"`
	Difficulty   models.Difficulty       `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	CategoryID   string                  `json:"categoryId" validate:"required"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeInput carries only the fields the caller supplied. A nil Ingredients leaves
// the association set alone; a pointer to an empty slice clears it.
type UpdateRecipeInput struct {
	Title        *string                  `json:"title" validate:"omitnil,min=3,max=200"`
	Description  *string                  `json:"description"`
	Instructions *string                  `json:"instructions" validate:"omitnil,min=1"`
	PrepTime     *int                     `json:"prepTime" validate:"omitnil,gte=0"`
	CookTime     *int                     `json:"cookTime" validate:"omitnil,gte=0"`
	Servings     *int                     `json:"servings" validate:"omitnil,gte=1"`
	Difficulty   *models.Difficulty       `json:"difficulty" validate:"omitnil,oneof=Easy Medium Hard"`
	CategoryID   *string                  `json:"categoryId" validate:"omitnil,min=1"`
	Ingredients  *[]RecipeIngredientInput `json:"ingredients" validate:"omitnil,dive"`
}

func (in UpdateRecipeInput) columns() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Instructions != nil {
		fields["instructions"] = *in.Instructions
	}
	if in.PrepTime != nil {
		fields["prep_time"] = *in.PrepTime
	}
	if in.CookTime != nil {
		fields["cook_time"] = *in.CookTime
	}
	if in.Servings != nil {
		fields["servings"] = *in.Servings
	}
	if in.Difficulty != nil {
		fields["difficulty"] = *in.Difficulty
	}
	if in.CategoryID != nil {
		fields["category_id"] = *in.CategoryID
	}
	return fields
}

// RecipeFilter selects recipes for FindAll. UserID filters by author.
type RecipeFilter struct {
	CategoryID string `query:"categoryId"`
	UserID     string `query:"userId"`
	Search     string `query:"search"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// RecipeService assembles recipes with their ingredients and ratings.
type RecipeService struct {
	store    *repositories.Store
	resolver *IngredientResolver
	sync     *AssociationSynchronizer
	events   emitter
	log      *logger.Logger
}

// NewRecipeService creates a new RecipeService. publisher may be nil.
func NewRecipeService(store *repositories.Store, publisher EventPublisher, log *logger.Logger) *RecipeService {
	if log == nil {
		log = logger.Nop()
	}
	return &RecipeService{
		store:    store,
		resolver: NewIngredientResolver(),
		sync:     NewAssociationSynchronizer(),
		events:   emitter{publisher: publisher, log: log},
		log:      log,
	}
}

// Create stores a recipe owned by authorID together with its ingredients, in one transaction.
func (s *RecipeService) Create(ctx context.Context, input CreateRecipeInput, authorID string) (*models.Recipe, error) {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, apperrors.Validation(map[string]string{"difficulty": "must be one of Easy, Medium, Hard"})
	}

	recipe := &models.Recipe{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   difficulty,
		AuthorID:     authorID,
		CategoryID:   input.CategoryID,
	}

	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		if err := requireCategory(ctx, tx, input.CategoryID); err != nil {
			return err
		}
		if err := tx.Recipes.Create(ctx, recipe); err != nil {
			return categoryMiss(err)
		}
		pairs, err := s.resolveIngredients(ctx, tx, input.Ingredients)
		if err != nil {
			return err
		}
		return s.sync.Synchronize(ctx, recipe.ID, pairs, tx.Recipes)
	})
	if err != nil {
		return nil, err
	}

	recipeOperations.WithLabelValues("create").Inc()
	s.log.Info("Recipe created", "recipeId", recipe.ID, "authorId", authorID, "ingredients", len(input.Ingredients))
	s.events.emit(EventRecipeCreated, recipe.ID, authorID, recipeSummary(recipe))

	return s.FindByID(ctx, recipe.ID)
}

// FindByID returns the recipe with its full closure and average rating.
func (s *RecipeService) FindByID(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.store.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return withAverage(recipe), nil
}

// FindAll returns one page of recipes, each carrying the same closure as FindByID.
func (s *RecipeService) FindAll(ctx context.Context, filter RecipeFilter) (*Page[models.Recipe], error) {
	limit, offset := normalizePaging(filter.Limit, filter.Offset, defaultRecipeLimit)
	recipes, total, err := s.store.Recipes.List(ctx, repositories.RecipeFilter{
		CategoryID: filter.CategoryID,
		AuthorID:   filter.UserID,
		Search:     filter.Search,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		withAverage(&recipes[i])
	}
	return &Page[models.Recipe]{Items: recipes, Total: total, Limit: limit, Offset: offset}, nil
}

// Update applies the supplied fields of a recipe owned by callerID. Ingredients are
// replaced only when input.Ingredients is non-nil. A missing recipe is reported before
// ownership, and ownership before any field error.
func (s *RecipeService) Update(ctx context.Context, id string, input UpdateRecipeInput, callerID string) (*models.Recipe, error) {
	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.Recipes.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if err := AssertOwner(existing, callerID, "update recipe"); err != nil {
			return err
		}
		if input.Difficulty != nil && !input.Difficulty.Valid() {
			return apperrors.Validation(map[string]string{"difficulty": "must be one of Easy, Medium, Hard"})
		}

		if input.CategoryID != nil && *input.CategoryID != existing.CategoryID {
			if err := requireCategory(ctx, tx, *input.CategoryID); err != nil {
				return err
			}
		}

		fields := input.columns()
		fields["updated_at"] = time.Now()
		if err := tx.Recipes.Update(ctx, id, fields); err != nil {
			return categoryMiss(err)
		}

		if input.Ingredients == nil {
			return nil
		}
		pairs, err := s.resolveIngredients(ctx, tx, *input.Ingredients)
		if err != nil {
			return err
		}
		return s.sync.Synchronize(ctx, id, pairs, tx.Recipes)
	})
	if err != nil {
		return nil, err
	}

	recipeOperations.WithLabelValues("update").Inc()
	s.log.Info("Recipe updated", "recipeId", id, "callerId", callerID, "ingredientsReplaced", input.Ingredients != nil)

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.emit(EventRecipeUpdated, id, callerID, recipeSummary(updated))
	return updated, nil
}

// Delete removes a recipe owned by callerID. Its associations and ratings go with it.
func (s *RecipeService) Delete(ctx context.Context, id string, callerID string) error {
	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.Recipes.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if err := AssertOwner(existing, callerID, "delete recipe"); err != nil {
			return err
		}
		return tx.Recipes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	recipeOperations.WithLabelValues("delete").Inc()
	s.log.Info("Recipe deleted", "recipeId", id, "callerId", callerID)
	s.events.emit(EventRecipeDeleted, id, callerID, nil)
	return nil
}

// resolveIngredients completes every resolution before any association is written.
func (s *RecipeService) resolveIngredients(ctx context.Context, tx *repositories.Store, inputs []RecipeIngredientInput) ([]IngredientPair, error) {
	pairs := make([]IngredientPair, 0, len(inputs))
	for i, in := range inputs {
		ingredient, err := s.resolver.Resolve(ctx, in.IngredientRef, tx.Ingredients)
		if err != nil {
			return nil, fmt.Errorf("ingredient #%d: %w", i+1, err)
		}
		pairs = append(pairs, IngredientPair{IngredientID: ingredient.ID, Quantity: in.Quantity})
	}
	return pairs, nil
}

func requireCategory(ctx context.Context, tx *repositories.Store, categoryID string) error {
	exists, err := tx.Categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("category")
	}
	return nil
}

// categoryMiss reports a foreign key failure on a recipe row the same way as a failed lookup.
// The author is authenticated before any write, so the category is the reference that can go missing.
func categoryMiss(err error) error {
	if errors.Is(err, apperrors.ErrReferential) {
		return apperrors.NotFound("category")
	}
	return err
}

// recipeSummary is the event payload of a recipe, without its relations.
func recipeSummary(r *models.Recipe) map[string]any {
	return map[string]any{
		"title":      r.Title,
		"authorId":   r.AuthorID,
		"categoryId": r.CategoryID,
		"difficulty": r.Difficulty,
	}
}
