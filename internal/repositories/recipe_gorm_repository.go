package repositories

import (
	"context"

	"cookbook/internal/apperrors"
	"cookbook/internal/database"
	"cookbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter narrows a recipe listing. Empty fields do not filter.
type RecipeFilter struct {
	CategoryID string
	AuthorID   string
	Search     string
	Limit      int
	Offset     int
}

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	GetHeader(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	RemoveIngredients(ctx context.Context, recipeID string) error
	InsertIngredient(ctx context.Context, row *models.RecipeIngredient) error
}

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db      *gorm.DB
	matcher database.TextMatcher
}

func NewGORMRecipeRepository(db *gorm.DB, matcher database.TextMatcher) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db, matcher: matcher}
}

// Create inserts the recipe row only; associations are written by InsertIngredient.
func (r *GORMRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return translate(err, "recipe", "id")
	}
	return nil
}

// GetByID loads a recipe with its author, category, ingredients and ratings.
func (r *GORMRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withClosure(r.db.WithContext(ctx)).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		return nil, translate(err, "recipe", "")
	}
	return &recipe, nil
}

// GetHeader loads the recipe row without any relation, enough for ownership checks.
func (r *GORMRecipeRepository) GetHeader(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err, "recipe", "")
	}
	return &recipe, nil
}

// List returns one page of recipes, newest first, with the total ignoring paging.
func (r *GORMRecipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})
	if filter.CategoryID != "" {
		query = query.Where("recipes.category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		titleCond, titleArg := r.matcher.Contains("recipes.title", filter.Search)
		descCond, descArg := r.matcher.Contains("recipes.description", filter.Search)
		query = query.Where("("+titleCond+" OR "+descCond+")", titleArg, descArg)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "recipe", "")
	}

	recipes := make([]models.Recipe, 0)
	err := withClosure(query).
		Order("recipes.created_at DESC").
		Order("recipes.id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, translate(err, "recipe", "")
	}
	return recipes, total, nil
}

// Update applies the given column values and refreshes updated_at.
func (r *GORMRecipeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "recipe", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("recipe")
	}
	return nil
}

// Delete removes a recipe; the store cascades to its ingredient rows and ratings.
func (r *GORMRecipeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "recipe", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("recipe")
	}
	return nil
}

func (r *GORMRecipeRepository) RemoveIngredients(ctx context.Context, recipeID string) error {
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return translate(err, "recipe_ingredient", "")
	}
	return nil
}

func (r *GORMRecipeRepository) InsertIngredient(ctx context.Context, row *models.RecipeIngredient) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "recipe_ingredient", "ingredient_id")
	}
	return nil
}

func withClosure(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC").Order("ratings.id")
		}).
		Preload("Ratings.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})
}
