package repositories

import (
	"context"

	"cookbook/internal/apperrors"
	"cookbook/internal/database"
	"cookbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientFilter narrows an ingredient listing.
type IngredientFilter struct {
	Search string
	Limit  int
	Offset int
}

// IngredientRepository defines the interface for ingredient data access.
type IngredientRepository interface {
	GetByID(ctx context.Context, id string) (*models.Ingredient, error)
	GetByName(ctx context.Context, name string) (*models.Ingredient, error)
	Create(ctx context.Context, ingredient *models.Ingredient) error
	List(ctx context.Context, filter IngredientFilter) ([]models.Ingredient, int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db      *gorm.DB
	matcher database.TextMatcher
}

func NewGORMIngredientRepository(db *gorm.DB, matcher database.TextMatcher) *GORMIngredientRepository {
	return &GORMIngredientRepository{db: db, matcher: matcher}
}

func (r *GORMIngredientRepository) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, translate(err, "ingredient", "")
	}
	return &ingredient, nil
}

// GetByName looks an ingredient up by its exact, case-sensitive name.
func (r *GORMIngredientRepository) GetByName(ctx context.Context, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "name = ?", name).Error; err != nil {
		return nil, translate(err, "ingredient", "")
	}
	return &ingredient, nil
}

func (r *GORMIngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if ingredient.Unit == "" {
		ingredient.Unit = models.DefaultIngredientUnit
	}
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return translate(err, "ingredient", "name")
	}
	return nil
}

// List returns ingredients ordered by name together with the unpaged total.
func (r *GORMIngredientRepository) List(ctx context.Context, filter IngredientFilter) ([]models.Ingredient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Ingredient{})
	if filter.Search != "" {
		cond, arg := r.matcher.Contains("name", filter.Search)
		query = query.Where(cond, arg)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "ingredient", "")
	}

	ingredients := make([]models.Ingredient, 0)
	if err := query.Order("name ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&ingredients).Error; err != nil {
		return nil, 0, translate(err, "ingredient", "")
	}
	return ingredients, total, nil
}

func (r *GORMIngredientRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "ingredient", "name")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("ingredient")
	}
	return nil
}

// Delete removes an ingredient; the store drops its recipe associations with it.
func (r *GORMIngredientRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "ingredient", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("ingredient")
	}
	return nil
}
