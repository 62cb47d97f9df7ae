package repositories

import (
	"context"
	"time"

	"cookbook/internal/apperrors"
	"cookbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingFilter narrows a rating listing. Empty fields do not filter.
type RatingFilter struct {
	RecipeID string
	UserID   string
	Limit    int
	Offset   int
}

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	GetByID(ctx context.Context, id string) (*models.Rating, error)
	GetByUserRecipe(ctx context.Context, userID, recipeID string) (*models.Rating, error)
	List(ctx context.Context, filter RatingFilter) ([]models.Rating, int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{db: db}
}

// Upsert inserts the rating or, when the user already rated the recipe, overwrites its
// score and comment in the same statement. It returns the stored row.
func (r *GORMRatingRepository) Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at"}),
		}).
		Create(rating).Error
	if err != nil {
		return nil, translate(err, "rating", "recipe_id")
	}
	return r.GetByUserRecipe(ctx, rating.UserID, rating.RecipeID)
}

func (r *GORMRatingRepository) GetByID(ctx context.Context, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := withRater(r.db.WithContext(ctx)).First(&rating, "ratings.id = ?", id).Error; err != nil {
		return nil, translate(err, "rating", "")
	}
	return &rating, nil
}

func (r *GORMRatingRepository) GetByUserRecipe(ctx context.Context, userID, recipeID string) (*models.Rating, error) {
	var rating models.Rating
	err := withRater(r.db.WithContext(ctx)).
		First(&rating, "ratings.user_id = ? AND ratings.recipe_id = ?", userID, recipeID).Error
	if err != nil {
		return nil, translate(err, "rating", "")
	}
	return &rating, nil
}

// List returns one page of ratings, newest first, with the total ignoring paging.
func (r *GORMRatingRepository) List(ctx context.Context, filter RatingFilter) ([]models.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Rating{})
	if filter.RecipeID != "" {
		query = query.Where("ratings.recipe_id = ?", filter.RecipeID)
	}
	if filter.UserID != "" {
		query = query.Where("ratings.user_id = ?", filter.UserID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "rating", "")
	}

	ratings := make([]models.Rating, 0)
	err := withRater(query).
		Order("ratings.created_at DESC").
		Order("ratings.id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, translate(err, "rating", "")
	}
	return ratings, total, nil
}

func (r *GORMRatingRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Rating{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "rating", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("rating")
	}
	return nil
}

func (r *GORMRatingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "rating", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("rating")
	}
	return nil
}

func withRater(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
}
