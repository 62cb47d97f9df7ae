package services

import (
	"context"
	"time"

	"cookbook/internal/apperrors"
	"cookbook/internal/logger"
	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

// RatingInput rates a recipe. Rating the same recipe again replaces the earlier score.
type RatingInput struct {
	RecipeID string `json:"recipeId" validate:"required"`
	Score    int    `json:"score" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=2000"`
}

type UpdateRatingInput struct {
	Score   *int    `json:"score" validate:"omitnil,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitnil,max=2000"`
}

type RatingFilter struct {
	RecipeID string `query:"recipeId"`
	UserID   string `query:"userId"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// RatingService handles business logic related to ratings.
type RatingService struct {
	store  *repositories.Store
	events emitter
	log    *logger.Logger
}

// NewRatingService creates a new RatingService. publisher may be nil.
func NewRatingService(store *repositories.Store, publisher EventPublisher, log *logger.Logger) *RatingService {
	if log == nil {
		log = logger.Nop()
	}
	return &RatingService{
		store:  store,
		events: emitter{publisher: publisher, log: log},
		log:    log,
	}
}

// Upsert records userID's score for a recipe, overwriting a previous one in place.
// A user never holds more than one rating per recipe.
func (s *RatingService) Upsert(ctx context.Context, input RatingInput, userID string) (*models.Rating, error) {
	if err := checkScore(input.Score); err != nil {
		return nil, err
	}

	var stored *models.Rating
	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Recipes.GetHeader(ctx, input.RecipeID); err != nil {
			return err
		}
		var err error
		stored, err = tx.Ratings.Upsert(ctx, &models.Rating{
			Score:    input.Score,
			Comment:  input.Comment,
			UserID:   userID,
			RecipeID: input.RecipeID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ratingOperations.WithLabelValues("upsert").Inc()
	s.log.Info("Rating stored", "ratingId", stored.ID, "recipeId", stored.RecipeID, "userId", userID, "score", stored.Score)
	s.events.emit(EventRatingUpserted, stored.ID, userID, ratingSummary(stored))
	return stored, nil
}

func (s *RatingService) FindByID(ctx context.Context, id string) (*models.Rating, error) {
	return s.store.Ratings.GetByID(ctx, id)
}

func (s *RatingService) FindAll(ctx context.Context, filter RatingFilter) (*Page[models.Rating], error) {
	limit, offset := normalizePaging(filter.Limit, filter.Offset, defaultRecipeLimit)
	ratings, total, err := s.store.Ratings.List(ctx, repositories.RatingFilter{
		RecipeID: filter.RecipeID,
		UserID:   filter.UserID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	return &Page[models.Rating]{Items: ratings, Total: total, Limit: limit, Offset: offset}, nil
}

// Update changes the score or comment of a rating owned by callerID.
func (s *RatingService) Update(ctx context.Context, id string, input UpdateRatingInput, callerID string) (*models.Rating, error) {
	var updated *models.Rating
	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.Ratings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := AssertOwner(existing, callerID, "update rating"); err != nil {
			return err
		}
		if input.Score != nil {
			if err := checkScore(*input.Score); err != nil {
				return err
			}
		}

		fields := map[string]interface{}{"updated_at": time.Now()}
		if input.Score != nil {
			fields["score"] = *input.Score
		}
		if input.Comment != nil {
			fields["comment"] = *input.Comment
		}
		if err := tx.Ratings.Update(ctx, id, fields); err != nil {
			return err
		}
		updated, err = tx.Ratings.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	ratingOperations.WithLabelValues("update").Inc()
	s.events.emit(EventRatingUpdated, id, callerID, ratingSummary(updated))
	return updated, nil
}

// Delete removes a rating owned by callerID.
func (s *RatingService) Delete(ctx context.Context, id string, callerID string) error {
	var recipeID string
	err := s.store.WithinTransaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.Ratings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := AssertOwner(existing, callerID, "delete rating"); err != nil {
			return err
		}
		recipeID = existing.RecipeID
		return tx.Ratings.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	ratingOperations.WithLabelValues("delete").Inc()
	s.events.emit(EventRatingDeleted, id, callerID, map[string]any{"recipeId": recipeID})
	return nil
}

func checkScore(score int) error {
	if score < 1 || score > 5 {
		return apperrors.Validation(map[string]string{"score": "must be between 1 and 5"})
	}
	return nil
}

func ratingSummary(r *models.Rating) map[string]any {
	return map[string]any{
		"recipeId": r.RecipeID,
		"userId":   r.UserID,
		"score":    r.Score,
	}
}
