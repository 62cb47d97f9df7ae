package handlers

import (
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	service  *services.RatingService
	validate *validator.Validate
	log      *logger.Logger
}

func NewRatingHandler(service *services.RatingService, log *logger.Logger) *RatingHandler {
	return &RatingHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

func (h *RatingHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	ratingRoutes := router.Group("/ratings")
	ratingRoutes.Get("/", h.HandleGetRatings)
	ratingRoutes.Get("/:id", h.HandleGetRatingByID)
	ratingRoutes.Post("/", chain(guards, h.HandleUpsertRating)...)
	ratingRoutes.Put("/:id", chain(guards, h.HandleUpdateRating)...)
	ratingRoutes.Delete("/:id", chain(guards, h.HandleDeleteRating)...)
}

// HandleGetRatings lists ratings by recipeId or userId, 10 per page unless limit says otherwise (at most 100).
func (h *RatingHandler) HandleGetRatings(c *fiber.Ctx) error {
	var filter services.RatingFilter
	if err := parseQuery(c, &filter); err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

func (h *RatingHandler) HandleGetRatingByID(c *fiber.Ctx) error {
	rating, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rating)
}

// HandleUpsertRating rates a recipe. A second rating by the same user replaces the first.
func (h *RatingHandler) HandleUpsertRating(c *fiber.Ctx) error {
	var req services.RatingInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}

	rating, err := h.service.Upsert(c.UserContext(), req, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

func (h *RatingHandler) HandleUpdateRating(c *fiber.Ctx) error {
	var req services.UpdateRatingInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}

	rating, err := h.service.Update(c.UserContext(), c.Params("id"), req, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rating)
}

func (h *RatingHandler) HandleDeleteRating(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Rating deleted successfully"})
}
