package handlers

import (
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
	log      *logger.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the recipe routes. guards run before every write.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleGetRecipes)
	recipeRoutes.Get("/:id", h.HandleGetRecipeByID)
	recipeRoutes.Post("/", chain(guards, h.HandleCreateRecipe)...)
	recipeRoutes.Put("/:id", chain(guards, h.HandleUpdateRecipe)...)
	recipeRoutes.Delete("/:id", chain(guards, h.HandleDeleteRecipe)...)
}

// HandleGetRecipes lists recipes filtered by categoryId, userId and search.
// limit defaults to 10 and is capped at 100.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	var filter services.RecipeFilter
	if err := parseQuery(c, &filter); err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	recipe, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(recipe)
}

// HandleCreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var req services.CreateRecipeInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}

	recipe, err := h.service.Create(c.UserContext(), req, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe applies a partial update. Sending "ingredients" replaces the whole list.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	var req services.UpdateRecipeInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}

	recipe, err := h.service.Update(c.UserContext(), c.Params("id"), req, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe deleted successfully"})
}
