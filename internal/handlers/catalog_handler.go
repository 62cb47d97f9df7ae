package handlers

import (
	"cookbook/internal/logger"
	"cookbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
	log      *logger.Logger
}

func NewCategoryHandler(service *services.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, validate: newValidator(), log: log}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", chain(guards, h.HandleCreateCategory)...)
	categoryRoutes.Put("/:id", chain(guards, h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id", chain(guards, h.HandleDeleteCategory)...)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}
	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req services.UpdateCategoryInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}
	category, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory answers 409 while recipes still use the category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// IngredientHandler handles HTTP requests for ingredients.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
	log      *logger.Logger
}

func NewIngredientHandler(service *services.IngredientService, log *logger.Logger) *IngredientHandler {
	return &IngredientHandler{service: service, validate: newValidator(), log: log}
}

func (h *IngredientHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	ingredientRoutes := router.Group("/ingredients")
	ingredientRoutes.Get("/", h.HandleGetIngredients)
	ingredientRoutes.Get("/:id", h.HandleGetIngredientByID)
	ingredientRoutes.Post("/", chain(guards, h.HandleCreateIngredient)...)
	ingredientRoutes.Put("/:id", chain(guards, h.HandleUpdateIngredient)...)
	ingredientRoutes.Delete("/:id", chain(guards, h.HandleDeleteIngredient)...)
}

// HandleGetIngredients searches ingredients by name. limit defaults to 50, at most 100.
func (h *IngredientHandler) HandleGetIngredients(c *fiber.Ctx) error {
	var filter services.IngredientFilter
	if err := parseQuery(c, &filter); err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

func (h *IngredientHandler) HandleGetIngredientByID(c *fiber.Ctx) error {
	ingredient, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) HandleCreateIngredient(c *fiber.Ctx) error {
	var req services.IngredientInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ingredient, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}

func (h *IngredientHandler) HandleUpdateIngredient(c *fiber.Ctx) error {
	var req services.UpdateIngredientInput
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ingredient, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) HandleDeleteIngredient(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Ingredient deleted successfully"})
}
