package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pantry/internal/service"
)

// InventoryHandler handles inventory (ingredient and category) endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
	authService      service.AuthService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService service.InventoryService, authService service.AuthService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		authService:      authService,
	}
}

// AddIngredientRequest represents an admin request to register an ingredient.
type AddIngredientRequest struct {
	Name       string   `json:"name" validate:"required"`
	Unit       string   `json:"unit" validate:"required"`
	Categories []string `json:"categories"`
	RangeMin   int      `json:"range_min"`
	RangeMax   int      `json:"range_max"`
	Step       int      `json:"step"`
}

// ListIngredients godoc
// @Summary List or search the ingredient inventory
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param c query string false "Search criteria: name or category"
// @Param p query string false "Search pattern"
// @Success 200 {array} model.Ingredient
// @Failure 503 {object} errors.ErrorResponse
// @Router /inventory [get]
func (h *InventoryHandler) ListIngredients(c echo.Context) error {
	criteria := c.QueryParam("c")
	pattern := c.QueryParam("p")

	items, err := h.inventoryService.SearchIngredients(c.Request().Context(), criteria, pattern)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetIngredient godoc
// @Summary Get a single ingredient by name
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param name path string true "Ingredient name"
// @Success 200 {object} model.Ingredient
// @Failure 404 {object} errors.ErrorResponse
// @Router /inventory/{name} [get]
func (h *InventoryHandler) GetIngredient(c echo.Context) error {
	ingredient, err := h.inventoryService.GetIngredient(c.Request().Context(), c.Param("name"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ingredient)
}

// AddIngredient godoc
// @Summary Register a new ingredient (admin only)
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddIngredientRequest true "Ingredient data"
// @Success 201 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /inventory [post]
func (h *InventoryHandler) AddIngredient(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	if !user.Admin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}

	var req AddIngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.inventoryService.AddIngredient(
		c.Request().Context(), req.Name, req.Unit, req.Categories, req.RangeMin, req.RangeMax, req.Step)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, ingredient)
}

// ListCategories godoc
// @Summary List ingredient categories
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 503 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *InventoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.inventoryService.ListCategories(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, categories)
}
