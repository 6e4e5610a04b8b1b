package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pantry/internal/service"
)

// RecipeHandler handles recipe catalogue and saved-recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
	authService   service.AuthService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService, authService service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
	}
}

// SetSelectionRequest carries the raw ingredient entries selected for a
// recipe. Each element is either a delimited string ("1;;cup;;flour") or an
// ordered part list (["1", "cup", "flour"]).
type SetSelectionRequest struct {
	Ingredients []interface{} `json:"ingredients" validate:"required"`
}

// ToggleSavedResponse reports the saved state after a toggle.
type ToggleSavedResponse struct {
	Recipe string `json:"recipe"`
	Saved  bool   `json:"saved"`
}

// ListRecipes godoc
// @Summary List or search recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param c query string false "Search criteria: name or category"
// @Param p query string false "Search pattern"
// @Success 200 {array} model.Recipe
// @Failure 503 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	recipes, err := h.recipeService.SearchRecipes(c.Request().Context(), c.QueryParam("c"), c.QueryParam("p"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, recipes)
}

// GetRecipe godoc
// @Summary Get a single recipe by name
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} model.Recipe
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{name} [get]
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipe, err := h.recipeService.GetRecipe(c.Request().Context(), c.Param("name"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

// SavedRecipes godoc
// @Summary List the authenticated user's saved recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Recipe
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes/saved [get]
func (h *RecipeHandler) SavedRecipes(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	saved, err := h.recipeService.SavedRecipes(c.Request().Context(), user)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// ToggleSaved godoc
// @Summary Save a recipe, or unsave it when already saved
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} ToggleSavedResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{name}/save [post]
func (h *RecipeHandler) ToggleSaved(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	name := c.Param("name")
	saved, err := h.recipeService.ToggleSavedRecipe(c.Request().Context(), user, name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ToggleSavedResponse{Recipe: name, Saved: saved})
}

// GetSelection godoc
// @Summary Get the user's ingredient selection for a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Success 200 {array} model.IngredientEntry
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes/{name}/ingredients [get]
func (h *RecipeHandler) GetSelection(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	entries, err := h.recipeService.SelectedIngredients(c.Request().Context(), user, c.Param("name"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// SetSelection godoc
// @Summary Replace the user's ingredient selection for a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Param request body SetSelectionRequest true "Selected ingredient entries"
// @Success 200 {array} model.IngredientEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{name}/ingredients [put]
func (h *RecipeHandler) SetSelection(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}

	var req SetSelectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entries, err := h.recipeService.SetSelectedIngredients(c.Request().Context(), user, c.Param("name"), req.Ingredients)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// RemoveSelectedIngredient godoc
// @Summary Remove one ingredient from the user's selection for a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Param ingredient path string true "Ingredient name"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes/{name}/ingredients/{ingredient} [delete]
func (h *RecipeHandler) RemoveSelectedIngredient(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	if err := h.recipeService.RemoveSelectedIngredient(c.Request().Context(), user, c.Param("name"), c.Param("ingredient")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":    "ingredient removed from selection",
		"recipe":     c.Param("name"),
		"ingredient": c.Param("ingredient"),
	})
}

// ClearSelection godoc
// @Summary Clear the user's ingredient selection for a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes/{name}/ingredients [delete]
func (h *RecipeHandler) ClearSelection(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	if err := h.recipeService.ClearSelectedIngredients(c.Request().Context(), user, c.Param("name")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "selection cleared",
		"recipe":  c.Param("name"),
	})
}
