package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pantry/internal/service"
)

// ShoppingHandler handles grocery-list and shopping-list endpoints.
type ShoppingHandler struct {
	shoppingService service.ShoppingService
	recipeService   service.RecipeService
	authService     service.AuthService
}

// NewShoppingHandler creates a new shopping handler.
func NewShoppingHandler(shoppingService service.ShoppingService, recipeService service.RecipeService, authService service.AuthService) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		recipeService:   recipeService,
		authService:     authService,
	}
}

// AddGroceryRequest adds an inventory ingredient to the grocery list.
// Quantity is a decimal string so amounts round-trip exactly.
type AddGroceryRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	Unit     string `json:"unit"`
}

// ShoppingListResponse is the full shopping page payload: loose groceries
// plus saved recipes and their selected entries.
type ShoppingListResponse struct {
	GroceryList  interface{} `json:"grocery_list"`
	SavedRecipes interface{} `json:"saved_recipes"`
}

// GetShoppingList godoc
// @Summary Get the user's shopping list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ShoppingListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /shopping [get]
func (h *ShoppingHandler) GetShoppingList(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}

	groceries, err := h.shoppingService.GroceryList(c.Request().Context(), user)
	if err != nil {
		return domainError(err)
	}
	saved, err := h.recipeService.SavedRecipes(c.Request().Context(), user)
	if err != nil {
		return domainError(err)
	}

	type savedRecipe struct {
		Name        string      `json:"name"`
		Ingredients interface{} `json:"ingredients"`
	}
	savedOut := make([]savedRecipe, 0, len(saved))
	for _, r := range saved {
		entries, err := h.recipeService.SelectedIngredients(c.Request().Context(), user, r.Name)
		if err != nil {
			return domainError(err)
		}
		savedOut = append(savedOut, savedRecipe{Name: r.Name, Ingredients: entries})
	}

	return c.JSON(http.StatusOK, ShoppingListResponse{
		GroceryList:  groceries,
		SavedRecipes: savedOut,
	})
}

// AddGroceryItem godoc
// @Summary Add an ingredient to the grocery list
// @Tags shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddGroceryRequest true "Ingredient and quantity"
// @Success 200 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /shopping/items [post]
func (h *ShoppingHandler) AddGroceryItem(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}

	var req AddGroceryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a number")
	}

	item, err := h.shoppingService.AddToGroceryList(c.Request().Context(), user, req.Name, quantity, req.Unit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// RemoveGroceryItem godoc
// @Summary Remove an ingredient from the grocery list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param name path string true "Ingredient name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /shopping/items/{name} [delete]
func (h *ShoppingHandler) RemoveGroceryItem(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	name := c.Param("name")
	if err := h.shoppingService.RemoveFromGroceryList(c.Request().Context(), user, name); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": name + " removed from grocery list",
		"name":    name,
	})
}

// ClearGroceryList godoc
// @Summary Clear the grocery list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /shopping/items [delete]
func (h *ShoppingHandler) ClearGroceryList(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	if err := h.shoppingService.ClearGroceryList(c.Request().Context(), user); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "grocery list cleared"})
}

// RemoveRecipe godoc
// @Summary Remove a saved recipe and its selection from the shopping list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /shopping/recipes/{name} [delete]
func (h *ShoppingHandler) RemoveRecipe(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	name := c.Param("name")
	if err := h.shoppingService.RemoveRecipe(c.Request().Context(), user, name); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "recipe " + name + " removed from shopping list",
		"recipe":  name,
	})
}

// ExportShoppingList godoc
// @Summary Export the shopping list as plain text
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /shopping/export [get]
func (h *ShoppingHandler) ExportShoppingList(c echo.Context) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return err
	}
	text, err := h.shoppingService.ExportText(c.Request().Context(), user)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"shopping_list": text})
}
