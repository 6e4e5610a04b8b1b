package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pantry/internal/config"
	"pantry/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	inventoryHandler *handler.InventoryHandler,
	recipeHandler *handler.RecipeHandler,
	shoppingHandler *handler.ShoppingHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", authHandler.Me)

	// Inventory routes
	secured.GET("/inventory", inventoryHandler.ListIngredients)
	secured.POST("/inventory", inventoryHandler.AddIngredient)
	secured.GET("/inventory/:name", inventoryHandler.GetIngredient)
	secured.GET("/categories", inventoryHandler.ListCategories)

	// Recipe routes. "saved" is registered before ":name" on purpose; echo
	// prefers static segments, so both resolve correctly.
	secured.GET("/recipes", recipeHandler.ListRecipes)
	secured.GET("/recipes/saved", recipeHandler.SavedRecipes)
	secured.GET("/recipes/:name", recipeHandler.GetRecipe)
	secured.POST("/recipes/:name/save", recipeHandler.ToggleSaved)
	secured.GET("/recipes/:name/ingredients", recipeHandler.GetSelection)
	secured.PUT("/recipes/:name/ingredients", recipeHandler.SetSelection)
	secured.DELETE("/recipes/:name/ingredients", recipeHandler.ClearSelection)
	secured.DELETE("/recipes/:name/ingredients/:ingredient", recipeHandler.RemoveSelectedIngredient)

	// Shopping routes
	secured.GET("/shopping", shoppingHandler.GetShoppingList)
	secured.GET("/shopping/export", shoppingHandler.ExportShoppingList)
	secured.POST("/shopping/items", shoppingHandler.AddGroceryItem)
	secured.DELETE("/shopping/items", shoppingHandler.ClearGroceryList)
	secured.DELETE("/shopping/items/:name", shoppingHandler.RemoveGroceryItem)
	secured.DELETE("/shopping/recipes/:name", shoppingHandler.RemoveRecipe)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
