package repository

import (
	"context"

	"pantry/internal/model"
)

// Repository is the capability contract both storage backends implement with
// identical externally observable behavior. Name lookups marked exact are
// case-sensitive; every other text match folds case with a simple lowercase
// comparison. Query results carrying multiple ingredients or recipes come back
// sorted by name unless the operation filters by an exact key.
//
// Mutations that take a *model.User keep that caller-supplied object in sync
// with persisted state, so a later UpdateUser cannot silently undo them.
type Repository interface {
	// Ingredients
	AddIngredient(ctx context.Context, ing *model.Ingredient) error
	AddIngredients(ctx context.Context, ings []*model.Ingredient) error
	FindIngredientByName(ctx context.Context, name string) (*model.Ingredient, error)
	FindIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error)
	ListIngredients(ctx context.Context) ([]*model.Ingredient, error)
	SearchIngredientsByName(ctx context.Context, name string) ([]*model.Ingredient, error)
	SearchIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error)

	// Categories
	AddCategory(ctx context.Context, category model.Category) error
	AddCategories(ctx context.Context, categories []model.Category) error
	FindCategoryByName(ctx context.Context, name string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	// Users
	AddUser(ctx context.Context, user *model.User) error
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error

	// Saved recipes
	SavedRecipes(ctx context.Context, user *model.User) ([]int, error)
	HasSavedRecipe(ctx context.Context, recipeID int, user *model.User) (bool, error)
	AddSavedRecipe(ctx context.Context, recipeID int, user *model.User) error
	RemoveSavedRecipe(ctx context.Context, recipeID int, user *model.User) error

	// Per-recipe ingredient entries. The entry argument of the add operations
	// is a raw payload (canonical triple, delimited string, part list, or
	// resolved Ingredient) handed untouched to the entry normalizer.
	UserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) ([]model.IngredientEntry, error)
	AddUserRecipeIngredient(ctx context.Context, user *model.User, recipeName string, entry interface{}) error
	RemoveUserRecipeIngredient(ctx context.Context, user *model.User, recipeName, ingredientName string) error
	AddUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, entries []interface{}) error
	RemoveUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, ingredientNames []string) error
	ClearUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error
	// DeleteUserRecipeIngredients is an alias of ClearUserRecipeIngredients,
	// kept because both spellings are part of the route-facing contract.
	DeleteUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error

	// Recipes
	AddRecipe(ctx context.Context, recipe *model.Recipe) error
	AddRecipes(ctx context.Context, recipes []*model.Recipe) error
	FindRecipeByName(ctx context.Context, name string) (*model.Recipe, error)
	FindRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	SearchRecipesByName(ctx context.Context, name string) ([]*model.Recipe, error)
	SearchRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error)
}
