package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/repository"
)

func seedInventory(t *testing.T, ctx context.Context, repo repository.Repository) {
	t.Helper()
	for _, row := range []struct {
		name, unit, category string
	}{
		{"Carrot", "g", "Vegetables"},
		{"Flour", "g", "Baking"},
	} {
		cat, err := model.NewCategory(row.category)
		require.NoError(t, err)
		ing, err := model.NewIngredient(row.name, decimal.Zero, row.unit, []model.Category{cat})
		require.NoError(t, err)
		require.NoError(t, repo.AddIngredient(ctx, ing))
	}
}

func TestShoppingService_AddToGroceryList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	service := NewShoppingService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)

	item, err := service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(200), "")
	require.NoError(t, err)
	assert.Equal(t, "Carrot", item.Name)
	assert.Equal(t, "200", item.Quantity.String())

	// Re-adding accumulates on the single existing entry.
	item, err = service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(300), "g")
	require.NoError(t, err)
	assert.Equal(t, "500", item.Quantity.String())
	assert.Len(t, user.GroceryList, 1)

	// The accumulated quantity survives a fresh lookup.
	fresh, err := repo.FindUserByUsername(ctx, "kate")
	require.NoError(t, err)
	require.Len(t, fresh.GroceryList, 1)
	assert.Equal(t, "500", fresh.GroceryList[0].Quantity.String())
}

func TestShoppingService_AddToGroceryList_Validation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	service := NewShoppingService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)

	_, err = service.AddToGroceryList(ctx, user, "Butter", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, apperrors.ErrIngredientNotFound)

	_, err = service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(-1), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(1), "kg")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = service.AddToGroceryList(ctx, nil, "Carrot", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestShoppingService_RemoveFromGroceryList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	service := NewShoppingService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)
	_, err = service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(200), "")
	require.NoError(t, err)

	require.NoError(t, service.RemoveFromGroceryList(ctx, user, "carrot"))
	assert.Empty(t, user.GroceryList)

	err = service.RemoveFromGroceryList(ctx, user, "Carrot")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestShoppingService_RemoveRecipe(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	seedRecipes(t, ctx, repo)
	recipeService := NewRecipeService(repo)
	service := NewShoppingService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)
	_, err = recipeService.SetSelectedIngredients(ctx, user, "Pancakes", []interface{}{"1;;cup;;flour"})
	require.NoError(t, err)
	require.True(t, user.HasSavedRecipe(1))

	require.NoError(t, service.RemoveRecipe(ctx, user, "pancakes"))
	assert.False(t, user.HasSavedRecipe(1))
	assert.Empty(t, user.RecipeIngredientsFor("Pancakes"))

	err = service.RemoveRecipe(ctx, user, "Pancakes")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestShoppingService_ExportText(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	seedRecipes(t, ctx, repo)
	recipeService := NewRecipeService(repo)
	service := NewShoppingService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)
	_, err = service.AddToGroceryList(ctx, user, "Carrot", decimal.NewFromInt(200), "")
	require.NoError(t, err)
	_, err = recipeService.SetSelectedIngredients(ctx, user, "Pancakes", []interface{}{"1;;cup;;flour"})
	require.NoError(t, err)

	text, err := service.ExportText(ctx, user)
	require.NoError(t, err)
	assert.Contains(t, text, "General Grocery List:")
	assert.Contains(t, text, "- Carrot: 200 g")
	assert.Contains(t, text, "Pancakes:")
	assert.Contains(t, text, "- flour: 1 cup")
}
