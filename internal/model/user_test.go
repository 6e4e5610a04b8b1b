package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(1, "kate", "kate@example.com", "hash")
	require.NoError(t, err)
	return u
}

func newTestIngredient(t *testing.T, name string, qty int64, unit string) *Ingredient {
	t.Helper()
	ing, err := NewIngredient(name, decimal.NewFromInt(qty), unit, nil)
	require.NoError(t, err)
	return ing
}

func TestUser_AddGrocery_Accumulates(t *testing.T) {
	u := newTestUser(t)
	carrot := newTestIngredient(t, "Carrot", 0, "g")

	u.AddGrocery(carrot, decimal.NewFromInt(200))
	u.AddGrocery(carrot, decimal.NewFromInt(300))

	require.Len(t, u.GroceryList, 1)
	assert.Equal(t, "Carrot", u.GroceryList[0].Name)
	assert.Equal(t, "500", u.GroceryList[0].Quantity.String())
}

func TestUser_AddGrocery_CopiesItem(t *testing.T) {
	u := newTestUser(t)
	carrot := newTestIngredient(t, "Carrot", 0, "g")

	u.AddGrocery(carrot, decimal.NewFromInt(200))

	// The caller's ingredient is not aliased by the list.
	carrot.Unit = "kg"
	assert.Equal(t, "g", u.GroceryList[0].Unit)
	assert.Equal(t, "0", carrot.Quantity.String())
}

func TestUser_RemoveGrocery(t *testing.T) {
	u := newTestUser(t)
	u.AddGrocery(newTestIngredient(t, "Carrot", 0, "g"), decimal.NewFromInt(200))
	u.AddGrocery(newTestIngredient(t, "Flour", 0, "g"), decimal.NewFromInt(500))

	u.RemoveGrocery("carrot")
	require.Len(t, u.GroceryList, 1)
	assert.Equal(t, "Flour", u.GroceryList[0].Name)

	// Removing something absent is a no-op.
	u.RemoveGrocery("butter")
	assert.Len(t, u.GroceryList, 1)

	u.ClearGroceryList()
	assert.Empty(t, u.GroceryList)
}

func TestUser_SaveRecipe_Idempotent(t *testing.T) {
	u := newTestUser(t)

	u.SaveRecipe(7)
	u.SaveRecipe(7)
	assert.Equal(t, []int{7}, u.SavedRecipes)
	assert.True(t, u.HasSavedRecipe(7))

	u.RemoveSavedRecipe(7)
	assert.False(t, u.HasSavedRecipe(7))
	assert.Empty(t, u.SavedRecipes)
}

func TestUser_RecipeIngredients_KeyFoldsCase(t *testing.T) {
	u := newTestUser(t)

	u.AddRecipeIngredient("Pancakes", entry("1", "cup", "flour"))
	u.AddRecipeIngredient("pancakes", entry("2", "", "eggs"))

	// Both writes land under the first-seen key.
	require.Len(t, u.RecipeIngredients, 1)
	entries := u.RecipeIngredientsFor("PANCAKES")
	require.Len(t, entries, 2)
	assert.Equal(t, "flour", entries[0].Name)
	assert.Equal(t, "eggs", entries[1].Name)
}

func TestUser_AddRecipeIngredient_DedupesByName(t *testing.T) {
	u := newTestUser(t)

	u.AddRecipeIngredient("Pancakes", entry("1", "cup", "flour"))
	u.AddRecipeIngredient("Pancakes", entry("2", "cup", "Flour"))

	entries := u.RecipeIngredientsFor("Pancakes")
	require.Len(t, entries, 1)
	assert.Equal(t, "flour", entries[0].Name)
	assert.Equal(t, "1", entries[0].QuantityDisplay())
}

func TestUser_RemoveRecipeIngredient(t *testing.T) {
	u := newTestUser(t)
	u.AddRecipeIngredientList("Pancakes", []IngredientEntry{
		entry("1", "cup", "flour"),
		entry("2", "", "eggs"),
	})

	u.RemoveRecipeIngredient("pancakes", "FLOUR")
	entries := u.RecipeIngredientsFor("Pancakes")
	require.Len(t, entries, 1)
	assert.Equal(t, "eggs", entries[0].Name)

	// Removing the last entry drops the key entirely.
	u.RemoveRecipeIngredient("Pancakes", "eggs")
	assert.Empty(t, u.RecipeIngredients)
}

func TestUser_ClearRecipeIngredients(t *testing.T) {
	u := newTestUser(t)
	u.AddRecipeIngredient("Pancakes", entry("1", "cup", "flour"))
	u.AddRecipeIngredient("Soup", entry("1", "", "carrot"))

	u.ClearRecipeIngredients("pancakes")
	assert.Empty(t, u.RecipeIngredientsFor("Pancakes"))
	assert.Len(t, u.RecipeIngredientsFor("Soup"), 1)

	u.ClearAllRecipeIngredients()
	assert.Empty(t, u.RecipeIngredients)
}
