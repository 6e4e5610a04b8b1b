package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/repository"
)

func seedRecipes(t *testing.T, ctx context.Context, repo repository.Repository) {
	t.Helper()
	for _, r := range []struct {
		id       int
		name     string
		category string
		entries  []string
	}{
		{1, "Pancakes", "Breakfast", []string{"1;;cup;;flour", "2;;;;eggs"}},
		{2, "Carrot Soup", "Dinner", []string{"2;;;;carrots", "1;;l;;stock"}},
	} {
		entries := make([]model.IngredientEntry, 0, len(r.entries))
		for _, raw := range r.entries {
			e, err := model.NormalizeEntryString(raw)
			require.NoError(t, err)
			entries = append(entries, e)
		}
		recipe, err := model.NewRecipe(r.id, r.name, "", entries, nil, 10, 20, 30, "easy", r.category, "", nil, "", "")
		require.NoError(t, err)
		require.NoError(t, repo.AddRecipe(ctx, recipe))
	}
}

func TestRecipeService_SearchRecipes(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedRecipes(t, ctx, repo)
	service := NewRecipeService(repo)

	all, err := service.SearchRecipes(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := service.SearchRecipes(ctx, "name", "carrot")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Carrot Soup", byName[0].Name)

	byCategory, err := service.SearchRecipes(ctx, "category", "break")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Pancakes", byCategory[0].Name)
}

func TestRecipeService_ToggleSavedRecipe(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedRecipes(t, ctx, repo)
	service := NewRecipeService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)

	saved, err := service.ToggleSavedRecipe(ctx, user, "pancakes")
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, user.HasSavedRecipe(1))

	// Toggling again unsaves.
	saved, err = service.ToggleSavedRecipe(ctx, user, "Pancakes")
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, user.HasSavedRecipe(1))

	_, err = service.ToggleSavedRecipe(ctx, user, "Waffles")
	assert.ErrorIs(t, err, apperrors.ErrRecipeNotFound)
}

func TestRecipeService_SavedRecipes_SkipsDanglingIDs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedRecipes(t, ctx, repo)
	service := NewRecipeService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.AddSavedRecipe(ctx, 1, user))
	require.NoError(t, repo.AddSavedRecipe(ctx, 42, user)) // no such recipe

	saved, err := service.SavedRecipes(ctx, user)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Pancakes", saved[0].Name)
}

func TestRecipeService_SetSelectedIngredients(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedRecipes(t, ctx, repo)
	service := NewRecipeService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)

	entries, err := service.SetSelectedIngredients(ctx, user, "pancakes", []interface{}{
		"1;;cup;;flour",
		"2;;;;eggs",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "flour", entries[0].Name)

	// Selecting ingredients saves the recipe as a side effect.
	assert.True(t, user.HasSavedRecipe(1))

	// A second call replaces the selection outright.
	entries, err = service.SetSelectedIngredients(ctx, user, "Pancakes", []interface{}{"100;;g;;butter"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "butter", entries[0].Name)

	_, err = service.SetSelectedIngredients(ctx, user, "Waffles", []interface{}{"1;;cup;;flour"})
	assert.ErrorIs(t, err, apperrors.ErrRecipeNotFound)
}

func TestRecipeService_RemoveAndClearSelection(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedRecipes(t, ctx, repo)
	service := NewRecipeService(repo)

	user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
	require.NoError(t, err)

	_, err = service.SetSelectedIngredients(ctx, user, "Pancakes", []interface{}{
		"1;;cup;;flour",
		"2;;;;eggs",
	})
	require.NoError(t, err)

	require.NoError(t, service.RemoveSelectedIngredient(ctx, user, "pancakes", "flour"))
	entries, err := service.SelectedIngredients(ctx, user, "Pancakes")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "eggs", entries[0].Name)

	// Clearing the selection also unsaves the recipe.
	require.NoError(t, service.ClearSelectedIngredients(ctx, user, "Pancakes"))
	entries, err = service.SelectedIngredients(ctx, user, "Pancakes")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, user.HasSavedRecipe(1))
}
