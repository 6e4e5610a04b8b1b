package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pantry/internal/errors"
	"pantry/internal/repository"
)

func TestInventoryService_SearchIngredients(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	service := NewInventoryService(repo)

	all, err := service.SearchIngredients(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := service.SearchIngredients(ctx, "name", "car")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Carrot", byName[0].Name)

	byCategory, err := service.SearchIngredients(ctx, "category", "bak")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Flour", byCategory[0].Name)

	// Unknown criteria falls back to the full inventory.
	fallback, err := service.SearchIngredients(ctx, "bogus", "car")
	require.NoError(t, err)
	assert.Len(t, fallback, 2)
}

func TestInventoryService_AddIngredient(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	seedInventory(t, ctx, repo)
	service := NewInventoryService(repo)

	ing, err := service.AddIngredient(ctx, "  Butter  ", "g", []string{"Dairy", ""}, 0, 500, 10)
	require.NoError(t, err)
	assert.Equal(t, "Butter", ing.Name)
	require.Len(t, ing.Categories, 1)
	assert.Equal(t, "Dairy", ing.Categories[0].Name)
	assert.Equal(t, 1, ing.RangeMin) // default kept
	assert.Equal(t, 500, ing.RangeMax)
	assert.Equal(t, 10, ing.Step)

	_, err = service.AddIngredient(ctx, "Carrot", "g", nil, 0, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	_, err = service.AddIngredient(ctx, "", "g", nil, 0, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	_, err = service.AddIngredient(ctx, "Salt", "", nil, 0, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
