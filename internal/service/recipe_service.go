package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/repository"
)

// RecipeService exposes the recipe catalogue plus each user's saved recipes
// and per-recipe ingredient selections.
type RecipeService interface {
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, name string) (*model.Recipe, error)
	SearchRecipes(ctx context.Context, criteria, pattern string) ([]*model.Recipe, error)

	SavedRecipes(ctx context.Context, user *model.User) ([]*model.Recipe, error)
	ToggleSavedRecipe(ctx context.Context, user *model.User, recipeName string) (saved bool, err error)

	SelectedIngredients(ctx context.Context, user *model.User, recipeName string) ([]model.IngredientEntry, error)
	SetSelectedIngredients(ctx context.Context, user *model.User, recipeName string, entries []interface{}) ([]model.IngredientEntry, error)
	RemoveSelectedIngredient(ctx context.Context, user *model.User, recipeName, ingredientName string) error
	ClearSelectedIngredients(ctx context.Context, user *model.User, recipeName string) error
}

type recipeService struct {
	repo repository.Repository
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(repo repository.Repository) RecipeService {
	return &recipeService{repo: repo}
}

func (s *recipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

func (s *recipeService) GetRecipe(ctx context.Context, name string) (*model.Recipe, error) {
	return s.repo.FindRecipeByName(ctx, name)
}

// SearchRecipes filters the catalogue by a case-insensitive substring match on
// the given criteria ("name" or "category"). An unknown criteria or an empty
// pattern returns every recipe.
func (s *recipeService) SearchRecipes(ctx context.Context, criteria, pattern string) ([]*model.Recipe, error) {
	if strings.TrimSpace(pattern) == "" {
		return s.repo.ListRecipes(ctx)
	}
	switch criteria {
	case "category":
		return s.repo.SearchRecipesByCategory(ctx, pattern)
	case "name":
		return s.repo.SearchRecipesByName(ctx, pattern)
	default:
		return s.repo.ListRecipes(ctx)
	}
}

// SavedRecipes resolves the user's saved recipe IDs against the catalogue.
// IDs pointing at recipes that no longer exist are skipped.
func (s *recipeService) SavedRecipes(ctx context.Context, user *model.User) ([]*model.Recipe, error) {
	ids, err := s.repo.SavedRecipes(ctx, user)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*model.Recipe, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	saved := make([]*model.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			saved = append(saved, r)
		}
	}
	return saved, nil
}

// ToggleSavedRecipe saves the named recipe for the user, or removes it if it
// is already saved. It reports the resulting state: true when the recipe is
// saved after the call.
func (s *recipeService) ToggleSavedRecipe(ctx context.Context, user *model.User, recipeName string) (bool, error) {
	recipe, err := s.repo.FindRecipeByName(ctx, recipeName)
	if err != nil {
		return false, err
	}

	has, err := s.repo.HasSavedRecipe(ctx, recipe.ID, user)
	if err != nil {
		return false, err
	}
	if has {
		if err := s.repo.RemoveSavedRecipe(ctx, recipe.ID, user); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.AddSavedRecipe(ctx, recipe.ID, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *recipeService) SelectedIngredients(ctx context.Context, user *model.User, recipeName string) ([]model.IngredientEntry, error) {
	return s.repo.UserRecipeIngredients(ctx, user, recipeName)
}

// SetSelectedIngredients replaces the user's ingredient selection for a recipe
// with the given raw entries, saving the recipe as a side effect so the
// selection shows up on the shopping list.
func (s *recipeService) SetSelectedIngredients(ctx context.Context, user *model.User, recipeName string, entries []interface{}) ([]model.IngredientEntry, error) {
	recipe, err := s.repo.FindRecipeByName(ctx, recipeName)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearUserRecipeIngredients(ctx, user, recipe.Name); err != nil {
		return nil, fmt.Errorf("clear selection: %w", err)
	}
	if err := s.repo.AddUserRecipeIngredientList(ctx, user, recipe.Name, entries); err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}

	has, err := s.repo.HasSavedRecipe(ctx, recipe.ID, user)
	if err != nil {
		return nil, err
	}
	if !has {
		if err := s.repo.AddSavedRecipe(ctx, recipe.ID, user); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	return s.repo.UserRecipeIngredients(ctx, user, recipe.Name)
}

func (s *recipeService) RemoveSelectedIngredient(ctx context.Context, user *model.User, recipeName, ingredientName string) error {
	if err := s.repo.RemoveUserRecipeIngredient(ctx, user, recipeName, ingredientName); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, user)
}

// ClearSelectedIngredients drops the user's selection for a recipe and
// unsaves the recipe itself.
func (s *recipeService) ClearSelectedIngredients(ctx context.Context, user *model.User, recipeName string) error {
	recipe, err := s.repo.FindRecipeByName(ctx, recipeName)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrRecipeNotFound) {
			// Selection may outlive the recipe; still clear it.
			return s.repo.ClearUserRecipeIngredients(ctx, user, recipeName)
		}
		return err
	}

	if err := s.repo.ClearUserRecipeIngredients(ctx, user, recipe.Name); err != nil {
		return err
	}
	if err := s.repo.RemoveSavedRecipe(ctx, recipe.ID, user); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, user)
}
