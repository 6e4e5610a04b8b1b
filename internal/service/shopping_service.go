package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/repository"
)

// ShoppingService manages a user's grocery list and renders the combined
// shopping list (loose groceries plus saved-recipe selections).
type ShoppingService interface {
	GroceryList(ctx context.Context, user *model.User) ([]*model.Ingredient, error)
	AddToGroceryList(ctx context.Context, user *model.User, ingredientName string, quantity decimal.Decimal, unit string) (*model.Ingredient, error)
	RemoveFromGroceryList(ctx context.Context, user *model.User, ingredientName string) error
	ClearGroceryList(ctx context.Context, user *model.User) error
	RemoveRecipe(ctx context.Context, user *model.User, recipeName string) error
	ExportText(ctx context.Context, user *model.User) (string, error)
}

type shoppingService struct {
	repo repository.Repository
}

// NewShoppingService creates a new shopping service.
func NewShoppingService(repo repository.Repository) ShoppingService {
	return &shoppingService{repo: repo}
}

func (s *shoppingService) GroceryList(ctx context.Context, user *model.User) ([]*model.Ingredient, error) {
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user.GroceryList, nil
}

// AddToGroceryList puts a pantry ingredient on the user's grocery list.
// Re-adding an item accumulates its quantity. A unit is optional; when given
// it must match the inventory unit.
func (s *shoppingService) AddToGroceryList(ctx context.Context, user *model.User, ingredientName string, quantity decimal.Decimal, unit string) (*model.Ingredient, error) {
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrInvalidArgument)
	}

	ingredient, err := s.repo.FindIngredientByName(ctx, ingredientName)
	if err != nil {
		return nil, err
	}
	if unit != "" && unit != ingredient.Unit {
		return nil, fmt.Errorf("%w: unit %q does not match inventory unit %q", apperrors.ErrInvalidArgument, unit, ingredient.Unit)
	}

	user.AddGrocery(ingredient, quantity)
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	for _, item := range user.GroceryList {
		if item.SameItem(ingredient) {
			return item, nil
		}
	}
	return ingredient, nil
}

// RemoveFromGroceryList drops an item from the grocery list. Removing an item
// that is not on the list returns ErrNotFound.
func (s *shoppingService) RemoveFromGroceryList(ctx context.Context, user *model.User, ingredientName string) error {
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	found := false
	for _, item := range user.GroceryList {
		if strings.EqualFold(item.Name, ingredientName) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s is not on the grocery list", apperrors.ErrNotFound, ingredientName)
	}

	user.RemoveGrocery(ingredientName)
	return s.repo.UpdateUser(ctx, user)
}

func (s *shoppingService) ClearGroceryList(ctx context.Context, user *model.User) error {
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	user.ClearGroceryList()
	return s.repo.UpdateUser(ctx, user)
}

// RemoveRecipe takes a saved recipe off the shopping list: the recipe is
// unsaved and its ingredient selection dropped.
func (s *shoppingService) RemoveRecipe(ctx context.Context, user *model.User, recipeName string) error {
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	recipe, err := s.repo.FindRecipeByName(ctx, recipeName)
	if err != nil {
		return err
	}
	if has, err := s.repo.HasSavedRecipe(ctx, recipe.ID, user); err != nil {
		return err
	} else if !has {
		return fmt.Errorf("%w: recipe %q is not saved", apperrors.ErrNotFound, recipeName)
	}

	if err := s.repo.RemoveSavedRecipe(ctx, recipe.ID, user); err != nil {
		return err
	}
	if err := s.repo.ClearUserRecipeIngredients(ctx, user, recipe.Name); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, user)
}

// ExportText renders the shopping list as plain text: the general grocery
// list first, then one section per saved recipe with its selected entries.
func (s *shoppingService) ExportText(ctx context.Context, user *model.User) (string, error) {
	if user == nil {
		return "", apperrors.ErrUserNotFound
	}

	var b strings.Builder
	b.WriteString("General Grocery List:\n\n")
	for _, item := range user.GroceryList {
		fmt.Fprintf(&b, "    - %s: %s %s\n", item.Name, item.Quantity.String(), item.Unit)
	}

	ids, err := s.repo.SavedRecipes(ctx, user)
	if err != nil {
		return "", err
	}
	all, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return "", err
	}
	byID := make(map[int]*model.Recipe, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	for _, id := range ids {
		recipe, ok := byID[id]
		if !ok {
			continue
		}
		entries, err := s.repo.UserRecipeIngredients(ctx, user, recipe.Name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n\n%s:\n\n", recipe.Name)
		for _, e := range entries {
			fmt.Fprintf(&b, "    - %s: %s %s\n", e.Name, e.QuantityDisplay(), e.Unit)
		}
	}

	return b.String(), nil
}
