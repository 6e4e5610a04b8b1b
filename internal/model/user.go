package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"pantry/internal/errors"
)

// User is a registered account together with its mutable per-user state:
// the grocery list, saved recipe ids, and per-recipe ingredient selections.
//
// RecipeIngredients keys are recipe names. Lookups fold case but the map keeps
// the first-seen casing of each key. Entries within one recipe's list are
// deduplicated by display name only.
type User struct {
	ID                int                          `json:"id"`
	Username          string                       `json:"username"`
	Email             string                       `json:"email"`
	PasswordHash      string                       `json:"-"`
	Admin             bool                         `json:"admin"`
	GroceryList       []*Ingredient                `json:"grocery_list"`
	RecipeIngredients map[string][]IngredientEntry `json:"recipe_ingredients"`
	SavedRecipes      []int                        `json:"saved_recipes"`
}

// NewUser creates a user with empty sub-collections.
func NewUser(id int, username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.ErrInvalidArgument
	}
	return &User{
		ID:                id,
		Username:          username,
		Email:             strings.TrimSpace(email),
		PasswordHash:      passwordHash,
		GroceryList:       []*Ingredient{},
		RecipeIngredients: map[string][]IngredientEntry{},
		SavedRecipes:      []int{},
	}, nil
}

// AddGrocery puts an ingredient on the grocery list with the given quantity.
// Re-adding an item the list already holds accumulates its quantity instead
// of appending a duplicate. The stored ingredient is a copy, so backends never
// alias caller-owned objects.
func (u *User) AddGrocery(item *Ingredient, quantity decimal.Decimal) {
	for _, existing := range u.GroceryList {
		if existing.SameItem(item) {
			existing.Quantity = existing.Quantity.Add(quantity)
			return
		}
	}
	added := item.Clone()
	added.Quantity = quantity
	u.GroceryList = append(u.GroceryList, added)
}

// RemoveGrocery drops an item from the grocery list by name.
func (u *User) RemoveGrocery(name string) {
	kept := u.GroceryList[:0]
	for _, existing := range u.GroceryList {
		if !strings.EqualFold(existing.Name, name) {
			kept = append(kept, existing)
		}
	}
	u.GroceryList = kept
}

// ClearGroceryList empties the grocery list.
func (u *User) ClearGroceryList() {
	u.GroceryList = []*Ingredient{}
}

// SaveRecipe records a saved recipe id. Idempotent.
func (u *User) SaveRecipe(recipeID int) {
	if u.HasSavedRecipe(recipeID) {
		return
	}
	u.SavedRecipes = append(u.SavedRecipes, recipeID)
}

// RemoveSavedRecipe drops a saved recipe id, if present.
func (u *User) RemoveSavedRecipe(recipeID int) {
	kept := u.SavedRecipes[:0]
	for _, id := range u.SavedRecipes {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	u.SavedRecipes = kept
}

// HasSavedRecipe reports whether the recipe id is saved.
func (u *User) HasSavedRecipe(recipeID int) bool {
	for _, id := range u.SavedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// recipeKey resolves the stored map key for a recipe name, folding case.
func (u *User) recipeKey(recipeName string) (string, bool) {
	for k := range u.RecipeIngredients {
		if strings.EqualFold(k, recipeName) {
			return k, true
		}
	}
	return "", false
}

// RecipeIngredientsFor returns the entries selected for a recipe, matching the
// recipe name case-insensitively.
func (u *User) RecipeIngredientsFor(recipeName string) []IngredientEntry {
	if k, ok := u.recipeKey(recipeName); ok {
		return u.RecipeIngredients[k]
	}
	return nil
}

// AddRecipeIngredient adds one canonical entry under a recipe name. The first
// add for a recipe fixes the stored casing of its key; entries already present
// under the same display name are not duplicated.
func (u *User) AddRecipeIngredient(recipeName string, entry IngredientEntry) {
	if u.RecipeIngredients == nil {
		u.RecipeIngredients = map[string][]IngredientEntry{}
	}
	key, ok := u.recipeKey(recipeName)
	if !ok {
		key = recipeName
	}
	for _, existing := range u.RecipeIngredients[key] {
		if existing.SameName(entry) {
			return
		}
	}
	u.RecipeIngredients[key] = append(u.RecipeIngredients[key], entry)
}

// AddRecipeIngredientList adds multiple entries under a recipe name.
func (u *User) AddRecipeIngredientList(recipeName string, entries []IngredientEntry) {
	for _, e := range entries {
		u.AddRecipeIngredient(recipeName, e)
	}
}

// RemoveRecipeIngredient removes entries matching the ingredient name,
// case-insensitively. A recipe key left without entries is dropped.
func (u *User) RemoveRecipeIngredient(recipeName, ingredientName string) {
	key, ok := u.recipeKey(recipeName)
	if !ok {
		return
	}
	kept := u.RecipeIngredients[key][:0]
	for _, e := range u.RecipeIngredients[key] {
		if !strings.EqualFold(e.Name, ingredientName) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(u.RecipeIngredients, key)
		return
	}
	u.RecipeIngredients[key] = kept
}

// RemoveRecipeIngredientList removes multiple entries by ingredient name.
func (u *User) RemoveRecipeIngredientList(recipeName string, ingredientNames []string) {
	for _, n := range ingredientNames {
		u.RemoveRecipeIngredient(recipeName, n)
	}
}

// ClearRecipeIngredients drops all entries for one recipe.
func (u *User) ClearRecipeIngredients(recipeName string) {
	if key, ok := u.recipeKey(recipeName); ok {
		delete(u.RecipeIngredients, key)
	}
}

// ClearAllRecipeIngredients drops every per-recipe selection.
func (u *User) ClearAllRecipeIngredients() {
	u.RecipeIngredients = map[string][]IngredientEntry{}
}
