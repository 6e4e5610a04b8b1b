package repository

import (
	"context"
	"strings"

	"pantry/internal/errors"
	"pantry/internal/model"
)

// MemoryRepository is the collection-backed reference implementation of
// Repository. It holds live domain objects for the life of the process and
// mutates caller-supplied users in place. It carries no locking and assumes
// serialized access: single-worker deployments and tests only.
type MemoryRepository struct {
	ingredients []*model.Ingredient
	categories  []model.Category
	users       []*model.User
	recipes     []*model.Recipe
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) AddIngredient(ctx context.Context, ing *model.Ingredient) error {
	r.ingredients = append(r.ingredients, ing)
	return nil
}

func (r *MemoryRepository) AddIngredients(ctx context.Context, ings []*model.Ingredient) error {
	r.ingredients = append(r.ingredients, ings...)
	return nil
}

func (r *MemoryRepository) FindIngredientByName(ctx context.Context, name string) (*model.Ingredient, error) {
	for _, ing := range r.ingredients {
		if ing.Name == name {
			return ing, nil
		}
	}
	return nil, errors.ErrIngredientNotFound
}

func (r *MemoryRepository) FindIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error) {
	var out []*model.Ingredient
	for _, ing := range r.ingredients {
		for _, cat := range ing.Categories {
			if strings.EqualFold(cat.Name, category) {
				out = append(out, ing)
				break
			}
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListIngredients(ctx context.Context) ([]*model.Ingredient, error) {
	out := append([]*model.Ingredient(nil), r.ingredients...)
	model.SortIngredientsByName(out)
	return out, nil
}

func (r *MemoryRepository) SearchIngredientsByName(ctx context.Context, name string) ([]*model.Ingredient, error) {
	needle := strings.ToLower(name)
	var out []*model.Ingredient
	for _, ing := range r.ingredients {
		if strings.Contains(strings.ToLower(ing.Name), needle) {
			out = append(out, ing)
		}
	}
	model.SortIngredientsByName(out)
	return out, nil
}

func (r *MemoryRepository) SearchIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error) {
	needle := strings.ToLower(category)
	var out []*model.Ingredient
	for _, ing := range r.ingredients {
		for _, cat := range ing.Categories {
			if strings.Contains(strings.ToLower(cat.Name), needle) {
				out = append(out, ing)
				break
			}
		}
	}
	model.SortIngredientsByName(out)
	return out, nil
}

func (r *MemoryRepository) AddCategory(ctx context.Context, category model.Category) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *MemoryRepository) AddCategories(ctx context.Context, categories []model.Category) error {
	r.categories = append(r.categories, categories...)
	return nil
}

func (r *MemoryRepository) FindCategoryByName(ctx context.Context, name string) (model.Category, error) {
	for _, cat := range r.categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}
	return model.Category{}, errors.ErrNotFound
}

func (r *MemoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	return append([]model.Category(nil), r.categories...), nil
}

func (r *MemoryRepository) AddUser(ctx context.Context, user *model.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *MemoryRepository) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *MemoryRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *MemoryRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	return append([]*model.User(nil), r.users...), nil
}

func (r *MemoryRepository) CountUsers(ctx context.Context) (int, error) {
	return len(r.users), nil
}

func (r *MemoryRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	if _, err := r.FindUserByUsername(ctx, username); err == nil {
		return nil, errors.ErrDuplicateKey
	}
	if _, err := r.FindUserByEmail(ctx, email); err == nil {
		return nil, errors.ErrDuplicateKey
	}
	nextID := 1
	for _, u := range r.users {
		if u.ID >= nextID {
			nextID = u.ID + 1
		}
	}
	user, err := model.NewUser(nextID, username, email, passwordHash)
	if err != nil {
		return nil, err
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *MemoryRepository) UpdateUser(ctx context.Context, user *model.User) error {
	for idx, existing := range r.users {
		if existing.ID == user.ID {
			r.users[idx] = user
			return nil
		}
	}
	return errors.ErrUserNotFound
}

func (r *MemoryRepository) SavedRecipes(ctx context.Context, user *model.User) ([]int, error) {
	if user == nil {
		return nil, nil
	}
	return append([]int(nil), user.SavedRecipes...), nil
}

func (r *MemoryRepository) HasSavedRecipe(ctx context.Context, recipeID int, user *model.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	return user.HasSavedRecipe(recipeID), nil
}

func (r *MemoryRepository) AddSavedRecipe(ctx context.Context, recipeID int, user *model.User) error {
	if user == nil {
		return errors.ErrUserNotFound
	}
	user.SaveRecipe(recipeID)
	return nil
}

func (r *MemoryRepository) RemoveSavedRecipe(ctx context.Context, recipeID int, user *model.User) error {
	if user == nil {
		return nil
	}
	user.RemoveSavedRecipe(recipeID)
	return nil
}

func (r *MemoryRepository) UserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) ([]model.IngredientEntry, error) {
	if user == nil {
		return nil, nil
	}
	return user.RecipeIngredientsFor(recipeName), nil
}

func (r *MemoryRepository) AddUserRecipeIngredient(ctx context.Context, user *model.User, recipeName string, entry interface{}) error {
	if user == nil {
		return errors.ErrUserNotFound
	}
	normalized, err := model.NormalizeEntry(entry)
	if err != nil {
		return err
	}
	user.AddRecipeIngredient(recipeName, normalized)
	return nil
}

func (r *MemoryRepository) RemoveUserRecipeIngredient(ctx context.Context, user *model.User, recipeName, ingredientName string) error {
	if user == nil {
		return nil
	}
	user.RemoveRecipeIngredient(recipeName, ingredientName)
	return nil
}

func (r *MemoryRepository) AddUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, entries []interface{}) error {
	for _, e := range entries {
		if err := r.AddUserRecipeIngredient(ctx, user, recipeName, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) RemoveUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, ingredientNames []string) error {
	for _, n := range ingredientNames {
		if err := r.RemoveUserRecipeIngredient(ctx, user, recipeName, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) ClearUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error {
	if user == nil {
		return nil
	}
	user.ClearRecipeIngredients(recipeName)
	return nil
}

func (r *MemoryRepository) DeleteUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error {
	return r.ClearUserRecipeIngredients(ctx, user, recipeName)
}

func (r *MemoryRepository) AddRecipe(ctx context.Context, recipe *model.Recipe) error {
	r.recipes = append(r.recipes, recipe)
	return nil
}

func (r *MemoryRepository) AddRecipes(ctx context.Context, recipes []*model.Recipe) error {
	r.recipes = append(r.recipes, recipes...)
	return nil
}

func (r *MemoryRepository) FindRecipeByName(ctx context.Context, name string) (*model.Recipe, error) {
	for _, rec := range r.recipes {
		if strings.EqualFold(rec.Name, name) {
			return rec, nil
		}
	}
	return nil, errors.ErrRecipeNotFound
}

func (r *MemoryRepository) FindRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	var out []*model.Recipe
	for _, rec := range r.recipes {
		if strings.EqualFold(rec.Category, category) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	out := append([]*model.Recipe(nil), r.recipes...)
	model.SortRecipesByName(out)
	return out, nil
}

func (r *MemoryRepository) SearchRecipesByName(ctx context.Context, name string) ([]*model.Recipe, error) {
	needle := strings.ToLower(name)
	var out []*model.Recipe
	for _, rec := range r.recipes {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			out = append(out, rec)
		}
	}
	model.SortRecipesByName(out)
	return out, nil
}

func (r *MemoryRepository) SearchRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	needle := strings.ToLower(category)
	var out []*model.Recipe
	for _, rec := range r.recipes {
		if strings.Contains(strings.ToLower(rec.Category), needle) {
			out = append(out, rec)
		}
	}
	model.SortRecipesByName(out)
	return out, nil
}
