package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/db"
	"pantry/internal/errors"
	"pantry/internal/model"
)

// newBackends builds one of each backend so every contract test runs against
// both: observable behavior must not depend on the storage choice.
func newBackends(t *testing.T) map[string]Repository {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	dbRepo := NewDatabaseRepository(gormDB)
	require.NoError(t, dbRepo.AutoMigrate())

	return map[string]Repository{
		"memory":   NewMemoryRepository(),
		"database": dbRepo,
	}
}

func mustIngredient(t *testing.T, name string, unit string, categories ...string) *model.Ingredient {
	t.Helper()
	cats := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		cat, err := model.NewCategory(c)
		require.NoError(t, err)
		cats = append(cats, cat)
	}
	ing, err := model.NewIngredient(name, decimal.Zero, unit, cats)
	require.NoError(t, err)
	return ing
}

func TestRepository_Ingredients(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.AddIngredients(ctx, []*model.Ingredient{
				mustIngredient(t, "Carrot", "g", "Vegetables"),
				mustIngredient(t, "Butter", "g", "Dairy"),
				mustIngredient(t, "Apple", "pcs", "Fruit"),
			}))

			// Exact-name lookup is case-sensitive.
			got, err := repo.FindIngredientByName(ctx, "Carrot")
			require.NoError(t, err)
			assert.Equal(t, "Carrot", got.Name)
			assert.Equal(t, "g", got.Unit)

			_, err = repo.FindIngredientByName(ctx, "carrot")
			assert.ErrorIs(t, err, errors.ErrIngredientNotFound)

			// Listing sorts by name.
			all, err := repo.ListIngredients(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "Apple", all[0].Name)
			assert.Equal(t, "Butter", all[1].Name)
			assert.Equal(t, "Carrot", all[2].Name)

			// Substring search folds case.
			found, err := repo.SearchIngredientsByName(ctx, "CAR")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "Carrot", found[0].Name)

			// Category filter folds case on the whole name.
			byCat, err := repo.FindIngredientsByCategory(ctx, "vegetables")
			require.NoError(t, err)
			require.Len(t, byCat, 1)
			assert.Equal(t, "Carrot", byCat[0].Name)

			byCatSearch, err := repo.SearchIngredientsByCategory(ctx, "ai")
			require.NoError(t, err)
			require.Len(t, byCatSearch, 1)
			assert.Equal(t, "Butter", byCatSearch[0].Name)
		})
	}
}

func TestRepository_Categories(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			veg, err := model.NewCategory("Vegetables")
			require.NoError(t, err)
			dairy, err := model.NewCategory("Dairy")
			require.NoError(t, err)
			require.NoError(t, repo.AddCategories(ctx, []model.Category{veg, dairy}))

			got, err := repo.FindCategoryByName(ctx, "vegetables")
			require.NoError(t, err)
			assert.Equal(t, "Vegetables", got.Name)

			_, err = repo.FindCategoryByName(ctx, "Grains")
			assert.ErrorIs(t, err, errors.ErrNotFound)

			grains, err := model.NewCategory("Grains")
			require.NoError(t, err)
			require.NoError(t, repo.AddCategory(ctx, grains))
			got, err = repo.FindCategoryByName(ctx, "grains")
			require.NoError(t, err)
			assert.Equal(t, "Grains", got.Name)

			all, err := repo.ListCategories(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestRepository_CreateUser(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, "kate", user.Username)
			assert.Empty(t, user.GroceryList)
			assert.Empty(t, user.SavedRecipes)

			// Username and email are unique ignoring case.
			_, err = repo.CreateUser(ctx, "KATE", "other@example.com", "hash")
			assert.ErrorIs(t, err, errors.ErrDuplicateKey)
			_, err = repo.CreateUser(ctx, "other", "Kate@Example.com", "hash")
			assert.ErrorIs(t, err, errors.ErrDuplicateKey)

			count, err := repo.CountUsers(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			// Lookup folds case.
			byName, err := repo.FindUserByUsername(ctx, "Kate")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)
			byEmail, err := repo.FindUserByEmail(ctx, "KATE@EXAMPLE.COM")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)

			_, err = repo.FindUserByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, errors.ErrUserNotFound)
		})
	}
}

func TestRepository_AddUser_PreservesID(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			imported, err := model.NewUser(42, "imported", "imported@example.com", "hash")
			require.NoError(t, err)
			require.NoError(t, repo.AddUser(ctx, imported))

			all, err := repo.ListUsers(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, 42, all[0].ID)

			got, err := repo.FindUserByUsername(ctx, "Imported")
			require.NoError(t, err)
			assert.Equal(t, 42, got.ID)
		})
	}
}

func TestRepository_UpdateUser_Missing(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ghost, err := model.NewUser(999, "ghost", "ghost@example.com", "hash")
			require.NoError(t, err)
			err = repo.UpdateUser(context.Background(), ghost)
			assert.ErrorIs(t, err, errors.ErrUserNotFound)
		})
	}
}

func TestRepository_UserRoundTrip(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.AddIngredient(ctx, mustIngredient(t, "Carrot", "g", "Vegetables")))

			user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
			require.NoError(t, err)

			carrot, err := repo.FindIngredientByName(ctx, "Carrot")
			require.NoError(t, err)
			user.AddGrocery(carrot, decimal.NewFromInt(200))
			user.AddGrocery(carrot, decimal.NewFromInt(300))
			user.SaveRecipe(7)
			require.NoError(t, repo.UpdateUser(ctx, user))

			// A fresh lookup reproduces the same state, quantities included.
			fresh, err := repo.FindUserByUsername(ctx, "kate")
			require.NoError(t, err)
			require.Len(t, fresh.GroceryList, 1)
			assert.Equal(t, "Carrot", fresh.GroceryList[0].Name)
			assert.Equal(t, "500", fresh.GroceryList[0].Quantity.String())
			assert.Equal(t, "g", fresh.GroceryList[0].Unit)
			assert.Equal(t, []int{7}, fresh.SavedRecipes)
		})
	}
}

func TestRepository_SavedRecipes(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
			require.NoError(t, err)

			has, err := repo.HasSavedRecipe(ctx, 7, user)
			require.NoError(t, err)
			assert.False(t, has)

			require.NoError(t, repo.AddSavedRecipe(ctx, 7, user))
			require.NoError(t, repo.AddSavedRecipe(ctx, 7, user)) // idempotent
			require.NoError(t, repo.AddSavedRecipe(ctx, 9, user))

			ids, err := repo.SavedRecipes(ctx, user)
			require.NoError(t, err)
			assert.ElementsMatch(t, []int{7, 9}, ids)

			// The caller's user object stays in sync.
			assert.True(t, user.HasSavedRecipe(7))

			require.NoError(t, repo.RemoveSavedRecipe(ctx, 7, user))
			require.NoError(t, repo.RemoveSavedRecipe(ctx, 7, user)) // no-op
			ids, err = repo.SavedRecipes(ctx, user)
			require.NoError(t, err)
			assert.Equal(t, []int{9}, ids)
			assert.False(t, user.HasSavedRecipe(7))
		})
	}
}

func TestRepository_UserRecipeIngredients(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
			require.NoError(t, err)

			// Every raw representation lands as the same canonical triple.
			require.NoError(t, repo.AddUserRecipeIngredient(ctx, user, "Pancakes", "1;;cup;;flour"))
			require.NoError(t, repo.AddUserRecipeIngredient(ctx, user, "pancakes", []string{"eggs", "2", ""}))

			entries, err := repo.UserRecipeIngredients(ctx, user, "PANCAKES")
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "flour", entries[0].Name)
			assert.Equal(t, "1", entries[0].QuantityDisplay())
			assert.Equal(t, "cup", entries[0].Unit)
			assert.Equal(t, "eggs", entries[1].Name)
			assert.Equal(t, "2", entries[1].QuantityDisplay())

			// Same display name never duplicates.
			require.NoError(t, repo.AddUserRecipeIngredient(ctx, user, "Pancakes", "3;;cups;;FLOUR"))
			entries, err = repo.UserRecipeIngredients(ctx, user, "Pancakes")
			require.NoError(t, err)
			assert.Len(t, entries, 2)

			// A malformed entry is rejected before anything is stored.
			err = repo.AddUserRecipeIngredient(ctx, user, "Pancakes", ";; ;;")
			assert.ErrorIs(t, err, errors.ErrInvalidArgument)

			require.NoError(t, repo.RemoveUserRecipeIngredient(ctx, user, "pancakes", "FLOUR"))
			entries, err = repo.UserRecipeIngredients(ctx, user, "Pancakes")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "eggs", entries[0].Name)

			require.NoError(t, repo.ClearUserRecipeIngredients(ctx, user, "Pancakes"))
			entries, err = repo.UserRecipeIngredients(ctx, user, "Pancakes")
			require.NoError(t, err)
			assert.Empty(t, entries)

			// Bulk remove and the delete alias behave like their singular forms.
			require.NoError(t, repo.AddUserRecipeIngredientList(ctx, user, "Waffles", []interface{}{
				"1;;cup;;flour",
				"2;;;;eggs",
				"1;;tsp;;sugar",
			}))
			require.NoError(t, repo.RemoveUserRecipeIngredientList(ctx, user, "waffles", []string{"flour", "sugar"}))
			entries, err = repo.UserRecipeIngredients(ctx, user, "Waffles")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "eggs", entries[0].Name)

			require.NoError(t, repo.DeleteUserRecipeIngredients(ctx, user, "Waffles"))
			entries, err = repo.UserRecipeIngredients(ctx, user, "Waffles")
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRepository_UserRecipeIngredients_PersistAcrossLookups(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, err := repo.CreateUser(ctx, "kate", "kate@example.com", "hash")
			require.NoError(t, err)

			require.NoError(t, repo.AddUserRecipeIngredientList(ctx, user, "Soup", []interface{}{
				"1;;l;;stock",
				"2;;;;carrots",
			}))

			fresh, err := repo.FindUserByUsername(ctx, "kate")
			require.NoError(t, err)
			entries := fresh.RecipeIngredientsFor("soup")
			require.Len(t, entries, 2)
			assert.Equal(t, "stock", entries[0].Name)
			assert.Equal(t, "carrots", entries[1].Name)
		})
	}
}

func TestRepository_Recipes(t *testing.T) {
	for name, repo := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			pancakes := mustRecipe(t, 1, "Pancakes", "Breakfast", "1;;cup;;flour", "2;;;;eggs")
			soup := mustRecipe(t, 2, "Carrot Soup", "Dinner", "2;;;;carrots")
			require.NoError(t, repo.AddRecipes(ctx, []*model.Recipe{pancakes, soup}))

			// Lookup folds case.
			got, err := repo.FindRecipeByName(ctx, "pancakes")
			require.NoError(t, err)
			assert.Equal(t, 1, got.ID)
			require.Len(t, got.Ingredients, 2)
			assert.Equal(t, "flour", got.Ingredients[0].Name)
			assert.Equal(t, "1", got.Ingredients[0].QuantityDisplay())
			assert.Equal(t, "eggs", got.Ingredients[1].Name)

			_, err = repo.FindRecipeByName(ctx, "Waffles")
			assert.ErrorIs(t, err, errors.ErrRecipeNotFound)

			all, err := repo.ListRecipes(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Carrot Soup", all[0].Name)
			assert.Equal(t, "Pancakes", all[1].Name)

			byName, err := repo.SearchRecipesByName(ctx, "carrot")
			require.NoError(t, err)
			require.Len(t, byName, 1)
			assert.Equal(t, "Carrot Soup", byName[0].Name)

			byCat, err := repo.FindRecipesByCategory(ctx, "breakfast")
			require.NoError(t, err)
			require.Len(t, byCat, 1)
			assert.Equal(t, "Pancakes", byCat[0].Name)

			catSearch, err := repo.SearchRecipesByCategory(ctx, "inn")
			require.NoError(t, err)
			require.Len(t, catSearch, 1)
			assert.Equal(t, "Carrot Soup", catSearch[0].Name)
		})
	}
}

func mustRecipe(t *testing.T, id int, name, category string, rawEntries ...string) *model.Recipe {
	t.Helper()
	entries := make([]model.IngredientEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		e, err := model.NormalizeEntryString(raw)
		require.NoError(t, err)
		entries = append(entries, e)
	}
	recipe, err := model.NewRecipe(id, name, "", entries, nil, 10, 20, 30, "easy", category, "", nil, "", "")
	require.NoError(t, err)
	return recipe
}
