package populate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/repository"
)

const ingredientsCSV = `ingredient,categories,unit,range_min,range_max,step
Carrot,Vegetables,g,1,1000,50
Flour,Baking;Pantry,g,100,2000,100
Salt,Pantry,tsp,,,
`

const recipesJSON = `[
  {
    "id": 1,
    "name": "Pancakes",
    "description": "Fluffy pancakes",
    "ingredients": [["1", "cup", "flour"], ["2", "", "eggs"], ["", "", ""]],
    "methods": ["mix", "fry"],
    "prep_time_mins": 10,
    "cook_time_mins": 15,
    "difficulty": "easy",
    "category": "Breakfast",
    "tags": ["quick"]
  }
]`

func writeSeedDir(t *testing.T, withRecipes bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ingredients.csv"), []byte(ingredientsCSV), 0o644))
	if withRecipes {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.json"), []byte(recipesJSON), 0o644))
	}
	return dir
}

func TestReadIngredients(t *testing.T) {
	dir := writeSeedDir(t, false)

	categories, ingredients, err := ReadIngredients(filepath.Join(dir, "ingredients.csv"))
	require.NoError(t, err)

	// Categories are distinct across rows.
	catNames := make([]string, 0, len(categories))
	for _, c := range categories {
		catNames = append(catNames, c.Name)
	}
	assert.Equal(t, []string{"Vegetables", "Baking", "Pantry"}, catNames)

	require.Len(t, ingredients, 3)
	assert.Equal(t, "Carrot", ingredients[0].Name)
	assert.Equal(t, "g", ingredients[0].Unit)
	assert.Equal(t, 1000, ingredients[0].RangeMax)
	assert.Equal(t, 50, ingredients[0].Step)

	require.Len(t, ingredients[1].Categories, 2)

	// Blank bounds fall back to defaults.
	assert.Equal(t, 1, ingredients[2].RangeMin)
	assert.Equal(t, 100, ingredients[2].RangeMax)
	assert.Equal(t, 1, ingredients[2].Step)
}

func TestReadRecipes(t *testing.T) {
	dir := writeSeedDir(t, true)

	recipes, err := ReadRecipes(filepath.Join(dir, "recipes.json"))
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Pancakes", r.Name)
	assert.Equal(t, 25, r.TotalTimeMins)

	// The unusable all-empty entry is dropped, the rest normalized.
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "flour", r.Ingredients[0].Name)
	assert.Equal(t, "1", r.Ingredients[0].QuantityDisplay())
	assert.Equal(t, "cup", r.Ingredients[0].Unit)
	assert.Equal(t, "eggs", r.Ingredients[1].Name)
}

func TestPopulate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	require.NoError(t, Populate(ctx, repo, writeSeedDir(t, true)))

	ingredients, err := repo.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, ingredients, 3)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	recipes, err := repo.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0].Name)
}

func TestPopulate_RecipesOptional(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	require.NoError(t, Populate(ctx, repo, writeSeedDir(t, false)))

	recipes, err := repo.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
