// Package populate seeds a repository from source data on first run.
package populate

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"pantry/internal/repository"
)

const (
	ingredientsFile = "ingredients.csv"
	recipesFile     = "recipes.json"
)

// Populate bulk-loads seed data through the repository's add-multiple
// operations, in the order categories, ingredients, recipes. The recipes file
// is optional.
func Populate(ctx context.Context, repo repository.Repository, seedDir string) error {
	categories, ingredients, err := ReadIngredients(filepath.Join(seedDir, ingredientsFile))
	if err != nil {
		return err
	}

	log.Println("populating categories...")
	if err := repo.AddCategories(ctx, categories); err != nil {
		return err
	}
	log.Println("populating ingredients...")
	if err := repo.AddIngredients(ctx, ingredients); err != nil {
		return err
	}

	recipesPath := filepath.Join(seedDir, recipesFile)
	if _, err := os.Stat(recipesPath); os.IsNotExist(err) {
		log.Printf("no recipes seed at %s, skipping", recipesPath)
		return nil
	}
	recipes, err := ReadRecipes(recipesPath)
	if err != nil {
		return err
	}
	log.Println("populating recipes...")
	return repo.AddRecipes(ctx, recipes)
}
