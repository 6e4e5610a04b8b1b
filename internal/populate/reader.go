package populate

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pantry/internal/model"
)

// ReadIngredients parses the seed CSV. Expected header:
// ingredient,categories,unit,range_min,range_max,step — with categories
// separated by ";". Returns the distinct categories alongside the ingredients.
func ReadIngredients(path string) ([]model.Category, []*model.Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read seed file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	var categories []model.Category
	seen := map[string]bool{}
	var ingredients []*model.Ingredient

	for _, record := range records[1:] {
		name := strings.TrimSpace(record[col["ingredient"]])
		unit := strings.TrimSpace(record[col["unit"]])

		var cats []model.Category
		for _, raw := range strings.Split(record[col["categories"]], ";") {
			cat, err := model.NewCategory(raw)
			if err != nil {
				continue
			}
			cats = append(cats, cat)
			if !seen[cat.Name] {
				seen[cat.Name] = true
				categories = append(categories, cat)
			}
		}

		ing, err := model.NewIngredient(name, decimal.Zero, unit, cats)
		if err != nil {
			return nil, nil, fmt.Errorf("seed row %q: %w", name, err)
		}
		ing.RangeMin = atoiOr(record[col["range_min"]], model.DefaultRangeMin)
		ing.RangeMax = atoiOr(record[col["range_max"]], model.DefaultRangeMax)
		ing.Step = atoiOr(record[col["step"]], model.DefaultStep)
		ingredients = append(ingredients, ing)
	}
	return categories, ingredients, nil
}

// seedRecipe mirrors the recipes.json layout. Ingredient entries are part
// lists handed to the normalizer as-is.
type seedRecipe struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  [][]string `json:"ingredients"`
	Methods      []string   `json:"methods"`
	PrepTimeMins int        `json:"prep_time_mins"`
	CookTimeMins int        `json:"cook_time_mins"`
	Difficulty   string     `json:"difficulty"`
	Category     string     `json:"category"`
	Cuisine      string     `json:"cuisine"`
	Tags         []string   `json:"tags"`
	Notes        string     `json:"notes"`
	ImageURL     string     `json:"image_url"`
}

// ReadRecipes parses the optional recipes seed file.
func ReadRecipes(path string) ([]*model.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open recipes file: %w", err)
	}
	var seeds []seedRecipe
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse recipes file: %w", err)
	}

	recipes := make([]*model.Recipe, 0, len(seeds))
	for _, s := range seeds {
		entries := make([]model.IngredientEntry, 0, len(s.Ingredients))
		for _, parts := range s.Ingredients {
			entry, err := model.NormalizeEntryParts(parts)
			if err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		rec, err := model.NewRecipe(s.ID, s.Name, s.Description, entries, s.Methods,
			s.PrepTimeMins, s.CookTimeMins, s.PrepTimeMins+s.CookTimeMins,
			s.Difficulty, s.Category, s.Cuisine, s.Tags, s.Notes, s.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("seed recipe %q: %w", s.Name, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

func atoiOr(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}
