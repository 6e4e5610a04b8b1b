package model

import (
	"sort"
	"strings"

	"pantry/internal/errors"
)

// Recipe is a browsable recipe. Identity and equality are by (id, name) and a
// recipe never changes after construction; a new write replaces the whole
// aggregate. Ingredients hold canonical triples produced by the entry
// normalizer.
type Recipe struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Ingredients   []IngredientEntry `json:"ingredients"`
	Methods       []string          `json:"methods"`
	PrepTimeMins  int               `json:"prep_time_mins"`
	CookTimeMins  int               `json:"cook_time_mins"`
	TotalTimeMins int               `json:"total_time_mins"`
	Difficulty    string            `json:"difficulty"`
	Category      string            `json:"category"`
	Cuisine       string            `json:"cuisine"`
	Tags          []string          `json:"tags"`
	Notes         string            `json:"notes"`
	ImageURL      string            `json:"image_url"`
}

// NewRecipe validates and constructs a recipe.
func NewRecipe(id int, name string, description string, ingredients []IngredientEntry, methods []string,
	prepTimeMins, cookTimeMins, totalTimeMins int, difficulty, category, cuisine string,
	tags []string, notes, imageURL string) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidArgument
	}
	return &Recipe{
		ID:            id,
		Name:          name,
		Description:   description,
		Ingredients:   ingredients,
		Methods:       methods,
		PrepTimeMins:  prepTimeMins,
		CookTimeMins:  cookTimeMins,
		TotalTimeMins: totalTimeMins,
		Difficulty:    difficulty,
		Category:      category,
		Cuisine:       cuisine,
		Tags:          tags,
		Notes:         notes,
		ImageURL:      imageURL,
	}, nil
}

// Equal reports recipe identity equality.
func (r *Recipe) Equal(other *Recipe) bool {
	if other == nil {
		return false
	}
	return r.ID == other.ID && r.Name == other.Name
}

// SortRecipesByName orders recipes by name, in place.
func SortRecipesByName(items []*Recipe) {
	sort.Slice(items, func(a, b int) bool { return items[a].Name < items[b].Name })
}
