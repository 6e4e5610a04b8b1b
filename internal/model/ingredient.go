package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"pantry/internal/errors"
)

// Default UI quantity bounds applied when a seed row or caller leaves them unset.
const (
	DefaultRangeMin = 1
	DefaultRangeMax = 100
	DefaultStep     = 1
)

// Ingredient is an inventory ingredient. Quantity is a decimal so stored
// amounts round-trip without float formatting drift ("900" stays "900").
type Ingredient struct {
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Categories []Category      `json:"categories"`
	RangeMin   int             `json:"range_min"`
	RangeMax   int             `json:"range_max"`
	Step       int             `json:"step"`
}

// NewIngredient creates an ingredient with default UI range bounds.
func NewIngredient(name string, quantity decimal.Decimal, unit string, categories []Category) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidArgument
	}
	return &Ingredient{
		Name:       name,
		Quantity:   quantity,
		Unit:       strings.TrimSpace(unit),
		Categories: categories,
		RangeMin:   DefaultRangeMin,
		RangeMax:   DefaultRangeMax,
		Step:       DefaultStep,
	}, nil
}

// Equal reports full ingredient equality: name, quantity, unit and categories.
func (i *Ingredient) Equal(other *Ingredient) bool {
	if other == nil {
		return false
	}
	return i.Name == other.Name &&
		i.Quantity.Equal(other.Quantity) &&
		i.Unit == other.Unit &&
		CategoriesEqual(i.Categories, other.Categories)
}

// SameItem reports whether two ingredients refer to the same pantry item,
// ignoring the current quantity. Grocery-list deduplication uses this so that
// re-adding an item accumulates its quantity instead of duplicating the entry.
func (i *Ingredient) SameItem(other *Ingredient) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(i.Name, other.Name)
}

// Clone returns a copy that shares no mutable state with the receiver.
func (i *Ingredient) Clone() *Ingredient {
	out := *i
	out.Categories = append([]Category(nil), i.Categories...)
	return &out
}

// SortIngredientsByName orders ingredients by name, in place.
func SortIngredientsByName(items []*Ingredient) {
	sort.Slice(items, func(a, b int) bool { return items[a].Name < items[b].Name })
}
