package model

import (
	"strings"

	"pantry/internal/errors"
)

// Category groups inventory ingredients. Identity and equality are by name,
// case-sensitive. Categories are immutable after construction.
type Category struct {
	Name string `json:"name"`
}

// NewCategory creates a category with a non-empty, trimmed name.
func NewCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, errors.ErrInvalidArgument
	}
	return Category{Name: name}, nil
}

// Equal reports whether two categories are the same category.
func (c Category) Equal(other Category) bool {
	return c.Name == other.Name
}

// CategoriesEqual compares two category slices element-wise.
func CategoriesEqual(a, b []Category) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
