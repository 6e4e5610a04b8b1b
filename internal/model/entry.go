package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"pantry/internal/errors"
)

// EntryDelimiter separates the parts of a wire-format ingredient entry string,
// e.g. "1;;cup;;flour".
const EntryDelimiter = ";;"

// IngredientEntry is the canonical (quantity, unit, name) triple every
// ingredient-usage representation normalizes to. A missing quantity stays
// missing: it is never coerced to zero.
type IngredientEntry struct {
	Quantity decimal.NullDecimal `json:"quantity"`
	Unit     string              `json:"unit"`
	Name     string              `json:"name"`
}

// QuantityDisplay renders the quantity for display, empty when absent.
// Decimal formatting keeps whole numbers whole ("900", never "900.0").
func (e IngredientEntry) QuantityDisplay() string {
	if !e.Quantity.Valid {
		return ""
	}
	return e.Quantity.Decimal.String()
}

// SameName reports whether two entries refer to the same ingredient by display
// name, case-insensitively. Per-recipe lists deduplicate on this alone.
func (e IngredientEntry) SameName(other IngredientEntry) bool {
	return strings.EqualFold(e.Name, other.Name)
}

// String renders the entry in wire format: "qty;;unit;;name".
func (e IngredientEntry) String() string {
	return strings.Join([]string{e.QuantityDisplay(), e.Unit, e.Name}, EntryDelimiter)
}

var numberToken = regexp.MustCompile(`\d+(\.\d+)?`)

// extractNumber returns the first numeric token found in s, which also covers
// inputs like "900-1000" by taking the leading number.
func extractNumber(s string) (decimal.Decimal, bool) {
	m := numberToken.FindString(s)
	if m == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// NormalizeEntryString parses a delimited entry string into the canonical triple.
func NormalizeEntryString(s string) (IngredientEntry, error) {
	return NormalizeEntryParts(strings.Split(s, EntryDelimiter))
}

// NormalizeEntryParts normalizes an ordered list of entry parts. Layout is
// detected by where the first numeric token appears:
//
//	(qty, unit, name...)  when the first part carries a number
//	(name, qty, unit...)  when the second part carries a number
//	positional fallback   when no part carries a number
//
// A parse that ends with an empty name salvages the last original part; if
// nothing can be salvaged the entry is rejected as invalid.
func NormalizeEntryParts(raw []string) (IngredientEntry, error) {
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}

	var entry IngredientEntry
	switch {
	case len(parts) >= 1 && hasNumber(parts[0]):
		qty, _ := extractNumber(parts[0])
		entry.Quantity = decimal.NullDecimal{Decimal: qty, Valid: true}
		if len(parts) > 1 {
			entry.Unit = parts[1]
		}
		if len(parts) > 2 {
			entry.Name = strings.Join(parts[2:], " ")
		}
	case len(parts) >= 2 && hasNumber(parts[1]):
		entry.Name = parts[0]
		qty, _ := extractNumber(parts[1])
		entry.Quantity = decimal.NullDecimal{Decimal: qty, Valid: true}
		if len(parts) > 2 {
			entry.Unit = parts[2]
		}
		if len(parts) > 3 {
			entry.Name = entry.Name + " " + strings.Join(parts[3:], " ")
		}
	default:
		switch len(parts) {
		case 0:
		case 1:
			entry.Name = parts[0]
		case 2:
			entry.Unit = parts[0]
			entry.Name = parts[1]
		default:
			entry.Unit = parts[1]
			entry.Name = strings.Join(parts[2:], " ")
		}
	}

	entry.Unit = strings.TrimSpace(entry.Unit)
	entry.Name = strings.TrimSpace(entry.Name)

	// Salvage a name from the last original part before giving up.
	if entry.Name == "" && len(raw) > 0 {
		entry.Name = strings.TrimSpace(raw[len(raw)-1])
	}
	if entry.Name == "" {
		return IngredientEntry{}, fmt.Errorf("%w: ingredient entry has no name", errors.ErrInvalidArgument)
	}
	return entry, nil
}

// NormalizeIngredient extracts the canonical triple from a resolved Ingredient.
func NormalizeIngredient(ing *Ingredient) IngredientEntry {
	return IngredientEntry{
		Quantity: decimal.NullDecimal{Decimal: ing.Quantity, Valid: true},
		Unit:     strings.TrimSpace(ing.Unit),
		Name:     strings.TrimSpace(ing.Name),
	}
}

// NormalizeEntry normalizes any supported ingredient-entry representation:
// a canonical triple (idempotent), a resolved Ingredient, a delimited string,
// or an ordered part list. Every mutation path that stores an entry goes
// through here so the same input yields the same stored triple on both
// backends.
func NormalizeEntry(v interface{}) (IngredientEntry, error) {
	switch e := v.(type) {
	case IngredientEntry:
		e.Unit = strings.TrimSpace(e.Unit)
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return IngredientEntry{}, fmt.Errorf("%w: ingredient entry has no name", errors.ErrInvalidArgument)
		}
		return e, nil
	case *Ingredient:
		return NormalizeIngredient(e), nil
	case Ingredient:
		return NormalizeIngredient(&e), nil
	case string:
		return NormalizeEntryString(e)
	case []string:
		return NormalizeEntryParts(e)
	case []interface{}:
		parts := make([]string, 0, len(e))
		for _, p := range e {
			if p == nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%v", p))
		}
		return NormalizeEntryParts(parts)
	default:
		return IngredientEntry{}, fmt.Errorf("%w: unsupported ingredient entry type %T", errors.ErrInvalidArgument, v)
	}
}

// NormalizeEntryJSON normalizes a raw JSON payload carrying an entry: either
// a delimited string or an array of parts, exactly as the route layer sends it.
func NormalizeEntryJSON(raw json.RawMessage) (IngredientEntry, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return IngredientEntry{}, fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return NormalizeEntry(v)
}

func hasNumber(s string) bool {
	return numberToken.MatchString(s)
}
