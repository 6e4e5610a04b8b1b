package repository

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pantry/internal/model"
)

// Row types for the persistent backend. Domain objects are always rebuilt
// fresh from these rows; no row or association object ever crosses the
// repository boundary.

type categoryRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null"`
}

func (categoryRow) TableName() string { return "categories" }

func (c categoryRow) toDomain() model.Category {
	return model.Category{Name: c.Name}
}

type ingredientRow struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;size:255;not null"`
	Unit     string `gorm:"size:64"`
	RangeMin int    `gorm:"default:1"`
	RangeMax int    `gorm:"default:100"`
	Step     int    `gorm:"default:1"`

	Categories []categoryRow `gorm:"many2many:ingredient_categories;joinForeignKey:ingredient_id;joinReferences:category_id"`
}

func (ingredientRow) TableName() string { return "ingredients" }

// toDomain rebuilds an inventory ingredient. The quantity always comes from
// the caller (grocery rows carry it; plain lookups pass zero) and a non-empty
// caller unit wins over the stored one.
func (i ingredientRow) toDomain(quantity decimal.Decimal, unit string) *model.Ingredient {
	cats := make([]model.Category, 0, len(i.Categories))
	for _, c := range i.Categories {
		cats = append(cats, c.toDomain())
	}
	rangeMin, rangeMax, step := i.RangeMin, i.RangeMax, i.Step
	if rangeMin == 0 {
		rangeMin = model.DefaultRangeMin
	}
	if rangeMax == 0 {
		rangeMax = model.DefaultRangeMax
	}
	if step == 0 {
		step = model.DefaultStep
	}
	if unit == "" {
		unit = i.Unit
	}
	return &model.Ingredient{
		Name:       i.Name,
		Quantity:   quantity,
		Unit:       unit,
		Categories: cats,
		RangeMin:   rangeMin,
		RangeMax:   rangeMax,
		Step:       step,
	}
}

// recipeIngredientRow is a recipe-scoped ingredient entry: free text plus
// optional quantity, unit and list position. It is fully decoupled from the
// inventory ingredients table.
type recipeIngredientRow struct {
	ID       uint                `gorm:"primaryKey"`
	RecipeID int                 `gorm:"index;not null"`
	Name     string              `gorm:"size:255;not null"`
	Quantity decimal.NullDecimal `gorm:"type:decimal(12,4)"`
	Unit     string              `gorm:"size:64"`
	Position int
}

func (recipeIngredientRow) TableName() string { return "recipe_ingredients" }

type recipeRow struct {
	ID            int    `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:255;not null"`
	Description   string `gorm:"type:text"`
	Methods       datatypes.JSON
	PrepTimeMins  int
	CookTimeMins  int
	TotalTimeMins int
	Difficulty    string `gorm:"size:64"`
	Category      string `gorm:"size:255;index"`
	Cuisine       string `gorm:"size:255"`
	Tags          datatypes.JSON
	Notes         string `gorm:"type:text"`
	ImageURL      string `gorm:"size:512"`

	Ingredients []recipeIngredientRow `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (recipeRow) TableName() string { return "recipes" }

func (r recipeRow) toDomain() *model.Recipe {
	rows := append([]recipeIngredientRow(nil), r.Ingredients...)
	sort.Slice(rows, func(a, b int) bool { return rows[a].Position < rows[b].Position })
	entries := make([]model.IngredientEntry, 0, len(rows))
	for _, ri := range rows {
		entries = append(entries, model.IngredientEntry{
			Quantity: ri.Quantity,
			Unit:     ri.Unit,
			Name:     ri.Name,
		})
	}
	var methods, tags []string
	_ = json.Unmarshal(r.Methods, &methods)
	_ = json.Unmarshal(r.Tags, &tags)
	return &model.Recipe{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Ingredients:   entries,
		Methods:       methods,
		PrepTimeMins:  r.PrepTimeMins,
		CookTimeMins:  r.CookTimeMins,
		TotalTimeMins: r.TotalTimeMins,
		Difficulty:    r.Difficulty,
		Category:      r.Category,
		Cuisine:       r.Cuisine,
		Tags:          tags,
		Notes:         r.Notes,
		ImageURL:      r.ImageURL,
	}
}

type userGroceryRow struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       int             `gorm:"index;not null"`
	IngredientID uint            `gorm:"not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,4);not null"`

	Ingredient ingredientRow `gorm:"foreignKey:IngredientID"`
}

func (userGroceryRow) TableName() string { return "user_grocery" }

type userSavedRecipeRow struct {
	ID       uint `gorm:"primaryKey"`
	UserID   int  `gorm:"index;not null"`
	RecipeID int  `gorm:"not null"`
}

func (userSavedRecipeRow) TableName() string { return "user_saved_recipes" }

type userRow struct {
	ID           int    `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255"`
	Admin        bool   `gorm:"default:false"`
	// Per-recipe ingredient selections, stored whole as a structured blob
	// mapping recipe name to its entry list.
	RecipeIngredients datatypes.JSON

	Groceries    []userGroceryRow     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SavedRecipes []userSavedRecipeRow `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (userRow) TableName() string { return "users" }

// toDomain rebuilds a fresh domain user. Grocery ingredients re-enter through
// AddGrocery and the recipe-ingredient blob through AddRecipeIngredientList,
// so freshly loaded data obeys the same dedup and normalization rules as live
// mutation.
func (u userRow) toDomain() (*model.User, error) {
	user, err := model.NewUser(u.ID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	user.Admin = u.Admin
	for _, assoc := range u.Groceries {
		user.AddGrocery(assoc.Ingredient.toDomain(decimal.Zero, ""), assoc.Quantity)
	}
	for _, saved := range u.SavedRecipes {
		user.SaveRecipe(saved.RecipeID)
	}
	entries := decodeEntryMap(u.RecipeIngredients)
	for recipeName, list := range entries {
		user.AddRecipeIngredientList(recipeName, list)
	}
	return user, nil
}

// decodeEntryMap unmarshals the recipe-ingredient blob, tolerating an empty
// or missing column.
func decodeEntryMap(blob datatypes.JSON) map[string][]model.IngredientEntry {
	out := map[string][]model.IngredientEntry{}
	if len(blob) == 0 {
		return out
	}
	_ = json.Unmarshal(blob, &out)
	return out
}

func encodeEntryMap(entries map[string][]model.IngredientEntry) (datatypes.JSON, error) {
	if entries == nil {
		entries = map[string][]model.IngredientEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// ensureCategory looks a category up by exact name and inserts on miss,
// preserving the name-uniqueness invariant under concurrent population.
func ensureCategory(tx *gorm.DB, name string) (*categoryRow, error) {
	name = strings.TrimSpace(name)
	var row categoryRow
	err := tx.Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = categoryRow{Name: name}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ensureIngredient looks an inventory ingredient up by exact name and inserts
// on miss.
func ensureIngredient(tx *gorm.DB, name string) (*ingredientRow, error) {
	name = strings.TrimSpace(name)
	var row ingredientRow
	err := tx.Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = ingredientRow{Name: name}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
