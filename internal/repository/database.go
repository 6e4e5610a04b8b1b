package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pantry/internal/errors"
	"pantry/internal/model"
)

// DatabaseRepository backs the Repository contract with durable relational
// storage through GORM. Every mutating operation runs inside one transaction
// (the per-request unit of work) and domain objects are always rebuilt fresh
// from rows on read.
type DatabaseRepository struct {
	db *gorm.DB
}

var _ Repository = (*DatabaseRepository)(nil)

// NewDatabaseRepository wraps a connected GORM DB.
func NewDatabaseRepository(db *gorm.DB) *DatabaseRepository {
	return &DatabaseRepository{db: db}
}

// AutoMigrate creates or updates the backing schema.
func (r *DatabaseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&categoryRow{},
		&ingredientRow{},
		&recipeRow{},
		&recipeIngredientRow{},
		&userRow{},
		&userGroceryRow{},
		&userSavedRecipeRow{},
	)
}

// Reset drops every table owned by the repository.
func (r *DatabaseRepository) Reset() error {
	return r.db.Migrator().DropTable(
		&userSavedRecipeRow{},
		&userGroceryRow{},
		&userRow{},
		&recipeIngredientRow{},
		&recipeRow{},
		&ingredientRow{},
		&categoryRow{},
	)
}

// wrapBackend classifies unexpected storage errors as backend unavailability
// while letting domain sentinels pass through untouched.
func wrapBackend(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		errors.ErrNotFound,
		errors.ErrUserNotFound,
		errors.ErrRecipeNotFound,
		errors.ErrIngredientNotFound,
		errors.ErrDuplicateKey,
		errors.ErrInvalidArgument,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", errors.ErrBackendUnavailable, err)
}

func (r *DatabaseRepository) AddIngredient(ctx context.Context, ing *model.Ingredient) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := ensureIngredient(tx, ing.Name)
		if err != nil {
			return err
		}
		// Unit and UI range bounds are cosmetic: a failed copy is logged and
		// never aborts the write.
		updates := map[string]interface{}{
			"unit":      ing.Unit,
			"range_min": rangeOrDefault(ing.RangeMin, model.DefaultRangeMin),
			"range_max": rangeOrDefault(ing.RangeMax, model.DefaultRangeMax),
			"step":      rangeOrDefault(ing.Step, model.DefaultStep),
		}
		if err := tx.Model(row).Updates(updates).Error; err != nil {
			log.Printf("add ingredient %q: copy attributes: %v", ing.Name, err)
		}
		for _, cat := range ing.Categories {
			catRow, err := ensureCategory(tx, cat.Name)
			if err != nil {
				return err
			}
			if err := tx.Model(row).Association("Categories").Append(catRow); err != nil {
				return err
			}
		}
		return nil
	}))
}

func rangeOrDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (r *DatabaseRepository) AddIngredients(ctx context.Context, ings []*model.Ingredient) error {
	for _, ing := range ings {
		if err := r.AddIngredient(ctx, ing); err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) FindIngredientByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var row ingredientRow
	err := r.db.WithContext(ctx).Preload("Categories").Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrIngredientNotFound
	}
	if err != nil {
		return nil, wrapBackend(err)
	}
	return row.toDomain(decimal.Zero, ""), nil
}

func (r *DatabaseRepository) FindIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error) {
	ids, err := r.ingredientIDsByCategory(ctx, "LOWER(categories.name) = ?", strings.ToLower(category))
	if err != nil {
		return nil, err
	}
	return r.loadIngredients(ctx, ids, false)
}

func (r *DatabaseRepository) ListIngredients(ctx context.Context) ([]*model.Ingredient, error) {
	var rows []ingredientRow
	if err := r.db.WithContext(ctx).Preload("Categories").Order("name").Find(&rows).Error; err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]*model.Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(decimal.Zero, ""))
	}
	return out, nil
}

func (r *DatabaseRepository) SearchIngredientsByName(ctx context.Context, name string) ([]*model.Ingredient, error) {
	var rows []ingredientRow
	err := r.db.WithContext(ctx).Preload("Categories").
		Where("LOWER(name) LIKE ?", containsPattern(name)).
		Order("name").Find(&rows).Error
	if err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]*model.Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(decimal.Zero, ""))
	}
	return out, nil
}

func (r *DatabaseRepository) SearchIngredientsByCategory(ctx context.Context, category string) ([]*model.Ingredient, error) {
	ids, err := r.ingredientIDsByCategory(ctx, "LOWER(categories.name) LIKE ?", containsPattern(category))
	if err != nil {
		return nil, err
	}
	return r.loadIngredients(ctx, ids, true)
}

// ingredientIDsByCategory resolves the distinct ingredient ids attached to any
// category matching the condition.
func (r *DatabaseRepository) ingredientIDsByCategory(ctx context.Context, cond string, arg interface{}) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("ingredient_categories").
		Joins("JOIN categories ON categories.id = ingredient_categories.category_id").
		Where(cond, arg).
		Distinct("ingredient_categories.ingredient_id").
		Pluck("ingredient_categories.ingredient_id", &ids).Error
	if err != nil {
		return nil, wrapBackend(err)
	}
	return ids, nil
}

func (r *DatabaseRepository) loadIngredients(ctx context.Context, ids []uint, sorted bool) ([]*model.Ingredient, error) {
	if len(ids) == 0 {
		return []*model.Ingredient{}, nil
	}
	q := r.db.WithContext(ctx).Preload("Categories").Where("id IN ?", ids)
	if sorted {
		q = q.Order("name")
	}
	var rows []ingredientRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]*model.Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(decimal.Zero, ""))
	}
	return out, nil
}

func (r *DatabaseRepository) AddCategory(ctx context.Context, category model.Category) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureCategory(tx, category.Name)
		return err
	}))
}

func (r *DatabaseRepository) AddCategories(ctx context.Context, categories []model.Category) error {
	for _, c := range categories {
		if err := r.AddCategory(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) FindCategoryByName(ctx context.Context, name string) (model.Category, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, errors.ErrNotFound
	}
	if err != nil {
		return model.Category{}, wrapBackend(err)
	}
	return row.toDomain(), nil
}

func (r *DatabaseRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *DatabaseRepository) AddUser(ctx context.Context, user *model.User) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return writeUser(tx, user)
	}))
}

func (r *DatabaseRepository) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findUser(ctx, "LOWER(username) = ?", strings.ToLower(username))
}

func (r *DatabaseRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findUser(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *DatabaseRepository) findUser(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var row userRow
	err := r.userQuery(ctx).Where(cond, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, wrapBackend(err)
	}
	user, err := row.toDomain()
	if err != nil {
		return nil, wrapBackend(err)
	}
	return user, nil
}

// userQuery preloads everything a fresh domain rebuild needs.
func (r *DatabaseRepository) userQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Groceries.Ingredient.Categories").
		Preload("SavedRecipes")
}

func (r *DatabaseRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	var rows []userRow
	if err := r.userQuery(ctx).Find(&rows).Error; err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			return nil, wrapBackend(err)
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *DatabaseRepository) CountUsers(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRow{}).Count(&count).Error; err != nil {
		return 0, wrapBackend(err)
	}
	return int(count), nil
}

func (r *DatabaseRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	var created userRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRow
		err := tx.Where("LOWER(username) = ? OR LOWER(email) = ?",
			strings.ToLower(username), strings.ToLower(email)).First(&existing).Error
		if err == nil {
			return errors.ErrDuplicateKey
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = userRow{
			Username:          username,
			Email:             email,
			PasswordHash:      passwordHash,
			RecipeIngredients: datatypes.JSON([]byte("{}")),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, wrapBackend(err)
	}
	user, err := created.toDomain()
	if err != nil {
		return nil, wrapBackend(err)
	}
	return user, nil
}

func (r *DatabaseRepository) UpdateUser(ctx context.Context, user *model.User) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRow
		err := tx.Where("id = ?", user.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		return writeUser(tx, user)
	}))
}

// writeUser persists the user's current state wholesale: scalar fields and the
// recipe-ingredient blob on the row, grocery and saved-recipe join rows
// cleared and reinserted. Last write wins; no diffing against prior state.
func writeUser(tx *gorm.DB, user *model.User) error {
	var row userRow
	err := tx.Where("id = ?", user.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = userRow{ID: user.ID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	blob, err := encodeEntryMap(user.RecipeIngredients)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"username":           user.Username,
		"email":              user.Email,
		"password_hash":      user.PasswordHash,
		"admin":              user.Admin,
		"recipe_ingredients": blob,
	}
	if err := tx.Model(&row).Updates(updates).Error; err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&userGroceryRow{}).Error; err != nil {
		return err
	}
	for _, ing := range user.GroceryList {
		ingRow, err := ensureIngredient(tx, ing.Name)
		if err != nil {
			return err
		}
		assoc := userGroceryRow{UserID: user.ID, IngredientID: ingRow.ID, Quantity: ing.Quantity}
		if err := tx.Create(&assoc).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&userSavedRecipeRow{}).Error; err != nil {
		return err
	}
	for _, recipeID := range user.SavedRecipes {
		saved := userSavedRecipeRow{UserID: user.ID, RecipeID: recipeID}
		if err := tx.Create(&saved).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) SavedRecipes(ctx context.Context, user *model.User) ([]int, error) {
	if user == nil {
		return nil, nil
	}
	var ids []int
	err := r.db.WithContext(ctx).Model(&userSavedRecipeRow{}).
		Where("user_id = ?", user.ID).Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, wrapBackend(err)
	}
	return ids, nil
}

func (r *DatabaseRepository) HasSavedRecipe(ctx context.Context, recipeID int, user *model.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&userSavedRecipeRow{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).Count(&count).Error
	if err != nil {
		return false, wrapBackend(err)
	}
	return count > 0, nil
}

func (r *DatabaseRepository) AddSavedRecipe(ctx context.Context, recipeID int, user *model.User) error {
	if user == nil {
		return errors.ErrUserNotFound
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUserRow(tx, user.ID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&userSavedRecipeRow{}).
			Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&userSavedRecipeRow{UserID: user.ID, RecipeID: recipeID}).Error
	})
	if err != nil {
		return wrapBackend(err)
	}
	// Keep the caller's domain object in sync so a later UpdateUser does not
	// overwrite the fresh row.
	user.SaveRecipe(recipeID)
	return nil
}

func (r *DatabaseRepository) RemoveSavedRecipe(ctx context.Context, recipeID int, user *model.User) error {
	if user == nil {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).
			Delete(&userSavedRecipeRow{}).Error
	})
	if err != nil {
		return wrapBackend(err)
	}
	user.RemoveSavedRecipe(recipeID)
	return nil
}

// requireUserRow fails a relationship write early when the user row is gone.
func requireUserRow(tx *gorm.DB, userID int) error {
	var row userRow
	err := tx.Select("id").Where("id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrUserNotFound
	}
	return err
}

func (r *DatabaseRepository) UserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) ([]model.IngredientEntry, error) {
	if user == nil {
		return nil, nil
	}
	var row userRow
	err := r.db.WithContext(ctx).Where("id = ?", user.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapBackend(err)
	}
	entries := decodeEntryMap(row.RecipeIngredients)
	for key, list := range entries {
		if strings.EqualFold(key, recipeName) {
			return list, nil
		}
	}
	return nil, nil
}

func (r *DatabaseRepository) AddUserRecipeIngredient(ctx context.Context, user *model.User, recipeName string, entry interface{}) error {
	if user == nil {
		return errors.ErrUserNotFound
	}
	normalized, err := model.NormalizeEntry(entry)
	if err != nil {
		return err
	}
	err = r.mutateEntryMap(ctx, user.ID, true, func(entries map[string][]model.IngredientEntry) {
		key := entryMapKey(entries, recipeName)
		for _, existing := range entries[key] {
			if existing.SameName(normalized) {
				return
			}
		}
		entries[key] = append(entries[key], normalized)
	})
	if err != nil {
		return err
	}
	user.AddRecipeIngredient(recipeName, normalized)
	return nil
}

func (r *DatabaseRepository) RemoveUserRecipeIngredient(ctx context.Context, user *model.User, recipeName, ingredientName string) error {
	if user == nil {
		return nil
	}
	err := r.mutateEntryMap(ctx, user.ID, false, func(entries map[string][]model.IngredientEntry) {
		key := entryMapKey(entries, recipeName)
		kept := entries[key][:0]
		for _, e := range entries[key] {
			if !strings.EqualFold(e.Name, ingredientName) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(entries, key)
			return
		}
		entries[key] = kept
	})
	if err != nil {
		return err
	}
	user.RemoveRecipeIngredient(recipeName, ingredientName)
	return nil
}

func (r *DatabaseRepository) AddUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, entries []interface{}) error {
	for _, e := range entries {
		if err := r.AddUserRecipeIngredient(ctx, user, recipeName, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) RemoveUserRecipeIngredientList(ctx context.Context, user *model.User, recipeName string, ingredientNames []string) error {
	for _, n := range ingredientNames {
		if err := r.RemoveUserRecipeIngredient(ctx, user, recipeName, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) ClearUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error {
	if user == nil {
		return nil
	}
	err := r.mutateEntryMap(ctx, user.ID, false, func(entries map[string][]model.IngredientEntry) {
		delete(entries, entryMapKey(entries, recipeName))
	})
	if err != nil {
		return err
	}
	user.ClearRecipeIngredients(recipeName)
	return nil
}

func (r *DatabaseRepository) DeleteUserRecipeIngredients(ctx context.Context, user *model.User, recipeName string) error {
	return r.ClearUserRecipeIngredients(ctx, user, recipeName)
}

// entryMapKey resolves the stored key for a recipe name, folding case but
// preserving the first-seen casing. Falls back to the incoming casing.
func entryMapKey(entries map[string][]model.IngredientEntry, recipeName string) string {
	for k := range entries {
		if strings.EqualFold(k, recipeName) {
			return k
		}
	}
	return recipeName
}

// mutateEntryMap loads the user's recipe-ingredient blob, applies fn, and
// writes the blob back, all inside one unit of work. When required is false a
// missing user row is a silent no-op.
func (r *DatabaseRepository) mutateEntryMap(ctx context.Context, userID int, required bool, fn func(map[string][]model.IngredientEntry)) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userRow
		err := tx.Where("id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if required {
				return errors.ErrUserNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		entries := decodeEntryMap(row.RecipeIngredients)
		fn(entries)
		blob, err := encodeEntryMap(entries)
		if err != nil {
			return err
		}
		return tx.Model(&row).Update("recipe_ingredients", blob).Error
	}))
}

func (r *DatabaseRepository) AddRecipe(ctx context.Context, recipe *model.Recipe) error {
	return wrapBackend(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recipeRow
		err := tx.Where("id = ?", recipe.ID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = recipeRow{ID: recipe.ID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		methods, err := json.Marshal(recipe.Methods)
		if err != nil {
			return err
		}
		tags, err := json.Marshal(recipe.Tags)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"name":            recipe.Name,
			"description":     recipe.Description,
			"methods":         datatypes.JSON(methods),
			"prep_time_mins":  recipe.PrepTimeMins,
			"cook_time_mins":  recipe.CookTimeMins,
			"total_time_mins": recipe.TotalTimeMins,
			"difficulty":      recipe.Difficulty,
			"category":        recipe.Category,
			"cuisine":         recipe.Cuisine,
			"tags":            datatypes.JSON(tags),
			"notes":           recipe.Notes,
			"image_url":       recipe.ImageURL,
		}
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return err
		}

		// Recipe-scoped ingredient rows are rebuilt wholesale from the
		// incoming list; the global inventory table is never touched here.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&recipeIngredientRow{}).Error; err != nil {
			return err
		}
		for pos, entry := range recipe.Ingredients {
			normalized, err := model.NormalizeEntry(entry)
			if err != nil {
				// An entry without a salvageable name is skipped, never stored.
				log.Printf("add recipe %q: skipping unusable ingredient entry at %d: %v", recipe.Name, pos, err)
				continue
			}
			ri := recipeIngredientRow{
				RecipeID: recipe.ID,
				Name:     normalized.Name,
				Quantity: normalized.Quantity,
				Unit:     normalized.Unit,
				Position: pos,
			}
			if err := tx.Create(&ri).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *DatabaseRepository) AddRecipes(ctx context.Context, recipes []*model.Recipe) error {
	for _, rec := range recipes {
		if err := r.AddRecipe(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *DatabaseRepository) FindRecipeByName(ctx context.Context, name string) (*model.Recipe, error) {
	var row recipeRow
	err := r.db.WithContext(ctx).Preload("Ingredients").
		Where("LOWER(name) = ?", strings.ToLower(name)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrRecipeNotFound
	}
	if err != nil {
		return nil, wrapBackend(err)
	}
	return row.toDomain(), nil
}

func (r *DatabaseRepository) FindRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	return r.queryRecipes(ctx, "LOWER(category) = ?", strings.ToLower(category), false)
}

func (r *DatabaseRepository) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return r.queryRecipes(ctx, "", nil, true)
}

func (r *DatabaseRepository) SearchRecipesByName(ctx context.Context, name string) ([]*model.Recipe, error) {
	return r.queryRecipes(ctx, "LOWER(name) LIKE ?", containsPattern(name), true)
}

func (r *DatabaseRepository) SearchRecipesByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	return r.queryRecipes(ctx, "LOWER(category) LIKE ?", containsPattern(category), true)
}

func (r *DatabaseRepository) queryRecipes(ctx context.Context, cond string, arg interface{}, sorted bool) ([]*model.Recipe, error) {
	q := r.db.WithContext(ctx).Preload("Ingredients")
	if cond != "" {
		q = q.Where(cond, arg)
	}
	if sorted {
		q = q.Order("name")
	}
	var rows []recipeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, wrapBackend(err)
	}
	out := make([]*model.Recipe, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
