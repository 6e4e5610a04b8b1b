package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/repository"
)

// InventoryService exposes the pantry inventory: ingredients and the
// categories they belong to.
type InventoryService interface {
	ListIngredients(ctx context.Context) ([]*model.Ingredient, error)
	GetIngredient(ctx context.Context, name string) (*model.Ingredient, error)
	SearchIngredients(ctx context.Context, criteria, pattern string) ([]*model.Ingredient, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddIngredient(ctx context.Context, name, unit string, categoryNames []string, rangeMin, rangeMax, step int) (*model.Ingredient, error)
}

type inventoryService struct {
	repo repository.Repository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(repo repository.Repository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) ListIngredients(ctx context.Context) ([]*model.Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *inventoryService) GetIngredient(ctx context.Context, name string) (*model.Ingredient, error) {
	return s.repo.FindIngredientByName(ctx, name)
}

// SearchIngredients filters the inventory by a case-insensitive substring
// match on the given criteria ("name" or "category"). An unknown criteria or
// an empty pattern returns the full inventory.
func (s *inventoryService) SearchIngredients(ctx context.Context, criteria, pattern string) ([]*model.Ingredient, error) {
	if strings.TrimSpace(pattern) == "" {
		return s.repo.ListIngredients(ctx)
	}
	switch criteria {
	case "category":
		return s.repo.SearchIngredientsByCategory(ctx, pattern)
	case "name":
		return s.repo.SearchIngredientsByName(ctx, pattern)
	default:
		return s.repo.ListIngredients(ctx)
	}
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

// AddIngredient registers a new ingredient in the inventory. Ingredient names
// are unique ignoring case; a clash returns ErrDuplicateKey.
func (s *inventoryService) AddIngredient(ctx context.Context, name, unit string, categoryNames []string, rangeMin, rangeMax, step int) (*model.Ingredient, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" || unit == "" {
		return nil, fmt.Errorf("%w: name and unit are required", apperrors.ErrInvalidArgument)
	}

	if existing, err := s.repo.FindIngredientByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: ingredient %q already exists", apperrors.ErrDuplicateKey, name)
	} else if err != nil && !apperrors.Is(err, apperrors.ErrIngredientNotFound) {
		return nil, fmt.Errorf("check ingredient: %w", err)
	}

	var categories []model.Category
	for _, cn := range categoryNames {
		category, err := model.NewCategory(cn)
		if err != nil {
			continue
		}
		categories = append(categories, category)
	}

	ingredient, err := model.NewIngredient(name, decimal.Zero, unit, categories)
	if err != nil {
		return nil, err
	}
	if rangeMin > 0 {
		ingredient.RangeMin = rangeMin
	}
	if rangeMax > 0 {
		ingredient.RangeMax = rangeMax
	}
	if step > 0 {
		ingredient.Step = step
	}
	if err := s.repo.AddIngredient(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("add ingredient: %w", err)
	}
	return ingredient, nil
}
