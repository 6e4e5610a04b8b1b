package main

import (
	"context"
	"log"
	"net/http"

	_ "pantry/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"pantry/internal/auth"
	"pantry/internal/cache"
	"pantry/internal/config"
	"pantry/internal/db"
	"pantry/internal/handler"
	"pantry/internal/populate"
	"pantry/internal/repository"
	"pantry/internal/router"
	"pantry/internal/service"
)

// @title Pantry API
// @version 1.0
// @description Household pantry manager: ingredient inventory, recipes, saved recipes and shopping lists, with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	repo, err := buildRepository(cfg)
	if err != nil {
		log.Fatalf("repository init: %v", err)
	}

	// Seed the catalogue on a fresh store
	ctx := context.Background()
	if ings, err := repo.ListIngredients(ctx); err == nil && len(ings) == 0 {
		if err := populate.Populate(ctx, repo, cfg.SeedDir); err != nil {
			log.Printf("Warning: seeding failed: %v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repo, jwtService, tokenStore)
	inventoryService := service.NewInventoryService(repo)
	recipeService := service.NewRecipeService(repo)
	shoppingService := service.NewShoppingService(repo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, authService)
	recipeHandler := handler.NewRecipeHandler(recipeService, authService)
	shoppingHandler := handler.NewShoppingHandler(shoppingService, recipeService, authService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		inventoryHandler,
		recipeHandler,
		shoppingHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// buildRepository picks the storage backend from configuration: the in-memory
// store, or the relational store on MySQL or SQLite.
func buildRepository(cfg *config.Config) (repository.Repository, error) {
	if cfg.Repository == "memory" {
		return repository.NewMemoryRepository(), nil
	}

	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.DBDriver {
	case "mysql":
		gormDB, err = db.NewMySQL(cfg.MySQLDSN)
	default:
		gormDB, err = db.NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	dbRepo := repository.NewDatabaseRepository(gormDB)
	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := dbRepo.Reset(); err != nil {
			log.Printf("Warning: failed to drop tables (may not exist): %v", err)
		}
	}
	if err := dbRepo.AutoMigrate(); err != nil {
		return nil, err
	}
	return dbRepo, nil
}
