package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	// Repository selects the storage backend: "database" or "memory".
	Repository string
	// DBDriver selects the relational driver for the database backend:
	// "mysql" or "sqlite".
	DBDriver   string
	MySQLDSN   string
	SQLitePath string
	ResetDB    bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	// SeedDir points at the bootstrap data (ingredients.csv, recipes.json).
	SeedDir string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Repository: getEnv("REPOSITORY", "database"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/pantry?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath: getEnv("SQLITE_PATH", "pantry.db"),
		ResetDB:    getEnv("RESET_DB", "") == "true",
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		SeedDir:    getEnv("SEED_DIR", "data"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
