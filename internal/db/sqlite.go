package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pantry/internal/errors"
)

// NewSQLite returns a connected GORM DB instance backed by a local file.
// Pass ":memory:" for an ephemeral database.
func NewSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: connect sqlite: %v", errors.ErrBackendUnavailable, err)
	}
	return db, nil
}
