package storage

import (
	"context"
	"errors"

	"bookshelf/internal/models"
)

// ErrCorrupt is returned by Load when the persisted catalog cannot be parsed
var ErrCorrupt = errors.New("catalog storage is corrupt")

// Storage defines the interface for persisting the catalog.
// The whole catalog is read and written at once.
type Storage interface {
	// Load returns the persisted books in catalog order.
	// A missing catalog is not an error and yields an empty slice.
	// Unparseable content yields an error wrapping ErrCorrupt.
	// A status that is not a known value is returned as stored.
	Load(ctx context.Context) ([]models.Book, error)

	// Save replaces the persisted catalog with books
	Save(ctx context.Context, books []models.Book) error

	// Lifecycle
	Close() error
}
