package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/natefinch/atomic"

	"bookshelf/internal/models"
	"bookshelf/internal/storage"
)

const indent = "    "

// Store keeps the catalog in a single pretty-printed JSON file
type Store struct {
	path string
}

var _ storage.Storage = (*Store)(nil)

// New creates a store backed by the file at path. The file is not touched
// until the first Load or Save.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog file path is empty")
	}
	return &Store{path: path}, nil
}

// Path returns the location of the catalog file
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog file
func (s *Store) Load(ctx context.Context) ([]models.Book, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	books := []models.Book{}
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.path, err)
	}
	if books == nil {
		// literal "null" in the file
		books = []models.Book{}
	}
	return books, nil
}

// Save overwrites the catalog file. The new content is written to a
// temporary file and renamed over the old one, so a failed write never
// leaves a truncated catalog behind.
func (s *Store) Save(ctx context.Context, books []models.Book) error {
	if books == nil {
		books = []models.Book{}
	}
	data, err := json.MarshalIndent(books, "", indent)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Close does nothing for the file store
func (s *Store) Close() error {
	return nil
}
