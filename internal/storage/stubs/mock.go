package stubs

import (
	"context"
	"sync"

	"bookshelf/internal/models"
	"bookshelf/internal/storage"
)

// MockDB is an in-memory implementation of the Storage interface for testing
// and for running without a catalog file.
type MockDB struct {
	mu    sync.RWMutex
	books []models.Book
	saves int

	// LoadErr, when set, is returned by Load
	LoadErr error
	// SaveErr, when set, is returned by Save
	SaveErr error
}

var _ storage.Storage = (*MockDB)(nil)

// NewMockDB creates a new mock database holding a copy of books
func NewMockDB(books ...models.Book) *MockDB {
	return &MockDB{
		books: clone(books),
	}
}

// Load returns a copy of the stored books
func (m *MockDB) Load(ctx context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return clone(m.books), nil
}

// Save replaces the stored books with a copy of books
func (m *MockDB) Save(ctx context.Context, books []models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.books = clone(books)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (m *MockDB) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Books returns a copy of what was last saved
func (m *MockDB) Books() []models.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.books)
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}

func clone(books []models.Book) []models.Book {
	out := make([]models.Book, len(books))
	copy(out, books)
	return out
}
