// Package catalog holds the in-memory book catalog and keeps its persisted
// copy in sync. Every mutation writes the whole catalog back to storage.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"bookshelf/internal/models"
	"bookshelf/internal/storage"
)

var (
	ErrEmptyTitle  = errors.New("book title is empty")
	ErrEmptyAuthor = errors.New("book author is empty")
)

// Catalog is the authoritative list of books
type Catalog struct {
	mu     sync.Mutex
	db     storage.Storage
	books  []models.Book
	lastID int // highest id seen since load
	logger *zap.Logger
}

// New creates a catalog and loads it from db. Corrupt storage is logged and
// treated as an empty catalog; other load errors are returned.
func New(ctx context.Context, db storage.Storage, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{db: db, logger: logger}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load(ctx context.Context) error {
	books, err := c.db.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		c.logger.Warn("Catalog storage is corrupt, starting with an empty catalog", zap.Error(err))
		books = nil
	case err != nil:
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c.books = make([]models.Book, 0, len(books))
	c.books = append(c.books, books...)
	c.lastID = 0
	for i, b := range c.books {
		c.lastID = max(c.lastID, b.ID)
		if !b.Status.Valid() {
			c.logger.Warn("Book has an unknown status, treating it as available",
				zap.Int("id", b.ID),
				zap.String("status", string(b.Status)),
			)
			c.books[i].Status = models.StatusAvailable
		}
	}
	c.logger.Info("Catalog loaded", zap.Int("books", len(c.books)))
	return nil
}

func (c *Catalog) save(ctx context.Context) error {
	if err := c.db.Save(ctx, c.books); err != nil {
		c.logger.Error("Failed to save catalog", zap.Error(err))
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// Add appends a new available book and returns it with its assigned id
func (c *Catalog) Add(ctx context.Context, title, author string, year int) (models.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return models.Book{}, ErrEmptyTitle
	}
	if author == "" {
		return models.Book{}, ErrEmptyAuthor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	book := models.Book{
		ID:     c.nextID(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: models.StatusAvailable,
	}
	c.books = append(c.books, book)
	if err := c.save(ctx); err != nil {
		c.books = c.books[:len(c.books)-1]
		return models.Book{}, err
	}
	c.lastID = book.ID

	c.logger.Info("Book added", zap.Int("id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// nextID returns one more than the largest id in the catalog, or than the
// largest id handed out since load if that book was deleted meanwhile.
func (c *Catalog) nextID() int {
	maxID := c.lastID
	for _, b := range c.books {
		maxID = max(maxID, b.ID)
	}
	return maxID + 1
}

// Delete removes the book with the given id. It reports false, without
// touching storage, when no such book exists.
func (c *Catalog) Delete(ctx context.Context, id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Debug("Book to delete not found", zap.Int("id", id))
		return false, nil
	}

	removed := c.books[idx]
	prev := c.books
	c.books = make([]models.Book, 0, len(prev)-1)
	c.books = append(c.books, prev[:idx]...)
	c.books = append(c.books, prev[idx+1:]...)
	if err := c.save(ctx); err != nil {
		c.books = prev
		return false, err
	}

	c.logger.Info("Book deleted", zap.Int("id", id), zap.String("title", removed.Title))
	return true, nil
}

// UpdateStatus sets the lending status of the book with the given id
func (c *Catalog) UpdateStatus(ctx context.Context, id int, status models.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", models.ErrInvalidStatus, string(status))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Debug("Book to update not found", zap.Int("id", id))
		return false, nil
	}

	old := c.books[idx].Status
	c.books[idx].Status = status
	if err := c.save(ctx); err != nil {
		c.books[idx].Status = old
		return false, err
	}

	c.logger.Info("Book status updated",
		zap.Int("id", id),
		zap.Stringer("from", old),
		zap.Stringer("to", status),
	)
	return true, nil
}

// Search returns the books whose field contains query, ignoring case.
// Years are matched against their decimal text.
func (c *Catalog) Search(query string, field models.Field) ([]models.Book, error) {
	if _, err := (models.Book{}).FieldText(field); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	found := []models.Book{}
	for _, b := range c.books {
		text, _ := b.FieldText(field)
		if strings.Contains(fold.String(text), needle) {
			found = append(found, b)
		}
	}
	return found, nil
}

// List returns a copy of all books in catalog order
func (c *Catalog) List() []models.Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Get returns the book with the given id
func (c *Catalog) Get(id int) (models.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return models.Book{}, false
	}
	return c.books[idx], true
}

// Len returns the number of books in the catalog
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.books)
}

func (c *Catalog) indexOf(id int) int {
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
