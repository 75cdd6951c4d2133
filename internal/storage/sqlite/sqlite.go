package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"bookshelf/internal/models"
	"bookshelf/internal/storage"
)

// Store keeps the catalog in a single-table SQLite database file
type Store struct {
	db *sql.DB
}

var _ storage.Storage = (*Store)(nil)

// New opens (or creates) the SQLite catalog at path
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog database path is empty")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// one process, one writer
	db.SetMaxOpenConns(1)

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			position INTEGER NOT NULL PRIMARY KEY,
			id       INTEGER NOT NULL UNIQUE,
			title    TEXT    NOT NULL,
			author   TEXT    NOT NULL,
			year     INTEGER NOT NULL,
			status   TEXT    NOT NULL
		)
	`)
	if err != nil {
		if isNotADatabase(err) {
			return fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
		}
		return fmt.Errorf("failed to create books table: %w", err)
	}
	return nil
}

func isNotADatabase(err error) bool {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.Code()&0xff == sqlite3.SQLITE_NOTADB
}

// Load returns all books ordered by their position in the catalog
func (s *Store) Load(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, author, year, status FROM books ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var (
			book   models.Book
			status string
		)
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Year, &status); err != nil {
			return nil, fmt.Errorf("%w: failed to scan book: %v", storage.ErrCorrupt, err)
		}
		book.Status = models.DecodeStatus(status)
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// Save replaces every row in a single transaction
func (s *Store) Save(ctx context.Context, books []models.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO books (position, id, title, author, year, status) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, book := range books {
		if !book.Status.Valid() {
			return fmt.Errorf("failed to save book %d: %w", book.ID, models.ErrInvalidStatus)
		}
		if _, err := stmt.ExecContext(ctx, i, book.ID, book.Title, book.Author, book.Year, string(book.Status)); err != nil {
			return fmt.Errorf("failed to insert book %d: %w", book.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
