package stubs

import (
	"context"
	"errors"
	"testing"

	"bookshelf/internal/models"
)

func TestMockDB_SaveAndLoad(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	books, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load books: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Expected empty catalog, got %d books", len(books))
	}

	saved := []models.Book{
		{ID: 1, Title: "Test Book", Author: "Someone", Year: 2020, Status: models.StatusAvailable},
	}
	if err := db.Save(ctx, saved); err != nil {
		t.Fatalf("Failed to save books: %v", err)
	}

	// Mutating the caller's slice must not leak into the store
	saved[0].Title = "Changed"

	books, err = db.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load books: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("Expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Test Book" {
		t.Errorf("Expected 'Test Book', got '%s'", books[0].Title)
	}
	if db.Saves() != 1 {
		t.Errorf("Expected 1 save, got %d", db.Saves())
	}
}

func TestMockDB_InitialBooks(t *testing.T) {
	db := NewMockDB(
		models.Book{ID: 1, Title: "A", Author: "B", Year: 1, Status: models.StatusAvailable},
		models.Book{ID: 2, Title: "C", Author: "D", Year: 2, Status: models.StatusLent},
	)

	books, err := db.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(books))
	}
	if books[0].ID != 1 || books[1].ID != 2 {
		t.Errorf("Expected books in insertion order, got ids %d, %d", books[0].ID, books[1].ID)
	}
}

func TestMockDB_InjectedErrors(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()
	boom := errors.New("boom")

	db.LoadErr = boom
	if _, err := db.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Expected injected load error, got %v", err)
	}

	db.SaveErr = boom
	if err := db.Save(ctx, nil); !errors.Is(err, boom) {
		t.Errorf("Expected injected save error, got %v", err)
	}
	if db.Saves() != 0 {
		t.Errorf("Expected failed save not to be counted, got %d", db.Saves())
	}
}
