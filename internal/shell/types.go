package shell

import (
	"context"
	"io"

	"go.uber.org/zap"

	"bookshelf/internal/models"
)

// Library is the catalog the shell drives
type Library interface {
	Add(ctx context.Context, title, author string, year int) (models.Book, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(query string, field models.Field) ([]models.Book, error)
	UpdateStatus(ctx context.Context, id int, status models.Status) (bool, error)
	List() []models.Book
	Get(id int) (models.Book, bool)
}

// Shell is the interactive text menu over a Library
type Shell struct {
	lib    Library
	out    io.Writer
	state  *ConversationState
	done   bool
	logger *zap.Logger
}

// ConversationState tracks the state of multi-step menu actions
type ConversationState struct {
	Command string
	Step    int
	Data    map[string]interface{}
}

// Menu commands
const (
	cmdAdd    = "add"
	cmdDelete = "delete"
	cmdSearch = "search"
	cmdStatus = "status"
)
