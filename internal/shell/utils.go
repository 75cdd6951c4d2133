package shell

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"bookshelf/internal/models"
)

// send writes a line of text
func (s *Shell) send(text string) {
	s.write(text + "\n")
}

// write writes text without a trailing newline
func (s *Shell) write(text string) {
	if _, err := io.WriteString(s.out, text); err != nil {
		s.logger.Warn("Failed to write output", zap.Error(err))
	}
}

// renderBooks prints books as a table in the given order
func (s *Shell) renderBooks(books []models.Book) {
	if err := RenderBooks(s.out, books); err != nil {
		s.logger.Warn("Failed to render books", zap.Error(err))
	}
}

// RenderBooks writes books to w as a table
func RenderBooks(w io.Writer, books []models.Book) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Title", "Author", "Year", "Status")
	for _, b := range books {
		if err := table.Append(strconv.Itoa(b.ID), b.Title, b.Author, strconv.Itoa(b.Year), b.Status.String()); err != nil {
			return fmt.Errorf("failed to add row for book %d: %w", b.ID, err)
		}
	}
	return table.Render()
}
