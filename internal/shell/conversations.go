package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bookshelf/internal/models"
)

// handleAddConversation handles the add book multi-step process
func (s *Shell) handleAddConversation(ctx context.Context, text string, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for title
		title := strings.TrimSpace(text)
		if title == "" {
			s.write("Title must not be empty. Enter the book title: ")
			return
		}
		state.Data["title"] = title
		state.Step = 2
		s.write("Enter the book author: ")

	case 2: // Waiting for author
		author := strings.TrimSpace(text)
		if author == "" {
			s.write("Author must not be empty. Enter the book author: ")
			return
		}
		state.Data["author"] = author
		state.Step = 3
		s.write("Enter the publication year: ")

	case 3: // Waiting for year
		year, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			s.write("Error: year must be a number. Enter the publication year: ")
			return
		}

		title := state.Data["title"].(string)
		author := state.Data["author"].(string)
		book, err := s.lib.Add(ctx, title, author, year)
		if err != nil {
			s.reportError(cmdAdd, err)
		} else {
			s.send(fmt.Sprintf("Book '%s' added to the library with id %d.", book.Title, book.ID))
		}

		state.Step = -1 // Mark conversation as complete
	}
}

// handleDeleteConversation handles the delete book process
func (s *Shell) handleDeleteConversation(ctx context.Context, text string, state *ConversationState) {
	defer func() { state.Step = -1 }()

	id, ok := s.parseID(text)
	if !ok {
		return
	}

	deleted, err := s.lib.Delete(ctx, id)
	switch {
	case err != nil:
		s.reportError(cmdDelete, err)
	case deleted:
		s.send(fmt.Sprintf("Book with id %d deleted from the library.", id))
	default:
		s.send(fmt.Sprintf("Book with id %d not found.", id))
	}
}

// handleSearchConversation handles the search multi-step process
func (s *Shell) handleSearchConversation(text string, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for field
		field, err := models.ParseField(text)
		if err != nil {
			s.write("Invalid field. Enter one of title, author, year: ")
			return
		}
		state.Data["field"] = field
		state.Step = 2
		s.write("Enter the search query: ")

	case 2: // Waiting for query
		field := state.Data["field"].(models.Field)
		found, err := s.lib.Search(text, field)
		if err != nil {
			s.reportError(cmdSearch, err)
		} else if len(found) == 0 {
			s.send("No books found.")
		} else {
			s.send("Found books:")
			s.renderBooks(found)
		}

		state.Step = -1
	}
}

// handleStatusConversation handles the status change multi-step process
func (s *Shell) handleStatusConversation(ctx context.Context, text string, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for id
		id, ok := s.parseID(text)
		if !ok {
			state.Step = -1
			return
		}
		book, found := s.lib.Get(id)
		if !found {
			s.send(fmt.Sprintf("Book with id %d not found.", id))
			state.Step = -1
			return
		}
		state.Data["id"] = id
		state.Step = 2
		s.write(fmt.Sprintf("Current status is '%s'. Enter the new status (available or lent): ", book.Status))

	case 2: // Waiting for status
		status, err := models.ParseStatus(text)
		if err != nil {
			s.write("Invalid status. Enter available or lent: ")
			return
		}

		id := state.Data["id"].(int)
		updated, err := s.lib.UpdateStatus(ctx, id, status)
		switch {
		case err != nil:
			s.reportError(cmdStatus, err)
		case updated:
			s.send(fmt.Sprintf("Status of book with id %d updated to '%s'.", id, status))
		default:
			s.send(fmt.Sprintf("Book with id %d not found.", id))
		}

		state.Step = -1
	}
}

// parseID reads a book id, telling the user when it is not a number
func (s *Shell) parseID(text string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		s.send("Error: book id must be a number.")
		return 0, false
	}
	return id, true
}
