package shell

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const menuText = `
Menu:
1. Add a book
2. Delete a book
3. Search books
4. List all books
5. Change book status
6. Exit`

// HandleLine processes a single line of user input
func (s *Shell) HandleLine(ctx context.Context, line string) {
	// Recover from panics to keep the shell alive
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic in HandleLine", zap.Any("panic", r))
			s.send("An error occurred while processing your request. Please try again.")
			s.state = nil
		}
	}()

	if s.state != nil {
		s.handleConversation(ctx, line)
		return
	}

	switch strings.TrimSpace(line) {
	case "1":
		s.handleAddStart()
	case "2":
		s.handleDeleteStart()
	case "3":
		s.handleSearchStart()
	case "4":
		s.handleList()
	case "5":
		s.handleStatusStart()
	case "6":
		s.done = true
	default:
		s.send("Invalid choice. Please try again.")
	}
}

// handleConversation routes input to the active multi-step action
func (s *Shell) handleConversation(ctx context.Context, line string) {
	state := s.state
	switch state.Command {
	case cmdAdd:
		s.handleAddConversation(ctx, line, state)
	case cmdDelete:
		s.handleDeleteConversation(ctx, line, state)
	case cmdSearch:
		s.handleSearchConversation(line, state)
	case cmdStatus:
		s.handleStatusConversation(ctx, line, state)
	default:
		s.logger.Warn("Unknown conversation", zap.String("command", state.Command))
		state.Step = -1
	}

	// Clean up completed conversations
	if state.Step == -1 {
		s.state = nil
	}
}

func (s *Shell) startConversation(command string, question string) {
	s.state = &ConversationState{
		Command: command,
		Step:    1,
		Data:    make(map[string]interface{}),
	}
	s.write(question)
}

func (s *Shell) reportError(action string, err error) {
	s.logger.Error("Catalog operation failed", zap.String("action", action), zap.Error(err))
	s.send(fmt.Sprintf("Error: %v", err))
}
