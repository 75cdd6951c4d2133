package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Run reads lines from in until the user exits, in is exhausted or ctx is done
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.logger.Info("Shell started")
	s.send("Library management system started.")
	s.prompt()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shell interrupted")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				s.logger.Info("Input closed")
				select {
				case err := <-readErr:
					if err != nil {
						s.logger.Error("Failed to read input", zap.Error(err))
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}
			s.HandleLine(ctx, line)
			if s.done {
				s.logger.Info("Shell finished")
				return nil
			}
			s.prompt()
		}
	}
}

// prompt shows the menu, or nothing while a multi-step action waits for input
func (s *Shell) prompt() {
	if s.state != nil {
		return
	}
	s.send(menuText)
	s.write("Choose an action: ")
}
