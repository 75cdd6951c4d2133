package shell

import (
	"io"

	"go.uber.org/zap"
)

// New creates a shell writing to out
func New(lib Library, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		lib:    lib,
		out:    out,
		logger: logger,
	}
}

// Done reports whether the user chose to exit
func (s *Shell) Done() bool {
	return s.done
}
