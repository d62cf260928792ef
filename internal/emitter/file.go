package emitter

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tagvet/tagvet/report"
)

// FileEmitter writes the machine summary to a local file.
type FileEmitter struct {
	path   string
	logger zerolog.Logger
}

// NewFileEmitter creates an emitter that writes indented JSON to path.
func NewFileEmitter(path string, logger zerolog.Logger) *FileEmitter {
	return &FileEmitter{
		path:   path,
		logger: logger.With().Str("component", "file_emitter").Logger(),
	}
}

// Emit writes the summary, replacing any previous file.
func (e *FileEmitter) Emit(_ context.Context, summary report.Summary) error {
	data, err := summary.JSON()
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	if err := os.WriteFile(e.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write summary file: %w", err)
	}

	e.logger.Debug().Str("path", e.path).Msg("wrote summary file")
	return nil
}

// Close cleans up resources.
func (e *FileEmitter) Close() error {
	return nil
}
