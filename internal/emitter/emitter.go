// Package emitter delivers check summaries to CI pipeline channels.
package emitter

import (
	"context"

	"github.com/tagvet/tagvet/report"
)

// Emitter publishes a check summary to a backend.
type Emitter interface {
	// Emit sends the summary to the backend.
	Emit(ctx context.Context, summary report.Summary) error

	// Close cleans up resources.
	Close() error
}

// MultiEmitter fans out to multiple emitters.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter creates an emitter that sends to multiple backends.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	return &MultiEmitter{emitters: emitters}
}

// Emit sends to all emitters, returns first error.
func (m *MultiEmitter) Emit(ctx context.Context, summary report.Summary) error {
	for _, e := range m.emitters {
		if err := e.Emit(ctx, summary); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all emitters.
func (m *MultiEmitter) Close() error {
	for _, e := range m.emitters {
		if err := e.Close(); err != nil {
			return err
		}
	}
	return nil
}
