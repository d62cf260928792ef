package emitter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tagvet/tagvet/report"
)

// GitHubEmitter publishes results to the GitHub Actions workflow files.
//
// Step outputs go to the file named by GITHUB_OUTPUT, the job summary to
// the file named by GITHUB_STEP_SUMMARY. Either may be unset; that channel
// is then skipped.
type GitHubEmitter struct {
	outputPath  string
	summaryPath string
	logger      zerolog.Logger
}

// NewGitHubEmitter creates an emitter wired to the current Actions run.
func NewGitHubEmitter(logger zerolog.Logger) *GitHubEmitter {
	return &GitHubEmitter{
		outputPath:  os.Getenv("GITHUB_OUTPUT"),
		summaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
		logger:      logger.With().Str("component", "github_emitter").Logger(),
	}
}

// Available reports whether any Actions channel is configured.
func (e *GitHubEmitter) Available() bool {
	return e.outputPath != "" || e.summaryPath != ""
}

// Emit writes step outputs and the job summary.
func (e *GitHubEmitter) Emit(_ context.Context, summary report.Summary) error {
	if err := e.writeOutputs(summary); err != nil {
		return err
	}
	return e.writeStepSummary(summary)
}

// Close cleans up resources.
func (e *GitHubEmitter) Close() error {
	return nil
}

func (e *GitHubEmitter) writeOutputs(summary report.Summary) error {
	if e.outputPath == "" {
		return nil
	}

	data, err := summary.JSON()
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	result := "passed"
	if !summary.Passed {
		result = "failed"
	}

	// Multiline values use the heredoc form; the delimiter must never
	// occur inside the payload.
	delimiter := "tagvet_" + uuid.NewString()

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "result=%s\n", result)
	_, _ = fmt.Fprintf(&b, "violation-count=%d\n", summary.ViolationCount)
	_, _ = fmt.Fprintf(&b, "summary<<%s\n%s\n%s\n", delimiter, data, delimiter)

	if err := appendFile(e.outputPath, []byte(b.String())); err != nil {
		return fmt.Errorf("write step outputs: %w", err)
	}

	e.logger.Debug().Str("path", e.outputPath).Msg("wrote step outputs")
	return nil
}

func (e *GitHubEmitter) writeStepSummary(summary report.Summary) error {
	if e.summaryPath == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := report.RenderMarkdown(&buf, summary); err != nil {
		return fmt.Errorf("render job summary: %w", err)
	}

	if err := appendFile(e.summaryPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write job summary: %w", err)
	}

	e.logger.Debug().Str("path", e.summaryPath).Msg("wrote job summary")
	return nil
}

// appendFile appends because the runner shares these files across steps.
func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path comes from the Actions runner
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
