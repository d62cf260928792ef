package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tagvet/tagvet/checker"
	"github.com/tagvet/tagvet/internal/emitter"
	"github.com/tagvet/tagvet/locate"
	"github.com/tagvet/tagvet/plan"
	"github.com/tagvet/tagvet/policy"
	"github.com/tagvet/tagvet/report"
)

// errViolations marks a run that completed but found tag violations.
// Execute maps it to the violations exit status.
var errViolations = errors.New("tag violations found")

var validateOptions = validator.New()

// CheckCommand implements the 'tagvet check' command
type CheckCommand struct {
	PlanPath     string `validate:"required"`
	PolicyPath   string
	RequiredTags string
	Dir          string
	Output       string `validate:"required,oneof=table json"`
	SummaryFile  string
	NoLocations  bool

	out    io.Writer
	logger zerolog.Logger
}

// Run executes the check command
func (cmd *CheckCommand) Run() error {
	if cmd.out == nil {
		cmd.out = os.Stdout
	}
	if err := validateOptions.Struct(cmd); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	pol := cmd.loadPolicy()

	p, err := plan.ParseFile(cmd.PlanPath)
	if err != nil {
		return err
	}

	cfg := checker.Config{
		RequiredTags: policy.ParseTagList(cmd.RequiredTags),
		Logger:       cmd.logger,
	}
	if !cmd.NoLocations {
		dir := cmd.Dir
		if dir == "" {
			dir = filepath.Dir(cmd.PlanPath)
		}
		cfg.Locator = locate.NewScanner(dir, cmd.logger)
	}

	result := checker.New(pol, cfg).Check(p.Changes)
	summary := report.Summarize(result)

	if err := cmd.render(summary); err != nil {
		return err
	}
	cmd.emit(summary)

	if report.ExitCode(summary) != report.ExitOK {
		return errViolations
	}
	return nil
}

// loadPolicy loads the policy file, falling back to the built-in policy
// when the file is missing or malformed. The check still runs either way.
func (cmd *CheckCommand) loadPolicy() *policy.Policy {
	if cmd.PolicyPath == "" {
		return policy.Default()
	}

	pol, err := policy.Load(cmd.PolicyPath)
	if err != nil {
		cmd.logger.Warn().Err(err).Str("path", cmd.PolicyPath).Msg("policy rejected, using built-in policy")
		return policy.Default()
	}
	return pol
}

// render writes the human or machine report
func (cmd *CheckCommand) render(summary report.Summary) error {
	if cmd.Output == "json" {
		data, err := summary.JSON()
		if err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.out, string(data))
		return nil
	}
	return report.Render(cmd.out, summary)
}

// emit publishes the summary to CI channels. Emit failures never change
// the verdict, they only warn.
func (cmd *CheckCommand) emit(summary report.Summary) {
	var emitters []emitter.Emitter

	if gh := emitter.NewGitHubEmitter(cmd.logger); gh.Available() {
		emitters = append(emitters, gh)
	}
	if cmd.SummaryFile != "" {
		emitters = append(emitters, emitter.NewFileEmitter(cmd.SummaryFile, cmd.logger))
	}
	if len(emitters) == 0 {
		return
	}

	multi := emitter.NewMultiEmitter(emitters...)
	defer func() { _ = multi.Close() }()

	if err := multi.Emit(context.Background(), summary); err != nil {
		cmd.logger.Warn().Err(err).Msg("emit failed")
	}
}
