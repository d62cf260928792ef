package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tagvet/tagvet/policy"
)

// PolicyShowCommand implements the 'tagvet policy show' command
type PolicyShowCommand struct {
	PolicyPath string

	out io.Writer
}

// Run prints the effective policy as a table
func (cmd *PolicyShowCommand) Run() error {
	if cmd.out == nil {
		cmd.out = os.Stdout
	}

	pol, err := cmd.load()
	if err != nil {
		return err
	}

	source := "built-in"
	if cmd.PolicyPath != "" {
		source = cmd.PolicyPath
	}
	_, _ = fmt.Fprintf(cmd.out, "Policy: %s\n\n", source)

	w := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TAG\tALLOWED VALUES\tFORMAT")
	_, _ = fmt.Fprintln(w, "---\t--------------\t------")

	for _, rule := range pol.Rules() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			rule.Name,
			truncate(allowedColumn(rule), 72),
			truncate(formatColumn(rule), 72),
		)
	}
	_ = w.Flush()

	if exclusions := pol.Exclusions(); len(exclusions) > 0 {
		_, _ = fmt.Fprintf(cmd.out, "\nExcluded resources:\n")
		for _, e := range exclusions {
			_, _ = fmt.Fprintf(cmd.out, "  %s\n", e.Pattern)
		}
	}

	return nil
}

// load resolves the policy to show. Unlike check, a broken file is an
// error here, not a fallback.
func (cmd *PolicyShowCommand) load() (*policy.Policy, error) {
	if cmd.PolicyPath == "" {
		return policy.Default(), nil
	}
	return policy.Load(cmd.PolicyPath)
}

func allowedColumn(rule policy.TagRule) string {
	if len(rule.AllowedValues) == 0 {
		return "any"
	}
	return strings.Join(rule.AllowedValues, ", ")
}

func formatColumn(rule policy.TagRule) string {
	switch {
	case rule.PatternDescription != "":
		return rule.PatternDescription
	case rule.Pattern != nil:
		return rule.Pattern.String()
	default:
		return "-"
	}
}

// PolicyValidateCommand implements the 'tagvet policy validate' command
type PolicyValidateCommand struct {
	Path string

	out io.Writer
}

// Run parses the policy file and reports whether it is usable
func (cmd *PolicyValidateCommand) Run() error {
	if cmd.out == nil {
		cmd.out = os.Stdout
	}

	pol, err := policy.Load(cmd.Path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.out, "%s is valid: %d required tags, %d exclusions\n",
		cmd.Path, len(pol.Rules()), len(pol.Exclusions()))
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
