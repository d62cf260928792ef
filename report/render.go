package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tagvet/tagvet/types"
)

// Render writes the human report: a count line, then violations
// grouped by resource with their source location when known.
func Render(w io.Writer, s Summary) error {
	_, _ = fmt.Fprintf(w, "Resources checked: %d\n", s.ResourcesChecked)

	if s.Passed {
		_, _ = fmt.Fprintf(w, "\nAll resources carry the required tags.\n")
		return nil
	}

	_, _ = fmt.Fprintf(w, "\nFound %d tag violation(s) on %d resource(s):\n\n",
		s.ViolationCount, len(s.Resources))

	for _, rs := range s.Resources {
		if rs.Location != "" {
			_, _ = fmt.Fprintf(w, "  %s (%s)\n", rs.Address, rs.Location)
		} else {
			_, _ = fmt.Fprintf(w, "  %s\n", rs.Address)
		}
		for i := range rs.Violations {
			_, _ = fmt.Fprintf(w, "      %s\n", rs.Violations[i].Describe())
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

// RenderMarkdown writes the report as GitHub-flavored markdown for
// step summaries
func RenderMarkdown(w io.Writer, s Summary) error {
	_, _ = fmt.Fprintf(w, "## Terraform tag check\n\n")

	if s.Passed {
		_, _ = fmt.Fprintf(w, "**%d** resources checked, no tag violations.\n",
			s.ResourcesChecked)
		return nil
	}

	_, _ = fmt.Fprintf(w, "**%d** resources checked, **%d** violation(s) on **%d** resource(s).\n\n",
		s.ResourcesChecked, s.ViolationCount, len(s.Resources))
	_, _ = fmt.Fprintln(w, "| Resource | Tag | Problem |")
	_, _ = fmt.Fprintln(w, "|---|---|---|")

	for _, rs := range s.Resources {
		address := rs.Address
		if rs.Location != "" {
			address = fmt.Sprintf("%s (%s)", rs.Address, rs.Location)
		}
		for i := range rs.Violations {
			v := &rs.Violations[i]
			_, _ = fmt.Fprintf(w, "| `%s` | `%s` | %s |\n",
				escapeCell(address), escapeCell(v.Tag), escapeCell(problemCell(v)))
		}
	}
	return nil
}

// escapeCell escapes pipes, which GFM would otherwise read as column
// separators even inside code spans.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func problemCell(v *types.Violation) string {
	switch v.Kind {
	case types.MissingTag:
		if v.Reason != "" {
			return "missing (" + v.Reason + ")"
		}
		return "missing"
	case types.InvalidValue:
		return fmt.Sprintf("value %q not in: %s", v.Value, strings.Join(v.Allowed, ", "))
	case types.InvalidFormat:
		return fmt.Sprintf("value %q, expected %s", v.Value, v.Format)
	}
	return string(v.Kind)
}
