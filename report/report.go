package report

import (
	"encoding/json"
	"time"

	"github.com/tagvet/tagvet/types"
)

// Exit statuses for automation: a failed gate and a broken tool are
// different conditions.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// Summary is the machine-readable form of a validation result. It is
// derived from the result alone, so pipelines can rebuild it from any
// stage that has one.
type Summary struct {
	RunID            string            `json:"run_id"`
	CheckedAt        time.Time         `json:"checked_at"`
	Passed           bool              `json:"passed"`
	ResourcesChecked int               `json:"resources_checked"`
	ViolationCount   int               `json:"violation_count"`
	Resources        []ResourceSummary `json:"resources,omitempty"`
}

// ResourceSummary groups one resource's violations
type ResourceSummary struct {
	Address    string            `json:"address"`
	Location   string            `json:"location,omitempty"`
	Violations []types.Violation `json:"violations"`
}

// Summarize groups a result's violations by resource, preserving
// evaluation order
func Summarize(result *types.ValidationResult) Summary {
	s := Summary{
		RunID:            result.RunID,
		CheckedAt:        result.CheckedAt,
		Passed:           result.Passed(),
		ResourcesChecked: result.ResourcesChecked,
		ViolationCount:   len(result.Violations),
	}

	index := make(map[string]int)
	for _, v := range result.Violations {
		i, seen := index[v.Resource]
		if !seen {
			rs := ResourceSummary{Address: v.Resource}
			if v.Location != nil {
				rs.Location = v.Location.String()
			}
			s.Resources = append(s.Resources, rs)
			i = len(s.Resources) - 1
			index[v.Resource] = i
		}
		s.Resources[i].Violations = append(s.Resources[i].Violations, v)
	}
	return s
}

// JSON renders the summary for pipeline consumption
func (s Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ExitCode maps a summary to the gate's exit status
func ExitCode(s Summary) int {
	if s.Passed {
		return ExitOK
	}
	return ExitViolations
}
