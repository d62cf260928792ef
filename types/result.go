package types

import (
	"time"

	"github.com/google/uuid"
)

// ValidationResult aggregates everything one checker run found
type ValidationResult struct {
	RunID            string      `json:"run_id"`
	CheckedAt        time.Time   `json:"checked_at"`
	ResourcesChecked int         `json:"resources_checked"`
	Violations       []Violation `json:"violations"`
}

// NewValidationResult stamps a fresh result with a run ID
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		RunID:     uuid.NewString(),
		CheckedAt: time.Now().UTC(),
	}
}

// Passed reports whether the run found no violations
func (r *ValidationResult) Passed() bool {
	return len(r.Violations) == 0
}

// Record appends violations preserving evaluation order
func (r *ValidationResult) Record(violations ...Violation) {
	r.Violations = append(r.Violations, violations...)
}
