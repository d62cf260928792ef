package types

import (
	"fmt"
	"strings"
)

// ViolationKind classifies how a tag failed the policy
type ViolationKind string

const (
	MissingTag    ViolationKind = "missing_tag"
	InvalidValue  ViolationKind = "invalid_value"
	InvalidFormat ViolationKind = "invalid_format"
)

// SourceLocation points at the .tf declaration of a resource
type SourceLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Violation records a single tag failure on a planned resource
type Violation struct {
	Resource string          `json:"resource"`
	Location *SourceLocation `json:"location,omitempty"`
	Kind     ViolationKind   `json:"kind"`
	Tag      string          `json:"tag"`
	Value    string          `json:"value,omitempty"`
	Allowed  []string        `json:"allowed,omitempty"`
	Format   string          `json:"format,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// Describe renders the violation as one human-readable line
func (v *Violation) Describe() string {
	switch v.Kind {
	case MissingTag:
		if v.Reason != "" {
			return fmt.Sprintf("missing required tag %q (%s)", v.Tag, v.Reason)
		}
		return fmt.Sprintf("missing required tag %q", v.Tag)
	case InvalidValue:
		return fmt.Sprintf("invalid value for %q: got %q, allowed: %s",
			v.Tag, v.Value, strings.Join(v.Allowed, ", "))
	case InvalidFormat:
		return fmt.Sprintf("invalid format for %q: got %q, expected %s",
			v.Tag, v.Value, v.Format)
	}
	return string(v.Kind)
}
