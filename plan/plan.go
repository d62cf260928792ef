// Package plan reads Terraform plan snapshots (terraform show -json)
// into the resource changes the checker consumes.
package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tagvet/tagvet/types"
)

// ErrInvalidSnapshot marks a plan the parser could not read. Unlike a
// bad policy document this is fatal: there is nothing to check without
// a plan.
var ErrInvalidSnapshot = errors.New("invalid plan snapshot")

// Plan is the subset of a Terraform plan the checker needs
type Plan struct {
	TerraformVersion string
	Changes          []types.ResourceChange
}

type rawPlan struct {
	TerraformVersion string      `json:"terraform_version"`
	ResourceChanges  []rawChange `json:"resource_changes"`
}

type rawChange struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	Change  struct {
		Actions []string                   `json:"actions"`
		After   map[string]json.RawMessage `json:"after"`
	} `json:"change"`
}

// Parse decodes a plan snapshot
func Parse(data []byte) (*Plan, error) {
	doc := bytes.TrimSpace(data)
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidSnapshot)
	}
	// A top-level null unmarshals into the zero rawPlan with no error,
	// which would read as an empty compliant plan.
	if doc[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidSnapshot)
	}

	var raw rawPlan
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	p := &Plan{TerraformVersion: raw.TerraformVersion}
	for _, rc := range raw.ResourceChanges {
		p.Changes = append(p.Changes, rc.toChange())
	}
	return p, nil
}

// ParseFile reads and decodes a plan snapshot from disk
func ParseFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

func (rc rawChange) toChange() types.ResourceChange {
	actions := make([]types.Action, 0, len(rc.Change.Actions))
	for _, a := range rc.Change.Actions {
		actions = append(actions, types.Action(a))
	}
	return types.ResourceChange{
		Address:      rc.Address,
		Type:         rc.Type,
		Actions:      actions,
		DeclaredTags: decodeTagMap(rc.Change.After["tags"]),
		ResolvedTags: decodeTagMap(rc.Change.After["tags_all"]),
	}
}

// decodeTagMap tolerates whatever shape the provider put in the tag
// attribute. Only a proper JSON object counts as tag data; null and
// other shapes mean the attribute is absent. Scalar non-string values
// are stringified the way Terraform renders them.
func decodeTagMap(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var direct map[string]string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct // nil when the attribute is JSON null
	}

	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	tags := make(map[string]string, len(loose))
	for k, v := range loose {
		tags[k] = stringifyTagValue(v)
	}
	return tags
}

func stringifyTagValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
