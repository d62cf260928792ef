package types

// Action is a single planned operation on a resource
type Action string

// Actions as a Terraform plan reports them
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionNoop   Action = "no-op"
	ActionRead   Action = "read"
)

// ResourceChange is one entry of a plan snapshot: a resource and what
// the deployment would do to it
type ResourceChange struct {
	Address      string            `json:"address"`
	Type         string            `json:"type"`
	Actions      []Action          `json:"actions"`
	DeclaredTags map[string]string `json:"declared_tags"`
	ResolvedTags map[string]string `json:"resolved_tags"`
}

// IsDeleteOnly reports whether the plan would only destroy this resource
func (c *ResourceChange) IsDeleteOnly() bool {
	return len(c.Actions) == 1 && c.Actions[0] == ActionDelete
}

// IsNoop reports whether the plan leaves this resource untouched
func (c *ResourceChange) IsNoop() bool {
	return len(c.Actions) == 1 && c.Actions[0] == ActionNoop
}

// HasTagData reports whether the snapshot exposed a tag attribute for
// this resource. Resources without one (gateways, route table entries)
// cannot carry tags and are not checked.
func (c *ResourceChange) HasTagData() bool {
	return c.DeclaredTags != nil || c.ResolvedTags != nil
}
