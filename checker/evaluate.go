package checker

import (
	"strings"

	"github.com/tagvet/tagvet/policy"
	"github.com/tagvet/tagvet/types"
)

// InScope reports whether a planned change is subject to the policy:
// pure deletions and no-ops are skipped, excluded addresses are
// exempt, and resources exposing no tag attribute cannot be checked.
func InScope(change types.ResourceChange, pol *policy.Policy) bool {
	if change.IsDeleteOnly() || change.IsNoop() {
		return false
	}
	if pol.Excluded(change.Address) {
		return false
	}
	return change.HasTagData()
}

// EffectiveTags picks the tag set the policy is checked against.
// Resolved tags (tags_all) include provider default_tags, so when the
// provider exposes them they are the truth; declared tags are the
// fallback.
func EffectiveTags(change types.ResourceChange) map[string]string {
	if change.ResolvedTags != nil {
		return change.ResolvedTags
	}
	if change.DeclaredTags != nil {
		return change.DeclaredTags
	}
	return map[string]string{}
}

// Evaluate applies the rules to one resource's effective tags. The
// returned violations follow rule order; a present, non-empty tag can
// fail both the value check and the format check.
func Evaluate(address string, tags map[string]string, rules []policy.TagRule) []types.Violation {
	var violations []types.Violation
	for _, rule := range rules {
		violations = append(violations, evaluateRule(address, tags, rule)...)
	}
	return violations
}

func evaluateRule(address string, tags map[string]string, rule policy.TagRule) []types.Violation {
	value, present := tags[rule.Name]
	if !present {
		return []types.Violation{{
			Resource: address,
			Kind:     types.MissingTag,
			Tag:      rule.Name,
		}}
	}
	// whitespace-only counts as missing, not as a bad value
	if strings.TrimSpace(value) == "" {
		return []types.Violation{{
			Resource: address,
			Kind:     types.MissingTag,
			Tag:      rule.Name,
			Reason:   "empty value",
		}}
	}

	var violations []types.Violation
	if !rule.ValueAllowed(value) {
		violations = append(violations, types.Violation{
			Resource: address,
			Kind:     types.InvalidValue,
			Tag:      rule.Name,
			Value:    value,
			Allowed:  rule.AllowedValues,
		})
	}
	if !rule.MatchesFormat(value) {
		violations = append(violations, types.Violation{
			Resource: address,
			Kind:     types.InvalidFormat,
			Tag:      rule.Name,
			Value:    value,
			Format:   formatHint(rule),
		})
	}
	return violations
}

func formatHint(rule policy.TagRule) string {
	if rule.PatternDescription != "" {
		return rule.PatternDescription
	}
	if rule.Pattern != nil {
		return rule.Pattern.String()
	}
	return ""
}
