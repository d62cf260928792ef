package policy

import "regexp"

// TagRule is the constraint for one required tag. A nil AllowedValues
// means any non-empty value passes the value check; a nil Pattern means
// no format check. Both can be set and are evaluated independently.
type TagRule struct {
	Name               string
	AllowedValues      []string
	Pattern            *regexp.Regexp
	PatternDescription string
}

// ValueAllowed reports whether v is in the allowed set
func (r TagRule) ValueAllowed(v string) bool {
	if len(r.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range r.AllowedValues {
		if v == allowed {
			return true
		}
	}
	return false
}

// MatchesFormat reports whether v satisfies the format pattern
func (r TagRule) MatchesFormat(v string) bool {
	if r.Pattern == nil {
		return true
	}
	return r.Pattern.MatchString(v)
}

// Policy is an immutable set of required-tag rules in evaluation order
// plus resource address exclusions. Build one with Default, Parse or
// Load.
type Policy struct {
	rules      []TagRule
	index      map[string]int
	exclusions []Exclusion
}

func newPolicy(rules []TagRule, exclusions []Exclusion) *Policy {
	p := &Policy{
		rules:      rules,
		index:      make(map[string]int, len(rules)),
		exclusions: exclusions,
	}
	for i, r := range rules {
		p.index[r.Name] = i
	}
	return p
}

// Rules returns the required-tag rules in policy order
func (p *Policy) Rules() []TagRule {
	return p.rules
}

// Rule looks up a rule by tag name
func (p *Policy) Rule(name string) (TagRule, bool) {
	i, ok := p.index[name]
	if !ok {
		return TagRule{}, false
	}
	return p.rules[i], true
}

// RulesFor resolves an explicit required-tag-name list against the
// policy: known names keep their constraints, unknown names become bare
// presence rules. An empty list means the policy's own rule set.
func (p *Policy) RulesFor(names []string) []TagRule {
	if len(names) == 0 {
		return p.Rules()
	}
	rules := make([]TagRule, 0, len(names))
	for _, name := range names {
		if r, ok := p.Rule(name); ok {
			rules = append(rules, r)
			continue
		}
		rules = append(rules, TagRule{Name: name})
	}
	return rules
}

// Excluded reports whether a resource address is exempt from checking
func (p *Policy) Excluded(address string) bool {
	for _, e := range p.exclusions {
		if e.Matches(address) {
			return true
		}
	}
	return false
}

// Exclusions returns the compiled address exclusions
func (p *Policy) Exclusions() []Exclusion {
	return p.exclusions
}

// compilePattern anchors the expression at the start of the value,
// matching how tag format patterns are written (prefix match, not
// substring search)
func compilePattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")")
}

func mustCompilePattern(expr string) *regexp.Regexp {
	re, err := compilePattern(expr)
	if err != nil {
		panic(err)
	}
	return re
}
