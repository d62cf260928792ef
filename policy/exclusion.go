package policy

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Exclusion is a compiled resource-address glob: * matches any run of
// characters (including dots), ? exactly one. The whole address must
// match, so "aws_iam_*" does not cover "module.x.aws_iam_role.y" but
// "*.aws_iam_*" does.
type Exclusion struct {
	Pattern string
	matcher glob.Glob
}

// NewExclusion compiles an address glob
func NewExclusion(pattern string) (Exclusion, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return Exclusion{}, fmt.Errorf("invalid exclusion %q: %w", pattern, err)
	}
	return Exclusion{Pattern: pattern, matcher: g}, nil
}

// Matches reports whether the address is covered by this exclusion
func (e Exclusion) Matches(address string) bool {
	return e.matcher != nil && e.matcher.Match(address)
}

func compileExclusions(patterns []string) ([]Exclusion, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	exclusions := make([]Exclusion, 0, len(patterns))
	for _, pattern := range patterns {
		e, err := NewExclusion(pattern)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, e)
	}
	return exclusions, nil
}
