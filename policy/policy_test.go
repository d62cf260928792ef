package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_RequiredTags(t *testing.T) {
	pol := Default()

	var names []string
	for _, r := range pol.Rules() {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{
		"business-unit",
		"application",
		"owner",
		"is-production",
		"service-area",
		"environment-name",
	}, names)
}

func TestDefault_BusinessUnits(t *testing.T) {
	pol := Default()
	rule, ok := pol.Rule("business-unit")
	require.True(t, ok)

	for _, unit := range []string{
		"HMPPS", "OPG", "LAA", "Central Digital",
		"Technology Services", "HMCTS", "CICA", "OCTO",
	} {
		assert.True(t, rule.ValueAllowed(unit), "valid unit rejected: %s", unit)
	}

	assert.False(t, rule.ValueAllowed("RandomDepartment"))
	assert.False(t, rule.ValueAllowed("hmpps"), "matching is case sensitive")
}

func TestDefault_OwnerFormat(t *testing.T) {
	pol := Default()
	rule, ok := pol.Rule("owner")
	require.True(t, ok)
	require.NotNil(t, rule.Pattern)
	assert.NotEmpty(t, rule.PatternDescription)

	valid := []string{
		"WebOps: webops@digital.justice.gov.uk",
		"COAT Team: coat@justice.gov.uk",
		"Platform Team: platform@digital.justice.gov.uk",
		"Team: a@b.com",
	}
	for _, owner := range valid {
		assert.True(t, rule.MatchesFormat(owner), "valid owner rejected: %s", owner)
	}

	// missing email, missing team name, no colon, not an email
	invalid := []string{
		"WebOps",
		"webops@digital.justice.gov.uk",
		"Team",
		"Team: notanemail",
	}
	for _, owner := range invalid {
		assert.False(t, rule.MatchesFormat(owner), "invalid owner accepted: %s", owner)
	}
}

func TestDefault_IsProduction(t *testing.T) {
	pol := Default()
	rule, ok := pol.Rule("is-production")
	require.True(t, ok)

	assert.True(t, rule.ValueAllowed("true"))
	assert.True(t, rule.ValueAllowed("false"))
	assert.False(t, rule.ValueAllowed("yes"))
	assert.False(t, rule.ValueAllowed("no"))
	assert.False(t, rule.ValueAllowed("maybe"))
}

func TestDefault_EnvironmentName(t *testing.T) {
	pol := Default()
	rule, ok := pol.Rule("environment-name")
	require.True(t, ok)

	for _, env := range []string{"production", "staging", "test", "development"} {
		assert.True(t, rule.ValueAllowed(env))
	}
	assert.False(t, rule.ValueAllowed("prod"), "short names are not allowed")
}

func TestTagRule_ValueAllowed_NoConstraint(t *testing.T) {
	rule := TagRule{Name: "application"}
	assert.True(t, rule.ValueAllowed("anything at all"))
}

func TestTagRule_MatchesFormat_AnchoredAtStart(t *testing.T) {
	re, err := compilePattern("abc")
	require.NoError(t, err)
	rule := TagRule{Name: "x", Pattern: re}

	assert.True(t, rule.MatchesFormat("abc"))
	assert.True(t, rule.MatchesFormat("abcdef"), "pattern is a prefix match")
	assert.False(t, rule.MatchesFormat("xxabc"), "pattern must match from the start")
}

func TestPolicy_Rule(t *testing.T) {
	pol := Default()

	rule, ok := pol.Rule("owner")
	assert.True(t, ok)
	assert.Equal(t, "owner", rule.Name)

	_, ok = pol.Rule("cost-centre")
	assert.False(t, ok)
}

func TestPolicy_RulesFor(t *testing.T) {
	pol := Default()

	// empty list falls back to the policy's own set
	assert.Len(t, pol.RulesFor(nil), 6)

	rules := pol.RulesFor([]string{"business-unit", "owner", "cost-centre"})
	require.Len(t, rules, 3)

	assert.Equal(t, "business-unit", rules[0].Name)
	assert.NotEmpty(t, rules[0].AllowedValues, "known names keep their constraints")

	assert.Equal(t, "owner", rules[1].Name)
	assert.NotNil(t, rules[1].Pattern)

	// unknown names become bare presence rules
	assert.Equal(t, "cost-centre", rules[2].Name)
	assert.Empty(t, rules[2].AllowedValues)
	assert.Nil(t, rules[2].Pattern)
}

func TestPolicy_Excluded(t *testing.T) {
	pol, err := Parse([]byte(`
required_tags:
  owner:
exclude_resources:
  - aws_iam_role.terraform-*
  - "*.debug"
`))
	require.NoError(t, err)

	assert.True(t, pol.Excluded("aws_iam_role.terraform-ci"))
	assert.True(t, pol.Excluded("aws_s3_bucket.debug"))
	assert.False(t, pol.Excluded("aws_iam_role.app"))

	assert.False(t, Default().Excluded("aws_iam_role.terraform-ci"),
		"built-in policy excludes nothing")
}
