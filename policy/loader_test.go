package policy

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	pol, err := Parse([]byte(`
required_tags:
  cost-centre:
    allowed_values: ["1001", "1002"]
  owner:
    pattern: '.+:\s*\S+@\S+\.\S+'
    pattern_description: 'team name and contact email'
  application:
exclude_resources:
  - aws_iam_role.ci-*
`))
	require.NoError(t, err)

	rules := pol.Rules()
	require.Len(t, rules, 3)

	// document order is evaluation order
	assert.Equal(t, "cost-centre", rules[0].Name)
	assert.Equal(t, "owner", rules[1].Name)
	assert.Equal(t, "application", rules[2].Name)

	assert.Equal(t, []string{"1001", "1002"}, rules[0].AllowedValues)

	require.NotNil(t, rules[1].Pattern)
	assert.True(t, rules[1].MatchesFormat("Team: a@b.com"))
	assert.Equal(t, "team name and contact email", rules[1].PatternDescription)

	assert.Nil(t, rules[2].Pattern)
	assert.Empty(t, rules[2].AllowedValues)

	assert.True(t, pol.Excluded("aws_iam_role.ci-runner"))
}

func TestParse_ScalarRuleMeansPresenceOnly(t *testing.T) {
	pol, err := Parse([]byte(`
required_tags:
  application: ~
  owner: any
`))
	require.NoError(t, err)

	rules := pol.Rules()
	require.Len(t, rules, 2)
	for _, r := range rules {
		assert.Empty(t, r.AllowedValues)
		assert.Nil(t, r.Pattern)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "{{{",
		},
		{
			name: "required_tags missing",
			doc:  "exclude_resources: [a]",
		},
		{
			name: "required_tags empty",
			doc:  "required_tags: {}",
		},
		{
			name: "required_tags not a mapping",
			doc:  "required_tags: [owner, application]",
		},
		{
			name: "rule is a sequence",
			doc:  "required_tags:\n  owner: [a, b]",
		},
		{
			name: "duplicate tag",
			doc:  "required_tags:\n  owner:\n  owner:",
		},
		{
			name: "bad pattern",
			doc:  "required_tags:\n  owner:\n    pattern: '['",
		},
		{
			name: "bad exclusion glob",
			doc:  "required_tags:\n  owner:\nexclude_resources: ['[unclosed']",
		},
		{
			name: "empty string in allowed values",
			doc:  "required_tags:\n  env:\n    allowed_values: ['dev', '']",
		},
		{
			name: "empty allowed values list",
			doc:  "required_tags:\n  env:\n    allowed_values: []",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDocument), "got: %v", err)
		})
	}
}

// A null allowed_values is absent, so the rule is presence-only. An
// empty list is rejected instead (see TestParse_Malformed): yaml
// decodes null to a nil slice but [] to a non-nil one, and only nil
// passes the loader's omitempty.
func TestParse_NullAllowedValuesMeansNoConstraint(t *testing.T) {
	pol, err := Parse([]byte("required_tags:\n  env:\n    allowed_values:\n"))
	require.NoError(t, err)

	rule, ok := pol.Rule("env")
	require.True(t, ok)
	assert.Empty(t, rule.AllowedValues)
	assert.True(t, rule.ValueAllowed("anything"))
}

func TestParse_BadPatternFailsAtLoadNotEvaluation(t *testing.T) {
	_, err := Parse([]byte("required_tags:\n  owner:\n    pattern: '(unclosed'"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestLoad(t *testing.T) {
	content := `
required_tags:
  business-unit:
    allowed_values: [Platform, Digital]
  owner:
exclude_resources:
  - "*.tfstate"
`
	tmpfile, err := os.CreateTemp("", "tagvet-policy-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	pol, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Len(t, pol.Rules(), 2)

	rule, ok := pol.Rule("business-unit")
	require.True(t, ok)
	assert.True(t, rule.ValueAllowed("Platform"))
	assert.False(t, rule.ValueAllowed("HMPPS"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/tag-policy.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
