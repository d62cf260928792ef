package policy

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument marks a policy document the loader rejected.
// Callers recover by falling back to Default.
var ErrInvalidDocument = errors.New("invalid policy document")

var validate = validator.New()

// Document is the YAML form of a policy
type Document struct {
	RequiredTags     ruleSet  `yaml:"required_tags"`
	ExcludeResources []string `yaml:"exclude_resources" validate:"omitempty,dive,required"`
}

// RuleSpec is the document form of one required tag's constraints
type RuleSpec struct {
	AllowedValues      []string `yaml:"allowed_values" validate:"omitempty,min=1,dive,required"`
	Pattern            string   `yaml:"pattern"`
	PatternDescription string   `yaml:"pattern_description"`
}

// ruleSet keeps document order: rule order is evaluation and report
// order, and yaml maps do not preserve it
type ruleSet struct {
	names []string
	specs map[string]*RuleSpec
}

func (s *ruleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("required_tags must be a mapping")
	}
	s.specs = make(map[string]*RuleSpec, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var name string
		if err := key.Decode(&name); err != nil {
			return fmt.Errorf("tag name: %w", err)
		}
		if _, exists := s.specs[name]; exists {
			return fmt.Errorf("duplicate tag %q", name)
		}
		spec, err := decodeRuleSpec(value)
		if err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		s.names = append(s.names, name)
		s.specs[name] = spec
	}
	return nil
}

// decodeRuleSpec accepts either a scalar (null or shorthand, meaning
// presence-only) or a mapping with the RuleSpec fields
func decodeRuleSpec(node *yaml.Node) (*RuleSpec, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return nil, nil
	case yaml.MappingNode:
		var spec RuleSpec
		if err := node.Decode(&spec); err != nil {
			return nil, err
		}
		return &spec, nil
	default:
		return nil, fmt.Errorf("must be null or a mapping of constraints")
	}
}

// Parse builds a Policy from a YAML document
func Parse(data []byte) (*Policy, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.RequiredTags.names) == 0 {
		return nil, fmt.Errorf("%w: required_tags is empty", ErrInvalidDocument)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	rules, err := doc.rules()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	exclusions, err := compileExclusions(doc.ExcludeResources)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return newPolicy(rules, exclusions), nil
}

// Load reads and parses a policy document from disk
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	pol, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", path, err)
	}
	return pol, nil
}

func (d *Document) rules() ([]TagRule, error) {
	rules := make([]TagRule, 0, len(d.RequiredTags.names))
	for _, name := range d.RequiredTags.names {
		spec := d.RequiredTags.specs[name]
		rule := TagRule{Name: name}
		if spec != nil {
			if err := validate.Struct(spec); err != nil {
				return nil, fmt.Errorf("tag %q: %v", name, err)
			}
			rule.AllowedValues = spec.AllowedValues
			rule.PatternDescription = spec.PatternDescription
			if spec.Pattern != "" {
				re, err := compilePattern(spec.Pattern)
				if err != nil {
					return nil, fmt.Errorf("tag %q: invalid pattern: %v", name, err)
				}
				rule.Pattern = re
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
