package checker

import (
	"github.com/rs/zerolog"

	"github.com/tagvet/tagvet/policy"
	"github.com/tagvet/tagvet/types"
)

// Locator resolves a resource address to its source declaration.
// Lookups are best effort; a miss just means the report carries no
// file and line.
type Locator interface {
	Locate(address string) (types.SourceLocation, bool)
}

// Config wires a Checker
type Config struct {
	RequiredTags []string
	Locator      Locator
	Logger       zerolog.Logger
}

// Checker evaluates planned resource changes against a tag policy
type Checker struct {
	policy  *policy.Policy
	rules   []policy.TagRule
	locator Locator
	logger  zerolog.Logger
}

// New builds a Checker. The rule set is resolved once: an explicit
// RequiredTags list narrows the policy, an empty one means the
// policy's own rules.
func New(pol *policy.Policy, cfg Config) *Checker {
	return &Checker{
		policy:  pol,
		rules:   pol.RulesFor(cfg.RequiredTags),
		locator: cfg.Locator,
		logger:  cfg.Logger.With().Str("component", "checker").Logger(),
	}
}

// Check runs the policy over every planned change in one pass
func (c *Checker) Check(changes []types.ResourceChange) *types.ValidationResult {
	result := types.NewValidationResult()

	for _, change := range changes {
		if !InScope(change, c.policy) {
			c.logger.Debug().
				Str("address", change.Address).
				Interface("actions", change.Actions).
				Msg("change out of scope")
			continue
		}
		result.ResourcesChecked++

		violations := Evaluate(change.Address, EffectiveTags(change), c.rules)
		if len(violations) == 0 {
			continue
		}
		c.attachLocation(change.Address, violations)
		result.Record(violations...)
	}

	c.logger.Info().
		Str("run_id", result.RunID).
		Int("resources_checked", result.ResourcesChecked).
		Int("violations", len(result.Violations)).
		Msg("check complete")
	return result
}

func (c *Checker) attachLocation(address string, violations []types.Violation) {
	if c.locator == nil {
		return
	}
	loc, ok := c.locator.Locate(address)
	if !ok {
		return
	}
	for i := range violations {
		violations[i].Location = &loc
	}
}
