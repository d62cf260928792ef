package policy

// Default returns the built-in tagging standard, applied when no policy
// document is supplied or the supplied one cannot be loaded.
func Default() *Policy {
	rules := []TagRule{
		{
			Name: "business-unit",
			AllowedValues: []string{
				"HMPPS",
				"OPG",
				"LAA",
				"Central Digital",
				"Platforms",
				"Technology Services",
				"HMCTS",
				"CICA",
				"OCTO",
			},
		},
		{
			Name: "application",
		},
		{
			Name:               "owner",
			Pattern:            mustCompilePattern(`.+:\s*\S+@\S+\.\S+`),
			PatternDescription: `team name and contact email, e.g. "WebOps: webops@example.gov.uk"`,
		},
		{
			Name:          "is-production",
			AllowedValues: []string{"true", "false"},
		},
		{
			Name: "service-area",
		},
		{
			Name:          "environment-name",
			AllowedValues: []string{"production", "staging", "test", "development"},
		},
	}
	return newPolicy(rules, nil)
}
