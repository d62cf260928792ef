package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	checkPolicyFile  string
	checkRequired    string
	checkDir         string
	checkOutput      string
	checkSummaryFile string
	checkNoLocations bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <plan.json>",
	Short: "Check a Terraform plan for tag policy violations",
	Long: `Check reads a Terraform plan snapshot (terraform show -json plan.out)
and evaluates every resource about to be created or modified against a
tag policy. Deletions and no-ops are skipped, as are resources that
cannot carry tags.

Without --policy the built-in policy applies. A policy file that cannot
be read or parsed is reported as a warning and the built-in policy is
used instead.`,
	Example: `  tagvet check plan.json                            # Built-in policy
  tagvet check plan.json --policy tags.yaml         # Policy from a file
  tagvet check plan.json --required-tags owner      # Check a single tag
  tagvet check plan.json --output json              # Machine output
  tagvet check plan.json --summary-file check.json  # Also write a JSON summary`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkPolicyFile, "policy", "p", "", "Tag policy file (YAML); omit for the built-in policy")
	checkCmd.Flags().StringVarP(&checkRequired, "required-tags", "t", "", "Comma separated tags to check instead of the full policy")
	checkCmd.Flags().StringVarP(&checkDir, "dir", "d", "", "Terraform source directory for file:line lookups (defaults to the plan's directory)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "table", "Output format: table, json")
	checkCmd.Flags().StringVar(&checkSummaryFile, "summary-file", "", "Write the JSON summary to this file")
	checkCmd.Flags().BoolVar(&checkNoLocations, "no-locations", false, "Skip source location lookups")
}

func runCheck(cmd *cobra.Command, args []string) error {
	checkCommand := &CheckCommand{
		PlanPath:     args[0],
		PolicyPath:   checkPolicyFile,
		RequiredTags: checkRequired,
		Dir:          checkDir,
		Output:       checkOutput,
		SummaryFile:  checkSummaryFile,
		NoLocations:  checkNoLocations,

		out:    os.Stdout,
		logger: log.Logger,
	}

	return checkCommand.Run()
}
