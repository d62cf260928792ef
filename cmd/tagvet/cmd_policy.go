package main

import (
	"os"

	"github.com/spf13/cobra"
)

var policyShowFile string

// policyCmd groups the policy inspection subcommands
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and validate tag policies",
}

// policyShowCmd represents the policy show command
var policyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective tag policy",
	Example: `  tagvet policy show                      # Built-in policy
  tagvet policy show --policy tags.yaml   # Policy from a file`,
	RunE: runPolicyShow,
}

// policyValidateCmd represents the policy validate command
var policyValidateCmd = &cobra.Command{
	Use:   "validate <policy.yaml>",
	Short: "Check that a policy file parses and compiles",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolicyValidate,
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyShowCmd)
	policyCmd.AddCommand(policyValidateCmd)

	policyShowCmd.Flags().StringVarP(&policyShowFile, "policy", "p", "", "Tag policy file (YAML); omit for the built-in policy")
}

func runPolicyShow(cmd *cobra.Command, args []string) error {
	showCommand := &PolicyShowCommand{
		PolicyPath: policyShowFile,
		out:        os.Stdout,
	}
	return showCommand.Run()
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	validateCommand := &PolicyValidateCommand{
		Path: args[0],
		out:  os.Stdout,
	}
	return validateCommand.Run()
}
