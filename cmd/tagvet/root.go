package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tagvet/tagvet/report"
)

var (
	version = "0.1.0"
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "tagvet",
		Short: "Terraform plan tag policy checker",
		Long: `Tagvet - Terraform plan tag policy checker

Tagvet reads a Terraform plan snapshot and reports every resource about
to be created or modified without the tags your organisation requires.

Built to run as a CI gate: exit status 1 means the plan carries tag
violations, 2 means the check itself could not run.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command and maps errors to exit codes
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errViolations) {
			// The report already went to stdout.
			os.Exit(report.ExitViolations)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(report.ExitError)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Tagvet {{.Version}} - Terraform plan tag policy checker
`)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		setupLogging()
	}
}

// setupLogging configures the global logger for all commands
func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
