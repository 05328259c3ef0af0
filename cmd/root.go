/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/kindredhq/licenseer/internal/ops"
	"github.com/kindredhq/licenseer/pkg/buildinfo"
	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/kindredhq/licenseer/pkg/exitcode"
	"github.com/kindredhq/licenseer/pkg/logger"
	"github.com/kindredhq/licenseer/pkg/report"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenseer",
		Short: "Third-party license discovery and attribution reporting",
		Long: `Licenseer scans a project tree for third-party license files, classifies
each license, and renders a consolidated attribution report. Dependency
lockfiles are resolved against the local package cache so pinned packages
are attributed too.

Examples:
   licenseer export                  # Print the attribution report
   licenseer export --output NOTICE  # Write the report to a file
   licenseer check --report NOTICE   # Verify an existing report is current
   licenseer list                    # Show discovered libraries`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("licenseer {{.Version}}\n")

	// Grouped help: report operations first, support commands after.
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Report Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupReport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// Called from init() for production and explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(exportCmd)
	cmd.AddCommand(checkCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the CLI and exits non-zero on failure, mapping the error
// taxonomy to stable exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var usageErr *report.UsageError
	var valErr *report.ValidationError
	var fsErr *discovery.FilesystemError
	var manErr *discovery.ManifestError
	switch {
	case errors.As(err, &usageErr):
		return exitcode.UsageError
	case errors.As(err, &valErr):
		return exitcode.ValidationError
	case errors.As(err, &fsErr):
		return exitcode.FileSystemError
	case errors.As(err, &manErr):
		return exitcode.ManifestError
	default:
		return exitcode.GeneralError
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(levelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "licenseer",
	})
}
