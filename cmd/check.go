/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package cmd

import (
	"fmt"

	"github.com/kindredhq/licenseer/internal/ops"
	"github.com/kindredhq/licenseer/pkg/report"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [directory]",
	Short: "Verify an existing report covers the current dependency set",
	Long: `Check re-discovers the project's third-party licenses and verifies the
existing report still mentions every library. Whitespace differences are
ignored, so a manually reflowed report still passes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	if err := ops.RegisterCommand("check", ops.GroupReport, checkCmd, "Verify an existing attribution report"); err != nil {
		panic(fmt.Sprintf("failed to register check command: %v", err))
	}

	addScanFlags(checkCmd)
	checkCmd.Flags().StringSlice("skip", nil, "Exempt a library from the check (repeatable)")
	checkCmd.Flags().String("report", "", "Path of the existing report to verify")
	_ = checkCmd.MarkFlagRequired("report")
}

func runCheck(cmd *cobra.Command, args []string) error {
	scan, err := resolveScan(cmd, args)
	if err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	reportPath, _ := cmd.Flags().GetString("report")

	msg, err := report.Check(report.CheckOptions{
		Root:         scan.root,
		SkipNames:    skip,
		ExcludeGlobs: scan.globs,
		ReportPath:   reportPath,
		Discovery:    scan.discoveryOptions(),
	})
	if err != nil {
		return err
	}
	cmd.Println(msg)
	return nil
}
