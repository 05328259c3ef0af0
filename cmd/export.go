/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/kindredhq/licenseer/internal/ops"
	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/kindredhq/licenseer/pkg/fuzzy"
	"github.com/kindredhq/licenseer/pkg/render"
	"github.com/kindredhq/licenseer/pkg/report"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [directory]",
	Short: "Render the consolidated attribution report",
	Long: `Export discovers every third-party license under the given directory
(default: current directory), resolves dependency lockfiles against the
package cache, and renders the attribution report.

Every library must either carry a recognized license type or be explicitly
allow-listed with --allow; --skip drops a library from the report entirely.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	if err := ops.RegisterCommand("export", ops.GroupReport, exportCmd, "Render the attribution report"); err != nil {
		panic(fmt.Sprintf("failed to register export command: %v", err))
	}

	addScanFlags(exportCmd)
	exportCmd.Flags().StringSlice("allow", nil, "Accept a library whose license is unrecognized (repeatable)")
	exportCmd.Flags().StringSlice("skip", nil, "Drop a library from the report (repeatable)")
	exportCmd.Flags().String("template", "", "Template file with $name/$type/$text placeholders")
	exportCmd.Flags().String("format", "", "Output format (text|json|xml); inferred from template when omitted")
	exportCmd.Flags().String("output", "", "Write the report to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	scan, err := resolveScan(cmd, args)
	if err != nil {
		return err
	}

	allow, _ := cmd.Flags().GetStringSlice("allow")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	templatePath, _ := cmd.Flags().GetString("template")
	formatStr, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	if templatePath == "" {
		templatePath = scan.cfg.Template
	}
	templateSource, err := readTemplate(templatePath)
	if err != nil {
		return err
	}

	format, err := resolveFormat(formatStr, scan.cfg.Format)
	if err != nil {
		return err
	}

	result, err := report.Export(report.ExportOptions{
		Root:           scan.root,
		AllowNames:     allow,
		SkipNames:      skip,
		ExcludeGlobs:   scan.globs,
		TemplateSource: templateSource,
		Format:         format,
		OutputPath:     output,
		Discovery:      scan.discoveryOptions(),
	})
	if err != nil {
		return err
	}

	if output == "" {
		cmd.Print(result)
	} else {
		cmd.Println(result)
	}
	return nil
}

func readTemplate(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified template path
	if err != nil {
		return "", &discovery.FilesystemError{Path: path, Err: err}
	}
	return string(data), nil
}

// resolveFormat parses the --format flag, falling back to the config value.
// An empty result means "infer from the template content".
func resolveFormat(flagValue, configValue string) (*render.Format, error) {
	if flagValue == "" {
		// The config default "text" is only applied when no template could
		// drive inference; an explicit config format always wins.
		if configValue == "" || configValue == "text" {
			return nil, nil
		}
		flagValue = configValue
	}
	f, ok := render.ParseFormat(flagValue)
	if !ok {
		candidates := make([]string, 0, len(render.Formats()))
		for _, known := range render.Formats() {
			candidates = append(candidates, known.String())
		}
		if matches := fuzzy.BestMatches(flagValue, candidates); len(matches) > 0 {
			return nil, fmt.Errorf("unknown format %q; did you mean %q?", flagValue, matches[0])
		}
		return nil, fmt.Errorf("unknown format %q; valid formats are text, json and xml", flagValue)
	}
	return &f, nil
}
