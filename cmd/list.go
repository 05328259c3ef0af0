/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kindredhq/licenseer/internal/ops"
	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "Show the libraries discovery would include in a report",
	Long: `List runs discovery without rendering a report, printing each found
library with its classified license type and the license file path. Useful
for deciding which --allow, --skip or --exclude flags an export needs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	if err := ops.RegisterCommand("list", ops.GroupReport, listCmd, "Show discovered libraries"); err != nil {
		panic(fmt.Sprintf("failed to register list command: %v", err))
	}

	addScanFlags(listCmd)
	listCmd.Flags().Bool("json", false, "Output as JSON")
}

// listEntry is the machine-readable row for --json output.
type listEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	scan, err := resolveScan(cmd, args)
	if err != nil {
		return err
	}

	libs, err := discovery.Fetch(scan.root, scan.globs, scan.discoveryOptions())
	if err != nil {
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		entries := make([]listEntry, 0, len(libs))
		for _, lib := range libs {
			entries = append(entries, listEntry{Name: lib.Name, Type: lib.TypeName(), Path: lib.LicensePath})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(libs) == 0 {
		cmd.Println("No libraries found.")
		return nil
	}

	nameW, typeW := runewidth.StringWidth("NAME"), runewidth.StringWidth("TYPE")
	for _, lib := range libs {
		if w := runewidth.StringWidth(lib.Name); w > nameW {
			nameW = w
		}
		if w := runewidth.StringWidth(lib.TypeName()); w > typeW {
			typeW = w
		}
	}

	cmd.Printf("%s  %s  %s\n", pad("NAME", nameW), pad("TYPE", typeW), "PATH")
	for _, lib := range libs {
		cmd.Printf("%s  %s  %s\n", pad(lib.Name, nameW), pad(lib.TypeName(), typeW), lib.LicensePath)
	}
	return nil
}

// pad right-pads s to the given display width, counting wide runes properly.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
