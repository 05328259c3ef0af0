/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/kindredhq/licenseer/pkg/config"
	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/kindredhq/licenseer/pkg/logger"
	"github.com/kindredhq/licenseer/pkg/pathspec"
	"github.com/spf13/cobra"
)

// scanInputs is everything the report operations need, resolved once at the
// CLI boundary. Core packages never touch ambient process state; the working
// directory enters here and only here.
type scanInputs struct {
	root     string
	cfg      *config.Config
	globs    []*pathspec.Glob
	cacheDir string
}

// addScanFlags wires the flags shared by export, check and list.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns to exclude from the scan (repeatable)")
	cmd.Flags().String("cache-dir", "", "Package cache directory searched during lockfile resolution")
}

// resolveScan turns the positional directory, flags, and project config into
// scan inputs. Flags override config values, config overrides built-ins.
func resolveScan(cmd *cobra.Command, args []string) (*scanInputs, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	root, err := pathspec.ExpandPath(dir, cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	patterns, _ := cmd.Flags().GetStringSlice("exclude")
	patterns = append(patterns, cfg.Exclude...)
	globs := make([]*pathspec.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := pathspec.CompileGlob(p, root)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}

	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = cfg.CacheDir
	}
	cacheDir, err = pathspec.ExpandPath(cacheDir, root)
	if err != nil {
		return nil, err
	}

	logger.Debug("scan inputs resolved",
		logger.String("root", root),
		logger.String("cache", cacheDir),
		logger.Int("excludes", len(globs)))

	return &scanInputs{root: root, cfg: cfg, globs: globs, cacheDir: cacheDir}, nil
}

// discoveryOptions returns the standard options for a top-level scan.
func (s *scanInputs) discoveryOptions() discovery.Options {
	return discovery.Options{ResolveManifests: true, CacheDir: s.cacheDir}
}
