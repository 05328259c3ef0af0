// Package pathspec resolves user-supplied paths and wildcard exclusion
// patterns against a base directory. All paths are standardized (absolute,
// cleaned, symlinks resolved where possible) so glob matching and discovery
// always compare the same representation.
package pathspec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPath resolves p against baseDir, honoring `~`, `.` and `..`, and
// returns the standardized absolute form. Symlinks are collapsed when the
// path exists; a nonexistent path keeps its cleaned absolute form.
func ExpandPath(p, baseDir string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// Glob is a compiled exclusion pattern anchored to a base directory.
type Glob struct {
	pattern string
	base    string
}

// CompileGlob anchors pattern at the expanded baseDir and validates it.
// Supported syntax is the usual `*`, `**` and `?` wildcards.
func CompileGlob(pattern, baseDir string) (*Glob, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty exclusion pattern")
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid exclusion pattern %q", pattern)
	}
	base, err := ExpandPath(".", baseDir)
	if err != nil {
		return nil, err
	}
	anchored := pattern
	if !filepath.IsAbs(anchored) {
		anchored = filepath.Join(base, anchored)
	}
	return &Glob{pattern: anchored, base: base}, nil
}

// Pattern returns the anchored pattern, mainly for error messages.
func (g *Glob) Pattern() string {
	return g.pattern
}

// Matches reports whether the standardized absolute path is covered by the
// pattern. A pattern matching a directory covers everything beneath it, so
// excluding "vendor" also excludes "vendor/pkg/LICENSE".
func (g *Glob) Matches(path string) bool {
	for p := path; ; p = filepath.Dir(p) {
		if ok, err := doublestar.PathMatch(g.pattern, p); err == nil && ok {
			return true
		}
		if p == g.base || p == filepath.Dir(p) {
			return false
		}
	}
}
