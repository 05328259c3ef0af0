// Package report implements the export and check operations on top of the
// discovery engine: name validation with fuzzy suggestions, skip/allow
// filtering, rendering, and diffing against an existing report.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/kindredhq/licenseer/pkg/fuzzy"
	"github.com/kindredhq/licenseer/pkg/license"
	"github.com/kindredhq/licenseer/pkg/logger"
	"github.com/kindredhq/licenseer/pkg/pathspec"
	"github.com/kindredhq/licenseer/pkg/render"
	"github.com/kindredhq/licenseer/pkg/safeio"
)

// CheckSuccess is the fixed confirmation returned when an existing report
// covers every discovered library.
const CheckSuccess = "Report is up to date."

// UsageError reports a library name the user passed that does not exist,
// carrying a did-you-mean suggestion when one qualifies.
type UsageError struct {
	Name       string
	Suggestion string
}

func (e *UsageError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown library %q; did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown library %q", e.Name)
}

// ValidationError reports a check or export that cannot proceed, such as an
// unrecognized license without an explicit allow or skip.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CheckOptions parameterizes Check. All inputs are explicit; nothing is read
// from ambient process state.
type CheckOptions struct {
	Root         string
	SkipNames    []string
	ExcludeGlobs []*pathspec.Glob
	ReportPath   string
	Discovery    discovery.Options
}

// Check verifies that an existing report still names every discovered
// library. Both sides are whitespace-normalized the same way the classifier
// normalizes license text, so a reflowed report still passes.
func Check(opts CheckOptions) (string, error) {
	libs, err := discovery.Fetch(opts.Root, opts.ExcludeGlobs, opts.Discovery)
	if err != nil {
		return "", err
	}
	if err := validateNames(opts.SkipNames, libs); err != nil {
		return "", err
	}
	remaining := dropSkipped(libs, opts.SkipNames)

	data, err := os.ReadFile(opts.ReportPath) // #nosec G304 -- user-specified report path
	if err != nil {
		return "", &discovery.FilesystemError{Path: opts.ReportPath, Err: err}
	}
	normalized := license.Normalize(string(data))

	for _, lib := range remaining {
		if !strings.Contains(normalized, license.Normalize(lib.Name)) {
			return "", &ValidationError{
				Message: fmt.Sprintf("report %s does not mention %s; re-run export to refresh it", opts.ReportPath, lib.Name),
			}
		}
	}
	logger.Debug("report check passed", logger.Int("libraries", len(remaining)))
	return CheckSuccess, nil
}

// ExportOptions parameterizes Export.
type ExportOptions struct {
	Root           string
	AllowNames     []string
	SkipNames      []string
	ExcludeGlobs   []*pathspec.Glob
	TemplateSource string
	// Format forces the output format; nil infers it from the template
	// content, defaulting to text.
	Format     *render.Format
	OutputPath string
	Discovery  discovery.Options
}

// Export renders the attribution report. Every remaining library must either
// carry a recognized license type or be explicitly allow-listed; otherwise
// the export fails naming the library and the exact flag to add. When
// OutputPath is set the report is written atomically and a confirmation is
// returned, otherwise the rendered text itself is.
func Export(opts ExportOptions) (string, error) {
	libs, err := discovery.Fetch(opts.Root, opts.ExcludeGlobs, opts.Discovery)
	if err != nil {
		return "", err
	}
	if err := validateNames(append(append([]string{}, opts.AllowNames...), opts.SkipNames...), libs); err != nil {
		return "", err
	}
	remaining := dropSkipped(libs, opts.SkipNames)

	allowed := nameSet(opts.AllowNames)
	for _, lib := range remaining {
		if lib.LicenseType == nil && !allowed[strings.ToLower(lib.Name)] {
			return "", &ValidationError{
				Message: fmt.Sprintf("license for %s is unrecognized; add '--allow %s' to accept it or '--skip %s' to drop it",
					lib.Name, flagValue(lib.Name), flagValue(lib.Name)),
			}
		}
	}

	format := render.Text
	switch {
	case opts.Format != nil:
		format = *opts.Format
	case opts.TemplateSource != "":
		format = render.DetectFormat(opts.TemplateSource)
	}
	tpl := format.DefaultTemplate()
	if opts.TemplateSource != "" {
		tpl = tpl.WithRow(opts.TemplateSource)
	}

	rendered := render.Render(remaining, format, tpl)
	if opts.OutputPath == "" {
		return rendered, nil
	}
	if err := safeio.WriteFileAtomic(opts.OutputPath, []byte(rendered)); err != nil {
		return "", &discovery.FilesystemError{Path: opts.OutputPath, Err: err}
	}
	logger.Info("report written",
		logger.String("path", opts.OutputPath),
		logger.Int("libraries", len(remaining)))
	return fmt.Sprintf("License report written to %s.", opts.OutputPath), nil
}

// validateNames ensures every user-supplied name exists among the discovered
// libraries, attaching the nearest real name as a suggestion when one
// qualifies.
func validateNames(names []string, libs []discovery.Library) error {
	known := make([]string, 0, len(libs))
	for _, lib := range libs {
		known = append(known, lib.Name)
	}
	for _, name := range names {
		if containsFold(known, name) {
			continue
		}
		usage := &UsageError{Name: name}
		if matches := fuzzy.BestMatches(name, known); len(matches) > 0 {
			usage.Suggestion = matches[0]
		}
		return usage
	}
	return nil
}

func dropSkipped(libs []discovery.Library, skip []string) []discovery.Library {
	skipped := nameSet(skip)
	kept := make([]discovery.Library, 0, len(libs))
	for _, lib := range libs {
		if skipped[strings.ToLower(lib.Name)] {
			continue
		}
		kept = append(kept, lib)
	}
	return kept
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// flagValue lowercases a library name for use in a suggested flag, quoting
// names that contain a space.
func flagValue(name string) string {
	v := strings.ToLower(name)
	if strings.Contains(v, " ") {
		return `"` + v + `"`
	}
	return v
}
