// Package discovery walks a project tree collecting third-party license
// files into Library records: exclusion filtering, dependency-lockfile
// resolution against a package cache, per-file classification, and
// case-insensitive first-wins deduplication.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kindredhq/licenseer/pkg/license"
	"github.com/kindredhq/licenseer/pkg/logger"
	"github.com/kindredhq/licenseer/pkg/pathspec"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	lockfileName = "Package.resolved"
	manifestName = "Package.swift"

	// remoteDeclMarker flags a manifest that references remote packages and
	// therefore needs a resolved lockfile next to it.
	remoteDeclMarker = ".package("
)

// Library is one discovered third-party license. Immutable after creation;
// identity is Name compared case-insensitively.
type Library struct {
	Name        string
	LicensePath string
	LicenseType *license.Type
	LicenseText string
}

// TypeName returns the display name of the library's license type,
// "Unknown" when classification found nothing.
func (l Library) TypeName() string {
	if l.LicenseType == nil {
		return "Unknown"
	}
	return l.LicenseType.String()
}

// Options controls a discovery run.
type Options struct {
	// ResolveManifests enables lockfile resolution against CacheDir. The
	// nested cache traversal always runs with this disabled, capping
	// recursion at one level.
	ResolveManifests bool
	// CacheDir is the external package cache searched for pinned packages.
	CacheDir string
}

// Fetch enumerates all license files under root, honoring exclusion globs
// and, when enabled, resolving dependency lockfiles against the package
// cache. The result is sorted by locale-aware ascending name and contains
// each case-insensitive name once (first discovery wins, in lexical walk
// order).
func Fetch(root string, excluding []*pathspec.Glob, opts Options) ([]Library, error) {
	std, err := pathspec.ExpandPath(".", root)
	if err != nil {
		return nil, &FilesystemError{Path: root, Err: err}
	}
	if _, err := os.ReadDir(std); err != nil {
		return nil, &FilesystemError{Path: std, Err: err}
	}

	run := &walk{
		root:      std,
		excluding: excluding,
		opts:      opts,
		seen:      make(map[string]bool),
	}
	if err := run.walkTree(); err != nil {
		return nil, err
	}

	sortLibraries(run.libraries)
	return run.libraries, nil
}

type walk struct {
	root      string
	excluding []*pathspec.Glob
	opts      Options
	seen      map[string]bool
	libraries []Library
}

func (w *walk) walkTree() error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &FilesystemError{Path: path, Err: err}
		}
		if path == w.root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		for _, g := range w.excluding {
			if g.Matches(path) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}

		if w.opts.ResolveManifests {
			switch name {
			case lockfileName:
				return w.resolveLockfile(path)
			case manifestName:
				return w.requireResolved(path)
			}
		}

		if !isLicenseFile(name) || !d.Type().IsRegular() {
			return nil
		}
		return w.collect(path)
	})
}

// resolveLockfile parses a lockfile and discovers the pinned packages'
// licenses inside the external cache. A missing cache directory yields zero
// results, matching the case where the package manager has not run yet.
func (w *walk) resolveLockfile(lockPath string) error {
	pins, err := parseLockfile(lockPath)
	if err != nil {
		return err
	}
	accepted := pinNameSet(pins)

	if _, err := os.Stat(w.opts.CacheDir); err != nil {
		logger.Debug("package cache not present, skipping lockfile resolution",
			logger.String("cache", w.opts.CacheDir))
		return nil
	}

	// Project exclusion globs are anchored to the project tree and do not
	// apply inside the cache.
	cached, err := Fetch(w.opts.CacheDir, nil, Options{ResolveManifests: false, CacheDir: w.opts.CacheDir})
	if err != nil {
		return err
	}
	for _, lib := range cached {
		if accepted[strings.ToLower(lib.Name)] {
			w.add(lib)
		}
	}
	return nil
}

// requireResolved fails when a manifest declares remote packages without an
// adjacent lockfile. Skipping it silently would drop those dependencies from
// the report.
func (w *walk) requireResolved(manifestPath string) error {
	lock := filepath.Join(filepath.Dir(manifestPath), lockfileName)
	if _, err := os.Stat(lock); err == nil {
		return nil
	}

	data, err := os.ReadFile(manifestPath) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return &FilesystemError{Path: manifestPath, Err: err}
	}
	if strings.Contains(string(data), remoteDeclMarker) {
		return &ManifestError{
			Path:   manifestPath,
			Reason: "manifest declares unresolved dependencies; resolve them first and re-run",
		}
	}
	return nil
}

func (w *walk) collect(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return &FilesystemError{Path: path, Err: err}
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}

	w.add(Library{
		Name:        filepath.Base(filepath.Dir(path)),
		LicensePath: strings.TrimSpace(rel),
		LicenseText: strings.TrimSpace(string(data)),
		LicenseType: license.Classify(string(data)),
	})
	return nil
}

// add appends a library unless its case-insensitive name is already present.
func (w *walk) add(lib Library) {
	key := strings.ToLower(lib.Name)
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.libraries = append(w.libraries, lib)
}

// isLicenseFile accepts "license"/"licence" in any case, with no extension
// or one of .text/.txt/.md.
func isLicenseFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	if stem != "license" && stem != "licence" {
		return false
	}
	switch ext {
	case "", ".text", ".txt", ".md":
		return true
	}
	return false
}

// sortLibraries orders by human-friendly ascending name: case-insensitive
// and numeric-aware, so "Foo2" sorts before "Foo10".
func sortLibraries(libs []Library) {
	c := collate.New(language.Und, collate.Loose, collate.Numeric)
	sort.SliceStable(libs, func(i, j int) bool {
		return c.CompareString(libs[i].Name, libs[j].Name) < 0
	})
}
