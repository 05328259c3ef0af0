package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFinalPathSegment(t *testing.T) {
	cases := map[string]string{
		"https://github.com/acme/Alamofire.git": "Alamofire.git",
		"https://github.com/acme/SnapKit":       "SnapKit",
		"https://github.com/acme/SnapKit/":      "SnapKit",
		"git@github.com:acme/Nimble.git":        "Nimble.git",
		"":                                      "",
	}
	for in, want := range cases {
		if got := finalPathSegment(in); got != want {
			t.Errorf("finalPathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPinNameSet(t *testing.T) {
	pins := []Pin{
		{Package: "Alamofire", RepositoryURL: "https://github.com/Alamofire/Alamofire.git"},
		{Package: "SnapKit", RepositoryURL: "https://github.com/SnapKit/SnapKit"},
	}
	set := pinNameSet(pins)

	for _, want := range []string{"alamofire", "alamofire.git", "snapkit"} {
		if !set[want] {
			t.Errorf("pinNameSet missing %q: %v", want, set)
		}
	}
	if set["Alamofire"] {
		t.Error("pinNameSet must hold lowercased names only")
	}
}

func TestParseLockfileValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), lockfileName)
	doc := `{"object": {"pins": [{"package": "A", "repositoryURL": "https://example.com/a"}]}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	pins, err := parseLockfile(path)
	if err != nil {
		t.Fatalf("parseLockfile failed: %v", err)
	}
	if len(pins) != 1 || pins[0].Package != "A" {
		t.Errorf("pins = %+v", pins)
	}
}

func TestParseLockfileInvalidShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), lockfileName)
	if err := os.WriteFile(path, []byte(`{"object": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := parseLockfile(path)
	var manErr *ManifestError
	if !errors.As(err, &manErr) {
		t.Fatalf("err = %v, want ManifestError", err)
	}
}

func TestParseLockfileMissingFile(t *testing.T) {
	_, err := parseLockfile(filepath.Join(t.TempDir(), lockfileName))
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("err = %v, want FilesystemError", err)
	}
}
