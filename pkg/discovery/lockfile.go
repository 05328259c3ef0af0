package discovery

import (
	"encoding/json"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Pin is one resolved dependency record from a lockfile.
type Pin struct {
	Package       string `json:"package"`
	RepositoryURL string `json:"repositoryURL"`
}

type lockfileDocument struct {
	Object struct {
		Pins []Pin `json:"pins"`
	} `json:"object"`
}

// lockfileSchema describes the accepted shape of a Package.resolved file.
// Validating up front gives a single clear manifest error instead of a
// zero-pin parse on malformed input.
const lockfileSchema = `{
  "type": "object",
  "required": ["object"],
  "properties": {
    "object": {
      "type": "object",
      "required": ["pins"],
      "properties": {
        "pins": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["package", "repositoryURL"],
            "properties": {
              "package": {"type": "string"},
              "repositoryURL": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

// parseLockfile reads and validates a lockfile, returning its pins.
func parseLockfile(lockPath string) ([]Pin, error) {
	data, err := os.ReadFile(lockPath) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return nil, &FilesystemError{Path: lockPath, Err: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(lockfileSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &ManifestError{Path: lockPath, Reason: "lockfile is not valid JSON", Err: err}
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &ManifestError{Path: lockPath, Reason: "lockfile does not match the expected shape (" + strings.Join(problems, "; ") + ")"}
	}

	var doc lockfileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestError{Path: lockPath, Reason: "failed to parse lockfile", Err: err}
	}
	return doc.Object.Pins, nil
}

// pinNameSet derives the accepted cached-package names from pins: the
// lowercased package identifier and the lowercased final path segment of the
// repository URL.
func pinNameSet(pins []Pin) map[string]bool {
	names := make(map[string]bool, len(pins)*2)
	for _, pin := range pins {
		if pin.Package != "" {
			names[strings.ToLower(pin.Package)] = true
		}
		if seg := finalPathSegment(pin.RepositoryURL); seg != "" {
			names[strings.ToLower(seg)] = true
		}
	}
	return names
}

func finalPathSegment(repo string) string {
	target := repo
	if u, err := url.Parse(repo); err == nil && u.Path != "" {
		target = u.Path
	}
	seg := path.Base(strings.TrimSuffix(target, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	return seg
}
