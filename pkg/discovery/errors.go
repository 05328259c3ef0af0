package discovery

import "fmt"

// FilesystemError reports an unreadable directory or file. Discovery is
// fail-fast: a license file that cannot be read aborts the whole run rather
// than silently producing an incomplete attribution report.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// ManifestError reports a malformed or unresolved dependency lockfile.
type ManifestError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ManifestError) Unwrap() error { return e.Err }
