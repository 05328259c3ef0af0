// Package exitcode provides standardized exit codes for licenseer
package exitcode

// Exit codes for the licenseer CLI
const (
	Success         = 0
	GeneralError    = 1
	UsageError      = 2
	ValidationError = 3
	FileSystemError = 4
	ManifestError   = 5
	ConfigError     = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case ManifestError:
		return "Dependency manifest error"
	case ConfigError:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}
