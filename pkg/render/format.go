package render

import "strings"

// Format is the closed set of report output formats.
type Format int

const (
	Text Format = iota
	JSON
	XML
)

// String returns the canonical flag value for the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case XML:
		return "xml"
	default:
		return "text"
	}
}

// Formats returns all formats, for flag help and validation messages.
func Formats() []Format {
	return []Format{Text, JSON, XML}
}

// ParseFormat maps a case-insensitive flag value to a Format.
func ParseFormat(s string) (Format, bool) {
	for _, f := range Formats() {
		if strings.EqualFold(s, f.String()) {
			return f, true
		}
	}
	return Text, false
}

// DetectFormat infers a format from template content, used when no explicit
// --format is given: markup templates read as XML, brace or bracket openers
// as JSON, everything else as plain text.
func DetectFormat(template string) Format {
	trimmed := strings.TrimSpace(template)
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return XML
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return JSON
	default:
		return Text
	}
}
