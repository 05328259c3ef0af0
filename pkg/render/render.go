// Package render turns an ordered library list into a report document.
// Templates substitute the $name, $type and $text placeholders per library
// plus the format's $start, $end and $separator literals; the document is
// always start + join(rows, separator) + end.
package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/beevik/etree"
	"github.com/kindredhq/licenseer/pkg/discovery"
	"github.com/kindredhq/licenseer/pkg/logger"
)

// Template describes how one report is assembled. Row is rendered once per
// library; Start, End and Separator frame the list.
type Template struct {
	Row       string
	Start     string
	End       string
	Separator string
}

// DefaultTemplate returns the built-in template for the format. A custom
// template source replaces Row only; the framing stays with the format.
func (f Format) DefaultTemplate() Template {
	switch f {
	case JSON:
		return Template{
			Row:       `  {"name": "$name", "type": "$type", "text": "$text"}`,
			Start:     "[\n",
			Separator: ",\n",
			End:       "\n]\n",
		}
	case XML:
		return Template{
			Row:       `  <library name="$name" type="$type">` + "\n    <text>$text</text>\n  </library>",
			Start:     "<licenses>\n",
			Separator: "\n",
			End:       "\n</licenses>\n",
		}
	default:
		return Template{
			Row:       "$name ($type)\n\n$text",
			Start:     "",
			Separator: "\n\n---\n\n",
			End:       "\n",
		}
	}
}

// WithRow returns a copy of the template with the row source replaced.
func (t Template) WithRow(row string) Template {
	t.Row = row
	return t
}

// Render assembles the report for the given libraries. JSON and XML output
// is additionally validated and prettified; when a custom row template does
// not produce well-formed output, the assembled text is returned as-is with
// a warning rather than failing the export.
func Render(libs []discovery.Library, f Format, tpl Template) string {
	rows := make([]string, 0, len(libs))
	for _, lib := range libs {
		rows = append(rows, expandRow(tpl, f, lib))
	}
	doc := tpl.Start + strings.Join(rows, tpl.Separator) + tpl.End

	switch f {
	case JSON:
		return prettifyJSON(doc)
	case XML:
		return checkXML(doc)
	default:
		return doc
	}
}

func expandRow(tpl Template, f Format, lib discovery.Library) string {
	return strings.NewReplacer(
		"$name", escape(f, lib.Name),
		"$type", escape(f, lib.TypeName()),
		"$text", escape(f, lib.LicenseText),
		"$start", tpl.Start,
		"$end", tpl.End,
		"$separator", tpl.Separator,
	).Replace(tpl.Row)
}

// escape makes a raw value safe to splice into a row of the given format.
func escape(f Format, value string) string {
	switch f {
	case JSON:
		encoded, err := json.Marshal(value)
		if err != nil {
			return value
		}
		return string(encoded[1 : len(encoded)-1])
	case XML:
		return xmlEscaper.Replace(value)
	default:
		return value
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func prettifyJSON(doc string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "  "); err != nil {
		logger.Warn("rendered report is not well-formed JSON, leaving it untouched", logger.Err(err))
		return doc
	}
	buf.WriteByte('\n')
	return buf.String()
}

// checkXML parses the assembled document to catch custom templates that
// break well-formedness. The original text is always returned: re-indenting
// would reflow whitespace inside license text nodes.
func checkXML(doc string) string {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(doc); err != nil {
		logger.Warn("rendered report is not well-formed XML", logger.Err(err))
	}
	return doc
}
