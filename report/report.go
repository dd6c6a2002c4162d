// Package report renders a gpuinfo.CapabilityModel for people and for
// machines.
//
// The table and markdown renderers group limits into the same sections for
// every adapter and always list every canonical limit, including the ones a
// backend did not report. The JSON and YAML renderers emit the model's
// canonical keys unchanged.
package report

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"

	"github.com/gogpu/gpuinfo"
)

// Format selects a renderer.
type Format string

// Output formats.
const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat parses a format name. "md" and "yml" are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.WithHint(
		errors.Newf("report: unknown format %q", s),
		"valid formats: table, markdown, json, yaml",
	)
}

// Option configures rendering.
type Option func(*options)

type options struct {
	color bool
	lang  language.Tag
}

func defaultOptions() options {
	return options{color: true, lang: language.English}
}

// WithColor enables or disables terminal styling in the table renderer.
// Styling is also dropped when the writer is not a terminal.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithLanguage sets the locale used to group digits in counts.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// Write renders m to w in format f.
func Write(w io.Writer, m *gpuinfo.CapabilityModel, f Format, opts ...Option) error {
	if m == nil {
		return errors.New("report: nil model")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch f {
	case FormatTable:
		return writeTable(w, m, &o)
	case FormatMarkdown:
		return writeMarkdown(w, m, &o)
	case FormatJSON:
		return writeJSON(w, m)
	case FormatYAML:
		return writeYAML(w, m)
	}
	return errors.Newf("report: unknown format %q", string(f))
}
