package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/gpuinfo"
)

type tableStyles struct {
	title   lipgloss.Style
	adapter lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	yes     lipgloss.Style
	no      lipgloss.Style
	failure lipgloss.Style
}

func newTableStyles(w io.Writer, color bool) tableStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return tableStyles{
			title: plain, adapter: plain, section: plain, key: plain,
			value: plain, yes: plain, no: plain, failure: plain,
		}
	}
	r := lipgloss.NewRenderer(w)
	return tableStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		adapter: r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		key:     r.NewStyle().Foreground(lipgloss.Color("252")),
		value:   r.NewStyle().Foreground(lipgloss.Color("252")),
		yes:     r.NewStyle().Foreground(lipgloss.Color("42")),
		no:      r.NewStyle().Foreground(lipgloss.Color("242")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// keyWidth is the widest key in the schema plus padding, so every adapter
// lines up the same way.
var keyWidth = func() int {
	w := len("texture-adapter-specific-format-features")
	for _, s := range gpuinfo.LimitSchema() {
		w = max(w, len(s.Name))
	}
	return w + 2
}()

type tableWriter struct {
	w   io.Writer
	st  tableStyles
	err error
}

func (t *tableWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *tableWriter) section(s section, valueStyle func(string) lipgloss.Style) {
	t.printf("  %s\n", t.st.section.Render(s.title))
	key := t.st.key.Width(keyWidth)
	for _, r := range s.rows {
		t.printf("    %s%s\n", key.Render(r.key), valueStyle(r.value).Render(r.value))
	}
}

func writeTable(w io.Writer, m *gpuinfo.CapabilityModel, o *options) error {
	t := &tableWriter{w: w, st: newTableStyles(w, o.color)}
	f := newFormatter(o)
	plain := func(string) lipgloss.Style { return t.st.value }
	flags := func(v string) lipgloss.Style {
		if v == "yes" {
			return t.st.yes
		}
		return t.st.no
	}

	adapters := m.Adapters()
	t.printf("%s\n\n", t.st.title.Render(fmt.Sprintf("gpuinfo %s: %d adapter(s)", gpuinfo.Version, len(adapters))))
	for i, r := range adapters {
		t.printf("%s\n", t.st.adapter.Render(fmt.Sprintf("Adapter %d: %s (%s)", i, r.Identity.Name, r.Backend.DisplayName())))
		for _, s := range adapterSections(r, f) {
			if s.title == "Features" {
				t.section(s, flags)
			} else {
				t.section(s, plain)
			}
		}
		t.printf("\n")
	}

	t.printf("%s\n", t.st.adapter.Render("Summary"))
	t.section(backendsSection(m), plain)
	if s, ok := failuresSection(m); ok {
		t.section(s, func(string) lipgloss.Style { return t.st.failure })
	}
	if len(adapters) == 0 {
		t.printf("\nno adapters found\n")
	}
	return t.err
}
