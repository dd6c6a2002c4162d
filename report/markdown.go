package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gpuinfo"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func writeMarkdown(w io.Writer, m *gpuinfo.CapabilityModel, o *options) error {
	var b strings.Builder
	f := newFormatter(o)

	fmt.Fprintf(&b, "# gpuinfo %s\n", gpuinfo.Version)
	for i, r := range m.Adapters() {
		fmt.Fprintf(&b, "\n## Adapter %d: %s (%s)\n", i, cellEscaper.Replace(r.Identity.Name), r.Backend.DisplayName())
		for _, s := range adapterSections(r, f) {
			markdownTable(&b, "###", s)
		}
	}

	b.WriteString("\n## Summary\n")
	markdownTable(&b, "###", backendsSection(m))
	if s, ok := failuresSection(m); ok {
		markdownTable(&b, "###", s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownTable(b *strings.Builder, heading string, s section) {
	fmt.Fprintf(b, "\n%s %s\n\n| Key | Value |\n| --- | --- |\n", heading, s.title)
	for _, r := range s.rows {
		fmt.Fprintf(b, "| %s | %s |\n", cellEscaper.Replace(r.key), cellEscaper.Replace(r.value))
	}
}
