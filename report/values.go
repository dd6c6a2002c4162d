package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"

	"github.com/gogpu/gpuinfo"
)

// formatter turns model values into display strings.
type formatter struct {
	p *message.Printer
}

func newFormatter(o *options) formatter {
	return formatter{p: message.NewPrinter(o.lang)}
}

func (f formatter) count(v uint64) string {
	return f.p.Sprintf("%d", v)
}

// limit formats one limit value. Zero is shown as "unsupported" when the
// backend did not report the limit.
func (f formatter) limit(e gpuinfo.LimitEntry, unreported bool) string {
	if unreported {
		return "unsupported"
	}
	if e.Unit == gpuinfo.UnitBytes && e.Value >= 1024 {
		return fmt.Sprintf("%s (%s)", f.count(e.Value), humanize.IBytes(e.Value))
	}
	return f.count(e.Value)
}

func vendor(id gpuinfo.AdapterIdentity) string {
	if id.VendorID == 0 {
		return id.Vendor
	}
	return fmt.Sprintf("%s (0x%04X)", id.Vendor, id.VendorID)
}

func hexID(v uint32) string {
	return fmt.Sprintf("0x%04X", v)
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shaderSummary(s *gpuinfo.ShaderTarget) string {
	switch {
	case s == nil:
		return ""
	case s.OK:
		return strings.TrimSpace(s.Language + " " + s.Version)
	default:
		return s.Language + " unavailable: " + s.Error
	}
}

func backendSummary(st gpuinfo.BackendStatus) string {
	if !st.Live {
		return "unavailable"
	}
	s := fmt.Sprintf("live, %d adapter", st.Adapters)
	if st.Adapters != 1 {
		s += "s"
	}
	if sh := shaderSummary(st.Shader); sh != "" {
		s += ", " + sh
	}
	return s
}

// row is one key/value line in a section.
type row struct {
	key, value string
}

type section struct {
	title string
	rows  []row
}

// adapterSections lays out one adapter report. Both text renderers use it,
// so they always agree on content and order.
func adapterSections(r gpuinfo.AdapterReport, f formatter) []section {
	id := r.Identity
	info := section{title: "Adapter Information", rows: []row{
		{"Name", id.Name},
		{"Vendor", orNone(vendor(id))},
		{"Device", hexID(id.DeviceID)},
		{"Type", id.Kind.DisplayName()},
		{"Driver", orNone(id.Driver)},
		{"Driver Info", orNone(id.DriverInfo)},
		{"Backend", r.Backend.DisplayName()},
	}}

	feats := section{title: "Features"}
	for _, ft := range gpuinfo.Features() {
		v := "no"
		if r.Features.Has(ft) {
			v = "yes"
		}
		feats.rows = append(feats.rows, row{string(ft), v})
	}

	unreported := make(map[string]bool, len(r.Unreported))
	for _, name := range r.Unreported {
		unreported[name] = true
	}
	byGroup := make(map[gpuinfo.LimitGroup][]row)
	for _, e := range r.Limits.Entries() {
		byGroup[e.Group] = append(byGroup[e.Group], row{e.Name, f.limit(e, unreported[e.Name])})
	}

	out := []section{info, feats}
	for _, g := range gpuinfo.LimitGroups() {
		out = append(out, section{title: string(g), rows: byGroup[g]})
	}

	if len(r.Anomalies) > 0 {
		s := section{title: "Anomalies"}
		for _, a := range r.Anomalies {
			key := a.Limit
			if key == "" {
				key = a.Native
			}
			s.rows = append(s.rows, row{key, fmt.Sprintf("%s=%d: %s", a.Native, a.Reported, a.Reason)})
		}
		out = append(out, s)
	}
	if len(r.Dropped) > 0 {
		out = append(out, section{title: "Unrecognized", rows: []row{{"native names", strings.Join(r.Dropped, ", ")}}})
	}
	return out
}

func backendsSection(m *gpuinfo.CapabilityModel) section {
	s := section{title: "Backends"}
	for _, st := range m.Backends() {
		s.rows = append(s.rows, row{st.Backend.String(), backendSummary(st)})
	}
	return s
}

// failuresSection returns false when nothing failed.
func failuresSection(m *gpuinfo.CapabilityModel) (section, bool) {
	s := section{title: "Failures"}
	for _, bf := range m.BackendFailures() {
		s.rows = append(s.rows, row{bf.Backend.String(), fmt.Sprintf("%s: %s", bf.Kind, bf.Reason)})
	}
	for _, af := range m.AdapterFailures() {
		s.rows = append(s.rows, row{fmt.Sprintf("%s adapter %d", af.Backend, af.Ordinal), af.Reason})
	}
	return s, len(s.rows) > 0
}
