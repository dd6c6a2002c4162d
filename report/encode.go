package report

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gpuinfo"
)

func writeJSON(w io.Writer, m *gpuinfo.CapabilityModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(m), "report: encode json")
}

func writeYAML(w io.Writer, m *gpuinfo.CapabilityModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "report: encode yaml")
	}
	return errors.Wrap(enc.Close(), "report: encode yaml")
}
