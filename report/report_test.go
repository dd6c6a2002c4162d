package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gpuinfo"
	"github.com/gogpu/gpuinfo/snapshot"
)

const host = `
host: report
backends:
  vulkan:
    adapters:
      - name: Radeon | Pro
        vendor_id: 0x1002
        device_id: 0x73BF
        device_type: VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU
        features: [textureCompressionBC, someVendorThing]
        limits:
          maxImageDimension2D: 16384
          maxBufferSize: 268435456
          maxUniformBufferRange: -4
      - name: gone
        lost: true
  gl:
    error: {kind: driver-missing, reason: no EGL display}
`

func testModel(t *testing.T) *gpuinfo.CapabilityModel {
	t.Helper()
	h, err := snapshot.Parse([]byte(host))
	require.NoError(t, err)
	m, err := gpuinfo.Collect(context.Background(),
		gpuinfo.WithDrivers(h.Drivers()...),
		gpuinfo.WithBackends(gpuinfo.BackendVulkan, gpuinfo.BackendGL))
	require.NoError(t, err)
	return m
}

func render(t *testing.T, m *gpuinfo.CapabilityModel, f Format, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, f, opts...))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatTable,
		"TABLE":    FormatTable,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"json":     FormatJSON,
		"yml":      FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestTableListsEverything(t *testing.T) {
	out := render(t, testModel(t), FormatTable, WithColor(false))

	assert.Contains(t, out, "Adapter 0: Radeon | Pro (Vulkan)")
	assert.Contains(t, out, "AMD (0x1002)")
	assert.Contains(t, out, "0x73BF")
	assert.Contains(t, out, "Discrete GPU")
	for _, g := range gpuinfo.LimitGroups() {
		assert.Contains(t, out, string(g))
	}
	for _, s := range gpuinfo.LimitSchema() {
		assert.Contains(t, out, s.Name)
	}
	for _, f := range gpuinfo.Features() {
		assert.Contains(t, out, string(f))
	}
	assert.Contains(t, out, "16,384")
	assert.Contains(t, out, "268,435,456 (256 MiB)")
	assert.Contains(t, out, "unsupported")
	assert.Contains(t, out, "negative value")
	assert.Contains(t, out, "someVendorThing")
	assert.Contains(t, out, "no EGL display")
	assert.Contains(t, out, "vulkan adapter 1")
	assert.NotContains(t, out, "\x1b[")
}

func TestTableLanguage(t *testing.T) {
	out := render(t, testModel(t), FormatTable, WithColor(false), WithLanguage(language.German))
	assert.Contains(t, out, "16.384")
}

func TestMarkdown(t *testing.T) {
	out := render(t, testModel(t), FormatMarkdown)

	assert.True(t, strings.HasPrefix(out, "# gpuinfo "))
	assert.Contains(t, out, `## Adapter 0: Radeon \| Pro (Vulkan)`)
	assert.Contains(t, out, "| Key | Value |")
	for _, s := range gpuinfo.LimitSchema() {
		assert.Contains(t, out, "| "+s.Name+" | ")
	}
	assert.Contains(t, out, "| gl | driver-missing: no EGL display |")
}

func TestJSONKeys(t *testing.T) {
	out := render(t, testModel(t), FormatJSON)

	var doc struct {
		Adapters []struct {
			Backend  string            `json:"backend"`
			Features []string          `json:"features"`
			Limits   map[string]uint64 `json:"limits"`
		} `json:"adapters"`
		BackendFailures []map[string]string `json:"backend_failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Adapters, 1)
	a := doc.Adapters[0]
	assert.Equal(t, "vulkan", a.Backend)
	assert.Contains(t, a.Features, "texture-compression-bc")
	assert.Len(t, a.Limits, len(gpuinfo.LimitSchema()))
	assert.Equal(t, uint64(16384), a.Limits[gpuinfo.LimitMaxTextureDimension2D])
	require.Len(t, doc.BackendFailures, 1)
	assert.Equal(t, "driver-missing", doc.BackendFailures[0]["kind"])

	// Limits keep schema order in the encoded text.
	first := strings.Index(out, `"`+gpuinfo.LimitMaxTextureDimension1D+`"`)
	last := strings.Index(out, `"`+gpuinfo.LimitMaxPushConstantSize+`"`)
	assert.Less(t, first, last)
}

func TestYAMLKeys(t *testing.T) {
	out := render(t, testModel(t), FormatYAML)

	var doc struct {
		Adapters []struct {
			Identity struct {
				Kind string `yaml:"device_kind"`
			} `yaml:"identity"`
			Limits map[string]uint64 `yaml:"limits"`
		} `yaml:"adapters"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Adapters, 1)
	assert.Equal(t, "discrete", doc.Adapters[0].Identity.Kind)
	assert.Len(t, doc.Adapters[0].Limits, len(gpuinfo.LimitSchema()))
}

func TestWriteRejects(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, FormatJSON))
	assert.Error(t, Write(&buf, testModel(t), Format("csv")))
}
