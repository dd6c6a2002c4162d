package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gpuinfo"
)

func collect(t *testing.T, h *Host) *gpuinfo.CapabilityModel {
	t.Helper()
	model, err := gpuinfo.Collect(context.Background(), gpuinfo.WithDrivers(h.Drivers()...))
	require.NoError(t, err)
	return model
}

func TestLoadLab(t *testing.T) {
	h, err := Load("testdata/lab-01.yaml")
	require.NoError(t, err)
	assert.Equal(t, "lab-01", h.Name)
	assert.Equal(t, []gpuinfo.Backend{
		gpuinfo.BackendVulkan, gpuinfo.BackendMetal, gpuinfo.BackendDX12, gpuinfo.BackendGL,
	}, h.Backends())

	model := collect(t, h)
	adapters := model.Adapters()
	require.Len(t, adapters, 3)

	rtx := adapters[0]
	assert.Equal(t, gpuinfo.BackendVulkan, rtx.Backend)
	assert.Equal(t, "NVIDIA", rtx.Identity.Vendor)
	assert.Equal(t, gpuinfo.DeviceDiscrete, rtx.Identity.Kind)
	assert.Equal(t, uint32(0x2684), rtx.Identity.DeviceID)
	assert.True(t, rtx.Supports(
		gpuinfo.FeatureTextureCompressionBC,
		gpuinfo.FeatureShaderF64,
		gpuinfo.FeatureAnisotropicFiltering,
		gpuinfo.FeaturePushConstants,
		gpuinfo.FeatureComputeShaders,
	))
	assert.Equal(t, []string{"VK_KHR_push_descriptor"}, rtx.Dropped)
	assert.Equal(t, uint64(32768), rtx.Limits.Value(gpuinfo.LimitMaxTextureDimension2D))
	assert.Equal(t, uint64(4294967296), rtx.Limits.Value(gpuinfo.LimitMaxBufferSize))
	assert.Equal(t, uint64(4294967295), rtx.Limits.Value(gpuinfo.LimitMaxStorageBufferBindingSize))
	assert.Equal(t, uint64(64), rtx.Limits.Value(gpuinfo.LimitMinUniformBufferOffsetAlignment))
	assert.Contains(t, rtx.Unreported, gpuinfo.LimitMaxTextureDimension1D)

	llvmpipe := adapters[1]
	assert.Equal(t, gpuinfo.DeviceCPU, llvmpipe.Identity.Kind)
	assert.Equal(t, "Mesa", llvmpipe.Identity.Vendor)
	assert.Equal(t, 1, llvmpipe.Ordinal)

	intel := adapters[2]
	assert.Equal(t, gpuinfo.BackendGL, intel.Backend)
	assert.Equal(t, "Intel", intel.Identity.Vendor)
	assert.Equal(t, gpuinfo.DeviceUnknown, intel.Identity.Kind)
	assert.True(t, intel.Supports(gpuinfo.FeatureComputeShaders))
	assert.False(t, intel.Supports(gpuinfo.FeaturePushConstants))
	assert.Equal(t, []string{"GL_EXT_texture_compression_s3tc"}, intel.Dropped)
	assert.Equal(t, uint64(16384), intel.Limits.Value(gpuinfo.LimitMaxTextureDimension1D))
	assert.Equal(t, uint64(16384), intel.Limits.Value(gpuinfo.LimitMaxTextureDimension2D))

	lost := model.AdapterFailures()
	require.Len(t, lost, 1)
	assert.Equal(t, gpuinfo.BackendVulkan, lost[0].Backend)
	assert.Equal(t, 2, lost[0].Ordinal)
	assert.Contains(t, lost[0].Reason, "eGPU was removed")

	status := model.Backends()
	require.Len(t, status, 5)
	assert.Equal(t, 3, status[0].Adapters)

	kinds := map[gpuinfo.Backend]gpuinfo.FailureKind{}
	for _, f := range model.BackendFailures() {
		kinds[f.Backend] = f.Kind
	}
	assert.Equal(t, map[gpuinfo.Backend]gpuinfo.FailureKind{
		gpuinfo.BackendMetal:    gpuinfo.FailureUnsupportedPlatform,
		gpuinfo.BackendDX12:     gpuinfo.FailurePermissionDenied,
		gpuinfo.BackendSoftware: gpuinfo.FailureNotInstalled,
	}, kinds)
	assert.Equal(t, "Metal requires macOS", model.FailureReasons()["metal"])
}

const equivalent = `
host: equivalence
backends:
  vulkan:
    adapters:
      - name: native
        device_type: VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU
        features: [textureCompressionETC2, textureCompressionBC, shaderFloat16, timestampComputeAndGraphics]
        limits:
          maxImageDimension2D: 16384
          maxStorageBufferRange: 134217728
          maxBufferSize: 268435456
          minStorageBufferOffsetAlignment: 32
          optimalBufferCopyRowPitchAlignment: 128
          maxComputeWorkGroupInvocations: 512
          maxComputeWorkGroupSize[0]: 512
      - name: hal
        device_type: IntegratedGPU
        features: [TextureCompressionETC2, TextureCompressionBC, ShaderF16, TimestampQuery]
        limits:
          MaxTextureDimension2D: 16384
          MaxStorageBufferBindingSize: 134217728
          MaxBufferSize: 268435456
          MinStorageBufferOffsetAlignment: 32
          Alignments.BufferCopyPitch: 128
          MaxComputeInvocationsPerWorkgroup: 512
          MaxComputeWorkgroupSizeX: 512
`

func TestNativeAndHALDialectsAgree(t *testing.T) {
	h, err := Parse([]byte(equivalent))
	require.NoError(t, err)

	model, err := gpuinfo.Collect(context.Background(),
		gpuinfo.WithDrivers(h.Drivers()...), gpuinfo.WithBackends(gpuinfo.BackendVulkan))
	require.NoError(t, err)

	adapters := model.Adapters()
	require.Len(t, adapters, 2)
	native, hal := adapters[0], adapters[1]
	assert.Equal(t, hal.Identity.Kind, native.Identity.Kind)
	assert.Equal(t, hal.Features.Strings(), native.Features.Strings())
	assert.Equal(t, hal.Limits, native.Limits)
	assert.Equal(t, hal.Unreported, native.Unreported)
	assert.Empty(t, native.Dropped)
	assert.Empty(t, hal.Dropped)
}

func TestNegativeLimitIsAnomaly(t *testing.T) {
	h, err := Parse([]byte(`
host: broken
backends:
  gl:
    adapters:
      - name: broken
        limits: {GL_MAX_TEXTURE_SIZE: -1, GL_MAX_UNIFORM_BUFFER_BINDINGS: 12}
`))
	require.NoError(t, err)
	model := collect(t, h)

	adapters := model.Adapters()
	require.Len(t, adapters, 1)
	r := adapters[0]
	assert.Zero(t, r.Limits.Value(gpuinfo.LimitMaxTextureDimension2D))
	require.NotEmpty(t, r.Anomalies)
	assert.Equal(t, "GL_MAX_TEXTURE_SIZE", r.Anomalies[0].Native)
	assert.Equal(t, int64(-1), r.Anomalies[0].Reported)
	assert.Equal(t, gpuinfo.LimitMaxTextureDimension1D, r.Anomalies[0].Limit)
	assert.ErrorIs(t, r.Anomalies[0].Err(), gpuinfo.ErrMalformedCapability)
}

func TestQueryError(t *testing.T) {
	h, err := Parse([]byte(`
backends:
  software:
    adapters:
      - {name: flaky, query_error: "device reset"}
      - {name: fine, device_type: CPU}
`))
	require.NoError(t, err)
	model := collect(t, h)

	require.Len(t, model.Adapters(), 1)
	assert.Equal(t, gpuinfo.DeviceCPU, model.Adapters()[0].Identity.Kind)
	require.Len(t, model.AdapterFailures(), 1)
	assert.Contains(t, model.AdapterFailures()[0].Reason, "device reset")
}

func TestEmptySnapshotHasNoBackend(t *testing.T) {
	h, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, h.Backends())

	_, err = gpuinfo.Collect(context.Background(), gpuinfo.WithDrivers(h.Drivers()...))
	assert.ErrorIs(t, err, gpuinfo.ErrNoBackendAvailable)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown backend", "backends: {glide: {}}"},
		{"duplicate backend", "backends: {gl: {}, opengl: {}}"},
		{"error and adapters", "backends: {gl: {error: {kind: init-failed}, adapters: [{name: x}]}}"},
		{"unknown key", "backends: {gl: {adapters: [{name: x, colour: red}]}}"},
		{"bad limit", "backends: {gl: {adapters: [{name: x, limits: {GL_MAX_TEXTURE_SIZE: big}}]}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}
