package halprobe

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuinfo"
)

var errForeignHandle = errors.New("halprobe: adapter handle belongs to another session")

type handle struct {
	owner   *session
	ordinal int
}

func (h handle) Ordinal() int { return h.ordinal }

type session struct {
	backend  gpuinfo.Backend
	instance hal.Instance
	exposed  []hal.ExposedAdapter
}

func (s *session) Adapters() ([]gpuinfo.AdapterHandle, error) {
	if s.instance == nil {
		return nil, errors.New("halprobe: session closed")
	}
	s.exposed = s.instance.EnumerateAdapters(nil)
	handles := make([]gpuinfo.AdapterHandle, len(s.exposed))
	for i := range s.exposed {
		handles[i] = handle{owner: s, ordinal: i}
	}
	return handles, nil
}

func (s *session) Query(h gpuinfo.AdapterHandle) (gpuinfo.NativeCapabilities, error) {
	hh, ok := h.(handle)
	if !ok || hh.owner != s {
		return gpuinfo.NativeCapabilities{}, errForeignHandle
	}
	if hh.ordinal >= len(s.exposed) {
		return gpuinfo.NativeCapabilities{}, errors.Mark(
			errors.Newf("halprobe: adapter %d no longer exposed", hh.ordinal), gpuinfo.ErrAdapterLost)
	}
	return describe(s.exposed[hh.ordinal]), nil
}

// ConcurrentQueries is false: HAL adapters make no thread-safety promise
// for capability queries.
func (s *session) ConcurrentQueries() bool { return false }

func (s *session) Close() {
	for _, ea := range s.exposed {
		if ea.Adapter != nil {
			ea.Adapter.Destroy()
		}
	}
	s.exposed = nil
	if s.instance != nil {
		s.instance.Destroy()
		s.instance = nil
	}
}

// describe renders an exposed adapter in the HAL dialect.
func describe(ea hal.ExposedAdapter) gpuinfo.NativeCapabilities {
	info := ea.Info
	return gpuinfo.NativeCapabilities{
		Name:       info.Name,
		Vendor:     info.Vendor,
		VendorID:   info.VendorID,
		DeviceID:   info.DeviceID,
		DeviceType: info.DeviceType.String(),
		Driver:     info.Driver,
		DriverInfo: info.DriverInfo,
		Features:   featureNames(ea),
		Limits:     limitValues(ea.Capabilities),
	}
}

var downlevelTokens = []struct {
	flag hal.DownlevelFlags
	name string
}{
	{hal.DownlevelFlagsComputeShaders, "Downlevel.ComputeShaders"},
	{hal.DownlevelFlagsFragmentWritableStorage, "Downlevel.FragmentWritableStorage"},
	{hal.DownlevelFlagsIndirectFirstInstance, "Downlevel.IndirectFirstInstance"},
	{hal.DownlevelFlagsBaseVertexBaseInstance, "Downlevel.BaseVertexBaseInstance"},
	{hal.DownlevelFlagsReadOnlyDepthStencil, "Downlevel.ReadOnlyDepthStencil"},
	{hal.DownlevelFlagsAnisotropicFiltering, "Downlevel.AnisotropicFiltering"},
}

// formatProbes are per-format capabilities that imply a feature even when
// the adapter does not list the feature bit itself.
var formatProbes = []struct {
	format gputypes.TextureFormat
	flag   hal.TextureFormatCapabilityFlags
	name   string
}{
	{gputypes.TextureFormatBGRA8Unorm, hal.TextureFormatCapabilityStorage, "Format.BGRA8Unorm.Storage"},
	{gputypes.TextureFormatRG11B10Ufloat, hal.TextureFormatCapabilityRenderAttachment, "Format.RG11B10Ufloat.RenderAttachment"},
	{gputypes.TextureFormatDepth32FloatStencil8, hal.TextureFormatCapabilityRenderAttachment, "Format.Depth32FloatStencil8.RenderAttachment"},
}

func featureNames(ea hal.ExposedAdapter) []string {
	var names []string
	for f := gputypes.FeatureDepthClipControl; f <= gputypes.FeatureSubgroupBarrier; f <<= 1 {
		if ea.Features.Contains(f) {
			names = append(names, f.String())
		}
	}
	flags := ea.Capabilities.DownlevelCapabilities.Flags
	for _, t := range downlevelTokens {
		if flags&t.flag != 0 {
			names = append(names, t.name)
		}
	}
	if ea.Adapter != nil {
		for _, p := range formatProbes {
			if ea.Adapter.TextureFormatCapabilities(p.format).Flags&p.flag != 0 {
				names = append(names, p.name)
			}
		}
	}
	return names
}

func limitValues(caps hal.Capabilities) []gpuinfo.NativeLimit {
	l := caps.Limits
	u32 := func(name string, v uint32) gpuinfo.NativeLimit {
		return gpuinfo.NativeLimit{Name: name, Value: int64(v)}
	}
	u64 := func(name string, v uint64) gpuinfo.NativeLimit {
		if v > math.MaxInt64 {
			v = math.MaxInt64
		}
		return gpuinfo.NativeLimit{Name: name, Value: int64(v)}
	}
	return []gpuinfo.NativeLimit{
		u32("MaxTextureDimension1D", l.MaxTextureDimension1D),
		u32("MaxTextureDimension2D", l.MaxTextureDimension2D),
		u32("MaxTextureDimension3D", l.MaxTextureDimension3D),
		u32("MaxTextureArrayLayers", l.MaxTextureArrayLayers),
		u32("MaxBindGroups", l.MaxBindGroups),
		u32("MaxBindGroupsPlusVertexBuffers", l.MaxBindGroupsPlusVertexBuffers),
		u32("MaxBindingsPerBindGroup", l.MaxBindingsPerBindGroup),
		u32("MaxDynamicUniformBuffersPerPipelineLayout", l.MaxDynamicUniformBuffersPerPipelineLayout),
		u32("MaxDynamicStorageBuffersPerPipelineLayout", l.MaxDynamicStorageBuffersPerPipelineLayout),
		u32("MaxSampledTexturesPerShaderStage", l.MaxSampledTexturesPerShaderStage),
		u32("MaxSamplersPerShaderStage", l.MaxSamplersPerShaderStage),
		u32("MaxStorageBuffersPerShaderStage", l.MaxStorageBuffersPerShaderStage),
		u32("MaxStorageTexturesPerShaderStage", l.MaxStorageTexturesPerShaderStage),
		u32("MaxUniformBuffersPerShaderStage", l.MaxUniformBuffersPerShaderStage),
		u64("MaxUniformBufferBindingSize", l.MaxUniformBufferBindingSize),
		u64("MaxStorageBufferBindingSize", l.MaxStorageBufferBindingSize),
		u32("MinUniformBufferOffsetAlignment", l.MinUniformBufferOffsetAlignment),
		u32("MinStorageBufferOffsetAlignment", l.MinStorageBufferOffsetAlignment),
		u32("MaxVertexBuffers", l.MaxVertexBuffers),
		u64("MaxBufferSize", l.MaxBufferSize),
		u32("MaxVertexAttributes", l.MaxVertexAttributes),
		u32("MaxVertexBufferArrayStride", l.MaxVertexBufferArrayStride),
		u32("MaxInterStageShaderVariables", l.MaxInterStageShaderVariables),
		u32("MaxColorAttachments", l.MaxColorAttachments),
		u32("MaxColorAttachmentBytesPerSample", l.MaxColorAttachmentBytesPerSample),
		u32("MaxComputeWorkgroupStorageSize", l.MaxComputeWorkgroupStorageSize),
		u32("MaxComputeInvocationsPerWorkgroup", l.MaxComputeInvocationsPerWorkgroup),
		u32("MaxComputeWorkgroupSizeX", l.MaxComputeWorkgroupSizeX),
		u32("MaxComputeWorkgroupSizeY", l.MaxComputeWorkgroupSizeY),
		u32("MaxComputeWorkgroupSizeZ", l.MaxComputeWorkgroupSizeZ),
		u32("MaxComputeWorkgroupsPerDimension", l.MaxComputeWorkgroupsPerDimension),
		u32("MaxPushConstantSize", l.MaxPushConstantSize),
		u32("MaxNonSamplerBindings", l.MaxNonSamplerBindings),
		u64("Alignments.BufferCopyOffset", caps.AlignmentsMask.BufferCopyOffset),
		u64("Alignments.BufferCopyPitch", caps.AlignmentsMask.BufferCopyPitch),
	}
}
