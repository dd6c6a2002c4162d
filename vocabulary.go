package gpuinfo

import (
	"github.com/gogpu/gpucontext"
)

// DeviceKind classifies an adapter's physical nature.
type DeviceKind string

// Canonical device kinds.
const (
	DeviceDiscrete   DeviceKind = "discrete"
	DeviceIntegrated DeviceKind = "integrated"
	DeviceVirtual    DeviceKind = "virtual"
	DeviceCPU        DeviceKind = "cpu"
	DeviceUnknown    DeviceKind = "unknown"
)

// String returns the kind token.
func (k DeviceKind) String() string { return string(k) }

// DisplayName returns a human readable label for the kind.
func (k DeviceKind) DisplayName() string {
	switch k {
	case DeviceDiscrete:
		return "Discrete GPU"
	case DeviceIntegrated:
		return "Integrated GPU"
	case DeviceVirtual:
		return "Virtual GPU"
	case DeviceCPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// AdapterType converts k to the gpucontext adapter classification shared by
// the gogpu ecosystem. Virtual and unknown devices map to
// [gpucontext.AdapterTypeUnknown].
func (k DeviceKind) AdapterType() gpucontext.AdapterType {
	switch k {
	case DeviceDiscrete:
		return gpucontext.AdapterTypeDiscrete
	case DeviceIntegrated:
		return gpucontext.AdapterTypeIntegrated
	case DeviceCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Feature is a canonical optional capability name.
type Feature string

// Canonical features.
const (
	FeatureDepthClipControl              Feature = "depth-clip-control"
	FeatureDepth32FloatStencil8          Feature = "depth32float-stencil8"
	FeatureTextureCompressionBC          Feature = "texture-compression-bc"
	FeatureTextureCompressionETC2        Feature = "texture-compression-etc2"
	FeatureTextureCompressionASTC        Feature = "texture-compression-astc"
	FeatureIndirectFirstInstance         Feature = "indirect-first-instance"
	FeatureShaderF16                     Feature = "shader-f16"
	FeatureRG11B10UfloatRenderable       Feature = "rg11b10ufloat-renderable"
	FeatureBGRA8UnormStorage             Feature = "bgra8unorm-storage"
	FeatureFloat32Filterable             Feature = "float32-filterable"
	FeatureTimestampQuery                Feature = "timestamp-query"
	FeaturePipelineStatisticsQuery       Feature = "pipeline-statistics-query"
	FeatureMultiDrawIndirect             Feature = "multi-draw-indirect"
	FeatureMultiDrawIndirectCount        Feature = "multi-draw-indirect-count"
	FeaturePushConstants                 Feature = "push-constants"
	FeatureAdapterSpecificFormatFeatures Feature = "texture-adapter-specific-format-features"
	FeatureShaderF64                     Feature = "shader-f64"
	FeatureVertexAttribute64Bit          Feature = "vertex-attribute-64bit"
	FeatureSubgroups                     Feature = "subgroups"
	FeatureSubgroupBarrier               Feature = "subgroup-barrier"
	FeatureComputeShaders                Feature = "compute-shaders"
	FeatureFragmentWritableStorage       Feature = "fragment-writable-storage"
	FeatureBaseVertexBaseInstance        Feature = "base-vertex-base-instance"
	FeatureReadOnlyDepthStencil          Feature = "read-only-depth-stencil"
	FeatureAnisotropicFiltering          Feature = "anisotropic-filtering"
)

// featureVocabulary fixes the bit position and listing order of every feature.
var featureVocabulary = [...]Feature{
	FeatureDepthClipControl,
	FeatureDepth32FloatStencil8,
	FeatureTextureCompressionBC,
	FeatureTextureCompressionETC2,
	FeatureTextureCompressionASTC,
	FeatureIndirectFirstInstance,
	FeatureShaderF16,
	FeatureRG11B10UfloatRenderable,
	FeatureBGRA8UnormStorage,
	FeatureFloat32Filterable,
	FeatureTimestampQuery,
	FeaturePipelineStatisticsQuery,
	FeatureMultiDrawIndirect,
	FeatureMultiDrawIndirectCount,
	FeaturePushConstants,
	FeatureAdapterSpecificFormatFeatures,
	FeatureShaderF64,
	FeatureVertexAttribute64Bit,
	FeatureSubgroups,
	FeatureSubgroupBarrier,
	FeatureComputeShaders,
	FeatureFragmentWritableStorage,
	FeatureBaseVertexBaseInstance,
	FeatureReadOnlyDepthStencil,
	FeatureAnisotropicFiltering,
}

var featureIndex = func() map[Feature]int {
	m := make(map[Feature]int, len(featureVocabulary))
	for i, f := range featureVocabulary {
		m[f] = i
	}
	return m
}()

// Features returns the full canonical feature vocabulary in listing order.
func Features() []Feature {
	out := make([]Feature, len(featureVocabulary))
	copy(out, featureVocabulary[:])
	return out
}

// Known reports whether f belongs to the canonical vocabulary.
func (f Feature) Known() bool {
	_, ok := featureIndex[f]
	return ok
}
