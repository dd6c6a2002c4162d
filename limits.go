package gpuinfo

// LimitClass decides which of two conflicting values is conservative.
type LimitClass uint8

const (
	// LimitMaximum is an upper bound; the lower value is conservative.
	LimitMaximum LimitClass = iota
	// LimitAlignment is a required alignment; the higher value is
	// conservative and every valid value is a power of two.
	LimitAlignment
)

// String returns the class token.
func (c LimitClass) String() string {
	if c == LimitAlignment {
		return "alignment"
	}
	return "maximum"
}

// LimitUnit is the measurement unit of a limit, used by formatters.
type LimitUnit uint8

const (
	UnitCount LimitUnit = iota
	UnitBytes
	UnitTexels
)

// String returns the unit token.
func (u LimitUnit) String() string {
	switch u {
	case UnitBytes:
		return "bytes"
	case UnitTexels:
		return "texels"
	default:
		return "count"
	}
}

// LimitGroup is the report section a limit is displayed in.
type LimitGroup string

// Limit groups in display order.
const (
	GroupTexture  LimitGroup = "Texture Limits"
	GroupBinding  LimitGroup = "Binding Limits"
	GroupResource LimitGroup = "Resource Limits"
	GroupBuffer   LimitGroup = "Buffer Limits"
	GroupVertex   LimitGroup = "Vertex Limits"
	GroupCompute  LimitGroup = "Compute Limits"
	GroupMisc     LimitGroup = "Miscellaneous Limits"
)

// LimitGroups returns the display groups in order.
func LimitGroups() []LimitGroup {
	return []LimitGroup{GroupTexture, GroupBinding, GroupResource, GroupBuffer, GroupVertex, GroupCompute, GroupMisc}
}

// LimitSpec describes one canonical limit.
type LimitSpec struct {
	Name  string
	Class LimitClass
	Unit  LimitUnit
	Group LimitGroup
}

// Canonical limit names.
const (
	LimitMaxTextureDimension1D                     = "max-texture-dimension-1d"
	LimitMaxTextureDimension2D                     = "max-texture-dimension-2d"
	LimitMaxTextureDimension3D                     = "max-texture-dimension-3d"
	LimitMaxTextureArrayLayers                     = "max-texture-array-layers"
	LimitMaxBindGroups                             = "max-bind-groups"
	LimitMaxBindGroupsPlusVertexBuffers            = "max-bind-groups-plus-vertex-buffers"
	LimitMaxBindingsPerBindGroup                   = "max-bindings-per-bind-group"
	LimitMaxDynamicUniformBuffersPerPipelineLayout = "max-dynamic-uniform-buffers-per-pipeline-layout"
	LimitMaxDynamicStorageBuffersPerPipelineLayout = "max-dynamic-storage-buffers-per-pipeline-layout"
	LimitMaxSampledTexturesPerShaderStage          = "max-sampled-textures-per-shader-stage"
	LimitMaxSamplersPerShaderStage                 = "max-samplers-per-shader-stage"
	LimitMaxStorageBuffersPerShaderStage           = "max-storage-buffers-per-shader-stage"
	LimitMaxStorageTexturesPerShaderStage          = "max-storage-textures-per-shader-stage"
	LimitMaxUniformBuffersPerShaderStage           = "max-uniform-buffers-per-shader-stage"
	LimitMaxUniformBufferBindingSize               = "max-uniform-buffer-binding-size"
	LimitMaxStorageBufferBindingSize               = "max-storage-buffer-binding-size"
	LimitMinUniformBufferOffsetAlignment           = "min-uniform-buffer-offset-alignment"
	LimitMinStorageBufferOffsetAlignment           = "min-storage-buffer-offset-alignment"
	LimitMaxVertexBuffers                          = "max-vertex-buffers"
	LimitMaxBufferSize                             = "max-buffer-size"
	LimitMaxVertexAttributes                       = "max-vertex-attributes"
	LimitMaxVertexBufferArrayStride                = "max-vertex-buffer-array-stride"
	LimitMaxInterStageShaderVariables              = "max-inter-stage-shader-variables"
	LimitMaxColorAttachments                       = "max-color-attachments"
	LimitMaxColorAttachmentBytesPerSample          = "max-color-attachment-bytes-per-sample"
	LimitMaxComputeWorkgroupStorageSize            = "max-compute-workgroup-storage-size"
	LimitMaxComputeInvocationsPerWorkgroup         = "max-compute-invocations-per-workgroup"
	LimitMaxComputeWorkgroupSizeX                  = "max-compute-workgroup-size-x"
	LimitMaxComputeWorkgroupSizeY                  = "max-compute-workgroup-size-y"
	LimitMaxComputeWorkgroupSizeZ                  = "max-compute-workgroup-size-z"
	LimitMaxComputeWorkgroupsPerDimension          = "max-compute-workgroups-per-dimension"
	LimitMaxPushConstantSize                       = "max-push-constant-size"
	LimitMaxNonSamplerBindings                     = "max-non-sampler-bindings"
	LimitBufferCopyOffsetAlignment                 = "buffer-copy-offset-alignment"
	LimitBufferCopyPitchAlignment                  = "buffer-copy-pitch-alignment"
)

// limitSchema is the fixed canonical schema. Its order is the display order.
var limitSchema = [...]LimitSpec{
	{LimitMaxTextureDimension1D, LimitMaximum, UnitTexels, GroupTexture},
	{LimitMaxTextureDimension2D, LimitMaximum, UnitTexels, GroupTexture},
	{LimitMaxTextureDimension3D, LimitMaximum, UnitTexels, GroupTexture},
	{LimitMaxTextureArrayLayers, LimitMaximum, UnitCount, GroupTexture},

	{LimitMaxBindGroups, LimitMaximum, UnitCount, GroupBinding},
	{LimitMaxBindGroupsPlusVertexBuffers, LimitMaximum, UnitCount, GroupBinding},
	{LimitMaxBindingsPerBindGroup, LimitMaximum, UnitCount, GroupBinding},
	{LimitMaxDynamicUniformBuffersPerPipelineLayout, LimitMaximum, UnitCount, GroupBinding},
	{LimitMaxDynamicStorageBuffersPerPipelineLayout, LimitMaximum, UnitCount, GroupBinding},

	{LimitMaxSampledTexturesPerShaderStage, LimitMaximum, UnitCount, GroupResource},
	{LimitMaxSamplersPerShaderStage, LimitMaximum, UnitCount, GroupResource},
	{LimitMaxStorageBuffersPerShaderStage, LimitMaximum, UnitCount, GroupResource},
	{LimitMaxStorageTexturesPerShaderStage, LimitMaximum, UnitCount, GroupResource},
	{LimitMaxUniformBuffersPerShaderStage, LimitMaximum, UnitCount, GroupResource},
	{LimitMaxNonSamplerBindings, LimitMaximum, UnitCount, GroupResource},

	{LimitMaxUniformBufferBindingSize, LimitMaximum, UnitBytes, GroupBuffer},
	{LimitMaxStorageBufferBindingSize, LimitMaximum, UnitBytes, GroupBuffer},
	{LimitMinUniformBufferOffsetAlignment, LimitAlignment, UnitBytes, GroupBuffer},
	{LimitMinStorageBufferOffsetAlignment, LimitAlignment, UnitBytes, GroupBuffer},
	{LimitMaxBufferSize, LimitMaximum, UnitBytes, GroupBuffer},
	{LimitBufferCopyOffsetAlignment, LimitAlignment, UnitBytes, GroupBuffer},
	{LimitBufferCopyPitchAlignment, LimitAlignment, UnitBytes, GroupBuffer},

	{LimitMaxVertexBuffers, LimitMaximum, UnitCount, GroupVertex},
	{LimitMaxVertexAttributes, LimitMaximum, UnitCount, GroupVertex},
	{LimitMaxVertexBufferArrayStride, LimitMaximum, UnitBytes, GroupVertex},
	{LimitMaxInterStageShaderVariables, LimitMaximum, UnitCount, GroupVertex},

	{LimitMaxComputeWorkgroupStorageSize, LimitMaximum, UnitBytes, GroupCompute},
	{LimitMaxComputeInvocationsPerWorkgroup, LimitMaximum, UnitCount, GroupCompute},
	{LimitMaxComputeWorkgroupSizeX, LimitMaximum, UnitCount, GroupCompute},
	{LimitMaxComputeWorkgroupSizeY, LimitMaximum, UnitCount, GroupCompute},
	{LimitMaxComputeWorkgroupSizeZ, LimitMaximum, UnitCount, GroupCompute},
	{LimitMaxComputeWorkgroupsPerDimension, LimitMaximum, UnitCount, GroupCompute},

	{LimitMaxColorAttachments, LimitMaximum, UnitCount, GroupMisc},
	{LimitMaxColorAttachmentBytesPerSample, LimitMaximum, UnitBytes, GroupMisc},
	{LimitMaxPushConstantSize, LimitMaximum, UnitBytes, GroupMisc},
}

var limitIndex = func() map[string]int {
	m := make(map[string]int, len(limitSchema))
	for i, s := range limitSchema {
		m[s.Name] = i
	}
	return m
}()

// LimitSchema returns the canonical limit schema in display order.
func LimitSchema() []LimitSpec {
	out := make([]LimitSpec, len(limitSchema))
	copy(out, limitSchema[:])
	return out
}

// LookupLimit returns the schema entry for a canonical limit name.
func LookupLimit(name string) (LimitSpec, bool) {
	i, ok := limitIndex[name]
	if !ok {
		return LimitSpec{}, false
	}
	return limitSchema[i], true
}

// Sanity ceilings above which a reported maximum is treated as malformed.
const (
	byteCeiling  = uint64(1) << 48
	countCeiling = uint64(1) << 32
)

func (s LimitSpec) ceiling() uint64 {
	if s.Unit == UnitBytes {
		return byteCeiling
	}
	return countCeiling
}

// conservative returns the safer of two values for this limit.
func (s LimitSpec) conservative(a, b uint64) uint64 {
	if s.Class == LimitAlignment {
		return max(a, b)
	}
	return min(a, b)
}
