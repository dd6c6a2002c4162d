package gpuinfo

// d3d12Dialect covers D3D12_FEATURE_DATA_D3D12_OPTIONS* members, the
// D3D12_* hardware constants and DXGI adapter flags.
var d3d12Dialect = dialect{
	features: map[string][]Feature{
		"DoublePrecisionFloatShaderOps":            {FeatureShaderF64},
		"Native16BitShaderOpsSupported":            {FeatureShaderF16},
		"MinPrecisionSupport16Bit":                 {FeatureShaderF16},
		"WaveOps":                                  {FeatureSubgroups, FeatureSubgroupBarrier},
		"DepthBoundsTestSupported":                 {FeatureDepthClipControl},
		"TypedUAVLoadAdditionalFormats":            {FeatureAdapterSpecificFormatFeatures, FeatureBGRA8UnormStorage},
		"CopyQueueTimestampQueriesSupported":       {FeatureTimestampQuery},
		"D3D12_QUERY_TYPE_TIMESTAMP":               {FeatureTimestampQuery},
		"D3D12_QUERY_TYPE_PIPELINE_STATISTICS":     {FeaturePipelineStatisticsQuery},
		"ExecuteIndirect":                          {FeatureMultiDrawIndirect, FeatureMultiDrawIndirectCount},
		"DXGI_FORMAT_D32_FLOAT_S8X24_UINT":         {FeatureDepth32FloatStencil8},
		"DXGI_FORMAT_R11G11B10_FLOAT.RenderTarget": {FeatureRG11B10UfloatRenderable},
		"DXGI_FORMAT_R32G32B32A32_FLOAT.Filter":    {FeatureFloat32Filterable},
	},
	limits: map[string][]limitRule{
		"D3D12_REQ_TEXTURE1D_U_DIMENSION":                   {to(LimitMaxTextureDimension1D)},
		"D3D12_REQ_TEXTURE2D_U_OR_V_DIMENSION":              {to(LimitMaxTextureDimension2D)},
		"D3D12_REQ_TEXTURE3D_U_V_OR_W_DIMENSION":            {to(LimitMaxTextureDimension3D)},
		"D3D12_REQ_TEXTURE2D_ARRAY_AXIS_DIMENSION":          {to(LimitMaxTextureArrayLayers)},
		"D3D12_COMMONSHADER_SAMPLER_SLOT_COUNT":             {to(LimitMaxSamplersPerShaderStage)},
		"D3D12_COMMONSHADER_INPUT_RESOURCE_SLOT_COUNT":      {to(LimitMaxSampledTexturesPerShaderStage)},
		"D3D12_COMMONSHADER_CONSTANT_BUFFER_API_SLOT_COUNT": {to(LimitMaxUniformBuffersPerShaderStage)},
		"D3D12_UAV_SLOT_COUNT":                              {to(LimitMaxStorageBuffersPerShaderStage), to(LimitMaxStorageTexturesPerShaderStage)},
		"D3D12_REQ_CONSTANT_BUFFER_ELEMENT_COUNT":           {scaled(LimitMaxUniformBufferBindingSize, 16)},
		"D3D12_CONSTANT_BUFFER_DATA_PLACEMENT_ALIGNMENT":    {to(LimitMinUniformBufferOffsetAlignment)},
		"D3D12_RAW_UAV_SRV_BYTE_ALIGNMENT":                  {to(LimitMinStorageBufferOffsetAlignment)},
		"MaxGPUVirtualAddressBitsPerResource":               {fromBits(LimitMaxBufferSize)},
		"D3D12_IA_VERTEX_INPUT_RESOURCE_SLOT_COUNT":         {to(LimitMaxVertexBuffers)},
		"D3D12_IA_VERTEX_INPUT_STRUCTURE_ELEMENT_COUNT":     {to(LimitMaxVertexAttributes)},
		"D3D12_REQ_MULTI_ELEMENT_STRUCTURE_SIZE_IN_BYTES":   {to(LimitMaxVertexBufferArrayStride)},
		"D3D12_PS_INPUT_REGISTER_COUNT":                     {to(LimitMaxInterStageShaderVariables)},
		"D3D12_SIMULTANEOUS_RENDER_TARGET_COUNT":            {to(LimitMaxColorAttachments)},
		"D3D12_CS_TGSM_REGISTER_COUNT":                      {scaled(LimitMaxComputeWorkgroupStorageSize, 4)},
		"D3D12_CS_THREAD_GROUP_MAX_THREADS_PER_GROUP":       {to(LimitMaxComputeInvocationsPerWorkgroup)},
		"D3D12_CS_THREAD_GROUP_MAX_X":                       {to(LimitMaxComputeWorkgroupSizeX)},
		"D3D12_CS_THREAD_GROUP_MAX_Y":                       {to(LimitMaxComputeWorkgroupSizeY)},
		"D3D12_CS_THREAD_GROUP_MAX_Z":                       {to(LimitMaxComputeWorkgroupSizeZ)},
		"D3D12_CS_DISPATCH_MAX_THREAD_GROUPS_PER_DIMENSION": {to(LimitMaxComputeWorkgroupsPerDimension)},
		"D3D12_MAX_ROOT_COST":                               {scaled(LimitMaxPushConstantSize, 4)},
		"D3D12_TEXTURE_DATA_PLACEMENT_ALIGNMENT":            {to(LimitBufferCopyOffsetAlignment)},
		"D3D12_TEXTURE_DATA_PITCH_ALIGNMENT":                {to(LimitBufferCopyPitchAlignment)},
	},
	// DXGI flags alone do not separate discrete from integrated adapters;
	// drivers report "UMA" or "NUMA" from D3D12_FEATURE_DATA_ARCHITECTURE
	// when they have it.
	kinds: map[string]DeviceKind{
		"DXGI_ADAPTER_FLAG_NONE":     DeviceUnknown,
		"UMA":                        DeviceIntegrated,
		"NUMA":                       DeviceDiscrete,
		"DXGI_ADAPTER_FLAG_REMOTE":   DeviceVirtual,
		"DXGI_ADAPTER_FLAG_SOFTWARE": DeviceCPU,
	},
}
