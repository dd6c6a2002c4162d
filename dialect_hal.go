package gpuinfo

// halDialect is the vocabulary of the gogpu/wgpu hardware abstraction
// layer: gputypes feature names, Limits field names, downlevel flags and
// per-format capability probes. Every HAL-backed driver speaks it.
var halDialect = dialect{
	features: map[string][]Feature{
		"DepthClipControl":                     {FeatureDepthClipControl},
		"Depth32FloatStencil8":                 {FeatureDepth32FloatStencil8},
		"TextureCompressionBC":                 {FeatureTextureCompressionBC},
		"TextureCompressionETC2":               {FeatureTextureCompressionETC2},
		"TextureCompressionASTC":               {FeatureTextureCompressionASTC},
		"IndirectFirstInstance":                {FeatureIndirectFirstInstance},
		"ShaderF16":                            {FeatureShaderF16},
		"RG11B10UfloatRenderable":              {FeatureRG11B10UfloatRenderable},
		"BGRA8UnormStorage":                    {FeatureBGRA8UnormStorage},
		"Float32Filterable":                    {FeatureFloat32Filterable},
		"TimestampQuery":                       {FeatureTimestampQuery},
		"PipelineStatisticsQuery":              {FeaturePipelineStatisticsQuery},
		"MultiDrawIndirect":                    {FeatureMultiDrawIndirect},
		"MultiDrawIndirectCount":               {FeatureMultiDrawIndirectCount},
		"PushConstants":                        {FeaturePushConstants},
		"TextureAdapterSpecificFormatFeatures": {FeatureAdapterSpecificFormatFeatures},
		"ShaderFloat64":                        {FeatureShaderF64},
		"VertexAttribute64bit":                 {FeatureVertexAttribute64Bit},
		"SubgroupOperations":                   {FeatureSubgroups},
		"SubgroupBarrier":                      {FeatureSubgroupBarrier},

		"Downlevel.ComputeShaders":          {FeatureComputeShaders},
		"Downlevel.FragmentWritableStorage": {FeatureFragmentWritableStorage},
		"Downlevel.IndirectFirstInstance":   {FeatureIndirectFirstInstance},
		"Downlevel.BaseVertexBaseInstance":  {FeatureBaseVertexBaseInstance},
		"Downlevel.ReadOnlyDepthStencil":    {FeatureReadOnlyDepthStencil},
		"Downlevel.AnisotropicFiltering":    {FeatureAnisotropicFiltering},

		"Format.BGRA8Unorm.Storage":                    {FeatureBGRA8UnormStorage},
		"Format.RG11B10Ufloat.RenderAttachment":        {FeatureRG11B10UfloatRenderable},
		"Format.Depth32FloatStencil8.RenderAttachment": {FeatureDepth32FloatStencil8},
	},
	limits: map[string][]limitRule{
		"MaxTextureDimension1D":                     {to(LimitMaxTextureDimension1D)},
		"MaxTextureDimension2D":                     {to(LimitMaxTextureDimension2D)},
		"MaxTextureDimension3D":                     {to(LimitMaxTextureDimension3D)},
		"MaxTextureArrayLayers":                     {to(LimitMaxTextureArrayLayers)},
		"MaxBindGroups":                             {to(LimitMaxBindGroups)},
		"MaxBindGroupsPlusVertexBuffers":            {to(LimitMaxBindGroupsPlusVertexBuffers)},
		"MaxBindingsPerBindGroup":                   {to(LimitMaxBindingsPerBindGroup)},
		"MaxDynamicUniformBuffersPerPipelineLayout": {to(LimitMaxDynamicUniformBuffersPerPipelineLayout)},
		"MaxDynamicStorageBuffersPerPipelineLayout": {to(LimitMaxDynamicStorageBuffersPerPipelineLayout)},
		"MaxSampledTexturesPerShaderStage":          {to(LimitMaxSampledTexturesPerShaderStage)},
		"MaxSamplersPerShaderStage":                 {to(LimitMaxSamplersPerShaderStage)},
		"MaxStorageBuffersPerShaderStage":           {to(LimitMaxStorageBuffersPerShaderStage)},
		"MaxStorageTexturesPerShaderStage":          {to(LimitMaxStorageTexturesPerShaderStage)},
		"MaxUniformBuffersPerShaderStage":           {to(LimitMaxUniformBuffersPerShaderStage)},
		"MaxUniformBufferBindingSize":               {to(LimitMaxUniformBufferBindingSize)},
		"MaxStorageBufferBindingSize":               {to(LimitMaxStorageBufferBindingSize)},
		"MinUniformBufferOffsetAlignment":           {to(LimitMinUniformBufferOffsetAlignment)},
		"MinStorageBufferOffsetAlignment":           {to(LimitMinStorageBufferOffsetAlignment)},
		"MaxVertexBuffers":                          {to(LimitMaxVertexBuffers)},
		"MaxBufferSize":                             {to(LimitMaxBufferSize)},
		"MaxVertexAttributes":                       {to(LimitMaxVertexAttributes)},
		"MaxVertexBufferArrayStride":                {to(LimitMaxVertexBufferArrayStride)},
		"MaxInterStageShaderVariables":              {to(LimitMaxInterStageShaderVariables)},
		"MaxColorAttachments":                       {to(LimitMaxColorAttachments)},
		"MaxColorAttachmentBytesPerSample":          {to(LimitMaxColorAttachmentBytesPerSample)},
		"MaxComputeWorkgroupStorageSize":            {to(LimitMaxComputeWorkgroupStorageSize)},
		"MaxComputeInvocationsPerWorkgroup":         {to(LimitMaxComputeInvocationsPerWorkgroup)},
		"MaxComputeWorkgroupSizeX":                  {to(LimitMaxComputeWorkgroupSizeX)},
		"MaxComputeWorkgroupSizeY":                  {to(LimitMaxComputeWorkgroupSizeY)},
		"MaxComputeWorkgroupSizeZ":                  {to(LimitMaxComputeWorkgroupSizeZ)},
		"MaxComputeWorkgroupsPerDimension":          {to(LimitMaxComputeWorkgroupsPerDimension)},
		"MaxPushConstantSize":                       {to(LimitMaxPushConstantSize)},
		"MaxNonSamplerBindings":                     {to(LimitMaxNonSamplerBindings)},
		"Alignments.BufferCopyOffset":               {to(LimitBufferCopyOffsetAlignment)},
		"Alignments.BufferCopyPitch":                {to(LimitBufferCopyPitchAlignment)},
	},
	kinds: map[string]DeviceKind{
		"DiscreteGPU":   DeviceDiscrete,
		"IntegratedGPU": DeviceIntegrated,
		"VirtualGPU":    DeviceVirtual,
		"CPU":           DeviceCPU,
		"Other":         DeviceUnknown,
	},
}
