package gpuinfo

// vulkanDialect covers VkPhysicalDeviceFeatures members, extension names,
// VkPhysicalDeviceLimits members and VkPhysicalDeviceType.
var vulkanDialect = dialect{
	features: map[string][]Feature{
		"depthClamp":                        {FeatureDepthClipControl},
		"VK_EXT_depth_clip_enable":          {FeatureDepthClipControl},
		"textureCompressionBC":              {FeatureTextureCompressionBC},
		"textureCompressionETC2":            {FeatureTextureCompressionETC2},
		"textureCompressionASTC_LDR":        {FeatureTextureCompressionASTC},
		"drawIndirectFirstInstance":         {FeatureIndirectFirstInstance},
		"shaderFloat16":                     {FeatureShaderF16},
		"VK_KHR_shader_float16_int8":        {FeatureShaderF16},
		"shaderFloat64":                     {FeatureShaderF64},
		"pipelineStatisticsQuery":           {FeaturePipelineStatisticsQuery},
		"timestampComputeAndGraphics":       {FeatureTimestampQuery},
		"multiDrawIndirect":                 {FeatureMultiDrawIndirect},
		"drawIndirectCount":                 {FeatureMultiDrawIndirectCount},
		"VK_KHR_draw_indirect_count":        {FeatureMultiDrawIndirectCount},
		"samplerAnisotropy":                 {FeatureAnisotropicFiltering},
		"fragmentStoresAndAtomics":          {FeatureFragmentWritableStorage},
		"shaderStorageImageExtendedFormats": {FeatureAdapterSpecificFormatFeatures},
		"VK_EXT_subgroup_size_control":      {FeatureSubgroups},
		"subgroupBasic":                     {FeatureSubgroups},
		"subgroupBarrier":                   {FeatureSubgroupBarrier},
	},
	limits: map[string][]limitRule{
		"maxImageDimension1D":                   {to(LimitMaxTextureDimension1D)},
		"maxImageDimension2D":                   {to(LimitMaxTextureDimension2D)},
		"maxImageDimension3D":                   {to(LimitMaxTextureDimension3D)},
		"maxImageArrayLayers":                   {to(LimitMaxTextureArrayLayers)},
		"maxBoundDescriptorSets":                {to(LimitMaxBindGroups)},
		"maxDescriptorSetUniformBuffersDynamic": {to(LimitMaxDynamicUniformBuffersPerPipelineLayout)},
		"maxDescriptorSetStorageBuffersDynamic": {to(LimitMaxDynamicStorageBuffersPerPipelineLayout)},
		"maxPerStageDescriptorSampledImages":    {to(LimitMaxSampledTexturesPerShaderStage)},
		"maxPerStageDescriptorSamplers":         {to(LimitMaxSamplersPerShaderStage)},
		"maxPerStageDescriptorStorageBuffers":   {to(LimitMaxStorageBuffersPerShaderStage)},
		"maxPerStageDescriptorStorageImages":    {to(LimitMaxStorageTexturesPerShaderStage)},
		"maxPerStageDescriptorUniformBuffers":   {to(LimitMaxUniformBuffersPerShaderStage)},
		"maxUniformBufferRange":                 {to(LimitMaxUniformBufferBindingSize)},
		"maxStorageBufferRange":                 {to(LimitMaxStorageBufferBindingSize)},
		"minUniformBufferOffsetAlignment":       {to(LimitMinUniformBufferOffsetAlignment)},
		"minStorageBufferOffsetAlignment":       {to(LimitMinStorageBufferOffsetAlignment)},
		"maxVertexInputBindings":                {to(LimitMaxVertexBuffers)},
		"maxVertexInputAttributes":              {to(LimitMaxVertexAttributes)},
		"maxVertexInputBindingStride":           {to(LimitMaxVertexBufferArrayStride)},
		"maxVertexOutputComponents":             {divided(LimitMaxInterStageShaderVariables, 4)},
		"maxFragmentInputComponents":            {divided(LimitMaxInterStageShaderVariables, 4)},
		"maxColorAttachments":                   {to(LimitMaxColorAttachments)},
		"maxFragmentOutputAttachments":          {to(LimitMaxColorAttachments)},
		"maxComputeSharedMemorySize":            {to(LimitMaxComputeWorkgroupStorageSize)},
		"maxComputeWorkGroupInvocations":        {to(LimitMaxComputeInvocationsPerWorkgroup)},
		"maxComputeWorkGroupSize[0]":            {to(LimitMaxComputeWorkgroupSizeX)},
		"maxComputeWorkGroupSize[1]":            {to(LimitMaxComputeWorkgroupSizeY)},
		"maxComputeWorkGroupSize[2]":            {to(LimitMaxComputeWorkgroupSizeZ)},
		"maxComputeWorkGroupCount[0]":           {to(LimitMaxComputeWorkgroupsPerDimension)},
		"maxComputeWorkGroupCount[1]":           {to(LimitMaxComputeWorkgroupsPerDimension)},
		"maxComputeWorkGroupCount[2]":           {to(LimitMaxComputeWorkgroupsPerDimension)},
		"maxPushConstantsSize":                  {to(LimitMaxPushConstantSize)},
		"maxMemoryAllocationSize":               {to(LimitMaxBufferSize)},
		"maxBufferSize":                         {to(LimitMaxBufferSize)},
		"optimalBufferCopyOffsetAlignment":      {to(LimitBufferCopyOffsetAlignment)},
		"optimalBufferCopyRowPitchAlignment":    {to(LimitBufferCopyPitchAlignment)},
	},
	kinds: map[string]DeviceKind{
		"VK_PHYSICAL_DEVICE_TYPE_OTHER":          DeviceUnknown,
		"VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU": DeviceIntegrated,
		"VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU":   DeviceDiscrete,
		"VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU":    DeviceVirtual,
		"VK_PHYSICAL_DEVICE_TYPE_CPU":            DeviceCPU,
	},
}
