package gpuinfo

// metalDialect covers MTLDevice properties and the limits published in the
// Metal feature set tables.
var metalDialect = dialect{
	features: map[string][]Feature{
		"supportsBCTextureCompression":      {FeatureTextureCompressionBC},
		"supportsFamilyApple2":              {FeatureTextureCompressionETC2, FeatureTextureCompressionASTC},
		"supportsDepthClipMode":             {FeatureDepthClipControl},
		"supportsFloat32Filtering":          {FeatureFloat32Filterable},
		"supports32BitFloatFiltering":       {FeatureFloat32Filterable},
		"supportsCounterSampling":           {FeatureTimestampQuery},
		"supportsShaderFloat16":             {FeatureShaderF16},
		"supportsSIMDGroup":                 {FeatureSubgroups},
		"supportsSIMDGroupBarrier":          {FeatureSubgroupBarrier},
		"supportsDepth32FloatStencil8":      {FeatureDepth32FloatStencil8},
		"supportsRG11B10FloatRenderTarget":  {FeatureRG11B10UfloatRenderable},
		"supportsIndirectDrawFirstInstance": {FeatureIndirectFirstInstance},
		"supportsArgumentBuffersTier2":      {FeatureAdapterSpecificFormatFeatures},
	},
	limits: map[string][]limitRule{
		"maxTextureWidth1D":                {to(LimitMaxTextureDimension1D)},
		"maxTextureWidth2D":                {to(LimitMaxTextureDimension2D)},
		"maxTextureHeight2D":               {to(LimitMaxTextureDimension2D)},
		"maxTextureWidth3D":                {to(LimitMaxTextureDimension3D)},
		"maxTextureArrayLayers":            {to(LimitMaxTextureArrayLayers)},
		"maxTextureArgumentEntries":        {to(LimitMaxSampledTexturesPerShaderStage), to(LimitMaxStorageTexturesPerShaderStage)},
		"maxSamplerStateArgumentEntries":   {to(LimitMaxSamplersPerShaderStage)},
		"maxBufferArgumentEntries":         {to(LimitMaxStorageBuffersPerShaderStage), to(LimitMaxUniformBuffersPerShaderStage)},
		"maxBufferLength":                  {to(LimitMaxBufferSize), to(LimitMaxStorageBufferBindingSize)},
		"maxConstantBufferLength":          {to(LimitMaxUniformBufferBindingSize)},
		"minConstantBufferOffsetAlignment": {to(LimitMinUniformBufferOffsetAlignment)},
		"minBufferOffsetAlignment":         {to(LimitMinStorageBufferOffsetAlignment)},
		"maxVertexBuffers":                 {to(LimitMaxVertexBuffers)},
		"maxVertexAttributes":              {to(LimitMaxVertexAttributes)},
		"maxVertexBufferStride":            {to(LimitMaxVertexBufferArrayStride)},
		"maxFragmentInputComponents":       {divided(LimitMaxInterStageShaderVariables, 4)},
		"maxColorRenderTargets":            {to(LimitMaxColorAttachments)},
		"maxTotalRenderTargetSizePerPixel": {to(LimitMaxColorAttachmentBytesPerSample)},
		"maxThreadgroupMemoryLength":       {to(LimitMaxComputeWorkgroupStorageSize)},
		"maxTotalThreadsPerThreadgroup":    {to(LimitMaxComputeInvocationsPerWorkgroup)},
		"maxThreadsPerThreadgroup.width":   {to(LimitMaxComputeWorkgroupSizeX)},
		"maxThreadsPerThreadgroup.height":  {to(LimitMaxComputeWorkgroupSizeY)},
		"maxThreadsPerThreadgroup.depth":   {to(LimitMaxComputeWorkgroupSizeZ)},
		"maxThreadgroupsPerGridDimension":  {to(LimitMaxComputeWorkgroupsPerDimension)},
		"maxInlineConstantDataLength":      {to(LimitMaxPushConstantSize)},
		"bufferCopyOffsetAlignment":        {to(LimitBufferCopyOffsetAlignment)},
		"bufferCopyRowAlignment":           {to(LimitBufferCopyPitchAlignment)},
	},
	kinds: map[string]DeviceKind{
		"discrete":   DeviceDiscrete,
		"lowPower":   DeviceIntegrated,
		"integrated": DeviceIntegrated,
		"removable":  DeviceDiscrete,
	},
}
