package gpuinfo

// glDialect covers glGetIntegerv enums and extension strings for desktop
// OpenGL and OpenGL ES.
var glDialect = dialect{
	features: map[string][]Feature{
		"GL_ARB_compute_shader":               {FeatureComputeShaders},
		"GL_ARB_shader_storage_buffer_object": {FeatureFragmentWritableStorage},
		"GL_ARB_base_instance":                {FeatureBaseVertexBaseInstance, FeatureIndirectFirstInstance},
		"GL_EXT_base_instance":                {FeatureBaseVertexBaseInstance},
		"GL_EXT_texture_filter_anisotropic":   {FeatureAnisotropicFiltering},
		"GL_ARB_texture_filter_anisotropic":   {FeatureAnisotropicFiltering},
		"GL_ARB_depth_clamp":                  {FeatureDepthClipControl},
		"GL_EXT_depth_clamp":                  {FeatureDepthClipControl},
		"GL_ARB_texture_compression_bptc":     {FeatureTextureCompressionBC},
		"GL_EXT_texture_compression_bptc":     {FeatureTextureCompressionBC},
		"GL_ARB_ES3_compatibility":            {FeatureTextureCompressionETC2},
		"GL_OES_compressed_ETC2_RGB8_texture": {FeatureTextureCompressionETC2},
		"GL_KHR_texture_compression_astc_ldr": {FeatureTextureCompressionASTC},
		"GL_ARB_timer_query":                  {FeatureTimestampQuery},
		"GL_EXT_disjoint_timer_query":         {FeatureTimestampQuery},
		"GL_ARB_pipeline_statistics_query":    {FeaturePipelineStatisticsQuery},
		"GL_ARB_multi_draw_indirect":          {FeatureMultiDrawIndirect},
		"GL_EXT_multi_draw_indirect":          {FeatureMultiDrawIndirect},
		"GL_ARB_indirect_parameters":          {FeatureMultiDrawIndirectCount},
		"GL_ARB_gpu_shader_fp64":              {FeatureShaderF64},
		"GL_AMD_gpu_shader_half_float":        {FeatureShaderF16},
		"GL_EXT_shader_16bit_storage":         {FeatureShaderF16},
		"GL_ARB_vertex_attrib_64bit":          {FeatureVertexAttribute64Bit},
		"GL_KHR_shader_subgroup":              {FeatureSubgroups},
		"GL_OES_texture_float_linear":         {FeatureFloat32Filterable},
		"GL_ARB_depth_buffer_float":           {FeatureDepth32FloatStencil8},
	},
	limits: map[string][]limitRule{
		"GL_MAX_TEXTURE_SIZE":                       {to(LimitMaxTextureDimension1D), to(LimitMaxTextureDimension2D)},
		"GL_MAX_3D_TEXTURE_SIZE":                    {to(LimitMaxTextureDimension3D)},
		"GL_MAX_ARRAY_TEXTURE_LAYERS":               {to(LimitMaxTextureArrayLayers)},
		"GL_MAX_TEXTURE_IMAGE_UNITS":                {to(LimitMaxSampledTexturesPerShaderStage), to(LimitMaxSamplersPerShaderStage)},
		"GL_MAX_FRAGMENT_SHADER_STORAGE_BLOCKS":     {to(LimitMaxStorageBuffersPerShaderStage)},
		"GL_MAX_COMPUTE_SHADER_STORAGE_BLOCKS":      {to(LimitMaxStorageBuffersPerShaderStage)},
		"GL_MAX_IMAGE_UNITS":                        {to(LimitMaxStorageTexturesPerShaderStage)},
		"GL_MAX_VERTEX_UNIFORM_BLOCKS":              {to(LimitMaxUniformBuffersPerShaderStage)},
		"GL_MAX_FRAGMENT_UNIFORM_BLOCKS":            {to(LimitMaxUniformBuffersPerShaderStage)},
		"GL_MAX_UNIFORM_BLOCK_SIZE":                 {to(LimitMaxUniformBufferBindingSize)},
		"GL_MAX_SHADER_STORAGE_BLOCK_SIZE":          {to(LimitMaxStorageBufferBindingSize)},
		"GL_UNIFORM_BUFFER_OFFSET_ALIGNMENT":        {to(LimitMinUniformBufferOffsetAlignment)},
		"GL_SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT": {to(LimitMinStorageBufferOffsetAlignment)},
		"GL_MAX_VERTEX_ATTRIB_BINDINGS":             {to(LimitMaxVertexBuffers)},
		"GL_MAX_VERTEX_ATTRIBS":                     {to(LimitMaxVertexAttributes)},
		"GL_MAX_VERTEX_ATTRIB_STRIDE":               {to(LimitMaxVertexBufferArrayStride)},
		"GL_MAX_VARYING_COMPONENTS":                 {divided(LimitMaxInterStageShaderVariables, 4)},
		"GL_MAX_FRAGMENT_INPUT_COMPONENTS":          {divided(LimitMaxInterStageShaderVariables, 4)},
		"GL_MAX_DRAW_BUFFERS":                       {to(LimitMaxColorAttachments)},
		"GL_MAX_COLOR_ATTACHMENTS":                  {to(LimitMaxColorAttachments)},
		"GL_MAX_COMPUTE_SHARED_MEMORY_SIZE":         {to(LimitMaxComputeWorkgroupStorageSize)},
		"GL_MAX_COMPUTE_WORK_GROUP_INVOCATIONS":     {to(LimitMaxComputeInvocationsPerWorkgroup)},
		"GL_MAX_COMPUTE_WORK_GROUP_SIZE[0]":         {to(LimitMaxComputeWorkgroupSizeX)},
		"GL_MAX_COMPUTE_WORK_GROUP_SIZE[1]":         {to(LimitMaxComputeWorkgroupSizeY)},
		"GL_MAX_COMPUTE_WORK_GROUP_SIZE[2]":         {to(LimitMaxComputeWorkgroupSizeZ)},
		"GL_MAX_COMPUTE_WORK_GROUP_COUNT[0]":        {to(LimitMaxComputeWorkgroupsPerDimension)},
		"GL_MAX_COMPUTE_WORK_GROUP_COUNT[1]":        {to(LimitMaxComputeWorkgroupsPerDimension)},
		"GL_MAX_COMPUTE_WORK_GROUP_COUNT[2]":        {to(LimitMaxComputeWorkgroupsPerDimension)},
		"GL_MAX_UNIFORM_BUFFER_BINDINGS":            {to(LimitMaxBindingsPerBindGroup)},
		"GL_TEXTURE_BUFFER_OFFSET_ALIGNMENT":        {to(LimitBufferCopyOffsetAlignment)},
		"GL_PACK_ALIGNMENT":                         {to(LimitBufferCopyPitchAlignment)},
	},
}
