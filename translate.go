package gpuinfo

import "math"

// limitRule maps one native limit onto a canonical limit. convert rescales
// the native value into the canonical unit; nil means identity.
type limitRule struct {
	limit   string
	convert func(int64) int64
}

func (r limitRule) apply(v int64) int64 {
	if r.convert == nil {
		return v
	}
	return r.convert(v)
}

func to(limit string) limitRule { return limitRule{limit: limit} }

// scaled multiplies by a positive factor. Products that do not fit in
// int64 saturate, so sanitize flags them instead of seeing a wrapped value.
func scaled(limit string, factor int64) limitRule {
	return limitRule{limit: limit, convert: func(v int64) int64 {
		switch {
		case v > math.MaxInt64/factor:
			return math.MaxInt64
		case v < math.MinInt64/factor:
			return math.MinInt64
		}
		return v * factor
	}}
}

func divided(limit string, divisor int64) limitRule {
	return limitRule{limit: limit, convert: func(v int64) int64 { return v / divisor }}
}

// fromBits converts an address-width in bits into a byte size.
func fromBits(limit string) limitRule {
	return limitRule{limit: limit, convert: func(v int64) int64 {
		if v < 0 {
			return v
		}
		if v >= 63 {
			return 1<<63 - 1
		}
		return 1 << v
	}}
}

// dialect is one native vocabulary: the names a particular API uses for
// features, limits and device types.
type dialect struct {
	features map[string][]Feature
	limits   map[string][]limitRule
	kinds    map[string]DeviceKind
}

// translation is the static table for one backend: every dialect the
// backend's drivers may speak plus the features the API guarantees.
type translation struct {
	backend  Backend
	implied  FeatureSet
	features map[string][]Feature
	limits   map[string][]limitRule
	kinds    map[string]DeviceKind
}

func newTranslation(b Backend, implied []Feature, dialects ...dialect) *translation {
	t := &translation{
		backend:  b,
		implied:  NewFeatureSet(implied...),
		features: make(map[string][]Feature),
		limits:   make(map[string][]limitRule),
		kinds:    make(map[string]DeviceKind),
	}
	for _, d := range dialects {
		for name, fs := range d.features {
			t.features[name] = append(t.features[name], fs...)
		}
		for name, rs := range d.limits {
			t.limits[name] = append(t.limits[name], rs...)
		}
		for name, k := range d.kinds {
			t.kinds[name] = k
		}
	}
	return t
}

// Features every Vulkan, Metal and D3D12 implementation provides.
var modernBaseline = []Feature{
	FeatureComputeShaders,
	FeatureReadOnlyDepthStencil,
	FeatureBaseVertexBaseInstance,
	FeatureFragmentWritableStorage,
	FeatureAnisotropicFiltering,
}

var (
	vulkanTranslation = newTranslation(BackendVulkan,
		append([]Feature{FeaturePushConstants}, modernBaseline...),
		halDialect, vulkanDialect)
	metalTranslation = newTranslation(BackendMetal,
		modernBaseline,
		halDialect, metalDialect)
	dx12Translation = newTranslation(BackendDX12,
		append([]Feature{FeatureTextureCompressionBC, FeatureIndirectFirstInstance}, modernBaseline...),
		halDialect, d3d12Dialect)
	glTranslation = newTranslation(BackendGL,
		nil,
		halDialect, glDialect)
	softwareTranslation = newTranslation(BackendSoftware,
		nil,
		halDialect)
)

// translationFor returns the static table for b.
func translationFor(b Backend) *translation {
	switch b {
	case BackendVulkan:
		return vulkanTranslation
	case BackendMetal:
		return metalTranslation
	case BackendDX12:
		return dx12Translation
	case BackendGL:
		return glTranslation
	default:
		return softwareTranslation
	}
}
