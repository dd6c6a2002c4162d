package gpuinfo

import (
	"math/bits"
	"slices"
	"strings"
)

// Normalize maps one adapter's native capabilities onto the canonical
// vocabulary using the static translation table of b.
//
// Features reported under several native names are merged. When several
// native limits feed one canonical limit the conservative value wins: the
// lower maximum or the higher alignment. Limits the backend did not report
// are set to 0 and listed in Unreported; native names with no canonical
// mapping are listed in Dropped.
//
// Normalize is pure: equal inputs always produce equal reports.
func Normalize(b Backend, ordinal int, native NativeCapabilities) AdapterReport {
	return normalizeAdapter(b, ordinal, native, nil)
}

func normalizeAdapter(b Backend, ordinal int, native NativeCapabilities, queryAnomalies []Anomaly) AdapterReport {
	t := translationFor(b)
	r := AdapterReport{
		Backend:  b,
		Ordinal:  ordinal,
		Identity: t.identity(native),
	}
	dropped := make(map[string]struct{})

	features := t.implied
	for _, name := range native.Features {
		fs, ok := t.features[name]
		if !ok {
			dropped[name] = struct{}{}
			continue
		}
		for _, f := range fs {
			features = features.with(f)
		}
	}
	r.Features = features

	for _, a := range queryAnomalies {
		if rules := t.limits[a.Native]; len(rules) > 0 && a.Limit == "" {
			a.Limit = rules[0].limit
		}
		r.Anomalies = append(r.Anomalies, a)
	}

	var limits LimitTable
	for _, nl := range native.Limits {
		rules, ok := t.limits[nl.Name]
		if !ok {
			dropped[nl.Name] = struct{}{}
			continue
		}
		for _, rule := range rules {
			i := limitIndex[rule.limit]
			spec := limitSchema[i]
			v, reason := sanitize(spec, rule.apply(nl.Value))
			if reason != "" {
				r.Anomalies = append(r.Anomalies, Anomaly{
					Limit:    spec.Name,
					Native:   nl.Name,
					Reported: nl.Value,
					Reason:   reason,
				})
			}
			if limits.has(i) {
				v = spec.conservative(limits.values[i], v)
			}
			limits.put(i, v)
		}
	}
	deriveLimits(&limits)

	for i, spec := range limitSchema {
		if !limits.has(i) {
			limits.put(i, 0)
			r.Unreported = append(r.Unreported, spec.Name)
		}
	}
	r.Limits = limits

	if len(dropped) > 0 {
		r.Dropped = make([]string, 0, len(dropped))
		for name := range dropped {
			r.Dropped = append(r.Dropped, name)
		}
		slices.Sort(r.Dropped)
	}
	return r
}

// sanitize validates one converted value against the limit's class and
// unit. It returns the value to keep and, when the input was malformed, a
// reason for the anomaly record.
func sanitize(spec LimitSpec, v int64) (uint64, string) {
	if v < 0 {
		return 0, "negative value"
	}
	u := uint64(v)
	switch spec.Class {
	case LimitAlignment:
		if u != 0 && bits.OnesCount64(u) != 1 {
			return 0, "alignment is not a power of two"
		}
	default:
		if u > spec.ceiling() {
			return 0, "value exceeds sanity ceiling"
		}
	}
	return u, ""
}

// deriveLimits enforces relations between limits that hold on every API.
func deriveLimits(t *LimitTable) {
	capAt(t, LimitMaxStorageBufferBindingSize, LimitMaxBufferSize)
	capAt(t, LimitMaxComputeWorkgroupSizeX, LimitMaxComputeInvocationsPerWorkgroup)
	capAt(t, LimitMaxComputeWorkgroupSizeY, LimitMaxComputeInvocationsPerWorkgroup)
}

// capAt lowers limit to bound when both are present.
func capAt(t *LimitTable, limit, bound string) {
	i, j := limitIndex[limit], limitIndex[bound]
	if t.has(i) && t.has(j) && t.values[i] > t.values[j] {
		t.values[i] = t.values[j]
	}
}

// Adapter names that identify a software rasterizer regardless of the
// device type the backend claims.
var softwareRenderers = []string{
	"llvmpipe",
	"lavapipe",
	"softpipe",
	"swiftshader",
	"microsoft basic render driver",
}

func (t *translation) identity(native NativeCapabilities) AdapterIdentity {
	kind, ok := t.kinds[native.DeviceType]
	if !ok {
		kind = DeviceUnknown
	}
	if kind == DeviceUnknown {
		name := strings.ToLower(native.Name)
		for _, sw := range softwareRenderers {
			if strings.Contains(name, sw) {
				kind = DeviceCPU
				break
			}
		}
	}
	return AdapterIdentity{
		Name:       native.Name,
		Vendor:     VendorName(native.VendorID, native.Vendor),
		VendorID:   native.VendorID,
		DeviceID:   native.DeviceID,
		Kind:       kind,
		Driver:     native.Driver,
		DriverInfo: native.DriverInfo,
	}
}
