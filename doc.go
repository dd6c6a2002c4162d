// Package gpuinfo reports the graphics and compute adapters available on
// the host and normalizes their capabilities into one model.
//
// # Overview
//
// gpuinfo probes every backend (Vulkan, Metal, Direct3D 12, OpenGL and the
// software rasterizer), lists the adapters each live backend exposes, reads
// each adapter's identity, optional features and numeric limits, and maps
// the backend-native names onto a fixed canonical vocabulary.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gpuinfo"
//	    _ "github.com/gogpu/gpuinfo/backends" // register HAL drivers
//	)
//
//	model, err := gpuinfo.Collect(ctx)
//	if err != nil {
//	    if errors.Is(err, gpuinfo.ErrNoBackendAvailable) {
//	        // nothing usable on this host
//	    }
//	    return err
//	}
//	for _, a := range model.Adapters() {
//	    fmt.Println(a.Identity.Name, a.Limits.Value(gpuinfo.LimitMaxBufferSize))
//	}
//
// # Canonical Model
//
// Every [AdapterReport] carries a [LimitTable] holding exactly the limits of
// [LimitSchema], in schema order. Limits a backend does not report are 0 and
// listed in [AdapterReport.Unreported]. Features are drawn only from
// [Features]; native names without a canonical mapping are dropped, logged
// at debug level and listed in [AdapterReport.Dropped].
//
// # Failures
//
// A backend that does not initialize is recorded in
// [CapabilityModel.BackendFailures] and never stops the others. An adapter
// that cannot be queried is recorded in [CapabilityModel.AdapterFailures].
// Malformed values are clamped to 0 and recorded as [Anomaly] values. Only
// [ErrNoBackendAvailable] is returned as an error.
//
// # Drivers
//
// Backends are reached through [Driver] implementations held in a
// gpucontext registry. Package backends registers the HAL drivers; package
// snapshot replays a recorded host description instead.
package gpuinfo

// Version is the current version of the module.
const Version = "0.3.0"
