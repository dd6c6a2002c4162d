//go:build !nogpu

// Package backends registers the HAL-backed drivers for every backend
// with the default gpuinfo registry.
//
// Backends the HAL does not build for the target platform still get a
// driver: probing one records an unsupported-platform failure instead of
// leaving the backend out of the report.
//
// Usage:
//
//	import _ "github.com/gogpu/gpuinfo/backends"
package backends

import (
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/gpuinfo"
	"github.com/gogpu/gpuinfo/internal/halprobe"
)

func init() {
	for _, b := range gpuinfo.AllBackends() {
		gpuinfo.RegisterDriver(halprobe.New(b))
	}
}
