// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuinfo

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
)

// Backend identifies a graphics or compute API that can be probed for adapters.
type Backend uint8

// Supported backends, in probe order.
const (
	BackendVulkan Backend = iota + 1
	BackendMetal
	BackendDX12
	BackendGL
	BackendSoftware
)

var allBackends = [...]Backend{
	BackendVulkan,
	BackendMetal,
	BackendDX12,
	BackendGL,
	BackendSoftware,
}

// AllBackends returns every known backend in probe order.
func AllBackends() []Backend {
	out := make([]Backend, len(allBackends))
	copy(out, allBackends[:])
	return out
}

// String returns the lowercase backend token used in reports and configuration.
func (b Backend) String() string {
	switch b {
	case BackendVulkan:
		return "vulkan"
	case BackendMetal:
		return "metal"
	case BackendDX12:
		return "dx12"
	case BackendGL:
		return "gl"
	case BackendSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// DisplayName returns the human readable API name.
func (b Backend) DisplayName() string {
	switch b {
	case BackendVulkan:
		return "Vulkan"
	case BackendMetal:
		return "Metal"
	case BackendDX12:
		return "Direct3D 12"
	case BackendGL:
		return "OpenGL"
	case BackendSoftware:
		return "Software"
	default:
		return "Unknown"
	}
}

// Valid reports whether b is one of the known backends.
func (b Backend) Valid() bool {
	return b >= BackendVulkan && b <= BackendSoftware
}

// GPUType returns the gputypes backend that the HAL registers for b.
// The software rasterizer registers itself as [gputypes.BackendEmpty].
func (b Backend) GPUType() gputypes.Backend {
	switch b {
	case BackendVulkan:
		return gputypes.BackendVulkan
	case BackendMetal:
		return gputypes.BackendMetal
	case BackendDX12:
		return gputypes.BackendDX12
	case BackendGL:
		return gputypes.BackendGL
	default:
		return gputypes.BackendEmpty
	}
}

// GPUTypeMask returns the instance-creation mask selecting b.
func (b Backend) GPUTypeMask() gputypes.Backends {
	switch b {
	case BackendVulkan:
		return gputypes.BackendsVulkan
	case BackendMetal:
		return gputypes.BackendsMetal
	case BackendDX12:
		return gputypes.BackendsDX12
	case BackendGL:
		return gputypes.BackendsGL
	case BackendSoftware:
		return gputypes.Backends(1) << gputypes.BackendEmpty
	default:
		return 0
	}
}

// ParseBackend parses a backend token. Common aliases such as
// "d3d12", "opengl" and "cpu" are accepted.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vulkan", "vk":
		return BackendVulkan, nil
	case "metal", "mtl":
		return BackendMetal, nil
	case "dx12", "d3d12", "directx12", "direct3d12":
		return BackendDX12, nil
	case "gl", "gles", "opengl", "opengles":
		return BackendGL, nil
	case "software", "cpu", "soft":
		return BackendSoftware, nil
	}
	return 0, errors.WithHint(
		errors.Newf("gpuinfo: unknown backend %q", s),
		"valid backends: vulkan, metal, dx12, gl, software",
	)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.Newf("gpuinfo: invalid backend %d", uint8(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	v, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
