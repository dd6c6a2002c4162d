package gpuinfo

import (
	"context"
	"sync"
	"sync/atomic"
)

type fakeHandle int

func (h fakeHandle) Ordinal() int { return int(h) }

type fakeAdapter struct {
	caps  NativeCapabilities
	err   error
	panic bool
}

// fakeDriver is an in-memory backend used to simulate hosts.
type fakeDriver struct {
	backend    Backend
	openErr    error
	openPanic  bool
	onOpen     func()
	adapters   []fakeAdapter
	concurrent bool
	listErr    error
	opens      atomic.Int32
	mu         sync.Mutex
	sessions   []*fakeSession
}

func (d *fakeDriver) Backend() Backend { return d.backend }

func (d *fakeDriver) Open(context.Context) (Session, error) {
	d.opens.Add(1)
	if d.onOpen != nil {
		d.onOpen()
	}
	if d.openPanic {
		panic("loader crashed")
	}
	if d.openErr != nil {
		return nil, d.openErr
	}
	s := &fakeSession{d: d}
	d.mu.Lock()
	d.sessions = append(d.sessions, s)
	d.mu.Unlock()
	return s, nil
}

type fakeSession struct {
	d        *fakeDriver
	closed   atomic.Bool
	inflight atomic.Int32
	peak     atomic.Int32
}

func (s *fakeSession) Adapters() ([]AdapterHandle, error) {
	if s.d.listErr != nil {
		return nil, s.d.listErr
	}
	out := make([]AdapterHandle, len(s.d.adapters))
	for i := range s.d.adapters {
		out[i] = fakeHandle(i)
	}
	return out, nil
}

func (s *fakeSession) Query(h AdapterHandle) (NativeCapabilities, error) {
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if s.closed.Load() {
		panic("query after close")
	}
	a := s.d.adapters[h.Ordinal()]
	if a.panic {
		panic("driver fault")
	}
	return a.caps, a.err
}

func (s *fakeSession) ConcurrentQueries() bool { return s.d.concurrent }

func (s *fakeSession) Close() { s.closed.Store(true) }

func adapterNamed(name string) fakeAdapter {
	return fakeAdapter{caps: NativeCapabilities{
		Name:       name,
		VendorID:   VendorIntel,
		DeviceType: "IntegratedGPU",
		Features:   []string{"Downlevel.ComputeShaders", "TextureCompressionBC"},
		Limits:     halDefaultLimits(),
	}}
}

// halDefaultLimits reports every limit in the HAL vocabulary using the
// WebGPU default values.
func halDefaultLimits() []NativeLimit {
	return []NativeLimit{
		{"MaxTextureDimension1D", 8192},
		{"MaxTextureDimension2D", 8192},
		{"MaxTextureDimension3D", 2048},
		{"MaxTextureArrayLayers", 256},
		{"MaxBindGroups", 4},
		{"MaxBindGroupsPlusVertexBuffers", 24},
		{"MaxBindingsPerBindGroup", 1000},
		{"MaxDynamicUniformBuffersPerPipelineLayout", 8},
		{"MaxDynamicStorageBuffersPerPipelineLayout", 4},
		{"MaxSampledTexturesPerShaderStage", 16},
		{"MaxSamplersPerShaderStage", 16},
		{"MaxStorageBuffersPerShaderStage", 8},
		{"MaxStorageTexturesPerShaderStage", 4},
		{"MaxUniformBuffersPerShaderStage", 12},
		{"MaxUniformBufferBindingSize", 65536},
		{"MaxStorageBufferBindingSize", 134217728},
		{"MinUniformBufferOffsetAlignment", 256},
		{"MinStorageBufferOffsetAlignment", 256},
		{"MaxVertexBuffers", 8},
		{"MaxBufferSize", 268435456},
		{"MaxVertexAttributes", 16},
		{"MaxVertexBufferArrayStride", 2048},
		{"MaxInterStageShaderVariables", 16},
		{"MaxColorAttachments", 8},
		{"MaxColorAttachmentBytesPerSample", 32},
		{"MaxComputeWorkgroupStorageSize", 16384},
		{"MaxComputeInvocationsPerWorkgroup", 256},
		{"MaxComputeWorkgroupSizeX", 256},
		{"MaxComputeWorkgroupSizeY", 256},
		{"MaxComputeWorkgroupSizeZ", 64},
		{"MaxComputeWorkgroupsPerDimension", 65535},
		{"MaxPushConstantSize", 0},
		{"MaxNonSamplerBindings", 1000000},
		{"Alignments.BufferCopyOffset", 4},
		{"Alignments.BufferCopyPitch", 256},
	}
}
