package gpuinfo

// Option configures a [Collect] call.
//
// Example:
//
//	// Probe only Vulkan and GL, verifying shader translation for each.
//	model, err := gpuinfo.Collect(ctx,
//	    gpuinfo.WithBackends(gpuinfo.BackendVulkan, gpuinfo.BackendGL),
//	    gpuinfo.WithShaderCheck(true),
//	)
type Option func(*options)

type options struct {
	backends         []Backend
	registry         *DriverRegistry
	queryConcurrency int
	shaderCheck      bool
}

func defaultOptions() options {
	return options{
		backends:         AllBackends(),
		registry:         drivers,
		queryConcurrency: 4,
	}
}

// WithBackends restricts probing to the given backends. Probe and report
// order stay the fixed backend order regardless of argument order.
func WithBackends(backends ...Backend) Option {
	return func(o *options) {
		selected := make(map[Backend]bool, len(backends))
		for _, b := range backends {
			selected[b] = true
		}
		o.backends = o.backends[:0:0]
		for _, b := range allBackends {
			if selected[b] {
				o.backends = append(o.backends, b)
			}
		}
	}
}

// WithRegistry uses r instead of the default driver registry.
func WithRegistry(r *DriverRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithDrivers uses a private registry holding exactly the given drivers.
// Backends without a driver are recorded as unsupported on this platform.
func WithDrivers(ds ...Driver) Option {
	return func(o *options) {
		r := NewDriverRegistry()
		for _, d := range ds {
			if d == nil || !d.Backend().Valid() {
				continue
			}
			r.Register(d.Backend().String(), func() Driver { return d })
		}
		o.registry = r
	}
}

// WithQueryConcurrency bounds how many adapters of one backend are queried
// at once when the backend allows concurrent queries. Values below 1 are
// treated as 1.
func WithQueryConcurrency(n int) Option {
	return func(o *options) {
		o.queryConcurrency = max(n, 1)
	}
}

// WithShaderCheck enables translating a probe compute shader into each
// live backend's shading language on the host.
func WithShaderCheck(enabled bool) Option {
	return func(o *options) {
		o.shaderCheck = enabled
	}
}
