package gpuinfo

import (
	"context"

	"github.com/gogpu/gpucontext"
)

// Driver initializes one backend. Open is the backend probe step: it must
// acquire nothing beyond a handle to the backend instance.
//
// Drivers mark Open errors with [ErrNotInstalled], [ErrDriverMissing],
// [ErrPermissionDenied] or [ErrUnsupportedPlatform]; unmarked errors are
// recorded as [FailureInitFailed].
type Driver interface {
	Backend() Backend
	Open(ctx context.Context) (Session, error)
}

// Session is a live backend instance. Adapter handles it returns are valid
// until Close.
type Session interface {
	// Adapters lists the adapters exposed by the backend in the order the
	// backend reports them. An empty list is valid.
	Adapters() ([]AdapterHandle, error)

	// Query reads identity, features and limits of one adapter. It must not
	// submit work to the adapter.
	Query(h AdapterHandle) (NativeCapabilities, error)

	// ConcurrentQueries reports whether Query may be called concurrently on
	// distinct handles.
	ConcurrentQueries() bool

	Close()
}

// AdapterHandle is an opaque, backend-scoped reference to one adapter.
type AdapterHandle interface {
	// Ordinal is the adapter's position in the backend-reported order.
	Ordinal() int
}

// NativeLimit is one limit value in a backend's own vocabulary. Values are
// signed so that malformed negative reports can be represented.
type NativeLimit struct {
	Name  string
	Value int64
}

// NativeCapabilities is what a backend reports for one adapter, before
// normalization.
type NativeCapabilities struct {
	Name       string
	Vendor     string
	VendorID   uint32
	DeviceID   uint32
	DeviceType string
	Driver     string
	DriverInfo string
	Features   []string
	Limits     []NativeLimit
}

// DriverRegistry holds backend drivers keyed by backend name.
type DriverRegistry = gpucontext.Registry[Driver]

// NewDriverRegistry returns an empty registry with the probe priority order.
func NewDriverRegistry() *DriverRegistry {
	names := make([]string, 0, len(allBackends))
	for _, b := range allBackends {
		names = append(names, b.String())
	}
	return gpucontext.NewRegistry[Driver](gpucontext.WithPriority(names...))
}

var drivers = NewDriverRegistry()

// RegisterDriver makes d the driver for its backend in the default
// registry, replacing any earlier registration. It is typically called from
// an init function, see package backends.
func RegisterDriver(d Driver) {
	if d == nil || !d.Backend().Valid() {
		return
	}
	drivers.Register(d.Backend().String(), func() Driver { return d })
}

// UnregisterDriver removes the driver for b from the default registry.
func UnregisterDriver(b Backend) {
	drivers.Unregister(b.String())
}

// RegisteredBackends returns the backends with a driver in the default
// registry, in probe order.
func RegisteredBackends() []Backend {
	var out []Backend
	for _, b := range allBackends {
		if drivers.Has(b.String()) {
			out = append(out, b)
		}
	}
	return out
}

// lookupDriver returns the driver registered for b, or nil.
func lookupDriver(r *DriverRegistry, b Backend) Driver {
	if !r.Has(b.String()) {
		return nil
	}
	return r.Get(b.String())
}
