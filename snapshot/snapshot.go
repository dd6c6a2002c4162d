// Package snapshot replays a recorded host description as gpuinfo drivers.
//
// A snapshot lists, per backend, either the adapters the backend exposed or
// the reason it failed to initialize. Adapter features and limits are
// written in the backend's own vocabulary (Vulkan, Metal, D3D12 or GL names,
// or the HAL names shared by every backend) and go through the same
// normalization as a live probe.
//
//	host, err := snapshot.Load("lab-01.yaml")
//	if err != nil {
//		return err
//	}
//	model, err := gpuinfo.Collect(ctx, gpuinfo.WithDrivers(host.Drivers()...))
package snapshot

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gpuinfo"
)

// ErrInvalid matches every error from a snapshot document that cannot be
// replayed.
var ErrInvalid = errors.New("snapshot: invalid document")

type invalidError struct {
	cause error
}

func invalid(err error) error { return &invalidError{cause: err} }

func (e *invalidError) Error() string { return e.cause.Error() }

func (e *invalidError) Unwrap() error { return e.cause }

func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

// Host is a parsed snapshot document.
type Host struct {
	Name     string
	backends map[gpuinfo.Backend]Backend
}

// Backend is the recorded state of one backend.
type Backend struct {
	Error    *Failure  `yaml:"error,omitempty"`
	Adapters []Adapter `yaml:"adapters,omitempty"`
}

// Failure is a recorded backend initialization failure.
type Failure struct {
	Kind   string `yaml:"kind"`
	Reason string `yaml:"reason"`
}

// Adapter is one recorded adapter in backend-native terms.
type Adapter struct {
	Name       string           `yaml:"name"`
	Vendor     string           `yaml:"vendor,omitempty"`
	VendorID   uint32           `yaml:"vendor_id,omitempty"`
	DeviceID   uint32           `yaml:"device_id,omitempty"`
	DeviceType string           `yaml:"device_type,omitempty"`
	Driver     string           `yaml:"driver,omitempty"`
	DriverInfo string           `yaml:"driver_info,omitempty"`
	Features   []string         `yaml:"features,omitempty"`
	Limits     map[string]int64 `yaml:"limits,omitempty"`

	// Lost makes the query fail as if the adapter had been unplugged.
	Lost bool `yaml:"lost,omitempty"`
	// QueryError makes the query fail with this message.
	QueryError string `yaml:"query_error,omitempty"`
}

type document struct {
	Host     string             `yaml:"host"`
	Backends map[string]Backend `yaml:"backends"`
}

// Load reads and parses the snapshot at path.
func Load(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: read %s", path)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: %s", path)
	}
	return h, nil
}

// Parse parses a snapshot document. Unknown keys are rejected.
func Parse(data []byte) (*Host, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid(errors.Wrap(err, "snapshot: decode"))
	}

	h := &Host{Name: doc.Host, backends: make(map[gpuinfo.Backend]Backend, len(doc.Backends))}
	for name, be := range doc.Backends {
		b, err := gpuinfo.ParseBackend(name)
		if err != nil {
			return nil, invalid(err)
		}
		if _, dup := h.backends[b]; dup {
			return nil, invalid(errors.Newf("snapshot: backend %s listed twice", b))
		}
		if be.Error != nil && len(be.Adapters) > 0 {
			return nil, invalid(errors.Newf("snapshot: backend %s has both an error and adapters", b))
		}
		h.backends[b] = be
	}
	return h, nil
}

// Backends returns the backends recorded in the snapshot, in probe order.
func (h *Host) Backends() []gpuinfo.Backend {
	var out []gpuinfo.Backend
	for _, b := range gpuinfo.AllBackends() {
		if _, ok := h.backends[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Drivers returns one replay driver for every backend. Backends absent from
// the snapshot fail as not installed.
func (h *Host) Drivers() []gpuinfo.Driver {
	all := gpuinfo.AllBackends()
	ds := make([]gpuinfo.Driver, 0, len(all))
	for _, b := range all {
		ds = append(ds, &driver{host: h, backend: b})
	}
	return ds
}

// native converts a recorded adapter to the form a live driver reports.
// Limit names are sorted so repeated replays log identically.
func (a Adapter) native() gpuinfo.NativeCapabilities {
	names := make([]string, 0, len(a.Limits))
	for name := range a.Limits {
		names = append(names, name)
	}
	sort.Strings(names)
	limits := make([]gpuinfo.NativeLimit, len(names))
	for i, name := range names {
		limits[i] = gpuinfo.NativeLimit{Name: name, Value: a.Limits[name]}
	}
	return gpuinfo.NativeCapabilities{
		Name:       a.Name,
		Vendor:     a.Vendor,
		VendorID:   a.VendorID,
		DeviceID:   a.DeviceID,
		DeviceType: a.DeviceType,
		Driver:     a.Driver,
		DriverInfo: a.DriverInfo,
		Features:   append([]string(nil), a.Features...),
		Limits:     limits,
	}
}
