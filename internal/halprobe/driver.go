// Package halprobe implements gpuinfo drivers on top of the gogpu/wgpu
// hardware abstraction layer.
//
// A driver creates one HAL instance per probe, lists the adapters it
// exposes and reads their capabilities. No device is opened and nothing is
// submitted to an adapter.
package halprobe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuinfo"
)

func slogger() *slog.Logger { return gpuinfo.Logger() }

// Option configures a Driver.
type Option func(*Driver)

// WithHAL makes the driver use hb instead of looking the backend up in the
// HAL registry. Tests use this with the noop HAL.
func WithHAL(hb hal.Backend) Option {
	return func(d *Driver) {
		d.hal = hb
	}
}

// WithInstanceFlags sets the HAL instance flags, for example
// [gputypes.InstanceFlagsDebug] to enable validation layers.
func WithInstanceFlags(flags gputypes.InstanceFlags) Option {
	return func(d *Driver) {
		d.flags = flags
	}
}

// Driver probes one backend through the HAL.
type Driver struct {
	backend gpuinfo.Backend
	hal     hal.Backend
	flags   gputypes.InstanceFlags
}

// New returns a driver for b.
func New(b gpuinfo.Backend, opts ...Option) *Driver {
	d := &Driver{backend: b}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backend implements gpuinfo.Driver.
func (d *Driver) Backend() gpuinfo.Backend { return d.backend }

// Open creates a HAL instance for the backend.
func (d *Driver) Open(ctx context.Context) (gpuinfo.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hb := d.hal
	if hb == nil {
		var ok bool
		hb, ok = hal.GetBackend(d.backend.GPUType())
		if !ok {
			return nil, errors.Mark(
				errors.Wrapf(hal.ErrBackendNotFound, "%s is not built for this platform", d.backend.DisplayName()),
				gpuinfo.ErrUnsupportedPlatform)
		}
	}

	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{
		Backends: d.backend.GPUTypeMask(),
		Flags:    d.flags,
	})
	if err != nil {
		return nil, classify(err)
	}
	slogger().Debug("halprobe: instance created", "backend", d.backend.String(), "variant", hb.Variant().String())
	return &session{backend: d.backend, instance: instance}, nil
}

// classify marks a CreateInstance error with the failure kind its message
// indicates. HAL backends report loader problems as plain text.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access is denied"):
		return errors.Mark(err, gpuinfo.ErrPermissionDenied)
	case strings.Contains(msg, "failed to initialize"),
		strings.Contains(msg, "cannot open shared object"),
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "failed to load library"):
		return errors.Mark(err, gpuinfo.ErrNotInstalled)
	case strings.Contains(msg, "failed to load global commands"),
		strings.Contains(msg, "failed to load instance commands"),
		strings.Contains(msg, "incompatible driver"),
		strings.Contains(msg, "vkcreateinstance failed: -9"):
		return errors.Mark(err, gpuinfo.ErrDriverMissing)
	case strings.Contains(msg, "not supported on"), strings.Contains(msg, "unsupported platform"):
		return errors.Mark(err, gpuinfo.ErrUnsupportedPlatform)
	}
	return err
}
