package snapshot

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/gpuinfo"
)

type driver struct {
	host    *Host
	backend gpuinfo.Backend
}

func (d *driver) Backend() gpuinfo.Backend { return d.backend }

func (d *driver) Open(ctx context.Context) (gpuinfo.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	be, ok := d.host.backends[d.backend]
	if !ok {
		return nil, errors.Mark(
			errors.Newf("%s not present in snapshot %q", d.backend.DisplayName(), d.host.Name),
			gpuinfo.ErrNotInstalled)
	}
	if be.Error != nil {
		kind := gpuinfo.ParseFailureKind(be.Error.Kind)
		reason := be.Error.Reason
		if reason == "" {
			reason = string(kind)
		}
		return nil, errors.Mark(errors.New(reason), kind.Sentinel())
	}
	gpuinfo.Logger().Debug("snapshot: replaying backend",
		"host", d.host.Name, "backend", d.backend.String(), "adapters", len(be.Adapters))
	return &session{adapters: be.Adapters}, nil
}

type handle int

func (h handle) Ordinal() int { return int(h) }

// session is read-only after Open, so queries may run concurrently.
type session struct {
	adapters []Adapter
}

func (s *session) Adapters() ([]gpuinfo.AdapterHandle, error) {
	handles := make([]gpuinfo.AdapterHandle, len(s.adapters))
	for i := range s.adapters {
		handles[i] = handle(i)
	}
	return handles, nil
}

func (s *session) Query(h gpuinfo.AdapterHandle) (gpuinfo.NativeCapabilities, error) {
	i := h.Ordinal()
	if i < 0 || i >= len(s.adapters) {
		return gpuinfo.NativeCapabilities{}, errors.Newf("snapshot: no adapter %d", i)
	}
	a := s.adapters[i]
	switch {
	case a.Lost:
		return gpuinfo.NativeCapabilities{}, errors.Mark(
			errors.Newf("%s was removed", a.Name), gpuinfo.ErrAdapterLost)
	case a.QueryError != "":
		return gpuinfo.NativeCapabilities{}, errors.New(a.QueryError)
	}
	return a.native(), nil
}

func (s *session) ConcurrentQueries() bool { return true }

func (s *session) Close() {}
