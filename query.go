package gpuinfo

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// queried is one adapter whose capabilities were read successfully.
type queried struct {
	ordinal   int
	native    NativeCapabilities
	anomalies []Anomaly
}

// queryAdapters reads every handle. Results keep enumeration order. Queries
// run one at a time unless the session allows concurrent queries.
func queryAdapters(b Backend, sess Session, handles []AdapterHandle, concurrency int) ([]queried, []AdapterFailure) {
	type slot struct {
		q   queried
		err error
	}
	slots := make([]slot, len(handles))

	if sess.ConcurrentQueries() && len(handles) > 1 {
		var g errgroup.Group
		g.SetLimit(concurrency)
		for i, h := range handles {
			g.Go(func() error {
				slots[i].q, slots[i].err = queryAdapter(sess, h)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, h := range handles {
			slots[i].q, slots[i].err = queryAdapter(sess, h)
		}
	}

	log := Logger()
	var (
		ok     []queried
		failed []AdapterFailure
	)
	for i, s := range slots {
		if s.err != nil {
			f := AdapterFailure{Backend: b, Ordinal: handles[i].Ordinal(), Reason: s.err.Error()}
			log.Warn("gpuinfo: adapter query failed",
				"backend", b.String(), "ordinal", f.Ordinal, "error", s.err)
			failed = append(failed, f)
			continue
		}
		for _, a := range s.q.anomalies {
			log.Warn("gpuinfo: malformed capability clamped",
				"backend", b.String(), "ordinal", s.q.ordinal, "native", a.Native, "reported", a.Reported)
		}
		ok = append(ok, s.q)
	}
	return ok, failed
}

// queryAdapter runs one Session.Query. A panicking driver is reported as a
// failed query. Negative limits are clamped to zero and recorded.
func queryAdapter(sess Session, h AdapterHandle) (q queried, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Mark(errors.Newf("driver panic: %v", r), ErrAdapterQueryFailed)
		}
	}()

	native, err := sess.Query(h)
	if err != nil {
		if errors.Is(err, ErrAdapterLost) {
			return queried{}, errors.Mark(errors.Wrap(err, "adapter disappeared during query"), ErrAdapterQueryFailed)
		}
		return queried{}, errors.Mark(err, ErrAdapterQueryFailed)
	}

	q = queried{ordinal: h.Ordinal(), native: native}
	if len(native.Limits) > 0 {
		limits := make([]NativeLimit, len(native.Limits))
		for i, l := range native.Limits {
			if l.Value < 0 {
				q.anomalies = append(q.anomalies, Anomaly{
					Native:   l.Name,
					Reported: l.Value,
					Reason:   "negative value",
				})
				l.Value = 0
			}
			limits[i] = l
		}
		q.native.Limits = limits
	}
	return q, nil
}
