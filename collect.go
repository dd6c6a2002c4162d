package gpuinfo

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gpuinfo/internal/shader"
)

// probeResult is everything one backend task produced.
type probeResult struct {
	backend         Backend
	failure         *BackendFailure
	adapters        []queried
	adapterFailures []AdapterFailure
	shader          *ShaderTarget
	// canceled is set when the backend failed because ctx ended.
	canceled bool
}

// Collect probes every selected backend, enumerates and queries its
// adapters, and returns the normalized model.
//
// Backends are probed concurrently, one task per backend, and joined before
// normalization. A backend that fails to initialize is recorded in the
// model and never aborts the others. When no backend initializes, Collect
// returns an error matching [ErrNoBackendAvailable] and a nil model.
//
// ctx is checked at each backend's initialization boundary. Collect reports
// ctx's error only when a backend failed because of it; a model whose
// backends all finished is returned even if ctx ends afterwards.
func Collect(ctx context.Context, opts ...Option) (*CapabilityModel, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]probeResult, len(o.backends))
	var g errgroup.Group
	for i, b := range o.backends {
		d := lookupDriver(o.registry, b)
		g.Go(func() error {
			results[i] = probeBackend(ctx, b, d, &o)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil && interrupted(results) {
		return nil, errors.Wrap(err, "gpuinfo: collect")
	}

	model := assemble(results)
	if len(model.backendFailures) == len(results) {
		return nil, newNoBackendError(model.BackendFailures())
	}
	Logger().Info("gpuinfo: collection complete",
		"adapters", len(model.adapters),
		"backend_failures", len(model.backendFailures),
		"adapter_failures", len(model.adapterFailures))
	return model, nil
}

// probeBackend initializes one backend, lists its adapters and queries
// each of them. Every failure is recorded in the result.
func probeBackend(ctx context.Context, b Backend, d Driver, o *options) probeResult {
	res := probeResult{backend: b}
	log := Logger().With("backend", b.String())

	fail := func(kind FailureKind, err error) probeResult {
		res.failure = &BackendFailure{Backend: b, Kind: kind, Reason: err.Error()}
		log.Warn("gpuinfo: backend unavailable", "kind", string(kind), "error", err)
		return res
	}

	if err := ctx.Err(); err != nil {
		res.canceled = true
		return fail(FailureInitFailed, err)
	}
	if d == nil {
		return fail(FailureUnsupportedPlatform, errors.New("no driver registered for this platform"))
	}

	sess, err := openSession(ctx, d)
	if err != nil {
		res.canceled = errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		return fail(classifyFailure(err), err)
	}
	defer sess.Close()

	handles, err := listAdapters(sess)
	if err != nil {
		return fail(FailureInitFailed, errors.Wrap(err, "enumerate adapters"))
	}
	log.Info("gpuinfo: backend live", "adapters", len(handles))

	res.adapters, res.adapterFailures = queryAdapters(b, sess, handles, o.queryConcurrency)
	if o.shaderCheck {
		res.shader = checkShaderTarget(b)
	}
	return res
}

func interrupted(results []probeResult) bool {
	for _, res := range results {
		if res.canceled {
			return true
		}
	}
	return false
}

func openSession(ctx context.Context, d Driver) (s Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, errors.Newf("driver panic: %v", r)
		}
	}()
	s, err = d.Open(ctx)
	if err == nil && s == nil {
		err = errors.New("driver returned no session")
	}
	return s, err
}

func listAdapters(sess Session) (handles []AdapterHandle, err error) {
	defer func() {
		if r := recover(); r != nil {
			handles, err = nil, errors.Newf("driver panic: %v", r)
		}
	}()
	return sess.Adapters()
}

// assemble normalizes every probe result in backend order.
func assemble(results []probeResult) *CapabilityModel {
	m := &CapabilityModel{}
	log := Logger()
	for _, res := range results {
		status := BackendStatus{Backend: res.backend, Live: res.failure == nil, Shader: res.shader}
		if res.failure != nil {
			m.backendFailures = append(m.backendFailures, *res.failure)
			m.backends = append(m.backends, status)
			continue
		}
		for _, q := range res.adapters {
			r := normalizeAdapter(res.backend, q.ordinal, q.native, q.anomalies)
			if len(r.Dropped) > 0 {
				log.Debug("gpuinfo: dropped unmapped native capabilities",
					"backend", res.backend.String(), "ordinal", r.Ordinal, "names", r.Dropped)
			}
			for _, a := range r.Anomalies[len(q.anomalies):] {
				log.Warn("gpuinfo: malformed capability clamped",
					"backend", res.backend.String(), "ordinal", r.Ordinal,
					"limit", a.Limit, "native", a.Native, "reported", a.Reported, "reason", a.Reason)
			}
			m.adapters = append(m.adapters, r)
		}
		status.Adapters = len(res.adapters) + len(res.adapterFailures)
		m.adapterFailures = append(m.adapterFailures, res.adapterFailures...)
		m.backends = append(m.backends, status)
	}
	return m
}

// shaderLanguage maps a backend to the shading language its driver consumes.
func shaderLanguage(b Backend) (shader.Language, bool) {
	switch b {
	case BackendVulkan:
		return shader.SPIRV, true
	case BackendMetal:
		return shader.MSL, true
	case BackendDX12:
		return shader.HLSL, true
	case BackendGL:
		return shader.GLSL, true
	default:
		return 0, false
	}
}

func checkShaderTarget(b Backend) *ShaderTarget {
	lang, ok := shaderLanguage(b)
	if !ok {
		return nil
	}
	res, err := shader.Translate(lang)
	if err != nil {
		Logger().Warn("gpuinfo: shader translation failed", "backend", b.String(), "error", err)
		return &ShaderTarget{Language: lang.String(), Error: err.Error()}
	}
	return &ShaderTarget{Language: lang.String(), Version: res.Version, OK: true}
}
