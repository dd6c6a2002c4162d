package gpuinfo

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPartialFailure(t *testing.T) {
	vk := &fakeDriver{backend: BackendVulkan, openErr: errors.Mark(errors.New("libvulkan.so.1 not found"), ErrNotInstalled)}
	gl := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("first"), adapterNamed("second")}}

	model, err := Collect(context.Background(), WithDrivers(vk, gl), WithBackends(BackendVulkan, BackendGL))
	require.NoError(t, err)
	require.NotNil(t, model)

	adapters := model.Adapters()
	require.Len(t, adapters, 2)
	assert.Equal(t, "first", adapters[0].Identity.Name)
	assert.Equal(t, "second", adapters[1].Identity.Name)
	for _, a := range adapters {
		assert.Equal(t, schemaNames(), a.Limits.Keys())
	}

	failures := model.BackendFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, BackendVulkan, failures[0].Backend)
	assert.Equal(t, FailureNotInstalled, failures[0].Kind)
	assert.Contains(t, failures[0].Reason, "libvulkan.so.1")
	assert.Equal(t, map[string]string{"vulkan": failures[0].Reason}, model.FailureReasons())

	status := model.Backends()
	require.Len(t, status, 2)
	assert.False(t, status[0].Live)
	assert.True(t, status[1].Live)
	assert.Equal(t, 2, status[1].Adapters)
}

func TestCollectAllBackendsFail(t *testing.T) {
	vk := &fakeDriver{backend: BackendVulkan, openErr: errors.Mark(errors.New("no ICD"), ErrDriverMissing)}
	gl := &fakeDriver{backend: BackendGL, openErr: errors.Mark(errors.New("EACCES /dev/dri/renderD128"), ErrPermissionDenied)}

	model, err := Collect(context.Background(), WithDrivers(vk, gl), WithBackends(BackendVulkan, BackendGL))
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, ErrNoBackendAvailable))

	var nbe *NoBackendError
	require.True(t, errors.As(err, &nbe))
	require.Len(t, nbe.Failures, 2)
	assert.Equal(t, FailureDriverMissing, nbe.Failures[0].Kind)
	assert.Equal(t, FailurePermissionDenied, nbe.Failures[1].Kind)
	assert.Len(t, errors.GetAllHints(err), 2)
}

func TestCollectErrorsMatchStandardLibrary(t *testing.T) {
	vk := &fakeDriver{backend: BackendVulkan, openErr: errors.Mark(errors.New("no ICD"), ErrDriverMissing)}
	_, err := Collect(context.Background(), WithDrivers(vk), WithBackends(BackendVulkan))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNoBackendAvailable))
	assert.False(t, stderrors.Is(err, ErrAdapterQueryFailed))

	var nbe *NoBackendError
	require.True(t, stderrors.As(err, &nbe))
	require.Len(t, nbe.Failures, 1)

	bf := nbe.Failures[0].Err()
	assert.True(t, stderrors.Is(bf, ErrBackendUnavailable))
	assert.True(t, stderrors.Is(bf, ErrDriverMissing))
	assert.False(t, stderrors.Is(bf, ErrPermissionDenied))

	af := AdapterFailure{Backend: BackendVulkan, Ordinal: 0, Reason: "device lost"}.Err()
	assert.True(t, stderrors.Is(af, ErrAdapterQueryFailed))
	an := Anomaly{Native: "maxBufferSize", Reported: -1, Reason: "negative value"}.Err()
	assert.True(t, stderrors.Is(an, ErrMalformedCapability))
	assert.False(t, stderrors.Is(an, ErrBackendUnavailable))
}

func TestCollectNoDrivers(t *testing.T) {
	model, err := Collect(context.Background(), WithDrivers())
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, ErrNoBackendAvailable))

	var nbe *NoBackendError
	require.True(t, errors.As(err, &nbe))
	require.Len(t, nbe.Failures, len(AllBackends()))
	for _, f := range nbe.Failures {
		assert.Equal(t, FailureUnsupportedPlatform, f.Kind)
	}
}

func TestCollectNoBackendsSelected(t *testing.T) {
	_, err := Collect(context.Background(), WithBackends())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoBackendAvailable))
}

func TestCollectClassifiesFailures(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{errors.Mark(errors.New("x"), ErrNotInstalled), FailureNotInstalled},
		{errors.Wrap(ErrDriverMissing, "loader"), FailureDriverMissing},
		{ErrPermissionDenied, FailurePermissionDenied},
		{errors.Mark(errors.New("x"), ErrUnsupportedPlatform), FailureUnsupportedPlatform},
		{errors.New("vkCreateInstance: VK_ERROR_INITIALIZATION_FAILED"), FailureInitFailed},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			bad := &fakeDriver{backend: BackendMetal, openErr: tt.err}
			good := &fakeDriver{backend: BackendSoftware, adapters: []fakeAdapter{adapterNamed("cpu")}}
			model, err := Collect(context.Background(), WithDrivers(bad, good), WithBackends(BackendMetal, BackendSoftware))
			require.NoError(t, err)
			require.Len(t, model.BackendFailures(), 1)
			assert.Equal(t, tt.want, model.BackendFailures()[0].Kind)
		})
	}
}

func TestCollectLiveBackendWithoutAdapters(t *testing.T) {
	vk := &fakeDriver{backend: BackendVulkan}
	model, err := Collect(context.Background(), WithDrivers(vk), WithBackends(BackendVulkan))
	require.NoError(t, err)
	assert.Empty(t, model.Adapters())
	assert.Empty(t, model.BackendFailures())
	require.Len(t, model.Backends(), 1)
	assert.True(t, model.Backends()[0].Live)
	assert.Zero(t, model.Backends()[0].Adapters)
}

func TestCollectEnumerationOrderIsStable(t *testing.T) {
	var adapters []fakeAdapter
	for i := range 6 {
		adapters = append(adapters, adapterNamed(fmt.Sprintf("gpu-%d", i)))
	}
	drivers := []Driver{
		&fakeDriver{backend: BackendGL, adapters: adapters[:2]},
		&fakeDriver{backend: BackendVulkan, adapters: adapters[2:5], concurrent: true},
		&fakeDriver{backend: BackendSoftware, adapters: adapters[5:]},
	}

	first, err := Collect(context.Background(), WithDrivers(drivers...))
	require.NoError(t, err)
	second, err := Collect(context.Background(), WithDrivers(drivers...))
	require.NoError(t, err)
	assert.Equal(t, first.Adapters(), second.Adapters())

	var got []string
	for _, a := range first.Adapters() {
		got = append(got, fmt.Sprintf("%s/%d/%s", a.Backend, a.Ordinal, a.Identity.Name))
	}
	assert.Equal(t, []string{
		"vulkan/0/gpu-2", "vulkan/1/gpu-3", "vulkan/2/gpu-4",
		"gl/0/gpu-0", "gl/1/gpu-1",
		"software/0/gpu-5",
	}, got)
}

func TestCollectAdapterQueryFailures(t *testing.T) {
	lost := adapterNamed("unplugged")
	lost.err = errors.Wrap(ErrAdapterLost, "VK_ERROR_DEVICE_LOST")
	crashed := adapterNamed("crashed")
	crashed.panic = true

	vk := &fakeDriver{backend: BackendVulkan, adapters: []fakeAdapter{adapterNamed("ok"), lost, crashed}}
	model, err := Collect(context.Background(), WithDrivers(vk), WithBackends(BackendVulkan))
	require.NoError(t, err)

	adapters := model.Adapters()
	require.Len(t, adapters, 1)
	assert.Equal(t, "ok", adapters[0].Identity.Name)

	failures := model.AdapterFailures()
	require.Len(t, failures, 2)
	assert.Equal(t, 1, failures[0].Ordinal)
	assert.Contains(t, failures[0].Reason, "VK_ERROR_DEVICE_LOST")
	assert.Equal(t, 2, failures[1].Ordinal)
	assert.Contains(t, failures[1].Reason, "driver panic")
	assert.Equal(t, 3, model.Backends()[0].Adapters)
	assert.Empty(t, model.BackendFailures())
}

func TestCollectClampsMalformedLimits(t *testing.T) {
	a := adapterNamed("odd")
	a.caps.Limits = append(a.caps.Limits[:0:0], a.caps.Limits...)
	for i := range a.caps.Limits {
		if a.caps.Limits[i].Name == "MaxBufferSize" {
			a.caps.Limits[i].Value = -4096
		}
	}
	gl := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{a}}

	model, err := Collect(context.Background(), WithDrivers(gl), WithBackends(BackendGL))
	require.NoError(t, err)
	r := model.Adapters()[0]
	assert.Zero(t, r.Limits.Value(LimitMaxBufferSize))
	assert.Zero(t, r.Limits.Value(LimitMaxStorageBufferBindingSize))
	require.Len(t, r.Anomalies, 1)
	assert.Equal(t, Anomaly{
		Limit:    LimitMaxBufferSize,
		Native:   "MaxBufferSize",
		Reported: -4096,
		Reason:   "negative value",
	}, r.Anomalies[0])
}

func TestCollectDriverPanicsOnOpen(t *testing.T) {
	bad := &fakeDriver{backend: BackendDX12, openPanic: true}
	good := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("gl")}}
	model, err := Collect(context.Background(), WithDrivers(bad, good), WithBackends(BackendDX12, BackendGL))
	require.NoError(t, err)
	require.Len(t, model.BackendFailures(), 1)
	assert.Equal(t, FailureInitFailed, model.BackendFailures()[0].Kind)
	assert.Contains(t, model.BackendFailures()[0].Reason, "loader crashed")
}

func TestCollectEnumerationFailure(t *testing.T) {
	bad := &fakeDriver{backend: BackendVulkan, listErr: errors.New("vkEnumeratePhysicalDevices failed")}
	good := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("gl")}}
	model, err := Collect(context.Background(), WithDrivers(bad, good), WithBackends(BackendVulkan, BackendGL))
	require.NoError(t, err)
	require.Len(t, model.BackendFailures(), 1)
	assert.Contains(t, model.BackendFailures()[0].Reason, "enumerate adapters")
	require.Len(t, bad.sessions, 1)
	assert.True(t, bad.sessions[0].closed.Load())
}

func TestCollectQueryConcurrency(t *testing.T) {
	var adapters []fakeAdapter
	for i := range 8 {
		adapters = append(adapters, adapterNamed(fmt.Sprintf("gpu-%d", i)))
	}

	t.Run("sequential unless allowed", func(t *testing.T) {
		d := &fakeDriver{backend: BackendVulkan, adapters: adapters}
		_, err := Collect(context.Background(), WithDrivers(d), WithBackends(BackendVulkan), WithQueryConcurrency(8))
		require.NoError(t, err)
		require.Len(t, d.sessions, 1)
		assert.Equal(t, int32(1), d.sessions[0].peak.Load())
	})

	t.Run("bounded fan-out keeps order", func(t *testing.T) {
		d := &fakeDriver{backend: BackendVulkan, adapters: adapters, concurrent: true}
		model, err := Collect(context.Background(), WithDrivers(d), WithBackends(BackendVulkan), WithQueryConcurrency(2))
		require.NoError(t, err)
		require.Len(t, d.sessions, 1)
		assert.LessOrEqual(t, d.sessions[0].peak.Load(), int32(2))
		for i, a := range model.Adapters() {
			assert.Equal(t, fmt.Sprintf("gpu-%d", i), a.Identity.Name)
			assert.Equal(t, i, a.Ordinal)
		}
	})
}

func TestCollectClosesSessions(t *testing.T) {
	d := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("gl")}}
	_, err := Collect(context.Background(), WithDrivers(d), WithBackends(BackendGL))
	require.NoError(t, err)
	require.Len(t, d.sessions, 1)
	assert.True(t, d.sessions[0].closed.Load())
}

func TestCollectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("gl")}}
	model, err := Collect(ctx, WithDrivers(d))
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, d.opens.Load())
}

func TestCollectKeepsModelWhenCancelledAfterProbing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &fakeDriver{backend: BackendGL, adapters: []fakeAdapter{adapterNamed("gl")}, onOpen: cancel}
	model, err := Collect(ctx, WithDrivers(d), WithBackends(BackendGL))
	require.NoError(t, err)
	require.NotNil(t, model)
	require.Len(t, model.Adapters(), 1)
	assert.Equal(t, "gl", model.Adapters()[0].Identity.Name)
	assert.Error(t, ctx.Err())
}

func TestCollectOpenInterruptedByCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &fakeDriver{
		backend: BackendGL,
		openErr: errors.Wrap(context.Canceled, "waiting for loader"),
		onOpen:  cancel,
	}
	model, err := Collect(ctx, WithDrivers(d), WithBackends(BackendGL))
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCollectDefaultRegistry(t *testing.T) {
	d := &fakeDriver{backend: BackendSoftware, adapters: []fakeAdapter{adapterNamed("registered")}}
	RegisterDriver(d)
	t.Cleanup(func() { UnregisterDriver(BackendSoftware) })

	assert.Contains(t, RegisteredBackends(), BackendSoftware)

	model, err := Collect(context.Background(), WithBackends(BackendSoftware))
	require.NoError(t, err)
	require.Len(t, model.Adapters(), 1)
	assert.Equal(t, "registered", model.Adapters()[0].Identity.Name)

	UnregisterDriver(BackendSoftware)
	assert.NotContains(t, RegisteredBackends(), BackendSoftware)
}

func TestCollectWithRegistry(t *testing.T) {
	r := NewDriverRegistry()
	d := &fakeDriver{backend: BackendMetal, adapters: []fakeAdapter{adapterNamed("m1")}}
	r.Register("metal", func() Driver { return d })

	model, err := Collect(context.Background(), WithRegistry(r), WithBackends(BackendMetal))
	require.NoError(t, err)
	assert.Len(t, model.Adapters(), 1)
}

func TestCollectShaderCheck(t *testing.T) {
	vk := &fakeDriver{backend: BackendVulkan}
	sw := &fakeDriver{backend: BackendSoftware}
	model, err := Collect(context.Background(), WithDrivers(vk, sw), WithBackends(BackendVulkan, BackendSoftware), WithShaderCheck(true))
	require.NoError(t, err)

	status := model.Backends()
	require.Len(t, status, 2)
	require.NotNil(t, status[0].Shader)
	assert.Equal(t, "SPIR-V", status[0].Shader.Language)
	assert.True(t, status[0].Shader.OK)
	assert.Nil(t, status[1].Shader)
}
