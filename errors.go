package gpuinfo

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error taxonomy. Only ErrNoBackendAvailable is returned from [Collect];
// the others classify failure records kept inside the [CapabilityModel].
var (
	// ErrNoBackendAvailable is returned when every probed backend failed.
	ErrNoBackendAvailable = errors.New("gpuinfo: no backend available")

	// ErrBackendUnavailable classifies a backend that failed to initialize.
	ErrBackendUnavailable = errors.New("gpuinfo: backend unavailable")

	// ErrAdapterQueryFailed classifies an adapter that could not be queried.
	ErrAdapterQueryFailed = errors.New("gpuinfo: adapter query failed")

	// ErrMalformedCapability classifies an out-of-range backend value.
	ErrMalformedCapability = errors.New("gpuinfo: malformed capability")

	// ErrAdapterLost is returned by a Session when an adapter disappeared
	// between enumeration and query.
	ErrAdapterLost = errors.New("gpuinfo: adapter lost")
)

// Initialization failure markers. Drivers mark errors returned from
// [Driver.Open] with one of these so the failure kind can be classified.
var (
	ErrNotInstalled        = errors.New("gpuinfo: backend not installed")
	ErrDriverMissing       = errors.New("gpuinfo: driver missing")
	ErrPermissionDenied    = errors.New("gpuinfo: permission denied")
	ErrUnsupportedPlatform = errors.New("gpuinfo: unsupported platform")
)

// FailureKind classifies why a backend did not initialize.
type FailureKind string

// Failure kinds.
const (
	FailureNotInstalled        FailureKind = "not-installed"
	FailureDriverMissing       FailureKind = "driver-missing"
	FailurePermissionDenied    FailureKind = "permission-denied"
	FailureUnsupportedPlatform FailureKind = "unsupported-platform"
	FailureInitFailed          FailureKind = "init-failed"
)

// ParseFailureKind parses a failure kind token. Unknown tokens map to
// [FailureInitFailed].
func ParseFailureKind(s string) FailureKind {
	switch k := FailureKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FailureNotInstalled, FailureDriverMissing, FailurePermissionDenied, FailureUnsupportedPlatform:
		return k
	default:
		return FailureInitFailed
	}
}

// Sentinel returns the marker error for k.
func (k FailureKind) Sentinel() error {
	switch k {
	case FailureNotInstalled:
		return ErrNotInstalled
	case FailureDriverMissing:
		return ErrDriverMissing
	case FailurePermissionDenied:
		return ErrPermissionDenied
	case FailureUnsupportedPlatform:
		return ErrUnsupportedPlatform
	default:
		return ErrBackendUnavailable
	}
}

// classifyFailure maps a Driver.Open error to its failure kind.
func classifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, ErrNotInstalled):
		return FailureNotInstalled
	case errors.Is(err, ErrDriverMissing):
		return FailureDriverMissing
	case errors.Is(err, ErrPermissionDenied):
		return FailurePermissionDenied
	case errors.Is(err, ErrUnsupportedPlatform):
		return FailureUnsupportedPlatform
	default:
		return FailureInitFailed
	}
}

// NoBackendError is the concrete error behind [ErrNoBackendAvailable].
// It carries the per-backend failure records so callers can explain the
// outcome without a model.
type NoBackendError struct {
	Failures []BackendFailure
}

func (e *NoBackendError) Error() string {
	if len(e.Failures) == 0 {
		return "gpuinfo: no backend available: no backends were probed"
	}
	return fmt.Sprintf("gpuinfo: no backend available: %d backends failed", len(e.Failures))
}

// Is reports whether target is [ErrNoBackendAvailable].
func (e *NoBackendError) Is(target error) bool {
	return target == ErrNoBackendAvailable
}

// newNoBackendError builds the top-level failure. Each failed backend is
// attached as a hint.
func newNoBackendError(failures []BackendFailure) error {
	var err error = &NoBackendError{Failures: failures}
	for _, f := range failures {
		err = errors.WithHintf(err, "%s: %s (%s)", f.Backend, f.Reason, f.Kind)
	}
	if len(failures) == 0 {
		err = errors.WithHint(err, "no backends were selected; check the backend filter")
	}
	return err
}

// classError is a leaf error that matches each of its classes under
// errors.Is, both the standard library's and cockroachdb's.
type classError struct {
	msg     string
	classes []error
}

func newClassError(msg string, classes ...error) error {
	return &classError{msg: msg, classes: classes}
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool {
	for _, c := range e.classes {
		if c == target {
			return true
		}
	}
	return false
}
