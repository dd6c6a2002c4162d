package gpuinfo

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// AdapterIdentity is the identity of one adapter, captured at query time.
type AdapterIdentity struct {
	Name       string     `json:"name" yaml:"name"`
	Vendor     string     `json:"vendor" yaml:"vendor"`
	VendorID   uint32     `json:"vendor_id" yaml:"vendor_id"`
	DeviceID   uint32     `json:"device_id" yaml:"device_id"`
	Kind       DeviceKind `json:"device_kind" yaml:"device_kind"`
	Driver     string     `json:"driver" yaml:"driver"`
	DriverInfo string     `json:"driver_info,omitempty" yaml:"driver_info,omitempty"`
}

// FeatureSet is a set of canonical features. The zero value is empty.
// FeatureSet values are comparable with ==.
type FeatureSet struct {
	mask uint64
}

// NewFeatureSet returns a set holding the given features. Features outside
// the canonical vocabulary are ignored.
func NewFeatureSet(features ...Feature) FeatureSet {
	var s FeatureSet
	for _, f := range features {
		s = s.with(f)
	}
	return s
}

func (s FeatureSet) with(f Feature) FeatureSet {
	if i, ok := featureIndex[f]; ok {
		s.mask |= 1 << i
	}
	return s
}

// Has reports whether f is in the set.
func (s FeatureSet) Has(f Feature) bool {
	i, ok := featureIndex[f]
	return ok && s.mask&(1<<i) != 0
}

// Len returns the number of features in the set.
func (s FeatureSet) Len() int {
	n := 0
	for m := s.mask; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// List returns the features in vocabulary order.
func (s FeatureSet) List() []Feature {
	out := make([]Feature, 0, s.Len())
	for i, f := range featureVocabulary {
		if s.mask&(1<<i) != 0 {
			out = append(out, f)
		}
	}
	return out
}

// Strings returns the feature names in sorted order.
func (s FeatureSet) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, f := range s.List() {
		out = append(out, string(f))
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted list of names.
func (s FeatureSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// MarshalYAML encodes the set as a sorted list of names.
func (s FeatureSet) MarshalYAML() (any, error) {
	return s.Strings(), nil
}

const numLimits = len(limitSchema)

// LimitTable maps canonical limit names to values. Tables inside an
// [AdapterReport] always hold every canonical limit; tables built with
// [NewLimitTable] may be partial and are used as requirements.
type LimitTable struct {
	values [numLimits]uint64
	set    uint64
}

// NewLimitTable builds a table from canonical names. Unknown names are an
// error.
func NewLimitTable(values map[string]uint64) (LimitTable, error) {
	var t LimitTable
	for name, v := range values {
		i, ok := limitIndex[name]
		if !ok {
			return LimitTable{}, errors.Newf("gpuinfo: unknown limit %q", name)
		}
		t.put(i, v)
	}
	return t, nil
}

func (t *LimitTable) put(i int, v uint64) {
	t.values[i] = v
	t.set |= 1 << i
}

func (t LimitTable) has(i int) bool { return t.set&(1<<i) != 0 }

// Get returns the value of a canonical limit.
func (t LimitTable) Get(name string) (uint64, bool) {
	i, ok := limitIndex[name]
	if !ok || !t.has(i) {
		return 0, false
	}
	return t.values[i], true
}

// Value returns the value of a canonical limit, or 0 when absent.
func (t LimitTable) Value(name string) uint64 {
	v, _ := t.Get(name)
	return v
}

// Len returns the number of limits in the table.
func (t LimitTable) Len() int {
	n := 0
	for m := t.set; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// LimitEntry is one row of a [LimitTable].
type LimitEntry struct {
	LimitSpec
	Value uint64
}

// Entries returns the limits present in the table in schema order.
func (t LimitTable) Entries() []LimitEntry {
	out := make([]LimitEntry, 0, t.Len())
	for i, spec := range limitSchema {
		if t.has(i) {
			out = append(out, LimitEntry{LimitSpec: spec, Value: t.values[i]})
		}
	}
	return out
}

// Keys returns the names present in the table in schema order.
func (t LimitTable) Keys() []string {
	out := make([]string, 0, t.Len())
	for i, spec := range limitSchema {
		if t.has(i) {
			out = append(out, spec.Name)
		}
	}
	return out
}

// MarshalJSON encodes the table as an object in schema order.
func (t LimitTable) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for n, e := range t.Entries() {
		if n > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = fmt.Appendf(buf, ":%d", e.Value)
	}
	return append(buf, '}'), nil
}

// MarshalYAML encodes the table as a mapping in schema order.
func (t LimitTable) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range t.Entries() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(e.Value)},
		)
	}
	return node, nil
}

// Anomaly records a malformed backend value that was sanitized.
type Anomaly struct {
	// Limit is the canonical limit affected, empty when the native name has
	// no canonical mapping.
	Limit    string `json:"limit,omitempty" yaml:"limit,omitempty"`
	Native   string `json:"native" yaml:"native"`
	Reported int64  `json:"reported" yaml:"reported"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Err returns the anomaly as an error matching [ErrMalformedCapability].
func (a Anomaly) Err() error {
	return newClassError(fmt.Sprintf("%s=%d: %s", a.Native, a.Reported, a.Reason), ErrMalformedCapability)
}

// AdapterReport is the normalized description of one adapter.
type AdapterReport struct {
	Backend  Backend         `json:"backend" yaml:"backend"`
	Ordinal  int             `json:"ordinal" yaml:"ordinal"`
	Identity AdapterIdentity `json:"identity" yaml:"identity"`
	Features FeatureSet      `json:"features" yaml:"features"`
	Limits   LimitTable      `json:"limits" yaml:"limits"`

	// Anomalies lists values that were clamped to zero.
	Anomalies []Anomaly `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
	// Unreported lists canonical limits the backend gave no value for.
	Unreported []string `json:"unreported,omitempty" yaml:"unreported,omitempty"`
	// Dropped lists native names with no canonical mapping.
	Dropped []string `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// Supports reports whether the adapter has every listed feature.
func (r AdapterReport) Supports(features ...Feature) bool {
	for _, f := range features {
		if !r.Features.Has(f) {
			return false
		}
	}
	return true
}

// Satisfies reports whether the adapter meets every limit in required.
func (r AdapterReport) Satisfies(required LimitTable) bool {
	return len(r.Unmet(required)) == 0
}

// Unmet returns the names of required limits the adapter does not meet.
// A maximum is met when the adapter's value is at least the required one;
// an alignment is met when the adapter's value is at most the required one.
func (r AdapterReport) Unmet(required LimitTable) []string {
	var out []string
	for _, e := range required.Entries() {
		have := r.Limits.Value(e.Name)
		ok := have >= e.Value
		if e.Class == LimitAlignment {
			ok = have <= e.Value
		}
		if !ok {
			out = append(out, e.Name)
		}
	}
	return out
}

func (r AdapterReport) clone() AdapterReport {
	r.Anomalies = slices.Clone(r.Anomalies)
	r.Unreported = slices.Clone(r.Unreported)
	r.Dropped = slices.Clone(r.Dropped)
	return r
}

// BackendFailure records a backend that did not initialize.
type BackendFailure struct {
	Backend Backend     `json:"backend" yaml:"backend"`
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Reason  string      `json:"reason" yaml:"reason"`
}

// Err returns the failure as an error matching [ErrBackendUnavailable] and
// the sentinel of its kind.
func (f BackendFailure) Err() error {
	return newClassError(fmt.Sprintf("%s: %s", f.Backend, f.Reason), f.Kind.Sentinel(), ErrBackendUnavailable)
}

// AdapterFailure records an adapter that was enumerated but could not be
// queried.
type AdapterFailure struct {
	Backend Backend `json:"backend" yaml:"backend"`
	Ordinal int     `json:"ordinal" yaml:"ordinal"`
	Reason  string  `json:"reason" yaml:"reason"`
}

// Err returns the failure as an error matching [ErrAdapterQueryFailed].
func (f AdapterFailure) Err() error {
	return newClassError(fmt.Sprintf("%s adapter %d: %s", f.Backend, f.Ordinal, f.Reason), ErrAdapterQueryFailed)
}

// ShaderTarget is the result of translating a probe shader for a backend's
// native shading language on the host.
type ShaderTarget struct {
	Language string `json:"language" yaml:"language"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	OK       bool   `json:"ok" yaml:"ok"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BackendStatus summarizes one probed backend.
type BackendStatus struct {
	Backend  Backend       `json:"backend" yaml:"backend"`
	Live     bool          `json:"live" yaml:"live"`
	Adapters int           `json:"adapters" yaml:"adapters"`
	Shader   *ShaderTarget `json:"shader,omitempty" yaml:"shader,omitempty"`
}

// CapabilityModel is the normalized result of one collection. It is never
// modified after construction; accessors return copies.
type CapabilityModel struct {
	adapters        []AdapterReport
	backends        []BackendStatus
	backendFailures []BackendFailure
	adapterFailures []AdapterFailure
}

// Adapters returns the adapter reports in enumeration order, backend first
// then ordinal.
func (m *CapabilityModel) Adapters() []AdapterReport {
	out := make([]AdapterReport, len(m.adapters))
	for i, r := range m.adapters {
		out[i] = r.clone()
	}
	return out
}

// Adapter returns the report for one adapter.
func (m *CapabilityModel) Adapter(b Backend, ordinal int) (AdapterReport, bool) {
	for _, r := range m.adapters {
		if r.Backend == b && r.Ordinal == ordinal {
			return r.clone(), true
		}
	}
	return AdapterReport{}, false
}

// Backends returns the status of every probed backend in probe order.
func (m *CapabilityModel) Backends() []BackendStatus {
	out := make([]BackendStatus, len(m.backends))
	for i, s := range m.backends {
		if s.Shader != nil {
			sh := *s.Shader
			s.Shader = &sh
		}
		out[i] = s
	}
	return out
}

// BackendFailures returns the backends that failed to initialize.
func (m *CapabilityModel) BackendFailures() []BackendFailure {
	return slices.Clone(m.backendFailures)
}

// FailureReasons maps backend name to failure reason.
func (m *CapabilityModel) FailureReasons() map[string]string {
	out := make(map[string]string, len(m.backendFailures))
	for _, f := range m.backendFailures {
		out[f.Backend.String()] = f.Reason
	}
	return out
}

// AdapterFailures returns the adapters that could not be queried.
func (m *CapabilityModel) AdapterFailures() []AdapterFailure {
	return slices.Clone(m.adapterFailures)
}

type modelDocument struct {
	Adapters        []AdapterReport  `json:"adapters" yaml:"adapters"`
	Backends        []BackendStatus  `json:"backends" yaml:"backends"`
	BackendFailures []BackendFailure `json:"backend_failures,omitempty" yaml:"backend_failures,omitempty"`
	AdapterFailures []AdapterFailure `json:"adapter_failures,omitempty" yaml:"adapter_failures,omitempty"`
}

func (m *CapabilityModel) document() modelDocument {
	doc := modelDocument{
		Adapters:        m.Adapters(),
		Backends:        m.Backends(),
		BackendFailures: m.BackendFailures(),
		AdapterFailures: m.AdapterFailures(),
	}
	if doc.Adapters == nil {
		doc.Adapters = []AdapterReport{}
	}
	return doc
}

// MarshalJSON implements json.Marshaler.
func (m *CapabilityModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.document())
}

// MarshalYAML implements yaml.Marshaler.
func (m *CapabilityModel) MarshalYAML() (any, error) {
	return m.document(), nil
}
