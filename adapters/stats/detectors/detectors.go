// Package detectors implements the temporal pattern detectors run over a
// timestamp-sorted sequence of dimensional maps.
//
// Every detector is stateless: it reads the sample slice, never modifies it, and
// returns freshly allocated candidate patterns without ids. Confidence filtering
// and id assignment belong to the caller.
package detectors

import (
	"reflect"

	"gomood/domain/emotion"
	"gomood/domain/pattern"
)

// Detector is one pattern detection strategy.
type Detector interface {
	Name() string
	Description() string
	// Detect receives samples sorted by timestamp. It must tolerate samples with
	// absent dimensions and must not retain or mutate the slice.
	Detect(samples []emotion.DimensionalMap) []pattern.Pattern
}

// Func adapts a plain function to the Detector interface.
type Func struct {
	name        string
	description string
	fn          func([]emotion.DimensionalMap) []pattern.Pattern
}

// NewFunc wraps fn as a named detector.
func NewFunc(name, description string, fn func([]emotion.DimensionalMap) []pattern.Pattern) *Func {
	return &Func{name: name, description: description, fn: fn}
}

func (f *Func) Name() string        { return f.name }
func (f *Func) Description() string { return f.description }

func (f *Func) Detect(samples []emotion.DimensionalMap) []pattern.Pattern {
	return f.fn(samples)
}

// Registry is an ordered list of detectors. Registration order is the order in
// which detector output is concatenated.
type Registry struct {
	detectors []Detector
}

// NewRegistry creates a registry holding ds in order.
func NewRegistry(ds ...Detector) *Registry {
	r := &Registry{}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

// DefaultRegistry registers the trend, cycle, shift and stability detectors.
func DefaultRegistry(cfg Config) *Registry {
	return NewRegistry(
		NewTrendDetector(cfg),
		NewCycleDetector(cfg),
		NewShiftDetector(cfg),
		NewStabilityDetector(cfg),
	)
}

// Register appends d. Nil detectors, including nil pointers of a concrete
// detector type, are ignored.
func (r *Registry) Register(d Detector) {
	if d == nil {
		return
	}
	if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
		return
	}
	r.detectors = append(r.detectors, d)
}

// Detectors returns a copy of the registered detectors.
func (r *Registry) Detectors() []Detector {
	out := make([]Detector, len(r.detectors))
	copy(out, r.detectors)
	return out
}

// Names lists registered detector names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.detectors))
	for i, d := range r.detectors {
		names[i] = d.Name()
	}
	return names
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int {
	return len(r.detectors)
}
