package engine

import (
	"reflect"
	"time"
)

// Resources is a type-keyed store for global singletons (time, config,
// input state) shared by all systems. Unlike arena singletons, these are
// engine-level and never participate in capability iteration.
//
// Register pointer types so systems can mutate the resource in place.
type Resources struct {
	resources map[reflect.Type]any
}

// NewResources creates an empty resource store.
func NewResources() *Resources {
	return &Resources{resources: make(map[reflect.Type]any)}
}

// AddResource registers or replaces a resource of type T.
func AddResource[T any](rs *Resources, resource T) {
	rs.resources[reflect.TypeOf(resource)] = resource
}

// GetResource retrieves the resource of type T.
// Returns the zero value and false if not present.
func GetResource[T any](rs *Resources) (T, bool) {
	var zero T
	v, ok := rs.resources[reflect.TypeOf(&zero).Elem()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// MustGetResource retrieves a resource that must exist (Time, Config).
// Panics if missing: that is a wiring error, not a runtime condition.
func MustGetResource[T any](rs *Resources) T {
	v, ok := GetResource[T](rs)
	if !ok {
		var zero T
		panic("engine: required resource not found: " + reflect.TypeOf(&zero).Elem().String())
	}
	return v
}

// TimeResource carries per-tick timing, updated by the scheduler at the
// start of every tick before systems run.
type TimeResource struct {
	// Now is the wall-clock time of the current tick.
	Now time.Time

	// Delta is the duration since the previous tick.
	Delta time.Duration

	// Tick is the running tick count.
	Tick uint64
}

// advance moves the time resource to the next tick.
func (tr *TimeResource) advance(now time.Time) {
	if !tr.Now.IsZero() {
		tr.Delta = now.Sub(tr.Now)
	}
	tr.Now = now
	tr.Tick++
}
