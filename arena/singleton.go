package arena

// Singletons: at most one standalone value per concrete type, living in
// the registry next to that type's arena. Used for per-type resources
// (a renderer's shared pipeline state, a type-wide counter) that should
// participate in capability iteration without occupying a slot.

// SetSingleton stores v as the singleton for type T, replacing any
// previous one.
func SetSingleton[T any](as *Arenas, v T) {
	as.singletons[typeOf[T]()] = &v
}

// Singleton returns a pointer to the singleton for T, or (nil, false)
// if none was set.
func Singleton[T any](as *Arenas) (*T, bool) {
	s, ok := as.singletons[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return s.(*T), true
}

// RemoveSingleton drops the singleton for T and returns it.
// Returns (zero, false) if none was set.
func RemoveSingleton[T any](as *Arenas) (T, bool) {
	t := typeOf[T]()
	s, ok := as.singletons[t]
	if !ok {
		var zero T
		return zero, false
	}
	delete(as.singletons, t)
	return *s.(*T), true
}
