package arena

import (
	"fmt"
	"reflect"
)

// untypedArena is the type-erased face of an *Arena[T]. The registry
// stores these, keyed by the element's reflect.Type, and hands the typed
// arena back to callers who supply the matching T.
//
// The erasure is structural, not layout punning: the concrete value
// behind the interface is always the original *Arena[T], and recovering
// it is a checked type assertion. The pairing of map key and element
// type is the soundness invariant of the whole package; it is enforced
// here and nowhere else.
type untypedArena interface {
	// elemType returns the reflect.Type of T.
	elemType() reflect.Type

	// length returns the number of live values.
	length() int

	// clear drops all values and storage.
	clear()

	// eachPtr visits every live value in index order as a boxed *T.
	// Returning false stops the traversal.
	eachPtr(fn func(any) bool)
}

func (a *Arena[T]) elemType() reflect.Type { return typeOf[T]() }
func (a *Arena[T]) length() int            { return a.count }
func (a *Arena[T]) clear()                 { a.Clear() }

func (a *Arena[T]) eachPtr(fn func(any) bool) {
	a.Each(func(_ Key[T], v *T) bool {
		return fn(v)
	})
}

// typedArena recovers the *Arena[T] behind an untypedArena.
// A mismatch means the registry's type keying was bypassed; continuing
// would hand out values of the wrong type, so it is fatal.
func typedArena[T any](u untypedArena) *Arena[T] {
	a, ok := u.(*Arena[T])
	if !ok {
		panic(fmt.Sprintf("arena: type mismatch: arena holds %v, caller asked for %v",
			u.elemType(), typeOf[T]()))
	}
	return a
}

// typeOf returns the reflect.Type of T without needing a value of T.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeName[T any]() string {
	return typeOf[T]().String()
}
