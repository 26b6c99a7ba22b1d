package value

import (
	"fmt"
	"reflect"
)

var dynamicType = reflect.TypeFor[Dynamic]()

// TryCast extracts a T from d. Asking for Dynamic returns d itself. String
// kinds convert into each other, so a parameter declared as string accepts an
// ImmutableString argument.
func TryCast[T any](d Dynamic) (T, bool) {
	if reflect.TypeFor[T]() == dynamicType {
		return any(d).(T), true
	}
	if v, ok := d.Any().(T); ok {
		return v, true
	}
	var zero T
	target := reflect.TypeFor[T]()
	src := reflect.ValueOf(d.Any())

	switch {
	case target == stringPtrType && src.Kind() == reflect.String:
		s := src.String()
		return any(&s).(T), true
	case target.Kind() == reflect.String && src.Kind() == reflect.String:
		return src.Convert(target).Interface().(T), true
	case target.Kind() == reflect.String && src.Type() == stringPtrType && !src.IsNil():
		return reflect.ValueOf(*src.Interface().(*string)).Convert(target).Interface().(T), true
	case target.Kind() == reflect.Interface && src.IsValid() && src.Type().Implements(target):
		return src.Interface().(T), true
	}
	return zero, false
}

// Cast extracts a T from d and panics on mismatch. Callers dispatch on
// registered parameter types, so a mismatch is an engine bug.
func Cast[T any](d Dynamic) T {
	v, ok := TryCast[T](d)
	if !ok {
		panic(fmt.Sprintf("value: cannot cast %s to %s", d.TypeName(), TypeName(reflect.TypeFor[T]())))
	}
	return v
}

// Is reports whether d holds exactly a T.
func Is[T any](d Dynamic) bool {
	_, ok := d.Any().(T)
	return ok
}
