package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}

// New registers value under name and returns the value, so it can be used
// directly in a var block.
func New[T comparable](value T, name string) T {
	key := typeKey(reflect.TypeOf(value))
	if _, ok := enumManager[key]; !ok {
		enumManager[key] = enum[T]{toEnum: map[string]T{}, toString: map[T]string{}}
	}

	e := enumManager[key].(enum[T])
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](name string) (T, error) {
	var defaultT T
	e, ok := enumManager[typeKey(reflect.TypeOf(defaultT))]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[name]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", name, defaultT)
	}

	return t, nil
}

func ToString[T comparable](value T) string {
	e, ok := enumManager[typeKey(reflect.TypeOf(value))]
	if !ok {
		return ""
	}

	return e.(enum[T]).toString[value]
}
