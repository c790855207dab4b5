package enum

import (
	"fmt"
	"reflect"
	"strings"
)

// registry maps an enum type to its values in declaration order.
var registry = map[reflect.Type][]any{}

// New declares value as a member of its type. Declarations happen in package
// variable initialization, so the registry is read-only afterwards.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	registry[t] = append(registry[t], value)
	return value
}

// ToEnum returns the member of T whose string form is s.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("enum %T is not declared", zero)
	}

	for _, v := range values {
		if fmt.Sprint(v) == s {
			return v.(T), nil
		}
	}

	return zero, fmt.Errorf("%q is not a value of %T, expected one of %s", s, zero, Names[T]())
}

// Names lists the members of T separated by "|".
func Names[T comparable]() string {
	var zero T
	names := []string{}
	for _, v := range registry[reflect.TypeOf(zero)] {
		names = append(names, fmt.Sprint(v))
	}

	return strings.Join(names, "|")
}
