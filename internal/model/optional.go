package model

import "encoding/json"

// Optional distinguishes "not supplied" from any supplied value, including null.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// UnmarshalJSON is only invoked for keys present in the document, so any
// call marks the field as supplied. A JSON null leaves Value at its zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
