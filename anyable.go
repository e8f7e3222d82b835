package constmapper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Anyable is an optional value used as a wildcard cell. The zero value holds
// no value and matches anything; a set value matches only equal keys.
type Anyable[T comparable] struct {
	value T
	set   bool
}

// NewAnyable returns an Anyable holding v
func NewAnyable[T comparable](v T) Anyable[T] {
	return Anyable[T]{value: v, set: true}
}

// Value returns the held value and whether there is one
func (a Anyable[T]) Value() (T, bool) {
	return a.value, a.set
}

// IsAny returns true if a holds no value
func (a Anyable[T]) IsAny() bool {
	return !a.set
}

// Equal reports whether a and other are equal. Two Anyables are equal if
// either of them is empty, or if both hold equal values.
func (a Anyable[T]) Equal(other Anyable[T]) bool {
	if !a.set || !other.set {
		return true
	}
	return a.value == other.value
}

// Match implements Matcher. An empty Anyable matches anything. Otherwise, v
// matches if it is an equal T, an Anyable[T] that Equal accepts, or a number
// or string of another type with the same value.
func (a Anyable[T]) Match(v any) bool {
	if !a.set {
		return true
	}
	switch v := v.(type) {
	case T:
		return a.value == v
	case Anyable[T]:
		return a.Equal(v)
	}
	return equal(a.value, v)
}

// String implements fmt.Stringer
func (a Anyable[T]) String() string {
	if !a.set {
		return "*"
	}
	return fmt.Sprint(a.value)
}

// MarshalJSON implements json.Marshaler. An empty Anyable is null.
func (a Anyable[T]) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Anyable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Anyable[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = NewAnyable(v)
	return nil
}
