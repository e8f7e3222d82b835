package constmapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
)

// CompareType selects the predicate of a Range
type CompareType int

// CompareType values
const (
	Any CompareType = iota
	LargerThan
	LargerEqual
	Equal
	LessEqual
	LessThan
)

var compareTypeNames = map[CompareType]string{
	Any:         "*",
	LargerThan:  ">",
	LargerEqual: ">=",
	Equal:       "==",
	LessEqual:   "<=",
	LessThan:    "<",
}

// String implements fmt.Stringer
func (ct CompareType) String() string {
	if name, ok := compareTypeNames[ct]; ok {
		return name
	}
	return fmt.Sprintf("CompareType(%d)", int(ct))
}

// MarshalText implements encoding.TextMarshaler
func (ct CompareType) MarshalText() ([]byte, error) {
	name, ok := compareTypeNames[ct]
	if !ok {
		return nil, fmt.Errorf("invalid compare type %d", int(ct))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (ct *CompareType) UnmarshalText(text []byte) error {
	for value, name := range compareTypeNames {
		if name == string(text) {
			*ct = value
			return nil
		}
	}
	return fmt.Errorf("invalid compare type %q", text)
}

// Range is a cell that matches keys by comparing them with a bound. The zero
// value matches anything.
type Range[T constraints.Ordered] struct {
	compareType CompareType
	value       T
}

// NewRange returns a Range that matches keys k for which "k compareType
// value" holds, e.g. NewRange(LessThan, 2) matches keys below 2
func NewRange[T constraints.Ordered](compareType CompareType, value T) Range[T] {
	return Range[T]{compareType: compareType, value: value}
}

// CompareType returns the predicate of the range
func (r Range[T]) CompareType() CompareType {
	return r.compareType
}

// Bound returns the value keys are compared with
func (r Range[T]) Bound() T {
	return r.value
}

// Match implements Matcher. Keys of type T are compared directly; numbers and
// strings of other types are compared by value. Anything else only matches
// the Any range. Match panics if the compare type is not one of the defined
// constants.
func (r Range[T]) Match(key any) bool {
	if r.compareType == Any {
		return true
	}
	if _, ok := compareTypeNames[r.compareType]; !ok {
		panic(fmt.Errorf("compare type %v is not implemented", r.compareType))
	}
	c, ok := r.compare(key)
	if !ok {
		return false
	}
	switch r.compareType {
	case LargerThan:
		return c > 0
	case LargerEqual:
		return c >= 0
	case Equal:
		return c == 0
	case LessEqual:
		return c <= 0
	default: // LessThan
		return c < 0
	}
}

// compare orders key relative to the bound
func (r Range[T]) compare(key any) (int, bool) {
	if k, ok := key.(T); ok {
		if k != k || r.value != r.value { // NaN
			return 0, false
		}
		return compareOrdered(k, r.value), true
	}
	return compareValues(reflect.ValueOf(key), reflect.ValueOf(r.value))
}

// String implements fmt.Stringer
func (r Range[T]) String() string {
	if r.compareType == Any {
		return "*"
	}
	return fmt.Sprintf("%s %v", r.compareType, r.value)
}

type rangeJSON[T constraints.Ordered] struct {
	Op    CompareType `json:"op"`
	Value T           `json:"value"`
}

// MarshalJSON implements json.Marshaler. The Any range is null.
func (r Range[T]) MarshalJSON() ([]byte, error) {
	if r.compareType == Any {
		return []byte("null"), nil
	}
	return json.Marshal(rangeJSON[T]{Op: r.compareType, Value: r.value})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Range[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Range[T]{}
		return nil
	}
	var v rangeJSON[T]
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewRange(v.Op, v.Value)
	return nil
}
