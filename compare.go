package constmapper

import (
	"math"
	"reflect"
	"strings"

	"github.com/nanahuse/constmapper/meta"
	"golang.org/x/exp/constraints"
)

// Matcher is implemented by cell types that act as predicates. Anyable and
// Range are matchers; user types implementing Match can be used as columns
// the same way.
type Matcher = meta.Matcher

// match decides whether a table cell satisfies a lookup key
func match(cell, key any) bool {
	if isMarker(key) {
		return true
	}
	if m, ok := cell.(Matcher); ok {
		return m.Match(key)
	}
	if m, ok := key.(Matcher); ok {
		return m.Match(cell)
	}
	return equal(cell, key)
}

// equal compares two plain values. Values of the same type are compared with
// an Equal method if the type has one, and with == otherwise. Values of
// different numeric types are compared by value, as are values of different
// string-based types.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() == vb.Type() {
		if eq, ok := equalMethod(va, vb); ok {
			return eq
		}
		// Comparable types may still hold incomparable values in
		// interface fields
		if va.Comparable() && vb.Comparable() {
			return a == b
		}
		return reflect.DeepEqual(a, b)
	}
	c, ok := compareValues(va, vb)
	return ok && c == 0
}

// equalMethod calls a.Equal(b) if the type of a has a method of the form
// Equal(T) bool, as time.Time does
func equalMethod(a, b reflect.Value) (bool, bool) {
	m := a.MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.In(0) != b.Type() || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return false, false
	}
	return m.Call([]reflect.Value{b})[0].Bool(), true
}

type numberClass int

const (
	notNumber numberClass = iota
	signedNumber
	unsignedNumber
	floatNumber
)

func classify(v reflect.Value) numberClass {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	default:
		return notNumber
	}
}

// compareValues orders two values of possibly different types. Only numbers
// (of any kind) and strings (of any string-based type) can be ordered; the
// second return value is false for anything else and for NaN.
func compareValues(a, b reflect.Value) (int, bool) {
	if !a.IsValid() || !b.IsValid() {
		return 0, false
	}
	if a.Kind() == reflect.String && b.Kind() == reflect.String {
		return strings.Compare(a.String(), b.String()), true
	}

	ca, cb := classify(a), classify(b)
	switch {
	case ca == notNumber || cb == notNumber:
		return 0, false
	case ca == floatNumber && cb == floatNumber:
		return compareFloats(a.Float(), b.Float())
	case ca == floatNumber:
		c, ok := compareIntegerFloat(b, cb, a.Float())
		return -c, ok
	case cb == floatNumber:
		return compareIntegerFloat(a, ca, b.Float())
	case ca == signedNumber && cb == signedNumber:
		return compareOrdered(a.Int(), b.Int()), true
	case ca == unsignedNumber && cb == unsignedNumber:
		return compareOrdered(a.Uint(), b.Uint()), true
	case ca == signedNumber:
		return compareSignedUnsigned(a.Int(), b.Uint()), true
	default:
		return -compareSignedUnsigned(b.Int(), a.Uint()), true
	}
}

// Bounds of the integer types as floats; both are exact powers of two
const (
	twoTo63 = float64(1 << 63)
	twoTo64 = 2 * twoTo63
)

// compareIntegerFloat orders an integer against a float without converting
// the integer to a float, which would lose precision above 2^53
func compareIntegerFloat(i reflect.Value, c numberClass, f float64) (int, bool) {
	if f != f { // NaN is unordered
		return 0, false
	}
	whole := math.Trunc(f)
	var cmp int
	if c == signedNumber {
		switch {
		case f >= twoTo63:
			return -1, true
		case f < -twoTo63:
			return 1, true
		}
		cmp = compareOrdered(i.Int(), int64(whole))
	} else {
		switch {
		case f < 0:
			return 1, true
		case f >= twoTo64:
			return -1, true
		}
		cmp = compareOrdered(i.Uint(), uint64(whole))
	}
	if cmp != 0 {
		return cmp, true
	}
	// equal integral parts: the fraction decides
	return compareOrdered(0, f-whole), true
}

func compareFloats(a, b float64) (int, bool) {
	if a != a || b != b { // NaN is unordered
		return 0, false
	}
	return compareOrdered(a, b), true
}

func compareSignedUnsigned(a int64, b uint64) int {
	if a < 0 {
		return -1
	}
	return compareOrdered(uint64(a), b)
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
