package constmapper

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	type name string

	assert.True(t, equal(1, 1))
	assert.False(t, equal(1, 2))
	assert.True(t, equal(1, uint8(1)))
	assert.True(t, equal(uint8(1), 1))
	assert.False(t, equal(-1, uint8(255)))
	assert.False(t, equal(uint64(math.MaxUint64), -1))
	assert.True(t, equal(int64(math.MaxInt64), uint64(math.MaxInt64)))
	assert.True(t, equal(1.0, 1))
	assert.False(t, equal(1.5, 1))
	assert.True(t, equal("a", name("a")))
	assert.False(t, equal("a", name("b")))
	assert.False(t, equal(1, "1"))
	assert.True(t, equal(true, true))
	assert.False(t, equal(true, false))
	assert.True(t, equal([]int{1}, []int{1}))
	assert.True(t, equal(nil, nil))
	assert.False(t, equal(nil, 0))
	assert.False(t, equal(0, nil))
	assert.False(t, equal(math.NaN(), float32(1)))

	// comparable struct types holding incomparable values
	type boxed struct{ V any }
	assert.True(t, equal(boxed{[]int{1}}, boxed{[]int{1}}))
	assert.False(t, equal(boxed{[]int{1}}, boxed{[]int{2}}))
	assert.True(t, equal(boxed{1}, boxed{1}))

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, equal(ts, ts.In(time.FixedZone("X", 3600))))
	assert.False(t, equal(ts, ts.Add(time.Nanosecond)))
}

func TestCompareValues(t *testing.T) {
	cmp := func(a, b any) int {
		c, ok := compareValues(reflect.ValueOf(a), reflect.ValueOf(b))
		require.True(t, ok)
		return c
	}
	assert.Equal(t, -1, cmp(1, 2))
	assert.Equal(t, 1, cmp(uint16(3), int8(-3)))
	assert.Equal(t, -1, cmp(int8(-3), uint16(3)))
	assert.Equal(t, 0, cmp(uint(7), int64(7)))
	assert.Equal(t, 1, cmp(2.5, 2))
	assert.Equal(t, -1, cmp(uint8(2), float32(2.5)))
	assert.Equal(t, -1, cmp("abc", "abd"))

	_, ok := compareValues(reflect.ValueOf(math.NaN()), reflect.ValueOf(1))
	assert.False(t, ok)
	_, ok = compareValues(reflect.ValueOf(true), reflect.ValueOf(1))
	assert.False(t, ok)
	_, ok = compareValues(reflect.ValueOf("1"), reflect.ValueOf(1))
	assert.False(t, ok)
	_, ok = compareValues(reflect.Value{}, reflect.ValueOf(1))
	assert.False(t, ok)
	_, ok = compareValues(reflect.ValueOf(uint8(1)), reflect.ValueOf(math.NaN()))
	assert.False(t, ok)
}

func TestCompareIntegerFloat(t *testing.T) {
	cmp := func(a, b any) int {
		c, ok := compareValues(reflect.ValueOf(a), reflect.ValueOf(b))
		require.True(t, ok)
		return c
	}

	// beyond 2^53 an int64 doesn't survive a round trip through float64
	assert.Equal(t, 1, cmp(int64(1<<53+1), float64(1<<53)))
	assert.Equal(t, -1, cmp(float64(1<<53), int64(1<<53+1)))
	assert.Equal(t, -1, cmp(int64(-(1<<53 + 1)), -float64(1<<53)))
	assert.Equal(t, 1, cmp(uint64(1<<53+1), float64(1<<53)))
	assert.Equal(t, 0, cmp(int64(1<<53), float64(1<<53)))

	// float64(MaxInt64) and float64(MaxUint64) round up to 2^63 and 2^64
	assert.Equal(t, -1, cmp(int64(math.MaxInt64), float64(math.MaxInt64)))
	assert.Equal(t, 0, cmp(int64(math.MinInt64), float64(math.MinInt64)))
	assert.Equal(t, 1, cmp(int64(math.MinInt64), -math.Ldexp(1, 64)))
	assert.Equal(t, -1, cmp(uint64(math.MaxUint64), float64(math.MaxUint64)))
	assert.Equal(t, 0, cmp(uint64(1<<63), float64(1<<63)))
	assert.Equal(t, -1, cmp(1, math.Inf(1)))
	assert.Equal(t, 1, cmp(uint(0), math.Inf(-1)))

	// fractions
	assert.Equal(t, -1, cmp(3, 3.5))
	assert.Equal(t, 1, cmp(4, 3.5))
	assert.Equal(t, 1, cmp(-3, -3.5))
	assert.Equal(t, 1, cmp(uint8(0), -0.5))
	assert.Equal(t, 0, cmp(uint8(0), math.Copysign(0, -1)))

	assert.False(t, equal(int64(1<<53+1), float64(1<<53)))
	assert.False(t, equal(float64(1<<53), uint64(1<<53+1)))
}

type evenMatcher struct{}

func (evenMatcher) Match(v any) bool {
	n, ok := v.(int)
	return ok && n%2 == 0
}

func TestMatch(t *testing.T) {
	assert.True(t, match("anything", Result{}))
	assert.True(t, match("anything", &Ignore{}))
	assert.True(t, match(Anyable[int]{}, 3))
	assert.True(t, match(NewAnyable(3), 3))
	assert.False(t, match(NewAnyable(3), 4))

	// predicate keys work from either side
	assert.True(t, match(3, NewAnyable(3)))
	assert.False(t, match(3, NewAnyable(4)))
	assert.True(t, match(4, evenMatcher{}))
	assert.True(t, match(evenMatcher{}, 4))
	assert.False(t, match(evenMatcher{}, 3))

	assert.True(t, match(NewRange(LessThan, 2), 1))
	assert.False(t, match(NewRange(LessThan, 2), 2))
	assert.True(t, match(uint8(1), 1))
}

type parityRow struct {
	Parity string
	Filter evenMatcher
}

func TestUserMatcherColumn(t *testing.T) {
	m := New([]parityRow{{Parity: "even"}})
	require.True(t, m.Schema().Column(1).Matcher)

	v, err := m.PatternMatch(Result{}, 4)
	require.NoError(t, err)
	require.Equal(t, "even", v)

	_, err = m.PatternMatch(Result{}, 3)
	require.ErrorIs(t, err, ErrNotFound)
}
