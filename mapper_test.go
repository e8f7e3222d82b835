package constmapper

import (
	"strconv"
	"strings"
	"testing"

	"github.com/nanahuse/constmapper/tlog"
	"github.com/ridge/must/v2"
	"github.com/stretchr/testify/require"
)

type valueRow struct {
	Name string
	Int  int
	Uint uint8
}

var valueRows = []valueRow{
	{"value_0", 0, 0},
	{"value_1", -1, 1},
	{"value_2", -2, 2},
	{"value_3", -3, 3},
}

// forEachMode runs a test against a scanned and an indexed table
func forEachMode[R any](t *testing.T, rows []R, test func(t *testing.T, m *Mapper[R])) {
	t.Run("scan", func(t *testing.T) {
		test(t, New(rows, WithLogger(tlog.NewForTesting(t))))
	})
	t.Run("indexed", func(t *testing.T) {
		test(t, New(rows, Indexed, WithLogger(tlog.NewForTesting(t))))
	})
}

func TestToIndex(t *testing.T) {
	forEachMode(t, valueRows, func(t *testing.T, m *Mapper[valueRow]) {
		for i := 0; i < 4; i++ {
			str := "value_" + strconv.Itoa(i)

			require.Equal(t, -i, must.OK1(ToIndex[int](m, 1, 0, str)))
			require.Equal(t, uint8(i), must.OK1(ToIndex[uint8](m, 2, 0, str)))
			require.Equal(t, str, must.OK1(ToIndex[string](m, 0, 2, i)))
			require.Equal(t, str, must.OK1(ToIndex[string](m, 0, 2, uint8(i))))
			require.Equal(t, str, must.OK1(m.To(0, 1, -i)))
		}

		_, err := m.To(0, 1, 100)
		require.ErrorIs(t, err, ErrNotFound)
		require.EqualError(t, err, "key not found: 100 in column Int")

		_, err = ToIndex[string](m, 0, 2, -1)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestToIndexInvalid(t *testing.T) {
	m := New(valueRows)

	_, err := m.To(3, 0, "value_0")
	require.ErrorIs(t, err, ErrColumnRange)
	require.EqualError(t, err, "column index out of range: to column 3, constmapper.valueRow has 3 columns")
	_, err = m.To(0, -1, "value_0")
	require.ErrorIs(t, err, ErrColumnRange)

	_, err = ToIndex[int](m, 0, 1, 0)
	require.ErrorIs(t, err, ErrColumnType)
	require.EqualError(t, err, "column type mismatch: column Name is string, not int")
}

func TestConvert(t *testing.T) {
	forEachMode(t, valueRows, func(t *testing.T, m *Mapper[valueRow]) {
		for i := 0; i < 4; i++ {
			str := "value_" + strconv.Itoa(i)

			require.Equal(t, -i, must.OK1(Convert[int, string](m, str)))
			require.Equal(t, uint8(i), must.OK1(Convert[uint8, string](m, str)))
			require.Equal(t, str, must.OK1(Convert[string, uint8](m, i)))
		}

		_, err := Convert[int, string](m, "")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = Convert[float64, string](m, "value_0")
		require.ErrorIs(t, err, ErrNoColumn)
		require.EqualError(t, err, "no column of requested type: constmapper.valueRow has no target column of type float64")
		_, err = Convert[string, int8](m, 0)
		require.ErrorIs(t, err, ErrNoColumn)
	})
}

func TestPatternTo(t *testing.T) {
	forEachMode(t, valueRows, func(t *testing.T, m *Mapper[valueRow]) {
		for i := 0; i < 4; i++ {
			str := "value_" + strconv.Itoa(i)
			require.Equal(t, str, must.OK1(PatternTo[string](m, -i, uint8(i))))
		}

		_, err := PatternTo[string](m, -1, uint8(0))
		require.ErrorIs(t, err, ErrNotFound)

		_, err = PatternTo[string](m)
		require.ErrorIs(t, err, ErrPattern)
		_, err = PatternTo[string](m, int64(1))
		require.ErrorIs(t, err, ErrNoColumn)
	})
}

type anyRow struct {
	Name  string
	Value Anyable[int]
}

func TestAnyable(t *testing.T) {
	rows := []anyRow{
		{"value_2", NewAnyable(2)},
		{"value_3", NewAnyable(3)},
		{"value_any", Anyable[int]{}},
	}
	forEachMode(t, rows, func(t *testing.T, m *Mapper[anyRow]) {
		require.False(t, m.index.Indexed(1))

		for i := 0; i < 4; i++ {
			str := must.OK1(Convert[string, Anyable[int]](m, i))
			if i < 2 {
				require.Equal(t, "value_any", str)
			} else {
				require.Equal(t, "value_"+strconv.Itoa(i), str)
			}
		}

		require.Equal(t, "value_2", must.OK1(Convert[string, Anyable[int]](m, NewAnyable(2))))
		require.Equal(t, "value_2", must.OK1(Convert[string, Anyable[int]](m, Anyable[int]{})))
		require.Equal(t, NewAnyable(3), must.OK1(Convert[Anyable[int], string](m, "value_3")))
	})
}

type rangeRow struct {
	Name  string
	Bound Range[int]
	Value Anyable[int]
}

var rangeRows = []rangeRow{
	{"less2 & 1", NewRange(LessThan, 2), NewAnyable(1)},
	{"less2 & 2", NewRange(LessThan, 2), NewAnyable(2)},
	{"larger5", NewRange(LargerThan, 5), Anyable[int]{}},
	{"Any", Range[int]{}, Anyable[int]{}},
}

func TestPatternMatch(t *testing.T) {
	forEachMode(t, rangeRows, func(t *testing.T, m *Mapper[rangeRow]) {
		require.Equal(t, "less2 & 1", must.OK1(m.PatternMatch(Result{}, 1, 1)))
		require.Equal(t, "less2 & 2", must.OK1(m.PatternMatch(Result{}, 1, 2)))
		require.Equal(t, "larger5", must.OK1(m.PatternMatch(Result{}, 6, -1)))
		require.Equal(t, "Any", must.OK1(m.PatternMatch(Result{}, 5, -1)))

		require.Equal(t, "less2 & 1", must.OK1(MatchAs[string](m, Result{}, Ignore{}, Ignore{})))
		require.Equal(t, "less2 & 2", must.OK1(MatchAs[string](m, &Result{}, uint8(0), 2)))
		require.Equal(t, NewRange(LargerThan, 5), must.OK1(MatchAs[Range[int]](m, "larger5", Result{}, Ignore{})))
	})
}

func TestPatternMatchMultipleResults(t *testing.T) {
	forEachMode(t, valueRows, func(t *testing.T, m *Mapper[valueRow]) {
		require.Equal(t, []any{"value_0", uint8(0)}, must.OK1(m.PatternMatch(Result{}, Ignore{}, Result{})))
		require.Equal(t, []any{"value_2", -2, uint8(2)}, must.OK1(m.PatternMatch(Result{}, Result{}, Result{})))
		require.Equal(t, []any{"value_3", uint8(3)}, must.OK1(m.PatternMatch(Result{}, -3, Result{})))

		_, err := MatchAs[string](m, Result{}, Ignore{}, Result{})
		require.ErrorIs(t, err, ErrPattern)
		require.EqualError(t, err, "invalid pattern: 2 Result entries, expected 1")
	})
}

func TestPatternMatchInvalid(t *testing.T) {
	m := New(valueRows)

	_, err := m.PatternMatch(Result{}, 1)
	require.ErrorIs(t, err, ErrPattern)
	require.EqualError(t, err, "invalid pattern: 2 entries for 3 columns")

	_, err = m.PatternMatch("value_0", 0, 0)
	require.ErrorIs(t, err, ErrPattern)
	require.EqualError(t, err, "invalid pattern: no Result entry")

	_, err = m.PatternMatch(Result{}, 1, Ignore{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = MatchAs[int](m, Result{}, 0, 0)
	require.ErrorIs(t, err, ErrColumnType)
}

func TestMatchRow(t *testing.T) {
	forEachMode(t, valueRows, func(t *testing.T, m *Mapper[valueRow]) {
		require.Equal(t, valueRows[2], must.OK1(m.MatchRow(Ignore{}, -2, Ignore{})))
		require.Equal(t, valueRows[0], must.OK1(m.MatchRow(Ignore{}, Ignore{}, Ignore{})))
		require.Equal(t, valueRows[3], must.OK1(m.MatchRow("value_3", Result{}, 3)))

		_, err := m.MatchRow("value_3", Result{}, 2)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = m.MatchRow("value_3")
		require.ErrorIs(t, err, ErrPattern)
	})
}

func TestFirstRowWins(t *testing.T) {
	rows := []valueRow{
		{"first", 1, 1},
		{"second", 1, 2},
		{"third", 2, 2},
	}
	forEachMode(t, rows, func(t *testing.T, m *Mapper[valueRow]) {
		require.Equal(t, "first", must.OK1(Convert[string, int](m, 1)))
		require.Equal(t, "second", must.OK1(Convert[string, uint8](m, uint8(2))))
		require.Equal(t, "second", must.OK1(PatternTo[string](m, uint8(2))))
		require.Equal(t, "first", must.OK1(m.PatternMatch(Result{}, Ignore{}, Ignore{})))
	})
}

type foldString string

func (s foldString) Equal(other foldString) bool {
	return strings.EqualFold(string(s), string(other))
}

type foldRow struct {
	Key   foldString
	Value int
}

func TestEqualMethodColumn(t *testing.T) {
	forEachMode(t, []foldRow{{"ABC", 1}, {"def", 2}}, func(t *testing.T, m *Mapper[foldRow]) {
		require.False(t, m.index.Indexed(0))
		require.Equal(t, 1, must.OK1(Convert[int, foldString](m, foldString("abc"))))
		require.Equal(t, 2, must.OK1(m.To(1, 0, foldString("DEF"))))
		require.Equal(t, foldString("ABC"), must.OK1(ToIndex[foldString](m, 0, 1, 1)))
	})
}

func TestAccessors(t *testing.T) {
	m := New(valueRows)
	require.Equal(t, 4, m.Len())
	require.Equal(t, 3, m.NumColumns())
	require.Equal(t, 3, m.Schema().Len())
	require.Equal(t, valueRows[1], m.Row(1))

	rows := m.Rows()
	require.Equal(t, valueRows, rows)
	rows[0].Name = "changed"
	require.Equal(t, "value_0", m.Row(0).Name)

	var names []string
	for i, row := range m.All() {
		require.Equal(t, valueRows[i], row)
		names = append(names, row.Name)
		if i == 2 {
			break
		}
	}
	require.Equal(t, []string{"value_0", "value_1", "value_2"}, names)

	i, ok := ColumnOf[uint8](m)
	require.True(t, ok)
	require.Equal(t, 2, i)
	i, ok = ColumnOf[float64](m)
	require.False(t, ok)
	require.Equal(t, 3, i)
}

func TestNewCopiesRows(t *testing.T) {
	rows := []valueRow{{"a", 1, 1}}
	m := New(rows)
	rows[0].Name = "b"
	require.Equal(t, "a", must.OK1(Convert[string, int](m, 1)))
}

func TestEmpty(t *testing.T) {
	forEachMode(t, []valueRow(nil), func(t *testing.T, m *Mapper[valueRow]) {
		require.Zero(t, m.Len())
		_, err := Convert[string, int](m, 1)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = m.PatternMatch(Result{}, Ignore{}, Ignore{})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDynamicRows(t *testing.T) {
	rows := []any{
		valueRow{"value_0", 0, 0},
		valueRow{"value_1", -1, 1},
	}
	forEachMode(t, rows, func(t *testing.T, m *Mapper[any]) {
		require.Equal(t, 3, m.NumColumns())
		require.Equal(t, "value_1", must.OK1(Convert[string, int](m, -1)))
		require.Equal(t, rows[1], must.OK1(m.MatchRow(Ignore{}, Ignore{}, uint8(1))))
	})
}

func TestNewInvalid(t *testing.T) {
	require.PanicsWithError(t, "the row type of an empty table must be a struct type", func() {
		New([]any{})
	})
	require.PanicsWithError(t, "row 1: row of type constmapper.anyRow does not match constmapper.valueRow (3 columns)", func() {
		New([]any{valueRow{}, anyRow{}})
	})
	require.PanicsWithError(t, "int expected to be a struct type", func() {
		New([]int{1, 2})
	})
	require.PanicsWithError(t, "row type expected, got nil", func() {
		New([]any{nil})
	})
}
