package meta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRow(t *testing.T) {
	type Inner struct{ B int }
	type Row struct {
		A string
		Inner
		C bool
	}
	s := Survey(reflect.TypeOf(Row{}))
	row := Row{A: "a", Inner: Inner{B: 2}, C: true}

	require.NoError(t, s.Check(row))
	require.EqualError(t, s.Check(&row), "row of type *meta.Row does not match meta.Row (3 columns)")
	require.EqualError(t, s.Check(nil), "row of type <nil> does not match meta.Row (3 columns)")

	require.Equal(t, 2, s.Cell(reflect.ValueOf(row), 1).Interface())
	require.Equal(t, []any{"a", 2, true}, s.Values(row))
	require.Panics(t, func() { s.Values(Inner{}) })
}

func TestCollapse(t *testing.T) {
	require.Equal(t, "a", Collapse([]any{"a"}))
	require.Equal(t, []any{"a", 1}, Collapse([]any{"a", 1}))
	require.Equal(t, []any{}, Collapse([]any{}))
}
