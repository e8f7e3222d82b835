package constmapper

import (
	"fmt"
	"reflect"

	"github.com/nanahuse/constmapper/meta"
)

func (m *Mapper[R]) cell(row, column int) any {
	return m.schema.Cell(m.values[row], column).Interface()
}

func (m *Mapper[R]) checkColumn(name string, i int) error {
	if i < 0 || i >= m.schema.Len() {
		return fmt.Errorf("%w: %s column %d, %v has %d columns", ErrColumnRange, name, i, m.schema.Type, m.schema.Len())
	}
	return nil
}

func (m *Mapper[R]) columnOf(name string, t reflect.Type) (int, error) {
	i := m.schema.IndexOf(t)
	if i == m.schema.Len() {
		return 0, fmt.Errorf("%w: %v has no %s column of type %v", ErrNoColumn, m.schema.Type, name, t)
	}
	return i, nil
}

// find returns the first row whose cell in column from matches key
func (m *Mapper[R]) find(from int, key any) (int, error) {
	if row, found, ok := m.index.First(from, key); ok {
		if !found {
			return 0, fmt.Errorf("%w: %v in column %s", ErrNotFound, key, m.schema.Column(from))
		}
		return row, nil
	}
	for row := range m.values {
		if match(m.cell(row, from), key) {
			return row, nil
		}
	}
	return 0, fmt.Errorf("%w: %v in column %s", ErrNotFound, key, m.schema.Column(from))
}

// To finds the first row where the cell in column from matches key, and
// returns the value of column to in that row.
func (m *Mapper[R]) To(to, from int, key any) (any, error) {
	if err := m.checkColumn("to", to); err != nil {
		return nil, err
	}
	if err := m.checkColumn("from", from); err != nil {
		return nil, err
	}
	row, err := m.find(from, key)
	if err != nil {
		return nil, err
	}
	return m.cell(row, to), nil
}

// ToIndex is a version of To that returns the value as a T
func ToIndex[T any, R any](m *Mapper[R], to, from int, key any) (T, error) {
	var zero T
	v, err := m.To(to, from, key)
	if err != nil {
		return zero, err
	}
	return as[T](m.schema.Column(to), v)
}

func as[T any](c meta.Column, v any) (T, error) {
	res, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: column %s is %v, not %v", ErrColumnType, c, c.Type, typeOf[T]())
	}
	return res, nil
}

// Convert looks a key up in the first column of type F and returns the value
// of the first column of type T in the first matching row.
//
// The key does not need to be an F: a table with an Anyable[int] column can be
// searched with an int.
//
//	name, err := constmapper.Convert[string, int](m, 1)
func Convert[T, F any, R any](m *Mapper[R], key any) (T, error) {
	var zero T
	to, err := m.columnOf("target", typeOf[T]())
	if err != nil {
		return zero, err
	}
	from, err := m.columnOf("source", typeOf[F]())
	if err != nil {
		return zero, err
	}
	row, err := m.find(from, key)
	if err != nil {
		return zero, err
	}
	return as[T](m.schema.Column(to), m.cell(row, to))
}

// PatternTo finds the first row where every key matches its column, and
// returns the value of the first column of type T in that row. Each key is
// compared with the first column of the key's own type.
//
//	name, err := constmapper.PatternTo[string](m, -1, uint8(1))
func PatternTo[T any, R any](m *Mapper[R], keys ...any) (T, error) {
	var zero T
	if len(keys) == 0 {
		return zero, fmt.Errorf("%w: no keys", ErrPattern)
	}
	to, err := m.columnOf("target", typeOf[T]())
	if err != nil {
		return zero, err
	}
	columns := make([]int, 0, len(keys))
	for _, key := range keys {
		column, err := m.columnOf("key", reflect.TypeOf(key))
		if err != nil {
			return zero, err
		}
		columns = append(columns, column)
	}

rows:
	for row := range m.values {
		for i, column := range columns {
			if !match(m.cell(row, column), keys[i]) {
				continue rows
			}
		}
		return as[T](m.schema.Column(to), m.cell(row, to))
	}
	return zero, fmt.Errorf("%w: %v", ErrNotFound, keys)
}

// matchPattern returns the first row matched by a full-width pattern
func (m *Mapper[R]) matchPattern(pattern []any) (int, error) {
	if len(pattern) != m.schema.Len() {
		return 0, fmt.Errorf("%w: %d entries for %d columns", ErrPattern, len(pattern), m.schema.Len())
	}

rows:
	for row := range m.values {
		for column, key := range pattern {
			if !match(m.cell(row, column), key) {
				continue rows
			}
		}
		return row, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrNotFound, pattern)
}

func (m *Mapper[R]) results(pattern []any) ([]any, error) {
	var results []int
	for column, key := range pattern {
		if isResult(key) {
			results = append(results, column)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no Result entry", ErrPattern)
	}
	row, err := m.matchPattern(pattern)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(results))
	for _, column := range results {
		values = append(values, m.cell(row, column))
	}
	return values, nil
}

// PatternMatch matches a pattern against the table and returns the values of
// the Result columns of the first matching row.
//
// The pattern has one entry per column. Result and Ignore entries match any
// cell; every other entry is compared with its cell, so a Range cell matches
// the keys inside the range and an empty Anyable cell matches any key. At
// least one entry must be Result.
//
// If there is one Result entry, its value is returned as is; otherwise the
// values are returned as []any, in column order.
//
//	name, err := m.PatternMatch(constmapper.Result{}, 1, 2)
func (m *Mapper[R]) PatternMatch(pattern ...any) (any, error) {
	values, err := m.results(pattern)
	if err != nil {
		return nil, err
	}
	return meta.Collapse(values), nil
}

// MatchAs is a version of PatternMatch for patterns with exactly one Result
// entry, returning the value as a T
func MatchAs[T any, R any](m *Mapper[R], pattern ...any) (T, error) {
	var zero T
	values, err := m.results(pattern)
	if err != nil {
		return zero, err
	}
	if len(values) != 1 {
		return zero, fmt.Errorf("%w: %d Result entries, expected 1", ErrPattern, len(values))
	}
	for column, key := range pattern {
		if isResult(key) {
			return as[T](m.schema.Column(column), values[0])
		}
	}
	panic("unreachable")
}

// MatchRow matches a pattern like PatternMatch does, and returns the whole
// first matching row. Result entries are allowed but not required.
func (m *Mapper[R]) MatchRow(pattern ...any) (R, error) {
	row, err := m.matchPattern(pattern)
	if err != nil {
		var zero R
		return zero, err
	}
	return m.rows[row], nil
}
