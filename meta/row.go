package meta

import (
	"fmt"
	"reflect"
)

// Check returns an error if row is not a value of the surveyed type
func (s Struct) Check(row any) error {
	if t := reflect.TypeOf(row); t != s.Type {
		return fmt.Errorf("row of type %v does not match %s", t, s)
	}
	return nil
}

// Cell returns the value of column i in a row value of the surveyed type
func (s Struct) Cell(row reflect.Value, i int) reflect.Value {
	return row.FieldByIndex(s.Columns[i].Index)
}

// Values returns the values of all columns of a row, in column order
func (s Struct) Values(row any) []any {
	v := reflect.ValueOf(row)
	if v.Type() != s.Type {
		panicf("expected row of type %v, got %v", s.Type, v.Type())
	}
	res := make([]any, 0, len(s.Columns))
	for i := range s.Columns {
		res = append(res, s.Cell(v, i).Interface())
	}
	return res
}

// Collapse returns the only element of values if there is exactly one,
// and values itself otherwise
func Collapse(values []any) any {
	if len(values) == 1 {
		return values[0]
	}
	return values
}
