package meta

import (
	"fmt"
	"reflect"
)

// Matcher is implemented by cell types that act as predicates rather than
// plain values. When a lookup compares such a cell with a key, it calls Match
// instead of testing for equality.
type Matcher interface {
	Match(v any) bool
}

var matcherInterface = reflect.TypeOf((*Matcher)(nil)).Elem()

// Column describes one column of a row structure.
// All fields are read-only.
type Column struct {
	Name    string
	GoName  string
	Index   []int
	Type    reflect.Type
	Matcher bool // Type implements Matcher
}

// String returns the column name, and the Go name if it differs
func (c Column) String() string {
	if c.Name != "" && c.Name != c.GoName {
		return fmt.Sprintf("%s (%s)", c.GoName, c.Name)
	}
	return c.GoName
}

// Struct describes a row structure: the tuple of typed columns.
// All fields are read-only.
type Struct struct {
	Type    reflect.Type
	Columns []Column

	// first column index for each column type
	first map[reflect.Type]int
}

// String returns the Go type name and the number of columns
func (s Struct) String() string {
	return fmt.Sprintf("%s (%d columns)", s.Type, len(s.Columns))
}

// Len returns the number of columns
func (s Struct) Len() int {
	return len(s.Columns)
}

// Column returns the i-th column
func (s Struct) Column(i int) Column {
	return s.Columns[i]
}

// ColumnByName finds the column with a given name
func (s Struct) ColumnByName(name string) (int, bool) {
	for i, c := range s.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// IndexOf returns the index of the first column of exactly type t, or Len()
// if there is no such column
func (s Struct) IndexOf(t reflect.Type) int {
	if i, ok := s.first[t]; ok {
		return i
	}
	return s.Len()
}

// IndexFrom returns the index of the first column of exactly type t, starting
// the search at column from. It returns Len() if there is no such column or
// from is out of range.
func (s Struct) IndexFrom(t reflect.Type, from int) int {
	if from < 0 {
		from = 0
	}
	if i, ok := s.first[t]; ok && i >= from {
		return i
	}
	for i := from; i < len(s.Columns); i++ {
		if s.Columns[i].Type == t {
			return i
		}
	}
	return s.Len()
}

// Contains checks whether any column has exactly type t
func (s Struct) Contains(t reflect.Type) bool {
	return s.IndexOf(t) < s.Len()
}

// MustIndexOf is IndexOf that panics if there is no column of type t
func (s Struct) MustIndexOf(t reflect.Type) int {
	i := s.IndexOf(t)
	if i == s.Len() {
		panicf("%v does not contain a column of type %v", s.Type, t)
	}
	return i
}
