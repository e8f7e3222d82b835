// Package constmapper implements fixed, multi-key lookup tables.
//
// A table is built once from a list of rows and never changes afterwards.
// Every row is a Go structure; its exported fields, in declaration order, are
// the columns of the table. Any column can be used to look up the value of any
// other column, by column number or by column type, and several columns can be
// matched at once with patterns that contain wildcards and ranges.
//
// Tables are meant to be small (tens of rows) and are searched by a linear
// scan. The first matching row in table order always wins. The row type is
// surveyed by reflection once, when the table is built, so that finding the
// column of a given type costs a map read at lookup time.
//
// # Rows
//
//	type level struct {
//	    Name  string
//	    Value int
//	    Code  uint8
//	}
//
//	var levels = constmapper.New([]level{
//	    {"value_0", 0, 0},
//	    {"value_1", 1, 10},
//	    {"value_2", 2, 20},
//	})
//
// Fields of embedded structures are flattened into the row. A field can be
// excluded with a `constmapper:"-"` tag, and renamed with
// `constmapper:"name=NAME"` (names are used by tablefile and in error
// messages). Unexported fields must be excluded explicitly.
//
// When the row type is only known at run time, use any as the row type
// parameter: New surveys the dynamic type shared by all rows.
//
// # Lookup by column number
//
//	name, err := levels.To(0, 1, 2)                              // "value_2"
//	code, err := constmapper.ToIndex[uint8](levels, 2, 0, "value_1") // 10
//
// # Lookup by column type
//
// Convert uses the first column of each of the given types:
//
//	name, err := constmapper.Convert[string, int](levels, 1)       // "value_1"
//	value, err := constmapper.Convert[int, uint8](levels, uint8(20)) // 2
//
// PatternTo matches several keys at once. Each key is compared with the first
// column of the key's own type:
//
//	name, err := constmapper.PatternTo[string](levels, 2, uint8(20)) // "value_2"
//
// # Patterns
//
// Cells of type Anyable and Range are predicates rather than values. An empty
// Anyable matches any key, and a Range matches the keys on one side of a
// bound. Any type implementing Matcher can serve as a predicate column.
//
//	type rule struct {
//	    Name  string
//	    Bound constmapper.Range[int]
//	    Value constmapper.Anyable[int]
//	}
//
//	var rules = constmapper.New([]rule{
//	    {"less2 & 1", constmapper.NewRange(constmapper.LessThan, 2), constmapper.NewAnyable(1)},
//	    {"larger5", constmapper.NewRange(constmapper.LargerThan, 5), constmapper.Anyable[int]{}},
//	    {"Any", constmapper.Range[int]{}, constmapper.Anyable[int]{}},
//	})
//
// PatternMatch takes one entry per column. Result marks the columns to
// return, Ignore marks columns that don't matter, and every other entry is a
// key compared with its cell:
//
//	name, err := rules.PatternMatch(constmapper.Result{}, 6, -1) // "larger5"
//
// With a single Result entry the value is returned as is; with several, they
// are returned as []any in column order. MatchAs returns a single result as a
// typed value, and MatchRow returns the whole matching row.
//
// # Key comparison
//
// Keys of the column type are compared with ==, or with the Equal method if
// the type has one (such as time.Time). Numbers of different types are
// compared by value, and so are values of different string-based types, so
// an int key finds a uint8 cell. Keys of any other type never match a plain
// cell.
//
// # Errors
//
// A lookup that finds nothing returns an error wrapping ErrNotFound. Queries
// that cannot work with the table at all (a column number out of range, a
// type that no column has, a pattern of the wrong width) return errors
// wrapping ErrColumnRange, ErrNoColumn, ErrColumnType or ErrPattern.
//
// # Index
//
// Passing the Indexed option to New builds an exact-match index for larger
// tables (see package indices). It never changes the results of lookups.
package constmapper
