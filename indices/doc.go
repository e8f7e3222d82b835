// Package indices contains the optional exact-match index of constmapper
// tables.
//
// A table is normally searched by a linear scan, which is the right thing for
// tables of a few dozen rows. For larger tables that are queried often, an
// index can be built at construction time. The index covers every plain
// column (one whose type is not a matcher such as Anyable or Range) of an
// indexable type:
//
//   - all integer types, strings, booleans, and named types based on them;
//   - time.Time.
//
// The index is held in a go-memdb database with one table of rows. Each
// column index is a non-unique memdb index whose keys are order-preserving
// serializations of the cell values. Memdb suffixes the keys of non-unique
// indices with the primary key, which is the row number serialized in big
// endian, so among equal cells the first entry is always the first row in
// table order. This keeps indexed lookups in agreement with the scan, where
// the first matching row wins.
//
// An index only answers lookups whose key has exactly the column type. Any
// other key (a marker, a number of a different type, a predicate) is left to
// the scan.
package indices
