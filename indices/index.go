package indices

import (
	"bytes"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-memdb"
	"github.com/nanahuse/constmapper/meta"
	"github.com/ridge/must/v2"
)

const (
	tableName = "rows"
	idIndex   = "id" // this is the constant primary index name expected by memdb
)

// Index is an exact-match index over the plain columns of a table.
// Safe for concurrent use. A nil *Index is valid and indexes nothing.
type Index struct {
	db       *memdb.MemDB
	indexers map[int]columnIndexer // by column number
	columns  []int
}

func indexName(column int) string {
	return "c" + strconv.Itoa(column)
}

// Indexable checks whether a column can be indexed.
//
// Cells of a type with an Equal(T) bool method are compared with that method,
// which the byte keys can't follow. time.Time is the exception: its keys
// encode the instant, which is what Equal compares.
func Indexable(c meta.Column) bool {
	if c.Matcher || c.Type != timeType && hasEqualMethod(c.Type) {
		return false
	}
	return keyFnForType(c.Type) != nil
}

func hasEqualMethod(t reflect.Type) bool {
	m, ok := t.MethodByName("Equal")
	if !ok {
		return false
	}
	mt := m.Type // the receiver is the first argument
	return mt.NumIn() == 2 && mt.In(1) == t && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool
}

// Build indexes rows, given as values of the surveyed struct type
func Build(s meta.Struct, rows []reflect.Value) *Index {
	ix := &Index{indexers: map[int]columnIndexer{}}
	indexes := map[string]*memdb.IndexSchema{
		idIndex: {
			Name:    idIndex,
			Unique:  true,
			Indexer: rowIndexer{},
		},
	}
	for i, c := range s.Columns {
		if !Indexable(c) {
			continue
		}
		ci := columnIndexer{column: c, keyFn: keyFnForType(c.Type)}
		ix.indexers[i] = ci
		ix.columns = append(ix.columns, i)
		indexes[indexName(i)] = &memdb.IndexSchema{
			Name:    indexName(i),
			Indexer: ci,
		}
	}

	ix.db = must.OK1(memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableName: {Name: tableName, Indexes: indexes},
		},
	}))
	txn := ix.db.Txn(true)
	for row, v := range rows {
		must.OK(txn.Insert(tableName, &entry{row: row, value: v}))
	}
	txn.Commit()
	return ix
}

// Columns returns the numbers of the indexed columns, in ascending order
func (ix *Index) Columns() []int {
	if ix == nil {
		return nil
	}
	return ix.columns
}

// Indexed checks whether a column is indexed
func (ix *Index) Indexed(column int) bool {
	if ix == nil {
		return false
	}
	_, ok := ix.indexers[column]
	return ok
}

// First finds the first row whose cell in the column equals key.
//
// The last return value is false if the index cannot answer the query,
// because the column is not indexed or key is not of the column type. The
// caller should fall back to a scan in that case.
func (ix *Index) First(column int, key any) (row int, found bool, ok bool) {
	if ix == nil {
		return 0, false, false
	}
	ci, indexed := ix.indexers[column]
	if !indexed || reflect.TypeOf(key) != ci.column.Type {
		return 0, false, false
	}
	k := must.OK1(ci.FromArgs(key))

	txn := ix.db.Txn(false)
	obj := must.OK1(txn.First(tableName, indexName(column), key))
	if obj == nil {
		return 0, false, true
	}
	e := obj.(*entry)
	if _, cell, _ := ci.FromObject(e); !bytes.Equal(cell, k) {
		// prefix collision: a string key followed by NUL in another cell
		return 0, false, false
	}
	return e.row, true, true
}
