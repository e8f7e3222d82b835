package indices

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/nanahuse/constmapper/meta"
)

// entry is the object stored in memdb for each row
type entry struct {
	row   int
	value reflect.Value
}

// rowIndexer is the primary memdb index over row numbers
type rowIndexer struct{}

func (rowIndexer) FromArgs(args ...any) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.New("must provide only a single argument")
	}
	row, ok := args[0].(int)
	if !ok {
		return nil, fmt.Errorf("row index expects an int, got %T", args[0])
	}
	return rowKey(row), nil
}

func (rowIndexer) FromObject(obj any) (bool, []byte, error) {
	return true, rowKey(obj.(*entry).row), nil
}

// columnIndexer indexes the cells of one column
type columnIndexer struct {
	column meta.Column
	keyFn  keyFn
}

func (ci columnIndexer) FromArgs(args ...any) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.New("must provide only a single argument")
	}
	v := reflect.ValueOf(args[0])
	if !v.IsValid() || v.Type() != ci.column.Type {
		return nil, fmt.Errorf("index %s expects %s value", ci.column, ci.column.Type)
	}
	k, _ := ci.keyFn(v)
	return k, nil
}

func (ci columnIndexer) FromObject(obj any) (bool, []byte, error) {
	k, _ := ci.keyFn(obj.(*entry).value.FieldByIndex(ci.column.Index))
	return true, k, nil
}
