package constmapper

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/nanahuse/constmapper/indices"
	"github.com/nanahuse/constmapper/meta"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Mapper is an immutable table of rows of type R. Each exported field of R is
// a column (see meta.Survey). Safe for concurrent use.
type Mapper[R any] struct {
	schema meta.Struct
	rows   []R
	values []reflect.Value
	index  *indices.Index // nil unless built with Indexed
}

// Option is an option to New
type Option interface {
	apply(o *options)
}

type options struct {
	indexed bool
	logger  *zap.Logger
}

// Indexed is an option to New that builds an exact-match index over every
// plain column of an indexable type. Lookups give the same results with or
// without the index.
var Indexed indexed

type indexed struct{}

func (indexed) apply(o *options) {
	o.indexed = true
}

type withLogger struct {
	logger *zap.Logger
}

func (wl withLogger) apply(o *options) {
	o.logger = wl.logger
}

// WithLogger is an option to New that sets the logger for construction-time
// debug messages
func WithLogger(logger *zap.Logger) Option {
	return withLogger{logger: logger}
}

// New creates a table from the given rows. The rows are copied.
//
// R must be a struct type, or an interface type (such as any) when the row
// type is only known at run time. In the latter case all rows must share one
// dynamic struct type, and the table must not be empty.
//
// New panics if the row type cannot be surveyed or the rows don't match it.
func New[R any](rows []R, opts ...Option) *Mapper[R] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt.apply(&o)
	}

	t := typeOf[R]()
	if t.Kind() == reflect.Interface {
		if len(rows) == 0 {
			panic(errors.New("the row type of an empty table must be a struct type"))
		}
		t = reflect.TypeOf(any(rows[0]))
	}
	schema := meta.Survey(t)

	m := &Mapper[R]{
		schema: schema,
		rows:   slices.Clone(rows),
		values: make([]reflect.Value, 0, len(rows)),
	}
	for i, row := range m.rows {
		if err := schema.Check(row); err != nil {
			panic(fmt.Errorf("row %d: %w", i, err))
		}
		m.values = append(m.values, reflect.ValueOf(row))
	}
	if o.indexed {
		m.index = indices.Build(schema, m.values)
	}

	o.logger.Debug("Table created",
		zap.Stringer("type", schema.Type),
		zap.Int("columns", schema.Len()),
		zap.Int("rows", len(m.rows)),
		zap.Ints("indexedColumns", m.index.Columns()))
	return m
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Schema returns the description of the row type
func (m *Mapper[R]) Schema() meta.Struct {
	return m.schema
}

// NumColumns returns the number of columns in a row
func (m *Mapper[R]) NumColumns() int {
	return m.schema.Len()
}

// Len returns the number of rows
func (m *Mapper[R]) Len() int {
	return len(m.rows)
}

// Row returns the i-th row
func (m *Mapper[R]) Row(i int) R {
	return m.rows[i]
}

// Rows returns a copy of all rows
func (m *Mapper[R]) Rows() []R {
	return slices.Clone(m.rows)
}

// All returns an iterator over all rows in table order
func (m *Mapper[R]) All() iter.Seq2[int, R] {
	return func(yield func(int, R) bool) {
		for i, row := range m.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// ColumnOf returns the index of the first column of type T
func ColumnOf[T any, R any](m *Mapper[R]) (int, bool) {
	i := m.schema.IndexOf(typeOf[T]())
	return i, i < m.schema.Len()
}
