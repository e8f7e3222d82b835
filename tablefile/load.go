package tablefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nanahuse/constmapper"
	"github.com/ridge/must/v2"
)

// Column declares a column of a table document
type Column struct {
	Name string `json:"name" validate:"required,columnname"`
	Type string `json:"type" validate:"required,columntype"`
}

// Document is the JSON form of a table
type Document struct {
	Columns []Column            `json:"columns" validate:"required,min=1,unique=Name,dive"`
	Rows    [][]json.RawMessage `json:"rows" validate:"required,min=1"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	must.OK(v.RegisterValidation("columntype", func(fl validator.FieldLevel) bool {
		_, ok := byName[fl.Field().String()]
		return ok
	}))
	must.OK(v.RegisterValidation("columnname", func(fl validator.FieldLevel) bool {
		// the name ends up in a struct tag
		return !strings.ContainsAny(fl.Field().String(), ",=\"\\`")
	}))
	return v
}()

var null = []byte("null")

// Load reads a table document and builds the table
func Load(r io.Reader, opts ...constmapper.Option) (*constmapper.Mapper[any], error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode table document: %w", err)
	}
	return doc.Build(opts...)
}

// LoadFile reads a table document from a file and builds the table
func LoadFile(path string, opts ...constmapper.Option) (*constmapper.Mapper[any], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// RowType returns the struct type of the rows of a document with the given
// columns. Column i is stored in field Ci.
func RowType(columns []Column) (reflect.Type, error) {
	fields := make([]reflect.StructField, 0, len(columns))
	for i, c := range columns {
		ct, ok := byName[c.Type]
		if !ok {
			return nil, fmt.Errorf("column %s: unknown type %q", c.Name, c.Type)
		}
		fields = append(fields, reflect.StructField{
			Name: "C" + strconv.Itoa(i),
			Type: ct.typ,
			Tag:  reflect.StructTag(fmt.Sprintf(`constmapper:"name=%s"`, c.Name)),
		})
	}
	return reflect.StructOf(fields), nil
}

// Build validates the document and builds the table
func (doc Document) Build(opts ...constmapper.Option) (*constmapper.Mapper[any], error) {
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid table document: %w", err)
	}
	rowType, err := RowType(doc.Columns)
	if err != nil {
		return nil, err
	}

	rows := make([]any, 0, len(doc.Rows))
	for i, cells := range doc.Rows {
		if len(cells) != len(doc.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(cells), len(doc.Columns))
		}
		row := reflect.New(rowType).Elem()
		for j, cell := range cells {
			c := doc.Columns[j]
			if bytes.Equal(bytes.TrimSpace(cell), null) && !byName[c.Type].predicate() {
				return nil, fmt.Errorf("row %d, column %s: null is only allowed in anyable and range columns", i, c.Name)
			}
			if err := json.Unmarshal(cell, row.Field(j).Addr().Interface()); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i, c.Name, err)
			}
		}
		rows = append(rows, row.Interface())
	}
	return constmapper.New(rows, opts...), nil
}
