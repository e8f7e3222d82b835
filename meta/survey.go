package meta

import (
	"fmt"
	"reflect"
	"strings"
)

func panicf(format string, a ...any) {
	panic(fmt.Errorf(format, a...))
}

// Survey produces a Struct describing a row type.
//
// Every exported field becomes a column, in declaration order. Fields of
// embedded structures are flattened into the containing structure unless the
// embedded type is itself a Matcher. Survey panics if the type cannot be used
// as a row.
func Survey(t reflect.Type) Struct {
	if t == nil {
		panicf("row type expected, got nil")
	}
	s := surveyInternal(t)
	if len(s.Columns) == 0 {
		panicf("%v has no columns", t)
	}
	s.first = make(map[reflect.Type]int, len(s.Columns))
	for i, c := range s.Columns {
		if _, ok := s.first[c.Type]; !ok {
			s.first[c.Type] = i
		}
	}
	return s
}

func surveyInternal(t reflect.Type) Struct {
	if t.Kind() != reflect.Struct {
		panicf("%v expected to be a struct type", t)
	}

	n := t.NumField()
	s := Struct{
		Type:    t,
		Columns: make([]Column, 0, n),
	}
	names := map[string]int{} // holds indexes into s.Columns

	add := func(c Column) {
		if idx, ok := names[c.Name]; ok {
			panicf("duplicate column name %s for fields %v.%s and %v.%s",
				c.Name, t, s.Columns[idx], t, c)
		}
		names[c.Name] = len(s.Columns)
		s.Columns = append(s.Columns, c)
	}

loop:
	for i := 0; i < n; i++ {
		f := t.Field(i)
		options := parseTag(f.Tag)

		if f.Anonymous && f.Type.Kind() == reflect.Struct && !f.Type.Implements(matcherInterface) {
			for _, opt := range options {
				switch opt.key {
				case "-":
					if len(options) != 1 {
						panicf("option - for field %v.%s cannot be combined with other options", t, f.Name)
					}
					continue loop
				default:
					panicf("invalid option for %v.%s: %s", t, f.Name, opt)
				}
			}
			if !f.IsExported() {
				panicf("unexported embedded field %v.%s must be skipped using a `constmapper:\"-\"` tag", t, f.Name)
			}
			sub := surveyInternal(f.Type)
			for _, c := range sub.Columns {
				c.Index = append([]int{i}, c.Index...)
				add(c)
			}
			continue
		}

		c := Column{
			GoName:  f.Name,
			Index:   f.Index,
			Type:    f.Type,
			Matcher: f.Type.Implements(matcherInterface),
		}
		for _, opt := range options {
			switch opt.key {
			case "-":
				if len(options) != 1 {
					panicf("option - for field %v.%s cannot be combined with other options", t, c)
				}
				continue loop
			case "name=":
				if opt.value == "" {
					panicf("%v.%s: empty column name", t, c)
				}
				if strings.ContainsAny(opt.value, ",=") {
					panicf("%v.%s: column name %q contains a reserved character", t, c, opt.value)
				}
				c.Name = opt.value
			default:
				panicf("invalid option for %v.%s: %s", t, c, opt)
			}
		}
		if !f.IsExported() {
			panicf("unexported field %v.%s must be skipped using a `constmapper:\"-\"` tag", t, c)
		}
		if c.Name == "" {
			c.Name = c.GoName
		}
		add(c)
	}

	return s
}
