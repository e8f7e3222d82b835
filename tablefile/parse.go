package tablefile

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nanahuse/constmapper"
	"github.com/nanahuse/constmapper/meta"
)

// Pattern entries with a special meaning. A leading backslash escapes them.
const (
	ResultText = "?"
	IgnoreText = "*"
)

// ParseValue converts text to a key for the column c. Keys for anyable and
// range columns have the type of the held value.
func ParseValue(c meta.Column, text string) (any, error) {
	ct, ok := byType[c.Type]
	if !ok {
		return nil, fmt.Errorf("column %s: cannot parse values of type %v", c, c.Type)
	}
	v := reflect.New(ct.scalar).Elem()
	switch ct.scalar.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 0, ct.scalar.Bits())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 0, ct.scalar.Bits())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, ct.scalar.Bits())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		v.SetFloat(f)
	default:
		panic(fmt.Errorf("unexpected key kind %v", ct.scalar.Kind()))
	}
	return v.Interface(), nil
}

// ParseKey converts a pattern entry for the column c. "?" is a Result marker
// and "*" is an Ignore marker.
func ParseKey(c meta.Column, text string) (any, error) {
	switch {
	case text == ResultText:
		return constmapper.Result{}, nil
	case text == IgnoreText:
		return constmapper.Ignore{}, nil
	case strings.HasPrefix(text, `\`):
		text = text[1:]
	}
	return ParseValue(c, text)
}

// ParsePattern converts one pattern entry per column of the table
func ParsePattern(s meta.Struct, fields []string) ([]any, error) {
	if len(fields) != s.Len() {
		return nil, fmt.Errorf("%w: %d entries for %d columns", constmapper.ErrPattern, len(fields), s.Len())
	}
	pattern := make([]any, 0, len(fields))
	var errs []error
	for i, f := range fields {
		key, err := ParseKey(s.Column(i), f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pattern = append(pattern, key)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pattern, nil
}
