package constmapper

import "errors"

// ErrNotFound is returned (wrapped) when no row matches a lookup
var ErrNotFound = errors.New("key not found")

// ErrColumnRange is returned (wrapped) when a column index is out of range
var ErrColumnRange = errors.New("column index out of range")

// ErrNoColumn is returned (wrapped) when the table has no column of the
// requested type
var ErrNoColumn = errors.New("no column of requested type")

// ErrColumnType is returned (wrapped) when a column value cannot be returned
// as the requested type
var ErrColumnType = errors.New("column type mismatch")

// ErrPattern is returned (wrapped) when a pattern does not fit the table
var ErrPattern = errors.New("invalid pattern")
