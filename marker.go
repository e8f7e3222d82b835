package constmapper

// Result marks a pattern position whose column value is returned by
// PatternMatch. It matches any cell.
type Result struct{}

// Ignore marks a pattern position that matches any cell and is not returned
type Ignore struct{}

func isResult(v any) bool {
	switch v.(type) {
	case Result, *Result:
		return true
	}
	return false
}

func isMarker(v any) bool {
	switch v.(type) {
	case Result, *Result, Ignore, *Ignore:
		return true
	}
	return false
}
