// Package layout implements the layered extraction strategy used across
// header decoding: an ordered list of candidate attempts plus a validator
// predicate. Header fields, map names, and player slots all drift across
// format revisions, so every field is recovered the same way: try known
// offsets first, fall back to a bounded scan, and only then default.
package layout

// Candidate is a single named extraction attempt.
type Candidate[T any] struct {
	Name    string
	Extract func() (T, bool)
}

// Resolve runs candidates in order and returns the first extracted value
// that passes valid, along with the candidate's name. ok is false when no
// candidate produced a valid value.
func Resolve[T any](candidates []Candidate[T], valid func(T) bool) (value T, source string, ok bool) {
	for _, c := range candidates {
		v, extracted := c.Extract()
		if !extracted {
			continue
		}
		if valid == nil || valid(v) {
			return v, c.Name, true
		}
	}
	var zero T
	return zero, "", false
}
