package engine

// Values maps a variable identifier to its resolved text.
type Values map[string]string

// Clone returns an independent copy of v. A nil map clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Merge copies every entry of other into v, overwriting existing keys.
func (v Values) Merge(other Values) {
	for k, val := range other {
		v[k] = val
	}
}

// Variable is a computed variable: an identifier whose value is itself a
// template over the current Values.
type Variable struct {
	ID         string
	Expression string
}
