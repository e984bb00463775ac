package engine

import "time"

// Resolution is the outcome of ResolveVariables.
type Resolution struct {
	// Values is base plus every computed variable.
	Values Values
	// Passes is the number of passes that ran.
	Passes int
	// Converged is true when the last pass changed nothing. It is false when
	// the pass bound stopped a definition set without a fixed point.
	Converged bool
}

// MaxPasses is the pass bound for n computed variables: 3n, at least 1.
func MaxPasses(n int) int {
	return max(1, 3*n)
}

// ResolveVariables expands computed variables on top of base by bounded
// fixed-point iteration.
//
// Each pass renders every variable's expression, in declared order, against
// the current values and stores it when it differs from what is there. A
// later variable in the same pass sees the values stored earlier in that
// pass. Iteration stops after the first pass that changes nothing, or after
// MaxPasses(len(vars)) passes. Self references, forward references and
// cycles are legal: a cycle without a fixed point keeps whatever the last
// pass produced.
//
// base is not modified.
func ResolveVariables(base Values, vars []Variable, now time.Time) Resolution {
	values := base.Clone()
	limit := MaxPasses(len(vars))

	res := Resolution{Values: values}
	for res.Passes < limit {
		res.Passes++
		changed := false
		for _, v := range vars {
			next := Substitute(v.Expression, values, now)
			if current, ok := values[v.ID]; ok && current == next {
				continue
			}
			values[v.ID] = next
			changed = true
		}
		if !changed {
			res.Converged = true
			break
		}
	}
	return res
}
