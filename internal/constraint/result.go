package constraint

// PredicateResult records the outcome of one of the five feasibility
// predicates, kept independent of the others so a rejected placement can
// be explained in full rather than reporting only the first failure.
type PredicateResult struct {
	Name      string
	Satisfied bool
	Details   string
}

// Result is the conjunction of all five predicates for one candidate
// placement.
type Result struct {
	Satisfied  bool
	Predicates []PredicateResult
}

// newPredicateResult builds a PredicateResult, defaulting Details to a
// generic pass/fail message when the caller has nothing more specific to
// say.
func newPredicateResult(name string, satisfied bool, details string) PredicateResult {
	if details == "" {
		if satisfied {
			details = name + " satisfied"
		} else {
			details = name + " violated"
		}
	}
	return PredicateResult{Name: name, Satisfied: satisfied, Details: details}
}
