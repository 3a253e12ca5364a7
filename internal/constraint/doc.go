// Package constraint implements the placement feasibility checker: five
// independent predicates (boundary, weight, stackability, insertion
// path, center of gravity) conjoined into a single pass/fail Result.
//
// Matching the production-shipped variant this module is modeled on, all
// five predicates are evaluated on every call — never short-circuited —
// because they are side-effect-free and evaluating all of them yields a
// complete explanation when a placement is rejected.
package constraint
