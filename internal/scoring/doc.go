// Package scoring ranks candidate placements. The active scoring term
// favors low anchor points (closer to the cage floor); the package
// keeps slots for the stability and center-of-gravity terms the wider
// design leaves as future extension points, so a caller does not need
// to change signatures when those terms gain real behavior.
package scoring
