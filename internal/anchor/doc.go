// Package anchor generates candidate placement points for a cage: the
// Corner-Point strategy derives up to three child points per packed
// item, while the Extreme-Surface (EMS) strategy anchors one point per
// support surface. Both are registered under a name so a packer can be
// configured with a string rather than a concrete type.
package anchor
