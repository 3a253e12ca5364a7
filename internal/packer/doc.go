// Package packer chooses which candidate item to place next, in what
// orientation and at what anchor point. Two strategies implement the
// same Packer interface: Heuristic does an exhaustive search over
// every (item, rotation, anchor) combination; MCTS runs an open-loop
// Monte Carlo tree search over item orderings and picks the root
// action with the best mean simulated reward.
package packer
