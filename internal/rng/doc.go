// Package rng provides deterministic random number generation for the
// packing core.
//
// # Overview
//
// Derive produces a *rand.Rand seeded from a master seed, a purpose
// string, and an extra byte slice (typically a decision counter). This
// lets a single session seed reproduce exactly one sequence per
// decision and per purpose — one for MCTS's expansion shuffle, another
// for its rollout shuffle — without those two sequences interfering
// with each other.
//
// # Sub-seed derivation
//
// The derived seed is the first 8 bytes of:
//
//	SHA-256(masterSeed || purpose || extra)
//
// Same inputs always produce the same sequence; different purposes or
// different extra bytes produce independent sequences.
package rng
