// Package session holds the single process-wide packing session: the
// current cage, the chosen packer and anchor strategy, guarded by one
// mutex held for the full duration of a decision. It persists across
// decisions rather than being reconstructed per request.
package session
