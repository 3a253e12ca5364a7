package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Derive returns a *rand.Rand seeded deterministically from masterSeed,
// purpose, and extra. purpose distinguishes independent consumers that
// share the same master seed (e.g. "expand" vs "rollout"); extra
// typically carries a per-decision counter so repeated calls within the
// same session produce a fresh, still-reproducible sequence each time.
func Derive(masterSeed uint64, purpose string, extra []byte) *rand.Rand {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(purpose))
	h.Write(extra)

	sum := h.Sum(nil)
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed))
}

// DecisionCounter encodes a monotonically increasing decision index as
// the extra bytes Derive expects, so the Nth decision in a session
// derives a distinct RNG from the (N-1)th regardless of purpose.
func DecisionCounter(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return buf[:]
}
