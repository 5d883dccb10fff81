// Package rng holds the random-selection primitives the exam engine draws
// with: a copying Fisher-Yates shuffle and sampling without replacement.
package rng

import "math/rand"

// Shuffle returns a uniformly random permutation of seq as a new slice.
// The input is never mutated.
func Shuffle[T any](r *rand.Rand, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample draws min(n, len(seq)) elements from seq without replacement.
func Sample[T any](r *rand.Rand, seq []T, n int) []T {
	out := Shuffle(r, seq)
	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
