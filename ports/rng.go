package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation. Candidate selection is
// the only randomized part of the pipeline; routing it through a named,
// seeded stream lets tests fix the seed and assert exact output.
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
