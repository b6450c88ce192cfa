package grouping

import "math/rand"

// fallbackSeed is used when Options.Seed is 0, so runs stay reproducible.
const fallbackSeed int64 = 1

// rngFromSeed returns the restart source of one clustering call.
// *rand.Rand is not safe for concurrent use; never share it between calls.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = fallbackSeed
	}
	return rand.New(rand.NewSource(seed))
}
