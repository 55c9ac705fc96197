package gen

import "math/rand/v2"

// NewChunkRand returns a generator seeded from the world seed, the chunk
// coordinates and a per-feature salt, so every feature sees an independent
// but reproducible stream for each column.
func NewChunkRand(seed int64, chunkX, chunkZ int, salt int64) *rand.Rand {
	s := uint64(seed ^ (int64(chunkX)*341873128712 + int64(chunkZ)*132897987541 + salt))
	return rand.New(rand.NewPCG(s, s*6364136223846793005+1442695040888963407))
}
