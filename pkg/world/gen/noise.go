package gen

import "math/rand/v2"

// Noise produces deterministic 2D simplex noise in [-1, 1] from a seed.
type Noise struct {
	perm [512]uint8
}

// gradients for 2D simplex noise: the 8 compass directions.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// NewNoise builds a noise field whose permutation table is shuffled by a PCG
// seeded from seed.
func NewNoise(seed int64) *Noise {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x5851f42d4c957f2d))
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })

	n := &Noise{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// At returns the noise value at (x, y).
func (n *Noise) At(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i := floor(x + s)
	j := floor(y + s)
	t := float64(i+j) * g2

	// Offsets of the three simplex corners from the sample point.
	var dx, dy [3]float64
	dx[0] = x - (float64(i) - t)
	dy[0] = y - (float64(j) - t)

	i1, j1 := 0, 1
	if dx[0] > dy[0] {
		i1, j1 = 1, 0
	}
	dx[1] = dx[0] - float64(i1) + g2
	dy[1] = dy[0] - float64(j1) + g2
	dx[2] = dx[0] - 1 + 2*g2
	dy[2] = dy[0] - 1 + 2*g2

	ii, jj := i&255, j&255
	corners := [3][2]int{{0, 0}, {i1, j1}, {1, 1}}

	var sum float64
	for c, off := range corners {
		falloff := 0.5 - dx[c]*dx[c] - dy[c]*dy[c]
		if falloff <= 0 {
			continue
		}
		g := grad2[n.perm[ii+off[0]+int(n.perm[jj+off[1]])]&7]
		falloff *= falloff
		sum += falloff * falloff * (g[0]*dx[c] + g[1]*dy[c])
	}

	return clamp(70*sum, -1, 1)
}

// Octaves sums octaves of noise with halving amplitude by persistence and
// doubling frequency. The result stays in [-1, 1].
func (n *Noise) Octaves(x, y float64, octaves int, persistence float64) float64 {
	var total, norm float64
	amp, freq := 1.0, 1.0
	for range octaves {
		total += n.At(x*freq, y*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

func floor(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
