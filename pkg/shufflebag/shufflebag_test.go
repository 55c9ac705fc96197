package shufflebag

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ingotBag(rng Source) *Bag[string] {
	b := New[string](20, rng)
	b.Add("iron", 10)
	b.Add("bismuth", 5)
	b.Add("silver", 5)
	return b
}

func TestLen(t *testing.T) {
	b := ingotBag(seeded(1))
	assert.Equal(t, 20, b.Len())
}

func TestAddNonPositiveCountIsNoop(t *testing.T) {
	b := New[string](0, seeded(1))
	b.Add("iron", 0)
	b.Add("iron", -3)
	assert.Equal(t, 0, b.Len())

	_, err := b.Next()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestCoveragePerCycle(t *testing.T) {
	b := ingotBag(seeded(7))

	for cycle := 0; cycle < 5; cycle++ {
		counts := make(map[string]int)
		for range b.Len() {
			item, err := b.Next()
			require.NoError(t, err)
			counts[item]++
		}
		assert.Equal(t, map[string]int{"iron": 10, "bismuth": 5, "silver": 5}, counts, "cycle %d", cycle)
	}
}

func TestCoverageWithRepeatedAdds(t *testing.T) {
	b := New[int](0, seeded(3))
	b.Add(1, 2)
	b.Add(2, 1)
	b.Add(1, 3)

	counts := make(map[int]int)
	for range b.Len() {
		counts[b.MustNext()]++
	}
	assert.Equal(t, map[int]int{1: 5, 2: 1}, counts)
}

func TestDistribution(t *testing.T) {
	b := ingotBag(seeded(42))

	const draws = 10000
	counts := make(map[string]int)
	for range draws {
		counts[b.MustNext()]++
	}

	assert.InDelta(t, 0.50, float64(counts["iron"])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts["bismuth"])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts["silver"])/draws, 0.02)
}

func TestDeterministicWithSeed(t *testing.T) {
	b1 := ingotBag(seeded(99))
	b2 := ingotBag(seeded(99))

	for i := range 100 {
		require.Equal(t, b1.MustNext(), b2.MustNext(), "draw %d", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	b1 := ingotBag(seeded(1))
	b2 := ingotBag(seeded(2))

	same := true
	for range 40 {
		if b1.MustNext() != b2.MustNext() {
			same = false
		}
	}
	assert.False(t, same, "different seeds should produce different orders")
}

func TestSingleItem(t *testing.T) {
	b := New[string](1, seeded(5))
	b.Add("gold", 1)

	for range 3 {
		item, err := b.Next()
		require.NoError(t, err)
		assert.Equal(t, "gold", item)
	}
}

// fixedSource always picks the lowest index, which makes the draw order easy
// to follow by hand.
type fixedSource struct{ calls int }

func (f *fixedSource) IntN(int) int {
	f.calls++
	return 0
}

func TestLastDrawOfCycleSkipsSource(t *testing.T) {
	src := &fixedSource{}
	b := New[string](3, src)
	b.Add("a", 1)
	b.Add("b", 1)
	b.Add("c", 1)

	// items [a b c], cursor 2: swap 0<->2 -> [c b a], return a.
	// cursor 1: swap 0<->1 -> [b c a], return c.
	// cursor 0: return items[0] = b, no source call.
	got := []string{b.MustNext(), b.MustNext(), b.MustNext()}
	assert.Equal(t, []string{"a", "c", "b"}, got)
	assert.Equal(t, 2, src.calls)
}

func TestEmptyBag(t *testing.T) {
	b := New[string](10, nil)

	item, err := b.Next()
	require.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, item)

	assert.PanicsWithError(t, ErrEmpty.Error(), func() {
		b.MustNext()
	})
}

func TestDefaultSource(t *testing.T) {
	b := New[string](0, nil)
	b.Add("tin", 4)
	b.Add("lead", 4)

	counts := make(map[string]int)
	for range b.Len() {
		counts[b.MustNext()]++
	}
	assert.Equal(t, map[string]int{"tin": 4, "lead": 4}, counts)
}
