// Package shufflebag implements a weighted random sampler that draws without
// replacement until the bag is exhausted and then starts a new cycle.
//
// An item added with weight w occupies w slots. Every cycle of Len() draws
// yields each slot exactly once, so over many draws the frequency of an item
// converges on its weight divided by Len().
//
// A Bag is not safe for concurrent use. Populate it with Add before the first
// draw; adding after drawing has started leaves the current cycle undefined.
package shufflebag

import (
	"errors"
	"math/rand/v2"
)

// ErrEmpty is returned when drawing from a bag that has no items.
var ErrEmpty = errors.New("shufflebag: draw from empty bag")

// Source is the random source a Bag draws from. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). n is always > 0.
	IntN(n int) int
}

// Bag is a shuffle bag of T.
type Bag[T any] struct {
	items  []T
	cursor int // live prefix is items[0:cursor+1]
	rng    Source
}

// New returns an empty bag with room for capacity items. A nil rng gives the
// bag its own freshly seeded generator.
func New[T any](capacity int, rng Source) *Bag[T] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bag[T]{
		items:  make([]T, 0, max(capacity, 0)),
		cursor: -1,
		rng:    rng,
	}
}

// Add appends count copies of item and re-arms a full cycle.
// A count <= 0 is a no-op.
func (b *Bag[T]) Add(item T, count int) {
	if count <= 0 {
		return
	}
	for range count {
		b.items = append(b.items, item)
	}
	b.cursor = len(b.items) - 1
}

// Len returns the number of slots in the bag.
func (b *Bag[T]) Len() int {
	return len(b.items)
}

// Next draws the next item of the current cycle.
func (b *Bag[T]) Next() (T, error) {
	if len(b.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}

	// One live slot left: it is the last draw of this cycle.
	if b.cursor < 1 {
		b.cursor = len(b.items) - 1
		return b.items[0], nil
	}

	pos := b.rng.IntN(b.cursor)
	b.items[pos], b.items[b.cursor] = b.items[b.cursor], b.items[pos]
	item := b.items[b.cursor]
	b.cursor--
	return item, nil
}

// MustNext is like Next but panics with ErrEmpty if the bag has no items.
func (b *Bag[T]) MustNext() T {
	item, err := b.Next()
	if err != nil {
		panic(err)
	}
	return item
}
