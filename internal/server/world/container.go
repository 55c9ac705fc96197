package world

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSlotOutOfRange is returned when writing to a slot the container does not have.
var ErrSlotOutOfRange = errors.New("slot out of range")

// ItemStack is a quantity of a single item.
type ItemStack struct {
	Item      string `json:"item"`
	StackSize int    `json:"stack_size"`
}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Item == "" || s.StackSize <= 0
}

// Container is the inventory of a block entity such as a chest.
type Container struct {
	mu    sync.RWMutex
	class string
	slots []ItemStack
}

// NewContainer creates an empty container with a fixed number of slots.
func NewContainer(class string, slots int) *Container {
	return &Container{class: class, slots: make([]ItemStack, slots)}
}

// Class returns the entity class of the block owning the container.
func (c *Container) Class() string {
	return c.class
}

// Len returns the number of slots.
func (c *Container) Len() int {
	return len(c.slots)
}

// Slot returns the stack at index i. Out-of-range indexes read as empty.
func (c *Container) Slot(i int) ItemStack {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.slots) {
		return ItemStack{}
	}
	return c.slots[i]
}

// SetSlot replaces the stack at index i. An empty stack clears the slot.
func (c *Container) SetSlot(i int, s ItemStack) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("set slot %d of %d: %w", i, len(c.slots), ErrSlotOutOfRange)
	}
	if s.IsEmpty() {
		s = ItemStack{}
	}
	c.slots[i] = s
	return nil
}

// Stacks returns a copy of every slot, empty ones included.
func (c *Container) Stacks() []ItemStack {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ItemStack, len(c.slots))
	copy(out, c.slots)
	return out
}

// IsEmpty reports whether every slot is empty.
func (c *Container) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.slots {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}
