// Implements the Buffer, the FIFO material store behind reserves, core and storage.
// Batches are pushed at the back and popped from the front.

package sim

import (
	"fmt"
	"strings"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// Buffer is an unbounded FIFO collection of material batches with a running total quantity.
//
// Thread-safety: NOT thread-safe. Owned exclusively by one facility.
type Buffer struct {
	name  string
	items []*resource.Material
	qty   float64
}

// NewBuffer creates an empty named buffer. The name only appears in errors and logs.
func NewBuffer(name string) *Buffer {
	return &Buffer{name: name}
}

// Push adds a batch to the back of the buffer.
func (b *Buffer) Push(m *resource.Material) {
	if m == nil {
		panic(fmt.Sprintf("Buffer(%s).Push: material must not be nil", b.name))
	}
	b.items = append(b.items, m)
	b.qty += m.Quantity()
}

// PushAll pushes every batch in order.
func (b *Buffer) PushAll(ms []*resource.Material) {
	for _, m := range ms {
		b.Push(m)
	}
}

// Count returns the number of batches held.
func (b *Buffer) Count() int {
	return len(b.items)
}

// Quantity returns the total quantity held.
func (b *Buffer) Quantity() float64 {
	if len(b.items) == 0 {
		return 0
	}
	return b.qty
}

// Peek returns the batch at the front without removing it.
// Returns nil if the buffer is empty.
func (b *Buffer) Peek() *resource.Material {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[0]
}

// Pop removes the batch at the front.
func (b *Buffer) Pop() (*resource.Material, error) {
	if len(b.items) == 0 {
		return nil, fmt.Errorf("pop from empty %s buffer: %w", b.name, ErrBufferUnderflow)
	}
	m := b.items[0]
	b.items[0] = nil
	b.items = b.items[1:]
	b.qty -= m.Quantity()
	if len(b.items) == 0 {
		b.qty = 0
	}
	return m, nil
}

// PopN removes n batches from the front. Nothing is removed if fewer than n are held.
func (b *Buffer) PopN(n int) ([]*resource.Material, error) {
	if n < 0 || n > len(b.items) {
		return nil, fmt.Errorf("pop %d batches from %s buffer holding %d: %w", n, b.name, len(b.items), ErrBufferUnderflow)
	}
	out := make([]*resource.Material, 0, n)
	for i := 0; i < n; i++ {
		m, _ := b.Pop()
		out = append(out, m)
	}
	return out, nil
}

// PopQty removes exactly qty from the front of the buffer. Whole batches are popped
// while they fit; the last one is split when only part of it is needed.
// Nothing is removed if the buffer holds less than qty.
func (b *Buffer) PopQty(qty float64) ([]*resource.Material, error) {
	if qty < 0 {
		return nil, fmt.Errorf("pop negative quantity %f from %s buffer", qty, b.name)
	}
	if qty > b.Quantity()+resource.Eps {
		return nil, fmt.Errorf("pop %f from %s buffer holding %f: %w", qty, b.name, b.Quantity(), ErrBufferUnderflow)
	}
	var out []*resource.Material
	left := qty
	for left > resource.Eps && len(b.items) > 0 {
		front := b.items[0]
		if front.Quantity() <= left+resource.Eps {
			m, _ := b.Pop()
			left -= m.Quantity()
			out = append(out, m)
			continue
		}
		part, err := front.ExtractQty(left)
		if err != nil {
			return nil, fmt.Errorf("split batch in %s buffer: %w", b.name, err)
		}
		b.qty -= part.Quantity()
		left = 0
		out = append(out, part)
	}
	return out, nil
}

func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(b.name)
	sb.WriteString("[")
	for i, m := range b.items {
		sb.WriteString(fmt.Sprintf("%g", m.Quantity()))
		if i < len(b.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
