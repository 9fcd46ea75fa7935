package sim

import (
	"fmt"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// Spillover accumulates incoming material of arbitrary size and slices whole batches
// off it into reserves. After every Absorb, 0 <= Quantity() < batchSize.
type Spillover struct {
	mat       *resource.Material
	batchSize float64
	reserves  *Buffer
}

// NewSpillover creates an empty accumulator feeding reserves in batches of batchSize.
func NewSpillover(batchSize float64, reserves *Buffer) *Spillover {
	if batchSize <= 0 {
		panic(fmt.Sprintf("NewSpillover: batchSize must be positive, got %f", batchSize))
	}
	return &Spillover{mat: resource.NewBlank(), batchSize: batchSize, reserves: reserves}
}

// Reset empties the accumulator.
func (s *Spillover) Reset() {
	s.mat = resource.NewBlank()
}

// Quantity returns the sub-batch remainder held.
func (s *Spillover) Quantity() float64 {
	return s.mat.Quantity()
}

// Material returns the accumulated remainder.
func (s *Spillover) Material() *resource.Material {
	return s.mat
}

// Absorb merges m into the remainder and pushes every whole batch onto reserves.
// It returns the number of batches pushed.
func (s *Spillover) Absorb(m *resource.Material) (int, error) {
	s.mat.Absorb(m)
	n := 0
	for s.mat.Quantity() >= s.batchSize-resource.Eps {
		batch, err := s.mat.ExtractQty(s.batchSize)
		if err != nil {
			return n, fmt.Errorf("extract batch from spillover: %w", err)
		}
		s.reserves.Push(batch)
		n++
	}
	return n, nil
}
