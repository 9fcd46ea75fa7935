// Package resource implements the material model consumed by the facility:
// quantities of a named composition that can be merged, split and transmuted.
// This package has no dependencies on sim/; it stores and mixes pure data.
package resource

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Eps is the quantity tolerance used for all material comparisons.
const Eps = 1e-6

// ErrInsufficientQuantity is returned when more quantity is extracted than a material holds.
var ErrInsufficientQuantity = errors.New("insufficient material quantity")

// Material is a quantity of matter with a composition.
// Tracked materials carry a fresh identity; untracked ones (offers, request targets)
// describe material that does not exist yet.
//
// Thread-safety: NOT thread-safe.
type Material struct {
	id      uuid.UUID
	qty     float64
	recipe  string
	comp    map[string]float64 // normalized mass fractions
	tracked bool
}

// New creates a tracked material of qty with the given recipe's composition.
func New(qty float64, r *Recipe) *Material {
	m := NewUntracked(qty, r)
	m.id = uuid.New()
	m.tracked = true
	return m
}

// NewUntracked creates a material that has no identity, used to describe offers and requests.
func NewUntracked(qty float64, r *Recipe) *Material {
	if qty < 0 {
		panic(fmt.Sprintf("resource.New: negative quantity %f", qty))
	}
	m := &Material{qty: qty, comp: map[string]float64{}}
	if r != nil {
		m.recipe = r.Name
		m.comp = r.normalized()
	}
	return m
}

// NewBlank creates an empty tracked material with no composition.
func NewBlank() *Material {
	return &Material{id: uuid.New(), comp: map[string]float64{}, tracked: true}
}

// ID returns the material identity (uuid.Nil for untracked materials).
func (m *Material) ID() uuid.UUID { return m.id }

// Tracked reports whether the material has an identity.
func (m *Material) Tracked() bool { return m.tracked }

// Quantity returns the amount of material.
func (m *Material) Quantity() float64 { return m.qty }

// Recipe returns the name of the recipe the material was created or transmuted with.
// Empty for blank material.
func (m *Material) Recipe() string { return m.recipe }

// Composition returns a copy of the normalized mass fractions.
func (m *Material) Composition() map[string]float64 {
	out := make(map[string]float64, len(m.comp))
	for k, v := range m.comp {
		out[k] = v
	}
	return out
}

// Absorb merges other into m. The composition becomes the mass-weighted mix of both
// and other is left empty.
func (m *Material) Absorb(other *Material) {
	if other == nil {
		panic("Absorb: other must not be nil")
	}
	if other == m || other.qty <= 0 {
		return
	}
	total := m.qty + other.qty
	mixed := make(map[string]float64, len(m.comp)+len(other.comp))
	for k, v := range m.comp {
		mixed[k] += v * m.qty / total
	}
	for k, v := range other.comp {
		mixed[k] += v * other.qty / total
	}
	if m.recipe == "" || m.qty <= 0 {
		m.recipe = other.recipe
	}
	m.comp = mixed
	m.qty = total
	other.qty = 0
}

// ExtractQty splits qty off m and returns it as a new tracked material with the same composition.
func (m *Material) ExtractQty(qty float64) (*Material, error) {
	if qty < 0 {
		return nil, fmt.Errorf("extract %f: quantity must be non-negative", qty)
	}
	if qty > m.qty+Eps {
		return nil, fmt.Errorf("extract %f from %f: %w", qty, m.qty, ErrInsufficientQuantity)
	}
	qty = math.Min(qty, m.qty)
	out := &Material{
		id:      uuid.New(),
		qty:     qty,
		recipe:  m.recipe,
		comp:    m.Composition(),
		tracked: true,
	}
	m.qty -= qty
	if m.qty < Eps {
		m.qty = 0
	}
	return out, nil
}

// Transmute replaces the composition of m with r's, keeping its quantity.
func (m *Material) Transmute(r *Recipe) {
	if r == nil {
		panic("Transmute: recipe must not be nil")
	}
	m.recipe = r.Name
	m.comp = r.normalized()
}

func (m *Material) String() string {
	return fmt.Sprintf("Material{id=%s, qty=%g, recipe=%q}", m.id, m.qty, m.recipe)
}
