package market

import (
	"fmt"
	"math"

	"github.com/fuelcycle-sim/batch-reactor/sim"
	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// Sink requests up to a capacity of one commodity every step and keeps what it receives.
type Sink struct {
	name      string
	commodity string
	capacity  float64
	inventory *resource.Material
}

// NewSink creates a sink. Capacity must be positive.
func NewSink(name, commodity string, capacity float64) *Sink {
	if capacity <= 0 || math.IsInf(capacity, 0) {
		panic(fmt.Sprintf("NewSink: capacity must be positive and finite, got %f", capacity))
	}
	return &Sink{name: name, commodity: commodity, capacity: capacity, inventory: resource.NewBlank()}
}

func (s *Sink) ID() string { return s.name }

// Inventory returns everything received so far, merged.
func (s *Sink) Inventory() *resource.Material { return s.inventory }

func (s *Sink) Tick(int64) error { return nil }
func (s *Sink) Tock(int64) error { return nil }

// RequestPortfolios requests the per-step capacity of the commodity, any recipe.
func (s *Sink) RequestPortfolios() []*sim.RequestPortfolio {
	port := sim.NewRequestPortfolio(s.name)
	port.AddRequest(resource.NewUntracked(s.capacity, nil), s.commodity)
	port.AddConstraint(sim.CapacityConstraint{Capacity: s.capacity})
	return []*sim.RequestPortfolio{port}
}

func (s *Sink) BidPortfolios(sim.CommodityRequests) []*sim.BidPortfolio { return nil }

// AcceptTrades merges deliveries into the inventory.
func (s *Sink) AcceptTrades(responses []sim.TradeResponse) error {
	for _, resp := range responses {
		s.inventory.Absorb(resp.Material)
	}
	return nil
}

// FulfillTrades rejects trades: a sink never bids.
func (s *Sink) FulfillTrades(trades []sim.Trade) ([]sim.TradeResponse, error) {
	if len(trades) > 0 {
		return nil, fmt.Errorf("sink %s cannot supply material", s.name)
	}
	return nil, nil
}
