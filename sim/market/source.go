package market

import (
	"fmt"
	"math"

	"github.com/fuelcycle-sim/batch-reactor/sim"
	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

var (
	_ Trader = (*sim.BatchReactor)(nil)
	_ Trader = (*Source)(nil)
	_ Trader = (*Sink)(nil)
)

// Source supplies fresh material of one recipe on one commodity, up to a capacity
// per step. Its inventory is unbounded.
type Source struct {
	name      string
	commodity string
	recipe    *resource.Recipe
	capacity  float64
	supplied  float64
}

// NewSource creates a source. A non-positive capacity means unlimited.
func NewSource(name, commodity string, recipe *resource.Recipe, capacity float64) *Source {
	if recipe == nil {
		panic("NewSource: recipe must not be nil")
	}
	if capacity <= 0 {
		capacity = math.Inf(1)
	}
	return &Source{name: name, commodity: commodity, recipe: recipe, capacity: capacity}
}

func (s *Source) ID() string { return s.name }

// Supplied returns the total quantity shipped.
func (s *Source) Supplied() float64 { return s.supplied }

func (s *Source) Tick(int64) error { return nil }
func (s *Source) Tock(int64) error { return nil }

func (s *Source) RequestPortfolios() []*sim.RequestPortfolio { return nil }

// BidPortfolios offers min(requested, capacity) against every request for the commodity.
func (s *Source) BidPortfolios(requests sim.CommodityRequests) []*sim.BidPortfolio {
	reqs := requests[s.commodity]
	if len(reqs) == 0 {
		return nil
	}
	port := sim.NewBidPortfolio(s.name)
	for _, req := range reqs {
		port.AddBid(req, resource.NewUntracked(math.Min(req.Quantity(), s.capacity), s.recipe))
	}
	if !math.IsInf(s.capacity, 1) {
		port.AddConstraint(sim.CapacityConstraint{Capacity: s.capacity})
	}
	return []*sim.BidPortfolio{port}
}

// AcceptTrades rejects deliveries: a source only supplies.
func (s *Source) AcceptTrades(responses []sim.TradeResponse) error {
	if len(responses) > 0 {
		return fmt.Errorf("source %s cannot accept material", s.name)
	}
	return nil
}

// FulfillTrades creates the traded quantity of material.
func (s *Source) FulfillTrades(trades []sim.Trade) ([]sim.TradeResponse, error) {
	responses := make([]sim.TradeResponse, 0, len(trades))
	for _, tr := range trades {
		responses = append(responses, sim.TradeResponse{Trade: tr, Material: resource.New(tr.Amount, s.recipe)})
		s.supplied += tr.Amount
	}
	return responses, nil
}
