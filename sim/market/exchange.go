package market

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fuelcycle-sim/batch-reactor/sim"
	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// Exchange is the time-stepped host of a set of traders. Each step runs three events:
// Tick on every trader, a market clearing, then Tock on every trader.
// It owns the simulation clock and the recipe book, and implements sim.Context.
//
// Thread-safety: NOT thread-safe. Run drives every trader from a single goroutine.
type Exchange struct {
	EventQueue *EventQueue
	Clock      int64
	Horizon    int64 // number of steps; steps run at 0..Horizon-1

	recipes  *resource.RecipeBook
	registry *sim.CommodityRegistry
	traders  []Trader
	byID     map[string]Trader
	metrics  *Metrics

	nextEventID uint64
}

// NewExchange creates an exchange that runs horizon steps with the given recipes.
func NewExchange(horizon int64, recipes *resource.RecipeBook) *Exchange {
	if recipes == nil {
		recipes = resource.NewRecipeBook()
	}
	return &Exchange{
		EventQueue: NewEventQueue(),
		Horizon:    horizon,
		recipes:    recipes,
		registry:   sim.NewCommodityRegistry(),
		byID:       make(map[string]Trader),
		metrics:    newMetrics(),
	}
}

// Time implements sim.Context.
func (x *Exchange) Time() int64 {
	return x.Clock
}

// Recipe implements sim.Context.
func (x *Exchange) Recipe(name string) (*resource.Recipe, error) {
	return x.recipes.Get(name)
}

// Registry returns the producer registry facilities register their production with.
func (x *Exchange) Registry() *sim.CommodityRegistry {
	return x.registry
}

// AddTrader registers a trader. IDs must be unique.
func (x *Exchange) AddTrader(t Trader) error {
	if t == nil {
		return fmt.Errorf("trader cannot be nil")
	}
	if _, exists := x.byID[t.ID()]; exists {
		return fmt.Errorf("trader %s already exists", t.ID())
	}
	x.traders = append(x.traders, t)
	x.byID[t.ID()] = t
	x.metrics.trader(t.ID())
	return nil
}

// Trader returns the trader registered under id, or nil.
func (x *Exchange) Trader(id string) Trader {
	return x.byID[id]
}

// Traders returns all traders in registration order.
func (x *Exchange) Traders() []Trader {
	return x.traders
}

// Reactors returns the batch reactors among the traders in registration order.
func (x *Exchange) Reactors() []*sim.BatchReactor {
	var out []*sim.BatchReactor
	for _, t := range x.traders {
		if r, ok := t.(*sim.BatchReactor); ok {
			out = append(out, r)
		}
	}
	return out
}

// Metrics returns the totals accumulated so far.
func (x *Exchange) Metrics() *Metrics {
	return x.metrics
}

func (x *Exchange) newEventID() uint64 {
	x.nextEventID++
	return x.nextEventID
}

func (x *Exchange) scheduleStep(t int64) {
	x.EventQueue.Schedule(NewTickEvent(t, x.newEventID()))
	x.EventQueue.Schedule(NewExchangeEvent(t, x.newEventID()))
	x.EventQueue.Schedule(NewTockEvent(t, x.newEventID()))
}

// Run deploys every trader and executes steps until the horizon.
// The first trader error stops the run and is returned.
func (x *Exchange) Run() (*Metrics, error) {
	for _, t := range x.traders {
		if d, ok := t.(deployer); ok {
			if err := d.Deploy(); err != nil {
				return x.metrics, fmt.Errorf("deploy %s: %w", t.ID(), err)
			}
		}
	}
	if x.Horizon > 0 {
		x.scheduleStep(0)
	}

	for next := x.EventQueue.Next(); next != nil && next.Timestamp() < x.Horizon; next = x.EventQueue.Next() {
		event := x.EventQueue.PopNext()

		if event.Timestamp() < x.Clock {
			panic(fmt.Sprintf("Clock went backwards: %d < %d", event.Timestamp(), x.Clock))
		}
		x.Clock = event.Timestamp()

		if err := event.Execute(x); err != nil {
			return x.metrics, fmt.Errorf("step %d %s: %w", x.Clock, event.Type(), err)
		}
	}

	x.metrics.SimEndedTime = x.Clock
	logrus.Infof("[tick %07d] exchange finished after %d steps, %d trades", x.Clock, x.metrics.Steps, x.metrics.Trades)
	return x.metrics, nil
}

// Event handlers

func (x *Exchange) handleTick(e *TickEvent) error {
	logrus.Debugf("[tick %07d] tick", e.Timestamp())
	for _, t := range x.traders {
		p, isPhased := t.(phased)
		var before sim.Phase
		if isPhased {
			before = p.Phase()
		}
		if err := t.Tick(e.Timestamp()); err != nil {
			return err
		}
		if isPhased && before == sim.PhaseProcessing && p.Phase() == sim.PhaseWaiting {
			x.metrics.trader(t.ID()).CyclesCompleted++
		}
	}
	return nil
}

func (x *Exchange) handleExchange(e *ExchangeEvent) error {
	var requests []*sim.Request
	byCommodity := make(sim.CommodityRequests)
	for _, t := range x.traders {
		for _, port := range t.RequestPortfolios() {
			for _, req := range port.Requests {
				requests = append(requests, req)
				byCommodity[req.Commodity] = append(byCommodity[req.Commodity], req)
			}
		}
	}
	if len(requests) == 0 {
		return nil
	}

	var bids []*sim.BidPortfolio
	for _, t := range x.traders {
		bids = append(bids, t.BidPortfolios(byCommodity)...)
	}

	trades := matchTrades(requests, bids)
	logrus.Debugf("[tick %07d] %d requests, %d bid portfolios, %d trades", e.Timestamp(), len(requests), len(bids), len(trades))
	if len(trades) == 0 {
		return nil
	}
	return x.execute(trades)
}

// execute has suppliers fulfill their trades, then hands the shipments to requesters.
func (x *Exchange) execute(trades []sim.Trade) error {
	bySupplier := make(map[string][]sim.Trade)
	for _, tr := range trades {
		bySupplier[tr.Bid.Bidder] = append(bySupplier[tr.Bid.Bidder], tr)
	}

	byRequester := make(map[string][]sim.TradeResponse)
	for _, t := range x.traders {
		mine := bySupplier[t.ID()]
		if len(mine) == 0 {
			continue
		}
		responses, err := t.FulfillTrades(mine)
		if err != nil {
			return err
		}
		for _, resp := range responses {
			requester := resp.Trade.Request.Requester
			byRequester[requester] = append(byRequester[requester], resp)

			qty := resp.Material.Quantity()
			x.metrics.trader(t.ID()).Supplied += qty
			x.metrics.trader(t.ID()).Trades++
			x.metrics.trader(requester).Acquired += qty
			x.metrics.trader(requester).Trades++
			x.metrics.Trades++
			x.metrics.TotalTraded += qty
		}
	}

	for _, t := range x.traders {
		mine := byRequester[t.ID()]
		if len(mine) == 0 {
			continue
		}
		if err := t.AcceptTrades(mine); err != nil {
			return err
		}
	}
	return nil
}

func (x *Exchange) handleTock(e *TockEvent) error {
	for _, t := range x.traders {
		if err := t.Tock(e.Timestamp()); err != nil {
			return err
		}
	}
	x.metrics.Steps++
	if next := e.Timestamp() + 1; next < x.Horizon {
		x.scheduleStep(next)
	}
	return nil
}
