package market

import "github.com/fuelcycle-sim/batch-reactor/sim"

// Trader is a participant scheduled and cleared by the Exchange.
// *sim.BatchReactor, *Source and *Sink implement it.
type Trader interface {
	ID() string
	Tick(t int64) error
	Tock(t int64) error
	RequestPortfolios() []*sim.RequestPortfolio
	BidPortfolios(requests sim.CommodityRequests) []*sim.BidPortfolio
	AcceptTrades(responses []sim.TradeResponse) error
	FulfillTrades(trades []sim.Trade) ([]sim.TradeResponse, error)
}

// deployer is implemented by traders that seed their state before the first step.
type deployer interface {
	Deploy() error
}

// phased is implemented by traders whose processing cycles are counted in Metrics.
type phased interface {
	Phase() sim.Phase
}
