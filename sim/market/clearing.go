package market

import (
	"math"

	"github.com/fuelcycle-sim/batch-reactor/sim"
	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// matchTrades greedily matches bids to requests in the order they were made.
// Each trade is bounded by the request's remaining quantity, the offered quantity,
// and the remaining capacity of both portfolios. A trader never trades with itself.
func matchTrades(requests []*sim.Request, bids []*sim.BidPortfolio) []sim.Trade {
	byRequest := make(map[*sim.Request][]*sim.Bid)
	for _, port := range bids {
		for _, b := range port.Bids {
			if b.Request == nil || b.Bidder == b.Request.Requester {
				continue
			}
			byRequest[b.Request] = append(byRequest[b.Request], b)
		}
	}

	reqCap := make(map[*sim.RequestPortfolio]float64)
	bidCap := make(map[*sim.BidPortfolio]float64)
	var trades []sim.Trade
	for _, req := range requests {
		if _, ok := reqCap[req.Portfolio]; !ok {
			reqCap[req.Portfolio] = req.Portfolio.Capacity()
		}
		remaining := req.Quantity()
		for _, b := range byRequest[req] {
			if _, ok := bidCap[b.Portfolio]; !ok {
				bidCap[b.Portfolio] = b.Portfolio.Capacity()
			}
			amount := math.Min(remaining, b.Quantity())
			amount = math.Min(amount, reqCap[req.Portfolio])
			amount = math.Min(amount, bidCap[b.Portfolio])
			if amount <= resource.Eps {
				continue
			}
			trades = append(trades, sim.Trade{Request: req, Bid: b, Amount: amount})
			remaining -= amount
			reqCap[req.Portfolio] -= amount
			bidCap[b.Portfolio] -= amount
		}
	}
	return trades
}
