package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// orderSize returns the quantity of input material to request this step.
// In INITIAL the facility orders a full core less what it holds, plus its reserve
// target when there is no lead time. Afterwards it tops up reserves, but only once
// the order time of the current cycle has been reached.
func (r *BatchReactor) orderSize() float64 {
	p := r.params
	held := r.reserves.Quantity() + r.spillover.Quantity()
	switch r.phase {
	case PhaseInitial:
		size := p.CoreLoading() - r.core.Quantity() - held
		if p.PreorderTime == 0 {
			size += float64(p.ReserveTargetCount) * p.BatchSize
		}
		return size
	default:
		if r.OrderTime() > r.ctx.Time() {
			return 0
		}
		return float64(p.ReserveTargetCount)*p.BatchSize - held
	}
}

// RequestPortfolios returns at most one portfolio requesting input material.
// The portfolio is constrained to the requested quantity; nothing is requested
// when the size is not positive.
func (r *BatchReactor) RequestPortfolios() []*RequestPortfolio {
	size := r.orderSize()
	if size <= resource.Eps {
		return nil
	}
	r.log.Debugf("making an order of size %g", size)

	port := NewRequestPortfolio(r.params.Name)
	port.AddRequest(resource.NewUntracked(size, r.inRecipe), r.params.InCommodity)
	port.AddConstraint(CapacityConstraint{Capacity: size})
	return []*RequestPortfolio{port}
}

// BidPortfolios offers stored output material against every request for the output
// commodity. Each bid offers min(requested, storage); the portfolio is constrained
// to the storage quantity so storage is never oversold across requesters.
func (r *BatchReactor) BidPortfolios(requests CommodityRequests) []*BidPortfolio {
	reqs := requests[r.params.OutCommodity]
	stored := r.storage.Quantity()
	if len(reqs) == 0 || stored <= 0 {
		return nil
	}

	port := NewBidPortfolio(r.params.Name)
	for _, req := range reqs {
		qty := math.Min(req.Quantity(), stored)
		port.AddBid(req, resource.NewUntracked(qty, r.outRecipe))
	}
	port.AddConstraint(CapacityConstraint{Capacity: stored})
	return []*BidPortfolio{port}
}

// AcceptTrades merges all delivered material into one blob and absorbs it into
// the spillover, which turns it into whole reserve batches.
func (r *BatchReactor) AcceptTrades(responses []TradeResponse) error {
	if len(responses) == 0 {
		return nil
	}
	mat := responses[0].Material
	for _, resp := range responses {
		r.trace.RecordTrade(trace.TradeRecord{
			Facility:     r.params.Name,
			Clock:        r.ctx.Time(),
			Direction:    trace.DirectionAcquired,
			Commodity:    resp.Trade.Request.Commodity,
			Recipe:       resp.Material.Recipe(),
			Quantity:     resp.Material.Quantity(),
			Counterparty: bidderOf(resp.Trade),
		})
	}
	for _, resp := range responses[1:] {
		mat.Absorb(resp.Material)
	}

	r.log.Debugf("adding %g of material to its reserves", mat.Quantity())
	if _, err := r.spillover.Absorb(mat); err != nil {
		return r.wrap(err)
	}
	return r.checkInvariants("accept trades")
}

// FulfillTrades pops each trade's amount from storage and ships it as one material.
// Storage that cannot cover a trade is an upstream constraint error and is returned.
func (r *BatchReactor) FulfillTrades(trades []Trade) ([]TradeResponse, error) {
	responses := make([]TradeResponse, 0, len(trades))
	for _, tr := range trades {
		r.log.WithFields(logrus.Fields{"amount": tr.Amount, "commodity": r.params.OutCommodity}).
			Info("received an order")

		manifest, err := r.storage.PopQty(tr.Amount)
		if err != nil {
			return responses, r.wrap(err)
		}
		shipment := resource.NewBlank()
		for _, m := range manifest {
			shipment.Absorb(m)
		}
		responses = append(responses, TradeResponse{Trade: tr, Material: shipment})

		r.trace.RecordTrade(trace.TradeRecord{
			Facility:     r.params.Name,
			Clock:        r.ctx.Time(),
			Direction:    trace.DirectionSupplied,
			Commodity:    tr.Request.Commodity,
			Recipe:       shipment.Recipe(),
			Quantity:     shipment.Quantity(),
			Counterparty: tr.Request.Requester,
		})
	}
	if err := r.checkInvariants("fulfill trades"); err != nil {
		return responses, err
	}
	return responses, nil
}

func bidderOf(tr Trade) string {
	if tr.Bid == nil {
		return ""
	}
	return tr.Bid.Bidder
}
