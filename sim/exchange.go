package sim

import (
	"fmt"
	"math"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

// CapacityConstraint bounds the total quantity traded through one portfolio in one step.
type CapacityConstraint struct {
	Capacity float64
}

// Request is a demand for material of some recipe on a commodity.
type Request struct {
	Target    *resource.Material // untracked; quantity and recipe wanted
	Commodity string
	Requester string
	Portfolio *RequestPortfolio
}

// Quantity returns the requested quantity.
func (r *Request) Quantity() float64 { return r.Target.Quantity() }

func (r *Request) String() string {
	return fmt.Sprintf("Request{%s wants %g of %s (%s)}", r.Requester, r.Quantity(), r.Commodity, r.Target.Recipe())
}

// RequestPortfolio groups the requests a trader makes in one step under shared constraints.
type RequestPortfolio struct {
	Requester   string
	Requests    []*Request
	Constraints []CapacityConstraint
}

// NewRequestPortfolio creates an empty portfolio for requester.
func NewRequestPortfolio(requester string) *RequestPortfolio {
	return &RequestPortfolio{Requester: requester}
}

// AddRequest adds a request for target on commodity and returns it.
func (p *RequestPortfolio) AddRequest(target *resource.Material, commodity string) *Request {
	r := &Request{Target: target, Commodity: commodity, Requester: p.Requester, Portfolio: p}
	p.Requests = append(p.Requests, r)
	return r
}

// AddConstraint adds a capacity constraint.
func (p *RequestPortfolio) AddConstraint(c CapacityConstraint) {
	p.Constraints = append(p.Constraints, c)
}

// Capacity returns the tightest constraint, or +Inf when there is none.
func (p *RequestPortfolio) Capacity() float64 {
	return tightest(p.Constraints)
}

// Bid is an offer of material against one request.
type Bid struct {
	Request   *Request
	Offer     *resource.Material // untracked; quantity and recipe offered
	Bidder    string
	Portfolio *BidPortfolio
}

// Quantity returns the offered quantity.
func (b *Bid) Quantity() float64 { return b.Offer.Quantity() }

// BidPortfolio groups the bids a trader makes in one step under shared constraints.
type BidPortfolio struct {
	Bidder      string
	Bids        []*Bid
	Constraints []CapacityConstraint
}

// NewBidPortfolio creates an empty portfolio for bidder.
func NewBidPortfolio(bidder string) *BidPortfolio {
	return &BidPortfolio{Bidder: bidder}
}

// AddBid adds an offer against req and returns the bid.
func (p *BidPortfolio) AddBid(req *Request, offer *resource.Material) *Bid {
	b := &Bid{Request: req, Offer: offer, Bidder: p.Bidder, Portfolio: p}
	p.Bids = append(p.Bids, b)
	return b
}

// AddConstraint adds a capacity constraint.
func (p *BidPortfolio) AddConstraint(c CapacityConstraint) {
	p.Constraints = append(p.Constraints, c)
}

// Capacity returns the tightest constraint, or +Inf when there is none.
func (p *BidPortfolio) Capacity() float64 {
	return tightest(p.Constraints)
}

func tightest(cs []CapacityConstraint) float64 {
	capacity := math.Inf(1)
	for _, c := range cs {
		capacity = math.Min(capacity, c.Capacity)
	}
	return capacity
}

// CommodityRequests indexes the requests of one step by commodity.
type CommodityRequests map[string][]*Request

// Trade is a matched request/bid pair with the agreed amount.
type Trade struct {
	Request *Request
	Bid     *Bid
	Amount  float64
}

// TradeResponse is the material shipped to satisfy a trade.
type TradeResponse struct {
	Trade    Trade
	Material *resource.Material
}
