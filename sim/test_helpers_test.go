package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
)

func ptr[T any](v T) *T { return &v }

// fakeContext is a hand-driven clock with a fixed recipe book.
type fakeContext struct {
	now  int64
	book *resource.RecipeBook
}

func newFakeContext(t *testing.T) *fakeContext {
	t.Helper()
	book := resource.NewRecipeBook()
	require.NoError(t, book.Add(&resource.Recipe{Name: "fresh", Composition: map[string]float64{"u235": 4, "u238": 96}}))
	require.NoError(t, book.Add(&resource.Recipe{Name: "spent", Composition: map[string]float64{"u235": 1, "u238": 94, "fp": 5}}))
	return &fakeContext{book: book}
}

func (c *fakeContext) Time() int64 { return c.now }

func (c *fakeContext) Recipe(name string) (*resource.Recipe, error) { return c.book.Get(name) }

func (c *fakeContext) recipe(t *testing.T, name string) *resource.Recipe {
	t.Helper()
	r, err := c.book.Get(name)
	require.NoError(t, err)
	return r
}

// testConfig returns a 3-batch reactor config of batch size 10 and process time 3,
// producing 1000 of "power".
func testConfig() *FacilityConfig {
	return &FacilityConfig{
		Name:        "reactor",
		FuelInput:   FuelInput{Commodity: "uox", Recipe: "fresh"},
		FuelOutput:  FuelOutput{Commodity: "spent_uox", Recipe: "spent"},
		ProcessTime: ptr(int64(3)),
		NBatches:    ptr(3),
		BatchSize:   ptr(10.0),
		CommodityProduction: &CommodityProduction{
			Commodity: "power",
			Capacity:  1000,
			Cost:      1,
		},
	}
}

func newDeployedReactor(t *testing.T, ctx *fakeContext, cfg *FacilityConfig, opts ...Option) *BatchReactor {
	t.Helper()
	r, err := NewBatchReactor(cfg, ctx, opts...)
	require.NoError(t, err)
	require.NoError(t, r.Deploy())
	return r
}

// deliver hands qty of fresh fuel to the reactor as one matched trade from "supplier".
func deliver(t *testing.T, ctx *fakeContext, r *BatchReactor, qty float64) {
	t.Helper()
	port := NewRequestPortfolio(r.ID())
	req := port.AddRequest(resource.NewUntracked(qty, ctx.recipe(t, "fresh")), "uox")
	bids := NewBidPortfolio("supplier")
	bid := bids.AddBid(req, resource.NewUntracked(qty, ctx.recipe(t, "fresh")))
	resp := TradeResponse{
		Trade:    Trade{Request: req, Bid: bid, Amount: qty},
		Material: resource.New(qty, ctx.recipe(t, "fresh")),
	}
	require.NoError(t, r.AcceptTrades([]TradeResponse{resp}))
}

// step runs one scheduler step at time now, delivering qty of fresh fuel between tick and tock.
func step(t *testing.T, ctx *fakeContext, r *BatchReactor, now int64, qty float64) {
	t.Helper()
	ctx.now = now
	require.NoError(t, r.Tick(now))
	if qty > 0 {
		deliver(t, ctx, r, qty)
	}
	require.NoError(t, r.Tock(now))
}
