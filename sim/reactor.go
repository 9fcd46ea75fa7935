// sim/reactor.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// BatchReactor is a batch-refueled facility. Whole batches move reserves → core → storage;
// the phase decides when a core is processed, and the exchange methods size what is
// bought and sold each step.
//
// Thread-safety: NOT thread-safe. The host scheduler calls it from a single goroutine,
// in the order Tick → RequestPortfolios/BidPortfolios → FulfillTrades/AcceptTrades → Tock.
type BatchReactor struct {
	params FacilityParams
	ctx    Context

	inRecipe  *resource.Recipe
	outRecipe *resource.Recipe

	phase     Phase
	startTime int64 // tick at which PROCESSING was last entered; -1 before the first cycle

	reserves  *Buffer
	core      *Buffer
	storage   *Buffer
	spillover *Spillover

	registry ProducerRegistry
	trace    *trace.FacilityTrace
	log      *logrus.Entry
}

// Option configures optional BatchReactor collaborators.
type Option func(*BatchReactor)

// WithTrace records phase, trade and inventory events at the given level.
func WithTrace(config trace.TraceConfig) Option {
	return func(r *BatchReactor) {
		r.trace = trace.NewFacilityTrace(r.params.Name, config)
	}
}

// WithProducerRegistry registers the facility's commodity production on Deploy.
func WithProducerRegistry(reg ProducerRegistry) Option {
	return func(r *BatchReactor) {
		r.registry = reg
	}
}

// NewBatchReactor validates cfg, resolves its recipes through ctx and creates a
// reactor with empty buffers. Call Deploy before the first Tick.
func NewBatchReactor(cfg *FacilityConfig, ctx Context, opts ...Option) (*BatchReactor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: facility config cannot be nil", ErrConfiguration)
	}
	if ctx == nil {
		panic("NewBatchReactor: ctx must not be nil")
	}
	params, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	inRecipe, err := ctx.Recipe(params.InRecipe)
	if err != nil {
		return nil, fmt.Errorf("%w: facility %q: inrecipe: %v", ErrConfiguration, params.Name, err)
	}
	outRecipe, err := ctx.Recipe(params.OutRecipe)
	if err != nil {
		return nil, fmt.Errorf("%w: facility %q: outrecipe: %v", ErrConfiguration, params.Name, err)
	}

	r := &BatchReactor{
		params:    params,
		ctx:       ctx,
		inRecipe:  inRecipe,
		outRecipe: outRecipe,
		phase:     PhaseInitial,
		startTime: -1,
		reserves:  NewBuffer("reserves"),
		core:      NewBuffer("core"),
		storage:   NewBuffer("storage"),
		log:       logrus.WithField("facility", params.Name),
	}
	r.spillover = NewSpillover(params.BatchSize, r.reserves)
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ID returns the facility name.
func (r *BatchReactor) ID() string { return r.params.Name }

// Params returns the resolved configuration.
func (r *BatchReactor) Params() FacilityParams { return r.params }

// Phase returns the current operating phase.
func (r *BatchReactor) Phase() Phase { return r.phase }

// StartTime returns the tick PROCESSING was last entered, or -1.
func (r *BatchReactor) StartTime() int64 { return r.startTime }

// EndTime returns the tick the current or last processing cycle ends.
func (r *BatchReactor) EndTime() int64 { return r.startTime + r.params.ProcessTime }

// OrderTime returns the tick from which steady-state reserve orders are placed.
func (r *BatchReactor) OrderTime() int64 { return r.EndTime() - r.params.PreorderTime }

// Trace returns the facility trace, or nil when tracing is disabled.
func (r *BatchReactor) Trace() *trace.FacilityTrace { return r.trace }

// Deploy resets the phase to INITIAL and seeds the buffers from the initial condition:
// reserves and core with input-recipe batches, storage with output-recipe batches.
func (r *BatchReactor) Deploy() error {
	r.phase = PhaseInitial
	r.startTime = -1
	r.reserves = NewBuffer("reserves")
	r.core = NewBuffer("core")
	r.storage = NewBuffer("storage")
	r.spillover = NewSpillover(r.params.BatchSize, r.reserves)

	ic := r.params.Initial
	for i := 0; i < ic.NReserves; i++ {
		r.reserves.Push(resource.New(r.params.BatchSize, r.inRecipe))
	}
	for i := 0; i < ic.NCore; i++ {
		r.core.Push(resource.New(r.params.BatchSize, r.inRecipe))
	}
	for i := 0; i < ic.NStorage; i++ {
		r.storage.Push(resource.New(r.params.BatchSize, r.outRecipe))
	}

	if r.registry != nil {
		r.registry.Register(r.params.Name, r.params.Production)
	}

	r.log.Debugf("Batch reactor entering the simulation: %s", r)
	return r.checkInvariants("deploy")
}

// Tick advances the phase at time t. Reaching the end of a processing cycle unloads
// LoadCount batches from core into storage before WAITING is recorded.
func (r *BatchReactor) Tick(t int64) error {
	r.log.Debugf("[tick %07d] ticking in phase %q", t, r.phase)

	next := NextPhase(r.phase, PhaseInputs{
		Time:       t,
		EndTime:    r.EndTime(),
		RefuelTime: r.params.RefuelTime,
		CoreCount:  r.core.Count(),
		BatchCount: r.params.BatchCount,
	})
	if next == r.phase {
		return r.checkInvariants("tick")
	}

	unloaded := 0
	if r.phase == PhaseProcessing && next == PhaseWaiting {
		if err := r.unload(r.params.LoadCount); err != nil {
			return r.wrap(err)
		}
		unloaded = r.params.LoadCount
	}
	r.setPhase(next, t, unloaded)
	return r.checkInvariants("tick")
}

// Tock refuels the core at time t unless a core is being processed.
func (r *BatchReactor) Tock(t int64) error {
	switch r.phase {
	case PhaseInitial, PhaseWaiting:
		if _, err := r.refuel(); err != nil {
			return r.wrap(err)
		}
	}
	inv := r.Inventory()
	r.trace.RecordInventory(trace.InventoryRecord{
		Facility:  r.params.Name,
		Clock:     t,
		Phase:     r.phase.String(),
		Reserves:  inv.Reserves,
		Core:      inv.Core,
		Storage:   inv.Storage,
		Spillover: inv.Spillover,
		CoreCount: inv.CoreCount,
	})
	return r.checkInvariants("tock")
}

// setPhase is the only phase mutator. Entering PROCESSING records the start time.
func (r *BatchReactor) setPhase(p Phase, t int64, unloaded int) {
	r.log.WithFields(logrus.Fields{"from": r.phase.String(), "to": p.String()}).
		Debugf("[tick %07d] changing phases", t)
	r.trace.RecordPhase(trace.PhaseRecord{
		Facility: r.params.Name,
		Clock:    t,
		From:     r.phase.String(),
		To:       p.String(),
		CycleEnd: r.phase == PhaseProcessing && p == PhaseWaiting,
		Unloaded: unloaded,
	})
	if p == PhaseProcessing {
		r.startTime = t
	}
	r.phase = p
}

// Inventory is a snapshot of the facility's buffers.
type Inventory struct {
	Phase         Phase
	Reserves      float64
	Core          float64
	Storage       float64
	Spillover     float64
	ReservesCount int
	CoreCount     int
	StorageCount  int
}

// Total is the quantity held across all buffers and the spillover.
func (i Inventory) Total() float64 {
	return i.Reserves + i.Core + i.Storage + i.Spillover
}

func (i Inventory) String() string {
	return fmt.Sprintf("phase=%q reserves=%g(%d) core=%g(%d) storage=%g(%d) spillover=%g",
		i.Phase, i.Reserves, i.ReservesCount, i.Core, i.CoreCount, i.Storage, i.StorageCount, i.Spillover)
}

// Inventory returns the current buffer quantities and counts.
func (r *BatchReactor) Inventory() Inventory {
	return Inventory{
		Phase:         r.phase,
		Reserves:      r.reserves.Quantity(),
		Core:          r.core.Quantity(),
		Storage:       r.storage.Quantity(),
		Spillover:     r.spillover.Quantity(),
		ReservesCount: r.reserves.Count(),
		CoreCount:     r.core.Count(),
		StorageCount:  r.storage.Count(),
	}
}

// CheckInvariants verifies the buffer and phase invariants.
func (r *BatchReactor) CheckInvariants() error {
	return r.checkInvariants("check")
}

func (r *BatchReactor) checkInvariants(op string) error {
	var violation string
	switch {
	case r.core.Count() > r.params.BatchCount:
		violation = fmt.Sprintf("core holds %d batches, capacity %d", r.core.Count(), r.params.BatchCount)
	case r.reserves.Quantity() < 0 || r.core.Quantity() < 0 || r.storage.Quantity() < 0:
		violation = fmt.Sprintf("negative buffer quantity (%s %s %s)", r.reserves, r.core, r.storage)
	case r.spillover.Quantity() < 0 || r.spillover.Quantity() >= r.params.BatchSize:
		violation = fmt.Sprintf("spillover %g outside [0, %g)", r.spillover.Quantity(), r.params.BatchSize)
	case r.phase == PhaseProcessing && r.startTime < 0:
		violation = "processing without a start time"
	}
	if violation == "" {
		return nil
	}
	return fmt.Errorf("batch reactor %s: after %s: %s: %w", r.params.Name, op, violation, ErrInvariantViolation)
}

// wrap adds the facility identity to an error surfaced to the scheduler or market.
func (r *BatchReactor) wrap(err error) error {
	return fmt.Errorf("batch reactor %s experienced an error: %w", r.params.Name, err)
}

func (r *BatchReactor) String() string {
	return fmt.Sprintf("%s has facility parameters {Process Time = %d, Refuel Time = %d, "+
		"Core Loading = %g, Batches Per Core = %d, converts commodity '%s' into commodity '%s'}",
		r.params.Name, r.params.ProcessTime, r.params.RefuelTime, r.params.CoreLoading(),
		r.params.BatchCount, r.params.InCommodity, r.params.OutCommodity)
}
