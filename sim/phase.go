package sim

// Phase is the operating phase of a batch reactor.
type Phase int

const (
	// PhaseInitial: deployed, core not yet full for the first time.
	PhaseInitial Phase = iota
	// PhaseProcessing: a core of batches is being processed.
	PhaseProcessing
	// PhaseWaiting: unloaded, waiting for the core to refill and the refuel time to pass.
	PhaseWaiting
)

var phaseNames = [...]string{
	PhaseInitial:    "initialization",
	PhaseProcessing: "processing batch(es)",
	PhaseWaiting:    "waiting for fuel",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// PhaseInputs is everything the phase transition depends on at one tick.
type PhaseInputs struct {
	Time       int64 // current tick
	EndTime    int64 // end of the current or last processing cycle
	RefuelTime int64 // minimum idle ticks between unload and restart
	CoreCount  int   // batches currently in the core
	BatchCount int   // batches that make a full core
}

func (in PhaseInputs) coreFull() bool {
	return in.CoreCount == in.BatchCount
}

// phaseEdge is the single outgoing transition of a phase and the guard that fires it.
type phaseEdge struct {
	to    Phase
	guard func(in PhaseInputs) bool
}

var phaseEdges = [...]phaseEdge{
	// a core deployed full starts without waiting
	PhaseInitial: {to: PhaseProcessing, guard: PhaseInputs.coreFull},
	PhaseProcessing: {to: PhaseWaiting, guard: func(in PhaseInputs) bool {
		return in.Time == in.EndTime
	}},
	PhaseWaiting: {to: PhaseProcessing, guard: func(in PhaseInputs) bool {
		return in.coreFull() && in.EndTime+in.RefuelTime <= in.Time
	}},
}

// NextPhase is the phase transition function, evaluated once per tick.
// It has no side effects; the caller performs the unload on PROCESSING → WAITING
// and records the start time on entry to PROCESSING.
func NextPhase(p Phase, in PhaseInputs) Phase {
	if p < 0 || int(p) >= len(phaseEdges) {
		return p
	}
	if edge := phaseEdges[p]; edge.guard(in) {
		return edge.to
	}
	return p
}
