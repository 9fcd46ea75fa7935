package trace

// TraceSummary aggregates statistics from a FacilityTrace.
type TraceSummary struct {
	PhaseTransitions int
	CyclesCompleted  int
	BatchesUnloaded  int
	TotalAcquired    float64
	TotalSupplied    float64
	PeakStorage      float64
	Counterparties   map[string]float64 // counterparty → quantity traded in either direction
}

// Summarize computes aggregate statistics from a FacilityTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(ft *FacilityTrace) *TraceSummary {
	summary := &TraceSummary{
		Counterparties: make(map[string]float64),
	}
	if ft == nil {
		return summary
	}

	summary.PhaseTransitions = len(ft.Phases)
	for _, p := range ft.Phases {
		if p.CycleEnd {
			summary.CyclesCompleted++
		}
		summary.BatchesUnloaded += p.Unloaded
	}

	for _, tr := range ft.Trades {
		switch tr.Direction {
		case DirectionAcquired:
			summary.TotalAcquired += tr.Quantity
		case DirectionSupplied:
			summary.TotalSupplied += tr.Quantity
		}
		summary.Counterparties[tr.Counterparty] += tr.Quantity
	}

	for _, inv := range ft.Inventories {
		if inv.Storage > summary.PeakStorage {
			summary.PeakStorage = inv.Storage
		}
	}

	return summary
}
