package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN a nil trace
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero and the map is usable
	want := &TraceSummary{Counterparties: map[string]float64{}}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("Summarize(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with two completed cycles and trades in both directions
	ft := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelFull})
	ft.RecordPhase(PhaseRecord{Clock: 0, From: "initialization", To: "processing batch(es)"})
	ft.RecordPhase(PhaseRecord{Clock: 3, From: "processing batch(es)", To: "waiting for fuel", CycleEnd: true, Unloaded: 1})
	ft.RecordPhase(PhaseRecord{Clock: 4, From: "waiting for fuel", To: "processing batch(es)"})
	ft.RecordPhase(PhaseRecord{Clock: 7, From: "processing batch(es)", To: "waiting for fuel", CycleEnd: true, Unloaded: 1})
	ft.RecordTrade(TradeRecord{Direction: DirectionAcquired, Quantity: 30, Counterparty: "mine"})
	ft.RecordTrade(TradeRecord{Direction: DirectionAcquired, Quantity: 10, Counterparty: "mine"})
	ft.RecordTrade(TradeRecord{Direction: DirectionSupplied, Quantity: 4, Counterparty: "repo"})
	ft.RecordInventory(InventoryRecord{Storage: 10})
	ft.RecordInventory(InventoryRecord{Storage: 20})
	ft.RecordInventory(InventoryRecord{Storage: 6})

	// WHEN summarized
	summary := Summarize(ft)

	// THEN aggregates reflect the records
	want := &TraceSummary{
		PhaseTransitions: 4,
		CyclesCompleted:  2,
		BatchesUnloaded:  2,
		TotalAcquired:    40,
		TotalSupplied:    4,
		PeakStorage:      20,
		Counterparties:   map[string]float64{"mine": 40, "repo": 4},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}
