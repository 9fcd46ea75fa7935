package trace

import (
	"testing"
)

func TestNewFacilityTrace_NoneLevel_ReturnsNil(t *testing.T) {
	if ft := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelNone}); ft != nil {
		t.Errorf("expected nil trace for level none, got %+v", ft)
	}
	if ft := NewFacilityTrace("r1", TraceConfig{}); ft != nil {
		t.Errorf("expected nil trace for empty level, got %+v", ft)
	}
}

func TestFacilityTrace_NilTrace_IgnoresRecords(t *testing.T) {
	// GIVEN a disabled (nil) trace
	var ft *FacilityTrace

	// WHEN records are added THEN nothing panics
	ft.RecordPhase(PhaseRecord{Clock: 1})
	ft.RecordTrade(TradeRecord{Clock: 1})
	ft.RecordInventory(InventoryRecord{Clock: 1})
}

func TestFacilityTrace_RecordPhase_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	ft := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelEvents})

	// WHEN a phase record is recorded
	ft.RecordPhase(PhaseRecord{Facility: "r1", Clock: 8, From: "processing batch(es)", To: "waiting for fuel", CycleEnd: true, Unloaded: 1})

	// THEN the trace contains one phase record with correct data
	if len(ft.Phases) != 1 {
		t.Fatalf("expected 1 phase record, got %d", len(ft.Phases))
	}
	if ft.Phases[0].Clock != 8 || !ft.Phases[0].CycleEnd {
		t.Errorf("unexpected record %+v", ft.Phases[0])
	}
}

func TestFacilityTrace_RecordInventory_OnlyAtFullLevel(t *testing.T) {
	// GIVEN an events-level trace and a full-level trace
	events := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelEvents})
	full := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelFull})

	// WHEN the same inventory snapshot is recorded on both
	rec := InventoryRecord{Facility: "r1", Clock: 3, Core: 30}
	events.RecordInventory(rec)
	full.RecordInventory(rec)

	// THEN only the full trace keeps it
	if len(events.Inventories) != 0 {
		t.Errorf("events level kept %d inventory records, want 0", len(events.Inventories))
	}
	if len(full.Inventories) != 1 {
		t.Errorf("full level kept %d inventory records, want 1", len(full.Inventories))
	}
}

func TestFacilityTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	ft := NewFacilityTrace("r1", TraceConfig{Level: TraceLevelEvents})
	ft.RecordTrade(TradeRecord{Clock: 1, Direction: DirectionAcquired, Quantity: 10})
	ft.RecordTrade(TradeRecord{Clock: 2, Direction: DirectionSupplied, Quantity: 5})
	ft.RecordTrade(TradeRecord{Clock: 3, Direction: DirectionAcquired, Quantity: 7})

	for i, want := range []int64{1, 2, 3} {
		if ft.Trades[i].Clock != want {
			t.Errorf("trade[%d].Clock = %d, want %d", i, ft.Trades[i].Clock, want)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"", "none", "events", "full"} {
		if !IsValidTraceLevel(level) {
			t.Errorf("IsValidTraceLevel(%q) = false, want true", level)
		}
	}
	if IsValidTraceLevel("verbose") {
		t.Error("IsValidTraceLevel(verbose) = true, want false")
	}
}
