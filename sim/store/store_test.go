package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTrace() *trace.FacilityTrace {
	ft := trace.NewFacilityTrace("lwr", trace.TraceConfig{Level: trace.TraceLevelFull})
	ft.RecordPhase(trace.PhaseRecord{Facility: "lwr", Clock: 1, From: "initialization", To: "processing batch(es)"})
	ft.RecordPhase(trace.PhaseRecord{Facility: "lwr", Clock: 4, From: "processing batch(es)", To: "waiting for fuel", CycleEnd: true, Unloaded: 1})
	ft.RecordTrade(trace.TradeRecord{Facility: "lwr", Clock: 0, Direction: trace.DirectionAcquired, Commodity: "uox", Recipe: "fresh", Quantity: 40, Counterparty: "fab"})
	ft.RecordTrade(trace.TradeRecord{Facility: "lwr", Clock: 4, Direction: trace.DirectionSupplied, Commodity: "spent_uox", Recipe: "spent", Quantity: 10, Counterparty: "repo"})
	ft.RecordInventory(trace.InventoryRecord{Facility: "lwr", Clock: 0, Phase: "initialization", Reserves: 10, Core: 30, CoreCount: 3})
	return ft
}

func TestSaveTrace_RoundTrip(t *testing.T) {
	// GIVEN a facility trace saved under a fresh run ID
	db := openTestDB(t)
	ft := sampleTrace()
	runID := NewRunID()
	require.NoError(t, db.SaveTrace(runID, ft))

	// WHEN loaded back
	phases, err := db.LoadPhases(runID)
	require.NoError(t, err)
	trades, err := db.LoadTrades(runID)
	require.NoError(t, err)
	inventories, err := db.LoadInventories(runID)
	require.NoError(t, err)

	// THEN every record matches what was recorded
	if diff := cmp.Diff(ft.Phases, phases); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ft.Trades, trades); diff != "" {
		t.Errorf("trades mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ft.Inventories, inventories); diff != "" {
		t.Errorf("inventories mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveTrace_RunsAreIsolated(t *testing.T) {
	db := openTestDB(t)
	first, second := NewRunID(), NewRunID()
	require.NotEqual(t, first, second)
	require.NoError(t, db.SaveTrace(first, sampleTrace()))

	trades, err := db.LoadTrades(second)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSaveTrace_NilTrace_NoOp(t *testing.T) {
	db := openTestDB(t)
	runID := NewRunID()
	require.NoError(t, db.SaveTrace(runID, nil))

	phases, err := db.LoadPhases(runID)
	require.NoError(t, err)
	assert.Empty(t, phases)
}

func TestSaveRun_GetRun(t *testing.T) {
	db := openTestDB(t)
	run := Run{ID: NewRunID(), Scenario: "scenario.yaml", Horizon: 10, Steps: 10, Trades: 4, TotalTraded: 70}
	require.NoError(t, db.SaveRun(run))

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Scenario, got.Scenario)
	assert.Equal(t, run.Horizon, got.Horizon)
	assert.Equal(t, run.Trades, got.Trades)
	assert.InDelta(t, run.TotalTraded, got.TotalTraded, 1e-9)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = db.GetRun("missing")
	assert.Error(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	db, err := Open(path)
	require.NoError(t, err)
	runID := NewRunID()
	require.NoError(t, db.SaveTrace(runID, sampleTrace()))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	trades, err := db.LoadTrades(runID)
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}
