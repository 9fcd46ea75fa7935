// Package trace provides event-trace recording for facility analysis.
// This package has no dependencies on sim/ or sim/market/ and stores pure data types.
package trace

// Direction tells whether a trade brought material in or sent it out.
type Direction string

const (
	DirectionAcquired Direction = "acquired"
	DirectionSupplied Direction = "supplied"
)

// PhaseRecord captures a single phase transition.
type PhaseRecord struct {
	Facility string `db:"facility"`
	Clock    int64  `db:"clock"`
	From     string `db:"from_phase"`
	To       string `db:"to_phase"`
	CycleEnd bool   `db:"cycle_end"` // the transition unloaded a processed core
	Unloaded int    `db:"unloaded"`  // batches moved from core to storage
}

// TradeRecord captures a single executed trade from the facility's point of view.
type TradeRecord struct {
	Facility     string    `db:"facility"`
	Clock        int64     `db:"clock"`
	Direction    Direction `db:"direction"`
	Commodity    string    `db:"commodity"`
	Recipe       string    `db:"recipe"`
	Quantity     float64   `db:"quantity"`
	Counterparty string    `db:"counterparty"`
}

// InventoryRecord captures buffer quantities at the end of a step.
type InventoryRecord struct {
	Facility  string  `db:"facility"`
	Clock     int64   `db:"clock"`
	Phase     string  `db:"phase"`
	Reserves  float64 `db:"reserves"`
	Core      float64 `db:"core"`
	Storage   float64 `db:"storage"`
	Spillover float64 `db:"spillover"`
	CoreCount int     `db:"core_count"`
}
