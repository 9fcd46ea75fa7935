package trace

// TraceLevel controls the verbosity of facility tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures phase transitions and executed trades.
	TraceLevelEvents TraceLevel = "events"
	// TraceLevelFull additionally captures an inventory snapshot every tock.
	TraceLevelFull TraceLevel = "full"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	TraceLevelFull:   true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// FacilityTrace collects event records for one facility during a simulation.
type FacilityTrace struct {
	Config      TraceConfig
	Facility    string
	Phases      []PhaseRecord
	Trades      []TradeRecord
	Inventories []InventoryRecord
}

// NewFacilityTrace creates a FacilityTrace ready for recording.
// Returns nil when the level disables tracing; a nil trace ignores all records.
func NewFacilityTrace(facility string, config TraceConfig) *FacilityTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &FacilityTrace{
		Config:      config,
		Facility:    facility,
		Phases:      make([]PhaseRecord, 0),
		Trades:      make([]TradeRecord, 0),
		Inventories: make([]InventoryRecord, 0),
	}
}

// RecordPhase appends a phase transition record.
func (ft *FacilityTrace) RecordPhase(record PhaseRecord) {
	if ft == nil {
		return
	}
	ft.Phases = append(ft.Phases, record)
}

// RecordTrade appends an executed trade record.
func (ft *FacilityTrace) RecordTrade(record TradeRecord) {
	if ft == nil {
		return
	}
	ft.Trades = append(ft.Trades, record)
}

// RecordInventory appends an inventory snapshot when the level is full.
func (ft *FacilityTrace) RecordInventory(record InventoryRecord) {
	if ft == nil || ft.Config.Level != TraceLevelFull {
		return
	}
	ft.Inventories = append(ft.Inventories, record)
}
