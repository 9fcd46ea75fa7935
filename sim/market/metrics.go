package market

import "sort"

// TraderMetrics holds per-trader totals accumulated over a run.
type TraderMetrics struct {
	Acquired        float64
	Supplied        float64
	Trades          int
	CyclesCompleted int
}

// Metrics holds exchange-level totals aggregated after simulation.
type Metrics struct {
	Steps        int64
	Trades       int
	TotalTraded  float64
	PerTrader    map[string]*TraderMetrics
	SimEndedTime int64
}

func newMetrics() *Metrics {
	return &Metrics{PerTrader: make(map[string]*TraderMetrics)}
}

func (m *Metrics) trader(id string) *TraderMetrics {
	tm, ok := m.PerTrader[id]
	if !ok {
		tm = &TraderMetrics{}
		m.PerTrader[id] = tm
	}
	return tm
}

// TraderIDs returns the traders with metrics in sorted order.
func (m *Metrics) TraderIDs() []string {
	ids := make([]string, 0, len(m.PerTrader))
	for id := range m.PerTrader {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
