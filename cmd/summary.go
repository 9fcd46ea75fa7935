package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// quantity formats a material quantity with thousands separators and two decimals.
func quantity(q float64) string {
	return humanize.CommafWithDigits(q, 2)
}

// writeSummary prints exchange totals, then per-trader and per-reactor details.
func writeSummary(w io.Writer, res *RunResult) {
	m := res.Metrics
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", res.RunID)
	fmt.Fprintf(w, "Steps                : %s\n", humanize.Comma(m.Steps))
	fmt.Fprintf(w, "Trades               : %s\n", humanize.Comma(int64(m.Trades)))
	fmt.Fprintf(w, "Total Traded         : %s\n", quantity(m.TotalTraded))

	fmt.Fprintln(w, "=== Traders ===")
	for _, id := range m.TraderIDs() {
		tm := m.PerTrader[id]
		fmt.Fprintf(w, "%-20s : acquired %s, supplied %s, %s trades\n",
			id, quantity(tm.Acquired), quantity(tm.Supplied), humanize.Comma(int64(tm.Trades)))
	}

	reactors := res.Exchange.Reactors()
	if len(reactors) == 0 {
		return
	}
	fmt.Fprintln(w, "=== Reactors ===")
	for _, r := range reactors {
		inv := r.Inventory()
		fmt.Fprintf(w, "%-20s : %s, %s cycles completed\n",
			r.ID(), inv.Phase, humanize.Comma(int64(m.PerTrader[r.ID()].CyclesCompleted)))
		fmt.Fprintf(w, "%-20s   reserves %s (%d), core %s (%d), storage %s (%d), spillover %s\n", "",
			quantity(inv.Reserves), inv.ReservesCount, quantity(inv.Core), inv.CoreCount,
			quantity(inv.Storage), inv.StorageCount, quantity(inv.Spillover))
		if ft := r.Trace(); ft != nil {
			summary := trace.Summarize(ft)
			fmt.Fprintf(w, "%-20s   %d phase transitions, %d batches unloaded, peak storage %s\n", "",
				summary.PhaseTransitions, summary.BatchesUnloaded, quantity(summary.PeakStorage))
		}
	}
}
