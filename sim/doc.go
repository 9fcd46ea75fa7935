// Package sim implements a batch-refueled facility for a discrete-time fuel-cycle
// simulation.
//
// # Reading Guide
//
// Start with these files to understand the facility:
//   - phase.go: the INITIAL → PROCESSING ⇄ WAITING transition function
//   - reactor.go: BatchReactor, its buffers and the Tick/Tock hooks
//   - participant.go: request and bid sizing, trade acceptance and fulfillment
//
// # Architecture
//
// The sim package holds the facility and the exchange data types it trades with;
// the host lives in sub-packages:
//   - sim/resource/: materials and recipes
//   - sim/market/: the time-stepped exchange that schedules traders and clears trades
//   - sim/trace/: phase, trade and inventory recording
//   - sim/store/: SQLite persistence of traces
//
// A facility never reaches for global state: the host passes a Context carrying the
// clock and recipe book to NewBatchReactor.
package sim
