// Package store provides SQLite-based storage of simulation runs and facility traces.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Run is the metadata row of one simulation run.
type Run struct {
	ID          string    `db:"id"`
	Scenario    string    `db:"scenario"`
	Horizon     int64     `db:"horizon"`
	Steps       int64     `db:"steps"`
	Trades      int       `db:"trades"`
	TotalTraded float64   `db:"total_traded"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		horizon INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		trades INTEGER NOT NULL,
		total_traded REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS phases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		facility TEXT NOT NULL,
		clock INTEGER NOT NULL,
		from_phase TEXT NOT NULL,
		to_phase TEXT NOT NULL,
		cycle_end INTEGER NOT NULL,
		unloaded INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		facility TEXT NOT NULL,
		clock INTEGER NOT NULL,
		direction TEXT NOT NULL,
		commodity TEXT NOT NULL,
		recipe TEXT NOT NULL,
		quantity REAL NOT NULL,
		counterparty TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inventories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		facility TEXT NOT NULL,
		clock INTEGER NOT NULL,
		phase TEXT NOT NULL,
		reserves REAL NOT NULL,
		core REAL NOT NULL,
		storage REAL NOT NULL,
		spillover REAL NOT NULL,
		core_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_phases_run ON phases(run_id, facility);
	CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, facility);
	CREATE INDEX IF NOT EXISTS idx_inventories_run ON inventories(run_id, facility);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun inserts or replaces a run's metadata row.
func (db *DB) SaveRun(run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO runs
		(id, scenario, horizon, steps, trades, total_traded, created_at)
		VALUES (:id, :scenario, :horizon, :steps, :trades, :total_traded, :created_at)`, run)
	return err
}

// GetRun returns the metadata of one run.
func (db *DB) GetRun(runID string) (Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT id, scenario, horizon, steps, trades, total_traded, created_at FROM runs WHERE id = ?", runID)
	return run, err
}

type phaseRow struct {
	RunID string `db:"run_id"`
	trace.PhaseRecord
}

type tradeRow struct {
	RunID string `db:"run_id"`
	trace.TradeRecord
}

type inventoryRow struct {
	RunID string `db:"run_id"`
	trace.InventoryRecord
}

// SaveTrace appends every record of a facility trace under runID in one transaction.
// A nil trace saves nothing.
func (db *DB) SaveTrace(runID string, ft *trace.FacilityTrace) error {
	if ft == nil {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range ft.Phases {
		if _, err := tx.NamedExec(`INSERT INTO phases
			(run_id, facility, clock, from_phase, to_phase, cycle_end, unloaded)
			VALUES (:run_id, :facility, :clock, :from_phase, :to_phase, :cycle_end, :unloaded)`,
			phaseRow{RunID: runID, PhaseRecord: p}); err != nil {
			return fmt.Errorf("save phase: %w", err)
		}
	}
	for _, tr := range ft.Trades {
		if _, err := tx.NamedExec(`INSERT INTO trades
			(run_id, facility, clock, direction, commodity, recipe, quantity, counterparty)
			VALUES (:run_id, :facility, :clock, :direction, :commodity, :recipe, :quantity, :counterparty)`,
			tradeRow{RunID: runID, TradeRecord: tr}); err != nil {
			return fmt.Errorf("save trade: %w", err)
		}
	}
	for _, inv := range ft.Inventories {
		if _, err := tx.NamedExec(`INSERT INTO inventories
			(run_id, facility, clock, phase, reserves, core, storage, spillover, core_count)
			VALUES (:run_id, :facility, :clock, :phase, :reserves, :core, :storage, :spillover, :core_count)`,
			inventoryRow{RunID: runID, InventoryRecord: inv}); err != nil {
			return fmt.Errorf("save inventory: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"run":         runID,
		"facility":    ft.Facility,
		"phases":      len(ft.Phases),
		"trades":      len(ft.Trades),
		"inventories": len(ft.Inventories),
	}).Debug("saved facility trace")
	return nil
}

// LoadPhases returns the phase records of a run in insertion order.
func (db *DB) LoadPhases(runID string) ([]trace.PhaseRecord, error) {
	var records []trace.PhaseRecord
	err := db.conn.Select(&records,
		`SELECT facility, clock, from_phase, to_phase, cycle_end, unloaded
		 FROM phases WHERE run_id = ? ORDER BY id`, runID)
	return records, err
}

// LoadTrades returns the trade records of a run in insertion order.
func (db *DB) LoadTrades(runID string) ([]trace.TradeRecord, error) {
	var records []trace.TradeRecord
	err := db.conn.Select(&records,
		`SELECT facility, clock, direction, commodity, recipe, quantity, counterparty
		 FROM trades WHERE run_id = ? ORDER BY id`, runID)
	return records, err
}

// LoadInventories returns the inventory snapshots of a run in insertion order.
func (db *DB) LoadInventories(runID string) ([]trace.InventoryRecord, error) {
	var records []trace.InventoryRecord
	err := db.conn.Select(&records,
		`SELECT facility, clock, phase, reserves, core, storage, spillover, core_count
		 FROM inventories WHERE run_id = ? ORDER BY id`, runID)
	return records, err
}
