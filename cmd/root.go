package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fuelcycle-sim/batch-reactor/sim/market"
	"github.com/fuelcycle-sim/batch-reactor/sim/store"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "batch-reactor",
	Short: "Time-stepped simulator for batch-refueled reactor facilities",
}

// RunResult is everything a finished run produced.
type RunResult struct {
	RunID    string
	Exchange *market.Exchange
	Metrics  *market.Metrics
}

// runScenario loads, builds and runs the scenario named in s, persisting traces when s.DB is set.
func runScenario(s *Settings) (*RunResult, error) {
	sc, err := market.LoadScenario(s.Scenario)
	if err != nil {
		return nil, err
	}
	if s.Horizon > 0 {
		sc.Horizon = s.Horizon
	}
	if s.Trace != "" {
		sc.Trace = s.Trace
	}
	// persisting without a trace level would store nothing
	if s.DB != "" && (sc.Trace == "" || sc.Trace == "none") {
		sc.Trace = "events"
	}

	x, err := sc.Build()
	if err != nil {
		return nil, err
	}
	logrus.Infof("running %s: %d traders, horizon %d", s.Scenario, len(x.Traders()), sc.Horizon)

	metrics, err := x.Run()
	if err != nil {
		return nil, err
	}

	res := &RunResult{RunID: store.NewRunID(), Exchange: x, Metrics: metrics}
	if s.DB != "" {
		if err := persist(s.DB, s.Scenario, sc.Horizon, res); err != nil {
			return res, fmt.Errorf("persist run: %w", err)
		}
	}
	return res, nil
}

func persist(path, scenario string, horizon int64, res *RunResult) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(store.Run{
		ID:          res.RunID,
		Scenario:    scenario,
		Horizon:     horizon,
		Steps:       res.Metrics.Steps,
		Trades:      res.Metrics.Trades,
		TotalTraded: res.Metrics.TotalTraded,
	}); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	for _, r := range res.Exchange.Reactors() {
		if err := db.SaveTrace(res.RunID, r.Trace()); err != nil {
			return fmt.Errorf("save trace of %s: %w", r.ID(), err)
		}
	}
	logrus.Infof("run %s saved to %s", res.RunID, path)
	return nil
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := LoadSettings(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		level, err := logrus.ParseLevel(s.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", s.LogLevel)
		}
		logrus.SetLevel(level)

		res, err := runScenario(s)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		writeSummary(os.Stdout, res)
	},
}

// validateCmd checks a scenario file without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("scenario")
		if path == "" {
			logrus.Fatalf("Scenario file not provided.")
		}
		sc, err := market.LoadScenario(path)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := sc.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d reactors, %d sources, %d sinks, horizon %d: OK\n",
			path, len(sc.Reactors), len(sc.Sources), len(sc.Sinks), sc.Horizon)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags attaches the run flags; each can also be set as BRSIM_<FLAG>.
func registerRunFlags(c *cobra.Command) {
	c.Flags().String("scenario", "", "Scenario YAML file")
	c.Flags().Int64("horizon", 0, "Number of steps to simulate (0 keeps the scenario's horizon)")
	c.Flags().String("log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().String("db", "", "SQLite file to save the run and facility traces to")
	c.Flags().String("trace", "", "Trace level override (none, events, full)")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)
	validateCmd.Flags().String("scenario", "", "Scenario YAML file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
