// Package testutil provides shared test infrastructure for the batch reactor simulator.
// It consolidates golden dataset types and assertion helpers used across
// the sim/market/ test package.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one scenario file and the metrics a run of it must produce.
type GoldenTestCase struct {
	Name     string        `json:"name"`
	Scenario string        `json:"scenario"` // file name under testdata/
	Metrics  GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected exchange totals of a golden test case.
type GoldenMetrics struct {
	Steps       int64                         `json:"steps"`
	Trades      int                           `json:"trades"`
	TotalTraded float64                       `json:"total_traded"`
	Traders     map[string]GoldenTraderMetric `json:"traders"`
}

// GoldenTraderMetric holds the expected per-trader totals.
type GoldenTraderMetric struct {
	Acquired        float64 `json:"acquired"`
	Supplied        float64 `json:"supplied"`
	Trades          int     `json:"trades"`
	CyclesCompleted int     `json:"cycles_completed"`
}

// TestdataPath resolves name inside the repo root testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// WriteTempYAML writes content to a fresh file in t.TempDir and returns its path.
func WriteTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
