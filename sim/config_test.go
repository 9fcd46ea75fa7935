package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reactorYAML = `
name: lwr
fuel_input:
  incommodity: uox
  inrecipe: fresh
fuel_output:
  outcommodity: spent_uox
  outrecipe: spent
processtime: 18
nbatches: 3
batchsize: 29.5
commodity_production:
  commodity: power
  capacity: 900
  cost: 1.5
`

func TestResolve_AppliesDefaults(t *testing.T) {
	cfg, err := ParseFacilityConfig([]byte(reactorYAML))
	require.NoError(t, err)

	p, err := cfg.Resolve()
	require.NoError(t, err)

	want := FacilityParams{
		Name:               "lwr",
		InCommodity:        "uox",
		InRecipe:           "fresh",
		OutCommodity:       "spent_uox",
		OutRecipe:          "spent",
		ProcessTime:        18,
		RefuelTime:         DefaultRefuelTime,
		PreorderTime:       DefaultOrderLookahead,
		BatchCount:         3,
		LoadCount:          DefaultNReload,
		ReserveTargetCount: DefaultNOrder,
		BatchSize:          29.5,
		Production:         CommodityProduction{Commodity: "power", Capacity: 900, Cost: 1.5},
	}
	assert.Equal(t, want, p)
	assert.InDelta(t, 88.5, p.CoreLoading(), 1e-9)
}

func TestResolve_NOrderAndNReloadAreIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.NOrder = ptr(4)
	cfg.NReload = ptr(2)

	p, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 4, p.ReserveTargetCount)
	assert.Equal(t, 2, p.LoadCount)
}

func TestResolve_OptionalFields(t *testing.T) {
	data := reactorYAML + `
refueltime: 2
orderlookahead: 5
initial_condition:
  nreserves: 1
  ncore: 3
  nstorage: 2
`
	cfg, err := ParseFacilityConfig([]byte(data))
	require.NoError(t, err)
	p, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.RefuelTime)
	assert.Equal(t, int64(5), p.PreorderTime)
	assert.Equal(t, InitialCondition{NReserves: 1, NCore: 3, NStorage: 2}, p.Initial)
}

func TestParseFacilityConfig_UnknownKey_Rejected(t *testing.T) {
	_, err := ParseFacilityConfig([]byte(reactorYAML + "batchsise: 3\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "batchsise")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *FacilityConfig)
		wantMsg string
	}{
		{"missing name", func(c *FacilityConfig) { c.Name = "" }, "name"},
		{"missing inrecipe", func(c *FacilityConfig) { c.FuelInput.Recipe = "" }, "inrecipe"},
		{"missing outcommodity", func(c *FacilityConfig) { c.FuelOutput.Commodity = "" }, "outcommodity"},
		{"missing processtime", func(c *FacilityConfig) { c.ProcessTime = nil }, "processtime"},
		{"missing batchsize", func(c *FacilityConfig) { c.BatchSize = nil }, "batchsize"},
		{"zero batchsize", func(c *FacilityConfig) { c.BatchSize = ptr(0.0) }, "batchsize"},
		{"negative nbatches", func(c *FacilityConfig) { c.NBatches = ptr(-1) }, "nbatches"},
		{"negative refueltime", func(c *FacilityConfig) { c.RefuelTime = ptr(int64(-1)) }, "refueltime"},
		{"negative norder", func(c *FacilityConfig) { c.NOrder = ptr(-2) }, "norder"},
		{"nreload exceeds nbatches", func(c *FacilityConfig) { c.NReload = ptr(4) }, "nreload (4) exceeds nbatches (3)"},
		{"default nreload exceeds nbatches", func(c *FacilityConfig) { c.NBatches = ptr(0) }, "default nreload"},
		{"ncore exceeds nbatches", func(c *FacilityConfig) {
			c.InitialCondition = &InitialCondition{NCore: 5}
		}, "ncore (5) exceeds nbatches (3)"},
		{"negative nstorage", func(c *FacilityConfig) {
			c.InitialCondition = &InitialCondition{NStorage: -1}
		}, "nstorage"},
		{"missing commodity_production", func(c *FacilityConfig) { c.CommodityProduction = nil }, "commodity_production"},
		{"negative production capacity", func(c *FacilityConfig) {
			c.CommodityProduction.Capacity = -1
		}, "capacity"},
		{"production without commodity", func(c *FacilityConfig) {
			c.CommodityProduction = &CommodityProduction{Capacity: 5}
		}, "commodity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidate_ZeroOptionalValuesAccepted(t *testing.T) {
	cfg := testConfig()
	cfg.RefuelTime = ptr(int64(0))
	cfg.OrderLookahead = ptr(int64(0))
	cfg.NOrder = ptr(0)
	cfg.NReload = ptr(0)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFacilityConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(reactorYAML), 0o644))

	cfg, err := LoadFacilityConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lwr", cfg.Name)

	_, err = LoadFacilityConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
