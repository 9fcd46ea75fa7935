package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FuelInput names the commodity the facility buys and the recipe it requests.
type FuelInput struct {
	Commodity string `yaml:"incommodity" validate:"required"`
	Recipe    string `yaml:"inrecipe" validate:"required"`
}

// FuelOutput names the commodity the facility sells and the recipe of processed batches.
type FuelOutput struct {
	Commodity string `yaml:"outcommodity" validate:"required"`
	Recipe    string `yaml:"outrecipe" validate:"required"`
}

// InitialCondition is the number of batches placed in each buffer on deployment.
type InitialCondition struct {
	NReserves int `yaml:"nreserves" validate:"min=0"`
	NCore     int `yaml:"ncore" validate:"min=0"`
	NStorage  int `yaml:"nstorage" validate:"min=0"`
}

// CommodityProduction is informational capacity/cost data registered with a ProducerRegistry.
type CommodityProduction struct {
	Commodity string  `yaml:"commodity" validate:"required"`
	Capacity  float64 `yaml:"capacity" validate:"min=0"`
	Cost      float64 `yaml:"cost" validate:"min=0"`
}

// FacilityConfig is the declarative batch reactor configuration, loadable from YAML.
// Nil pointer fields mean "not set in YAML" and take their defaults in Resolve.
type FacilityConfig struct {
	Name                string               `yaml:"name" validate:"required"`
	FuelInput           FuelInput            `yaml:"fuel_input"`
	FuelOutput          FuelOutput           `yaml:"fuel_output"`
	ProcessTime         *int64               `yaml:"processtime" validate:"required,min=0"`
	NBatches            *int                 `yaml:"nbatches" validate:"required,min=0"`
	BatchSize           *float64             `yaml:"batchsize" validate:"required,gt=0"`
	RefuelTime          *int64               `yaml:"refueltime" validate:"omitempty,min=0"`
	OrderLookahead      *int64               `yaml:"orderlookahead" validate:"omitempty,min=0"`
	NOrder              *int                 `yaml:"norder" validate:"omitempty,min=0"`
	NReload             *int                 `yaml:"nreload" validate:"omitempty,min=0"`
	InitialCondition    *InitialCondition    `yaml:"initial_condition"`
	CommodityProduction *CommodityProduction `yaml:"commodity_production" validate:"required"`
}

// FacilityParams is the resolved, immutable runtime configuration of a batch reactor.
type FacilityParams struct {
	Name               string
	InCommodity        string
	InRecipe           string
	OutCommodity       string
	OutRecipe          string
	ProcessTime        int64   // ticks a core stays in PROCESSING
	RefuelTime         int64   // minimum ticks between unload and restart
	PreorderTime       int64   // order lead time; 0 orders immediately
	BatchCount         int     // batches in a full core
	LoadCount          int     // batches unloaded per cycle
	ReserveTargetCount int     // batches kept in reserve
	BatchSize          float64 // quantity per batch
	Initial            InitialCondition
	Production         CommodityProduction
}

// CoreLoading is the quantity of a full core.
func (p FacilityParams) CoreLoading() float64 {
	return float64(p.BatchCount) * p.BatchSize
}

// Default values for optional fields.
const (
	DefaultRefuelTime     int64 = 0
	DefaultOrderLookahead int64 = 0
	DefaultNOrder               = 1
	DefaultNReload              = 1
)

// Validate checks required fields, ranges, and cross-field constraints.
func (c *FacilityConfig) Validate() error {
	prefix := fmt.Sprintf("facility %q", c.Name)
	if err := ValidateStruct(prefix, c); err != nil {
		return err
	}
	nbatches := *c.NBatches
	if c.InitialCondition != nil && c.InitialCondition.NCore > nbatches {
		return fmt.Errorf("%w: %s: initial_condition.ncore (%d) exceeds nbatches (%d)",
			ErrConfiguration, prefix, c.InitialCondition.NCore, nbatches)
	}
	if c.NReload != nil && *c.NReload > nbatches {
		return fmt.Errorf("%w: %s: nreload (%d) exceeds nbatches (%d)", ErrConfiguration, prefix, *c.NReload, nbatches)
	}
	if c.NReload == nil && DefaultNReload > nbatches {
		return fmt.Errorf("%w: %s: default nreload (%d) exceeds nbatches (%d); set nreload explicitly",
			ErrConfiguration, prefix, DefaultNReload, nbatches)
	}
	return nil
}

// Resolve validates the config and applies defaults for unset optional fields.
// norder and nreload are independent: norder sets the reserve target, nreload the unload count.
func (c *FacilityConfig) Resolve() (FacilityParams, error) {
	if err := c.Validate(); err != nil {
		return FacilityParams{}, err
	}
	p := FacilityParams{
		Name:               c.Name,
		InCommodity:        c.FuelInput.Commodity,
		InRecipe:           c.FuelInput.Recipe,
		OutCommodity:       c.FuelOutput.Commodity,
		OutRecipe:          c.FuelOutput.Recipe,
		ProcessTime:        *c.ProcessTime,
		RefuelTime:         DefaultRefuelTime,
		PreorderTime:       DefaultOrderLookahead,
		BatchCount:         *c.NBatches,
		LoadCount:          DefaultNReload,
		ReserveTargetCount: DefaultNOrder,
		BatchSize:          *c.BatchSize,
	}
	if c.RefuelTime != nil {
		p.RefuelTime = *c.RefuelTime
	}
	if c.OrderLookahead != nil {
		p.PreorderTime = *c.OrderLookahead
	}
	if c.NReload != nil {
		p.LoadCount = *c.NReload
	}
	if c.NOrder != nil {
		p.ReserveTargetCount = *c.NOrder
	}
	if c.InitialCondition != nil {
		p.Initial = *c.InitialCondition
	}
	p.Production = *c.CommodityProduction
	return p, nil
}

// ParseFacilityConfig decodes a facility config from YAML.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseFacilityConfig(data []byte) (*FacilityConfig, error) {
	var cfg FacilityConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing facility config: %v", ErrConfiguration, err)
	}
	return &cfg, nil
}

// LoadFacilityConfig reads and parses a YAML facility config file.
func LoadFacilityConfig(path string) (*FacilityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading facility config: %w", err)
	}
	return ParseFacilityConfig(data)
}
