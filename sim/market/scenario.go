package market

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fuelcycle-sim/batch-reactor/sim"
	"github.com/fuelcycle-sim/batch-reactor/sim/resource"
	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// SourceConfig declares a Source.
type SourceConfig struct {
	Name      string  `yaml:"name" validate:"required"`
	Commodity string  `yaml:"commodity" validate:"required"`
	Recipe    string  `yaml:"recipe" validate:"required"`
	Capacity  float64 `yaml:"capacity" validate:"min=0"` // per step; 0 means unlimited
}

// SinkConfig declares a Sink.
type SinkConfig struct {
	Name      string  `yaml:"name" validate:"required"`
	Commodity string  `yaml:"commodity" validate:"required"`
	Capacity  float64 `yaml:"capacity" validate:"gt=0"` // per step
}

// Scenario is a complete simulation: recipes, traders and the number of steps.
type Scenario struct {
	Horizon  int64                `yaml:"horizon" validate:"gt=0"`
	Trace    string               `yaml:"trace"` // none, events or full
	Recipes  []resource.Recipe    `yaml:"recipes" validate:"required,min=1"`
	Reactors []sim.FacilityConfig `yaml:"reactors" validate:"-"` // validated by FacilityConfig.Validate
	Sources  []SourceConfig       `yaml:"sources" validate:"dive"`
	Sinks    []SinkConfig         `yaml:"sinks" validate:"dive"`
}

// ParseScenario decodes a scenario from YAML.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: parsing scenario: %v", sim.ErrConfiguration, err)
	}
	return &s, nil
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// Validate checks the scenario and every reactor in it: field ranges, unique trader
// names, and that every referenced recipe is defined.
func (s *Scenario) Validate() error {
	if err := sim.ValidateStruct("scenario", s); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("%w: scenario: unknown trace level %q", sim.ErrConfiguration, s.Trace)
	}

	if _, err := s.recipeBook(); err != nil {
		return fmt.Errorf("%w: scenario: %v", sim.ErrConfiguration, err)
	}
	recipes := make(map[string]bool, len(s.Recipes))
	for _, r := range s.Recipes {
		recipes[r.Name] = true
	}

	names := make(map[string]bool)
	unique := func(name string) error {
		if names[name] {
			return fmt.Errorf("%w: scenario: duplicate trader name %q", sim.ErrConfiguration, name)
		}
		names[name] = true
		return nil
	}
	known := func(owner, recipe string) error {
		if !recipes[recipe] {
			return fmt.Errorf("%w: scenario: %s references unknown recipe %q", sim.ErrConfiguration, owner, recipe)
		}
		return nil
	}

	for i := range s.Reactors {
		cfg := &s.Reactors[i]
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := unique(cfg.Name); err != nil {
			return err
		}
		if err := known(cfg.Name, cfg.FuelInput.Recipe); err != nil {
			return err
		}
		if err := known(cfg.Name, cfg.FuelOutput.Recipe); err != nil {
			return err
		}
	}
	for _, src := range s.Sources {
		if err := unique(src.Name); err != nil {
			return err
		}
		if err := known(src.Name, src.Recipe); err != nil {
			return err
		}
	}
	for _, snk := range s.Sinks {
		if err := unique(snk.Name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scenario) recipeBook() (*resource.RecipeBook, error) {
	book := resource.NewRecipeBook()
	for i := range s.Recipes {
		if err := book.Add(&s.Recipes[i]); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// Build validates the scenario and assembles an Exchange with reactors first,
// then sources, then sinks.
func (s *Scenario) Build() (*Exchange, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	book, err := s.recipeBook()
	if err != nil {
		return nil, err
	}
	x := NewExchange(s.Horizon, book)
	traceCfg := trace.TraceConfig{Level: trace.TraceLevel(s.Trace)}

	for i := range s.Reactors {
		r, err := sim.NewBatchReactor(&s.Reactors[i], x,
			sim.WithTrace(traceCfg), sim.WithProducerRegistry(x.Registry()))
		if err != nil {
			return nil, err
		}
		if err := x.AddTrader(r); err != nil {
			return nil, err
		}
	}
	for _, src := range s.Sources {
		recipe, err := book.Get(src.Recipe)
		if err != nil {
			return nil, err
		}
		if err := x.AddTrader(NewSource(src.Name, src.Commodity, recipe, src.Capacity)); err != nil {
			return nil, err
		}
	}
	for _, snk := range s.Sinks {
		if err := x.AddTrader(NewSink(snk.Name, snk.Commodity, snk.Capacity)); err != nil {
			return nil, err
		}
	}
	return x, nil
}
