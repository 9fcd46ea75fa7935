package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fuelcycle-sim/batch-reactor/sim/trace"
)

// EnvPrefix prefixes every environment variable read by the CLI (BRSIM_HORIZON, ...).
const EnvPrefix = "BRSIM"

// Settings are the run options after layering flags, environment, .env and defaults.
type Settings struct {
	Scenario string `mapstructure:"scenario" validate:"required"`
	Horizon  int64  `mapstructure:"horizon" validate:"min=0"` // 0 keeps the scenario's horizon
	LogLevel string `mapstructure:"log" validate:"oneof=trace debug info warn warning error fatal panic"`
	DB       string `mapstructure:"db"`
	Trace    string `mapstructure:"trace"` // checked with trace.IsValidTraceLevel
}

var settingsValidator = validator.New()

// LoadSettings resolves run settings with priority:
// 1. Flags explicitly set on cmd (highest priority)
// 2. BRSIM_* environment variables
// 3. A .env file in the working directory
// 4. Flag defaults (lowest priority)
func LoadSettings(cmd *cobra.Command) (*Settings, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)

	if err := settingsValidator.Struct(&s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return nil, fmt.Errorf("invalid settings: %s failed %s (value: '%v')", strings.ToLower(e.Field()), e.Tag(), e.Value())
		}
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return nil, fmt.Errorf("invalid settings: trace level %q is not one of none, events, full", s.Trace)
	}
	return &s, nil
}
