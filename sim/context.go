package sim

import "github.com/fuelcycle-sim/batch-reactor/sim/resource"

// Context is the facility's handle on its host simulation: the current time and the
// recipe definitions. It is passed to NewBatchReactor instead of being globally reachable.
// market.Exchange is the production implementation.
type Context interface {
	// Time returns the current simulated time (in ticks).
	Time() int64
	// Recipe looks up a recipe by name.
	Recipe(name string) (*resource.Recipe, error)
}
