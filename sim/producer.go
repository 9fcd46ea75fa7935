package sim

import "sort"

// ProducerRegistry receives the informational capacity and cost a facility declares
// for the commodity it produces.
type ProducerRegistry interface {
	Register(facility string, production CommodityProduction)
}

// CommodityRegistry is an in-memory ProducerRegistry keyed by commodity.
type CommodityRegistry struct {
	producers map[string]map[string]CommodityProduction // commodity → facility → production
}

// NewCommodityRegistry creates an empty CommodityRegistry.
func NewCommodityRegistry() *CommodityRegistry {
	return &CommodityRegistry{producers: make(map[string]map[string]CommodityProduction)}
}

// Register records (or replaces) a facility's production entry.
func (r *CommodityRegistry) Register(facility string, production CommodityProduction) {
	byFacility, ok := r.producers[production.Commodity]
	if !ok {
		byFacility = make(map[string]CommodityProduction)
		r.producers[production.Commodity] = byFacility
	}
	byFacility[facility] = production
}

// Capacity returns the summed capacity registered for commodity.
func (r *CommodityRegistry) Capacity(commodity string) float64 {
	total := 0.0
	for _, p := range r.producers[commodity] {
		total += p.Capacity
	}
	return total
}

// Producers returns the facilities registered for commodity, sorted by name.
func (r *CommodityRegistry) Producers(commodity string) []string {
	names := make([]string, 0, len(r.producers[commodity]))
	for name := range r.producers[commodity] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cost returns the cost facility registered for commodity.
func (r *CommodityRegistry) Cost(commodity, facility string) (float64, bool) {
	p, ok := r.producers[commodity][facility]
	return p.Cost, ok
}
