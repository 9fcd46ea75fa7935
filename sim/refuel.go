package sim

import "fmt"

// refuel moves whole batches from reserves into the core until the core is full
// or reserves run out. It returns the number of batches moved.
func (r *BatchReactor) refuel() (int, error) {
	moved := 0
	for r.core.Count() < r.params.BatchCount && r.reserves.Count() > 0 {
		batch, err := r.reserves.Pop()
		if err != nil {
			return moved, fmt.Errorf("refuel: %w", err)
		}
		r.core.Push(batch)
		moved++
		r.log.Debug("added a batch to its core")
	}
	return moved, nil
}

// unload pops n batches from the core, transmutes each to the output recipe and
// stores them. A core holding fewer than n batches is an error and nothing moves.
func (r *BatchReactor) unload(n int) error {
	batches, err := r.core.PopN(n)
	if err != nil {
		return fmt.Errorf("unload: %w", err)
	}
	for _, batch := range batches {
		batch.Transmute(r.outRecipe)
	}
	r.storage.PushAll(batches)
	r.log.Debugf("removed %d batch(es) from its core", len(batches))
	return nil
}
