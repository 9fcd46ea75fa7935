package resource

import (
	"fmt"
	"sort"
)

// Recipe is a named composition tag. Composition maps a constituent name to its
// relative mass; the values need not sum to one.
type Recipe struct {
	Name        string             `yaml:"name"`
	Composition map[string]float64 `yaml:"composition"`
}

func (r *Recipe) normalized() map[string]float64 {
	total := 0.0
	for _, v := range r.Composition {
		total += v
	}
	out := make(map[string]float64, len(r.Composition))
	if total <= 0 {
		return out
	}
	for k, v := range r.Composition {
		out[k] = v / total
	}
	return out
}

// RecipeBook holds the recipes known to a simulation.
type RecipeBook struct {
	recipes map[string]*Recipe
}

// NewRecipeBook creates an empty RecipeBook.
func NewRecipeBook() *RecipeBook {
	return &RecipeBook{recipes: make(map[string]*Recipe)}
}

// Add registers a recipe. Names must be non-empty and unique.
func (b *RecipeBook) Add(r *Recipe) error {
	if r == nil || r.Name == "" {
		return fmt.Errorf("recipe name must not be empty")
	}
	if _, exists := b.recipes[r.Name]; exists {
		return fmt.Errorf("recipe %q already exists", r.Name)
	}
	for k, v := range r.Composition {
		if v < 0 {
			return fmt.Errorf("recipe %q: constituent %q has negative mass %f", r.Name, k, v)
		}
	}
	b.recipes[r.Name] = r
	return nil
}

// Get returns the recipe registered under name.
func (b *RecipeBook) Get(name string) (*Recipe, error) {
	r, ok := b.recipes[name]
	if !ok {
		return nil, fmt.Errorf("unknown recipe %q", name)
	}
	return r, nil
}

// Names returns the registered recipe names in sorted order.
func (b *RecipeBook) Names() []string {
	names := make([]string, 0, len(b.recipes))
	for name := range b.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
