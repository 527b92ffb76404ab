package scheme

import (
	"slices"

	"sarf/internal/morph"
)

// DefaultCategory is used when a scheme is stored without a category.
const DefaultCategory = "عام"

// Scheme is a template together with its free-form category tag.
type Scheme struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Registry maps normalized scheme names to categories and remembers the
// order in which names were first added.
type Registry struct {
	order []string
	cat   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{cat: make(map[string]string)}
}

// Add registers name with category. It reports false and changes nothing
// when the normalized name is already present.
func (r *Registry) Add(name, category string) bool {
	name = morph.Normalize(name)
	if _, ok := r.cat[name]; ok {
		return false
	}
	r.cat[name] = category
	r.order = append(r.order, name)
	return true
}

// Put sets the category of name, appending it if new. An existing name keeps
// its position.
func (r *Registry) Put(name, category string) {
	name = morph.Normalize(name)
	if _, ok := r.cat[name]; !ok {
		r.order = append(r.order, name)
	}
	r.cat[name] = category
}

// Remove drops name and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	name = morph.Normalize(name)
	if _, ok := r.cat[name]; !ok {
		return false
	}
	delete(r.cat, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Has reports whether the normalized name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.cat[morph.Normalize(name)]
	return ok
}

// Category returns the category of name.
func (r *Registry) Category(name string) (string, bool) {
	c, ok := r.cat[morph.Normalize(name)]
	return c, ok
}

func (r *Registry) Len() int { return len(r.order) }

// Names returns the registered names in registry order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// List returns every scheme in registry order.
func (r *Registry) List() []Scheme {
	out := make([]Scheme, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Scheme{Name: name, Category: r.cat[name]})
	}
	return out
}
