// Package mappings is the registry of known upstream layouts. Each entity
// has an ordered set of MappingSpecs built once and never mutated.
package mappings

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agentic-research/playmap/api"
)

// Entity names.
const (
	EntityApp         = "app"
	EntityListItem    = "list_item"
	EntityClusterItem = "cluster_item"
)

// Registry maps entity names to their version sets.
type Registry struct {
	sets map[string]api.Versions
}

// NewRegistry builds a registry from version sets. Entity names must be
// unique and every set must declare at least one version.
func NewRegistry(sets ...api.Versions) (*Registry, error) {
	r := &Registry{sets: make(map[string]api.Versions, len(sets))}
	for _, s := range sets {
		if s.Entity == "" {
			return nil, fmt.Errorf("version set without entity name")
		}
		if _, dup := r.sets[s.Entity]; dup {
			return nil, fmt.Errorf("entity %s registered twice", s.Entity)
		}
		if len(s.Specs) == 0 {
			return nil, fmt.Errorf("entity %s has no versions", s.Entity)
		}
		r.sets[s.Entity] = s
	}
	return r, nil
}

// Versions returns the version set for entity.
func (r *Registry) Versions(entity string) (api.Versions, error) {
	s, ok := r.sets[entity]
	if !ok {
		return api.Versions{}, fmt.Errorf("unknown entity %q (known: %v)", entity, r.Entities())
	}
	return s, nil
}

// Entities lists registered entity names in sorted order.
func (r *Registry) Entities() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Default returns the built-in registry.
var Default = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(App(), ListItem(), ClusterItem())
	if err != nil {
		panic(err)
	}
	return r
})
