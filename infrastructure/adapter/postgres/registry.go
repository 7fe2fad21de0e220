package postgres

import (
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// Registry maps every managed module to its JSONB store. Built once per
// Querier; the unit of work builds a second registry bound to the
// transaction.
type Registry struct {
	stores map[domain.Module]*EntityStore
}

func NewRegistry(db Querier) *Registry {
	stores := make(map[domain.Module]*EntityStore, len(domain.Modules()))
	for _, m := range domain.Modules() {
		store, err := NewEntityStore(db, m)
		if err != nil {
			// Modules() and moduleSpecs are the same closed set.
			panic(err)
		}
		stores[m] = store
	}
	return &Registry{stores: stores}
}

func (r *Registry) Store(m domain.Module) (outbound.ModuleStore, bool) {
	store, ok := r.stores[m]
	return store, ok
}

var _ outbound.ModuleRegistry = (*Registry)(nil)
