package plugin

import (
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Registry holds the navigation registrations written through the DSL,
// keyed by product namespace. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]*typeMap
}

type typeMap struct {
	products     []ProductConfig
	virtualTypes []VirtualTypeConfig
	basicTypes   sets.Set[string]
}

func NewRegistry() *Registry {
	return &Registry{namespaces: make(map[string]*typeMap)}
}

// DSL returns the capability set writing into namespace. A product that
// does not name a store inherits the one passed here.
func (r *Registry) DSL(store Store, namespace string) DSL {
	return &typeDSL{registry: r, store: store, namespace: namespace}
}

// Navigation returns a copy of what has been registered for namespace.
// Basic types are sorted.
func (r *Registry) Navigation(namespace string) (Navigation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tm, ok := r.namespaces[namespace]
	if !ok {
		return Navigation{}, false
	}
	return Navigation{
		Products:     append([]ProductConfig(nil), tm.products...),
		VirtualTypes: append([]VirtualTypeConfig(nil), tm.virtualTypes...),
		BasicTypes:   sets.List(tm.basicTypes),
	}, true
}

func (r *Registry) update(namespace string, fn func(tm *typeMap)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tm, ok := r.namespaces[namespace]
	if !ok {
		tm = &typeMap{basicTypes: sets.New[string]()}
		r.namespaces[namespace] = tm
	}
	fn(tm)
}

type typeDSL struct {
	registry  *Registry
	store     Store
	namespace string
}

func (d *typeDSL) Product(cfg ProductConfig) {
	if cfg.InStore == "" {
		cfg.InStore = d.store
	}
	d.registry.update(d.namespace, func(tm *typeMap) {
		tm.products = append(tm.products, cfg)
	})
}

func (d *typeDSL) VirtualType(cfg VirtualTypeConfig) {
	d.registry.update(d.namespace, func(tm *typeMap) {
		tm.virtualTypes = append(tm.virtualTypes, cfg)
	})
}

func (d *typeDSL) BasicType(names []string) {
	d.registry.update(d.namespace, func(tm *typeMap) {
		tm.basicTypes.Insert(names...)
	})
}
