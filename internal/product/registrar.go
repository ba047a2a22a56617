// Package product declares an extension's navigation product through the
// host DSL.
package product

import (
	"github.com/darkden-lab/argus/extensions/internal/plugin"
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

const (
	DefaultIcon   = "gear"
	RootGroup     = "Root"
	DefaultWeight = 99
)

// Registrar registers one product, its root virtual type and its basic type.
// It implements plugin.ProductModule.
type Registrar struct {
	routes *routing.Factory
	icon   string
}

// NewRegistrar returns a registrar for the factory's product using DefaultIcon.
func NewRegistrar(routes *routing.Factory) *Registrar {
	return &Registrar{routes: routes, icon: DefaultIcon}
}

// WithIcon returns a copy of the registrar using icon for the product and
// its virtual type.
func (r *Registrar) WithIcon(icon string) *Registrar {
	c := *r
	c.icon = icon
	return &c
}

// Init obtains the DSL for the host's namespace and registers the product.
func (r *Registrar) Init(host plugin.DSLProvider, store plugin.Store) {
	r.Register(host.DSL(store, host.Name()))
}

// Register makes exactly three calls, in order: Product, VirtualType,
// BasicType. A nil dsl panics.
func (r *Registrar) Register(dsl plugin.DSL) {
	name := r.routes.Product()

	dsl.Product(plugin.ProductConfig{
		InStore:             plugin.StoreManagement,
		InExplorer:          true,
		Icon:                r.icon,
		Removable:           false,
		ShowClusterSwitcher: false,
		To:                  r.routes.RootProductRoute(),
	})

	dsl.VirtualType(plugin.VirtualTypeConfig{
		Label:      name,
		Icon:       r.icon,
		Group:      RootGroup,
		Name:       name,
		Namespaced: false,
		Weight:     DefaultWeight,
		Route:      r.routes.RootProductRoute(),
		Overview:   true,
	})

	dsl.BasicType([]string{name})
}
