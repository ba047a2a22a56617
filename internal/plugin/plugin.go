package plugin

import (
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

// Store is the host store handle a product is registered in.
type Store string

// StoreManagement is the store the host initialises product modules in.
const StoreManagement Store = "management"

// Plugin is an extension package. Init is its entry point; the host calls it
// exactly once per load.
type Plugin interface {
	ID() string
	Init(host Host) error
}

// Host is the host plugin object handed to Plugin.Init.
type Host interface {
	ImportTypes()
	SetMetadata(m Metadata)
	AddProduct(p ProductModule)
	AddRoutes(entries []routing.Entry)
}

// ProductModule declares a product once the host has a store to put it in.
type ProductModule interface {
	Init(host DSLProvider, store Store)
}

// DSLProvider hands out the registration capability set for a store and
// namespace.
type DSLProvider interface {
	Name() string
	DSL(store Store, namespace string) DSL
}

// DSL is the registration capability set a product module writes through.
type DSL interface {
	Product(cfg ProductConfig)
	VirtualType(cfg VirtualTypeConfig)
	BasicType(names []string)
}

// ProductConfig describes a top-level navigation product.
type ProductConfig struct {
	InStore             Store         `json:"inStore"`
	InExplorer          bool          `json:"inExplorer"`
	Icon                string        `json:"icon"`
	Removable           bool          `json:"removable"`
	ShowClusterSwitcher bool          `json:"showClusterSwitcher"`
	To                  routing.Route `json:"to"`
}

// VirtualTypeConfig describes how a product is labelled and grouped in the
// navigation tree. Higher weights sort first within a group.
type VirtualTypeConfig struct {
	Label      string        `json:"label"`
	Icon       string        `json:"icon"`
	Group      string        `json:"group"`
	Name       string        `json:"name"`
	Namespaced bool          `json:"namespaced"`
	Weight     int           `json:"weight"`
	Route      routing.Route `json:"route"`
	Overview   bool          `json:"overview"`
}

// TypeImporter is the host's auto-import collaborator. It returns the type
// names (models, detail and edit views) it discovered for an extension.
type TypeImporter interface {
	ImportTypes(extensionID string) ([]string, error)
}
