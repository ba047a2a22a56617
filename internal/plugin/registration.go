package plugin

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/darkden-lab/argus/extensions/internal/routing"
)

// Load steps, in the order an extension's entry point is expected to run
// them.
const (
	StepImportTypes = "importTypes"
	StepMetadata    = "metadata"
	StepAddProduct  = "addProduct"
	StepAddRoutes   = "addRoutes"
)

// Registration is the host plugin object for one extension load. It
// implements Host for the extension's entry point and DSLProvider for its
// product modules.
type Registration struct {
	LoadID   uuid.UUID
	LoadedAt time.Time

	id        string
	metadata  Metadata
	types     []string
	products  []ProductModule
	routes    []routing.Entry
	steps     []string
	registry  *Registry
	importer  TypeImporter
	importErr error
}

func newRegistration(id string, registry *Registry, importer TypeImporter) *Registration {
	return &Registration{
		LoadID:   uuid.New(),
		LoadedAt: time.Now(),
		id:       id,
		registry: registry,
		importer: importer,
	}
}

func (r *Registration) ImportTypes() {
	r.steps = append(r.steps, StepImportTypes)
	if r.importer == nil {
		return
	}
	types, err := r.importer.ImportTypes(r.id)
	if err != nil {
		r.importErr = fmt.Errorf("failed to import types for %q: %w", r.id, err)
		return
	}
	r.types = append(r.types, types...)
}

func (r *Registration) SetMetadata(m Metadata) {
	r.steps = append(r.steps, StepMetadata)
	r.metadata = m
}

func (r *Registration) AddProduct(p ProductModule) {
	r.steps = append(r.steps, StepAddProduct)
	r.products = append(r.products, p)
}

func (r *Registration) AddRoutes(entries []routing.Entry) {
	r.steps = append(r.steps, StepAddRoutes)
	r.routes = append(r.routes, entries...)
}

// Name is the namespace product modules register under.
func (r *Registration) Name() string { return r.id }

func (r *Registration) DSL(store Store, namespace string) DSL {
	return r.registry.DSL(store, namespace)
}

func (r *Registration) ID() string         { return r.id }
func (r *Registration) Metadata() Metadata { return r.metadata }
func (r *Registration) Types() []string    { return append([]string(nil), r.types...) }
func (r *Registration) Steps() []string    { return append([]string(nil), r.steps...) }

func (r *Registration) Routes() []routing.Entry {
	return append([]routing.Entry(nil), r.routes...)
}

// Navigation returns what the extension's product modules registered.
func (r *Registration) Navigation() Navigation {
	nav, ok := r.registry.Navigation(r.id)
	if !ok {
		return Navigation{BasicTypes: []string{}}
	}
	return nav
}
