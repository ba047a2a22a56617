package routing

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	// BlankCluster is the cluster param used when no specific cluster is selected.
	BlankCluster = "_"

	// DefaultResourceRoute is the route name CreateProductRoute falls back to.
	DefaultResourceRoute = "c-cluster-product-resource"

	// Route param names and the meta key carrying the owning package.
	ParamProduct = "product"
	ParamCluster = "cluster"
	MetaPackage  = "pkg"
)

// Params maps route parameter names to values.
type Params map[string]string

// Meta carries route metadata. The host uses it for attribution only, never
// for URL construction.
type Meta map[string]any

// Route is a named-route record: the form a link or a navigation entry
// points at.
type Route struct {
	Name   string `json:"name"`
	Params Params `json:"params"`
	Meta   Meta   `json:"meta"`
}

// Entry is a host-routable table entry. Path uses ":segment" placeholders
// that are filled from Route.Params at navigation time.
type Entry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Component string `json:"component"`
}

// Config is the product identity injected into a Factory.
type Config struct {
	Product string
}

// Factory builds route descriptors for a single product. It holds no state
// beyond its config, so it is safe to share.
type Factory struct {
	product string
}

// NewFactory returns a factory for cfg.Product, rejecting invalid names.
func NewFactory(cfg Config) (*Factory, error) {
	if err := ValidateProduct(cfg.Product); err != nil {
		return nil, err
	}
	return &Factory{product: cfg.Product}, nil
}

// ValidateProduct checks that name can serve as a routing namespace segment.
func ValidateProduct(name string) error {
	if name == "" {
		return fmt.Errorf("product name must not be empty")
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid product name %q: %s", name, strings.Join(errs, "; "))
	}
	return nil
}

// Product returns the product name the factory builds routes for.
func (f *Factory) Product() string { return f.product }

// RootProductRoute returns the canonical root route of the product. Every
// call returns freshly allocated maps.
func (f *Factory) RootProductRoute() Route {
	return Route{
		Name: f.product + "-c-cluster",
		Params: Params{
			ParamProduct: f.product,
			ParamCluster: BlankCluster,
		},
		Meta: Meta{
			MetaPackage: f.product,
		},
	}
}

// CreateProductRoute layers name, params and meta over the root route.
// An empty name selects DefaultResourceRoute. Params and meta are merged
// with Merge, so override keys win and omitted keys keep their root value.
// A key that is present in an override always wins, even when its value is
// empty.
func (f *Factory) CreateProductRoute(name string, params Params, meta Meta) Route {
	if name == "" {
		name = DefaultResourceRoute
	}
	root := f.RootProductRoute()
	return Route{
		Name:   name,
		Params: Merge(root.Params, params),
		Meta:   Merge(root.Meta, meta),
	}
}

// RootEntry returns a table entry carrying the root route's name.
func (f *Factory) RootEntry(path, component string) Entry {
	return Entry{
		Name:      f.RootProductRoute().Name,
		Path:      path,
		Component: component,
	}
}
