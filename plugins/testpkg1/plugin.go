package testpkg1

import (
	_ "embed"
	"fmt"

	"github.com/darkden-lab/argus/extensions/internal/plugin"
	"github.com/darkden-lab/argus/extensions/internal/product"
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

// ProductName is the product this extension registers.
const ProductName = "test-pkg-1"

//go:embed package.json
var packageJSON []byte

// Extension implements plugin.Plugin for test-pkg-1.
type Extension struct {
	metadata plugin.Metadata
	routes   *routing.Factory
}

// New creates an Extension from the package.json embedded next to this
// source file.
func New() (*Extension, error) {
	m, err := plugin.ParseMetadata(packageJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProductName, err)
	}
	f, err := routing.NewFactory(routing.Config{Product: ProductName})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProductName, err)
	}
	return &Extension{metadata: m, routes: f}, nil
}

// ID satisfies plugin.Plugin.
func (e *Extension) ID() string { return ProductName }

// Factory returns the route factory views use to build product links.
func (e *Extension) Factory() *routing.Factory { return e.routes }

// Init satisfies plugin.Plugin. It imports types, publishes metadata, adds
// the product and then the route table.
func (e *Extension) Init(host plugin.Host) error {
	host.ImportTypes()
	host.SetMetadata(e.metadata)
	host.AddProduct(product.NewRegistrar(e.routes))
	host.AddRoutes(Routes(e.routes))
	return nil
}
