package testpkg2

import (
	_ "embed"
	"fmt"

	"github.com/darkden-lab/argus/extensions/internal/plugin"
	"github.com/darkden-lab/argus/extensions/internal/product"
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

// ProductName is the product this extension registers.
const ProductName = "test-pkg-2"

//go:embed package.json
var packageJSON []byte

type Extension struct {
	metadata plugin.Metadata
	routes   *routing.Factory
}

// New creates an Extension from its embedded package.json.
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

func (e *Extension) ID() string { return ProductName }

func (e *Extension) Init(host plugin.Host) error {
	host.ImportTypes()
	host.SetMetadata(e.metadata)
	host.AddProduct(product.NewRegistrar(e.routes).WithIcon("dashboard"))
	host.AddRoutes(Routes())
	return nil
}

// Routes is the dashboard table. Its path is written out literally so it can
// be served before any factory exists.
func Routes() []routing.Entry {
	return []routing.Entry{
		{
			Name:      ProductName + "-c-cluster",
			Path:      "/:product/c/:cluster/dashboard",
			Component: "Dashboard",
		},
	}
}
