package testpkg1

import "github.com/darkden-lab/argus/extensions/internal/routing"

const (
	DashboardView    = "Dashboard"
	ResourceListView = "ResourceList"
)

// Routes is the table handed to the host router. The root entry backs
// RootProductRoute; the resource entry backs CreateProductRoute's default
// name and expects a "resource" param.
func Routes(f *routing.Factory) []routing.Entry {
	return []routing.Entry{
		f.RootEntry("/:product/c/:cluster/dashboard", DashboardView),
		{
			Name:      routing.DefaultResourceRoute,
			Path:      "/:product/c/:cluster/:resource",
			Component: ResourceListView,
		},
	}
}
