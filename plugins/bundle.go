// Package plugins lists the extensions shipped with the host.
package plugins

import (
	"context"
	"log"

	"github.com/darkden-lab/argus/extensions/internal/plugin"
	"github.com/darkden-lab/argus/extensions/plugins/testpkg1"
	"github.com/darkden-lab/argus/extensions/plugins/testpkg2"
)

// LoadAll loads every bundled extension into engine and returns how many
// loaded. A failing extension is logged and skipped; the others still load.
func LoadAll(ctx context.Context, engine *plugin.Engine) int {
	loaded := 0
	if loadWithError(ctx, engine, testpkg1.ProductName, testpkg1.New) {
		loaded++
	}
	if loadWithError(ctx, engine, testpkg2.ProductName, testpkg2.New) {
		loaded++
	}
	return loaded
}

func loadWithError[T plugin.Plugin](ctx context.Context, engine *plugin.Engine, name string, newFn func() (T, error)) bool {
	p, err := newFn()
	if err != nil {
		log.Printf("WARNING: failed to create %s extension: %v", name, err)
		return false
	}
	if _, err := engine.Load(ctx, p); err != nil {
		log.Printf("WARNING: failed to load %s extension: %v", name, err)
		return false
	}
	return true
}
