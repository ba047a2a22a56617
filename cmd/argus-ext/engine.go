package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/darkden-lab/argus/extensions/internal/plugin"
	"github.com/darkden-lab/argus/extensions/internal/routing"
	"github.com/darkden-lab/argus/extensions/plugins"
)

// loadBundled builds an engine with every bundled extension loaded and no
// persistence behind it.
func loadBundled(ctx context.Context) (*plugin.Engine, error) {
	engine := plugin.NewEngine(nil)
	if plugins.LoadAll(ctx, engine) == 0 {
		return nil, fmt.Errorf("no extensions could be loaded")
	}
	return engine, nil
}

// fetchRoutes reads the combined route table from a running dashboard.
func fetchRoutes(ctx context.Context, serverURL string) ([]routing.Entry, error) {
	url := strings.TrimRight(serverURL, "/") + "/api/extensions/routes"

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var entries []routing.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode route table: %w", err)
	}
	return entries, nil
}
