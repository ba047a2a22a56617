package plugin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darkden-lab/argus/extensions/internal/httputil"
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

var ErrNotFound = errors.New("extension not found")

// Engine is the host side of the extension system: it loads extensions,
// collects their products and route tables and serves them.
type Engine struct {
	extensions map[string]*Registration
	enabled    map[string]bool
	registry   *Registry
	importer   TypeImporter
	pool       *pgxpool.Pool
	mu         sync.RWMutex
}

type Option func(*Engine)

// WithTypeImporter sets the auto-import collaborator run by
// Host.ImportTypes.
func WithTypeImporter(ti TypeImporter) Option {
	return func(e *Engine) { e.importer = ti }
}

func NewEngine(pool *pgxpool.Pool, opts ...Option) *Engine {
	e := &Engine{
		extensions: make(map[string]*Registration),
		enabled:    make(map[string]bool),
		registry:   NewRegistry(),
		pool:       pool,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load runs p's entry point once, then initialises every product module it
// added in the management store. A loaded extension starts enabled.
func (e *Engine) Load(ctx context.Context, p Plugin) (*Registration, error) {
	id := p.ID()
	if id == "" {
		return nil, fmt.Errorf("extension must have an ID")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.extensions[id]; exists {
		return nil, fmt.Errorf("extension %q is already loaded", id)
	}

	reg := newRegistration(id, e.registry, e.importer)
	if err := p.Init(reg); err != nil {
		return nil, fmt.Errorf("failed to init extension %q: %w", id, err)
	}
	if reg.importErr != nil {
		return nil, reg.importErr
	}
	if err := reg.metadata.validate(); err != nil {
		return nil, fmt.Errorf("extension %q: %w", id, err)
	}
	for _, entry := range reg.routes {
		if err := routing.ValidateEntry(entry); err != nil {
			return nil, fmt.Errorf("extension %q: %w", id, err)
		}
	}

	for _, pm := range reg.products {
		pm.Init(reg, StoreManagement)
	}

	e.extensions[id] = reg
	e.enabled[id] = true
	log.Printf("extensions: loaded %s %s (%d routes, load %s)", id, reg.metadata.Version, len(reg.routes), reg.LoadID)

	if e.pool != nil {
		store := NewExtensionStore(e.pool)
		if err := store.SaveExtension(ctx, e.record(id, reg)); err != nil {
			log.Printf("extensions: failed to persist %s: %v", id, err)
		}
	}

	return reg, nil
}

func (e *Engine) Enable(ctx context.Context, id string) error {
	return e.setEnabled(ctx, id, true)
}

func (e *Engine) Disable(ctx context.Context, id string) error {
	return e.setEnabled(ctx, id, false)
}

func (e *Engine) setEnabled(ctx context.Context, id string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.extensions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	e.enabled[id] = enabled

	if e.pool != nil {
		store := NewExtensionStore(e.pool)
		if err := store.UpdateStatus(ctx, id, enabled); err != nil {
			log.Printf("extensions: failed to persist status of %s: %v", id, err)
		}
	}
	return nil
}

// ExtensionInfo is the public view of a loaded extension.
type ExtensionInfo struct {
	ID         string          `json:"id"`
	Metadata   Metadata        `json:"metadata"`
	Enabled    bool            `json:"enabled"`
	LoadID     uuid.UUID       `json:"loadId"`
	LoadedAt   time.Time       `json:"loadedAt"`
	Types      []string        `json:"types"`
	Navigation Navigation      `json:"navigation"`
	Routes     []routing.Entry `json:"routes"`
}

// ListAll returns every loaded extension ordered by ID.
func (e *Engine) ListAll() []ExtensionInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var infos []ExtensionInfo
	for _, id := range e.sortedIDs() {
		infos = append(infos, e.info(id))
	}
	return infos
}

// ListEnabled returns the enabled extensions ordered by ID.
func (e *Engine) ListEnabled(_ context.Context) []ExtensionInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var infos []ExtensionInfo
	for _, id := range e.sortedIDs() {
		if e.enabled[id] {
			infos = append(infos, e.info(id))
		}
	}
	return infos
}

func (e *Engine) Get(id string) (*ExtensionInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.extensions[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	info := e.info(id)
	return &info, nil
}

// RouteTable concatenates the route tables of all enabled extensions,
// ordered by extension ID and then by table order.
func (e *Engine) RouteTable() []routing.Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var entries []routing.Entry
	for _, id := range e.sortedIDs() {
		if e.enabled[id] {
			entries = append(entries, e.extensions[id].routes...)
		}
	}
	return entries
}

// Resolve expands r against the route table of the extension named by its
// product param.
func (e *Engine) Resolve(r routing.Route) (string, error) {
	product := r.Params[routing.ParamProduct]

	e.mu.RLock()
	reg, ok := e.extensions[product]
	enabled := e.enabled[product]
	e.mu.RUnlock()

	if !ok || !enabled {
		return "", fmt.Errorf("%w: %q", ErrNotFound, product)
	}
	return r.Resolve(reg.routes)
}

// RegisterAllRoutes mounts the route table of every loaded extension. The
// product segment is bound to the extension ID so that extensions sharing a
// path shape do not shadow each other. Routes of a disabled extension answer
// 404 until it is enabled again.
func (e *Engine) RegisterAllRoutes(router *mux.Router) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, id := range e.sortedIDs() {
		for _, entry := range e.extensions[id].routes {
			pattern := routing.MuxPattern(routing.Bind(entry.Path, routing.Params{routing.ParamProduct: id}))
			router.HandleFunc(pattern, e.viewHandler(id, entry)).Methods(http.MethodGet).Name(entry.Name)
		}
	}
}

func (e *Engine) viewHandler(id string, entry routing.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e.mu.RLock()
		enabled := e.enabled[id]
		e.mu.RUnlock()
		if !enabled {
			httputil.WriteError(w, http.StatusNotFound, "extension is disabled")
			return
		}

		params := routing.Merge(routing.Params{routing.ParamProduct: id}, routing.Params(mux.Vars(r)))
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"extension": id,
			"route":     entry.Name,
			"component": entry.Component,
			"params":    params,
			"meta":      routing.Meta{routing.MetaPackage: id},
		})
	}
}

func (e *Engine) sortedIDs() []string {
	ids := make([]string, 0, len(e.extensions))
	for id := range e.extensions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, strings.Compare)
	return ids
}

func (e *Engine) info(id string) ExtensionInfo {
	reg := e.extensions[id]
	return ExtensionInfo{
		ID:         id,
		Metadata:   reg.metadata,
		Enabled:    e.enabled[id],
		LoadID:     reg.LoadID,
		LoadedAt:   reg.LoadedAt,
		Types:      reg.Types(),
		Navigation: reg.Navigation(),
		Routes:     reg.Routes(),
	}
}

func (e *Engine) record(id string, reg *Registration) ExtensionRecord {
	return ExtensionRecord{
		ID:         id,
		Name:       reg.metadata.Name,
		Version:    reg.metadata.Version,
		Metadata:   reg.metadata,
		Navigation: reg.Navigation(),
		Routes:     reg.Routes(),
		LoadID:     reg.LoadID,
		Enabled:    e.enabled[id],
		LoadedAt:   reg.LoadedAt,
	}
}
