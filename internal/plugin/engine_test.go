package plugin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/darkden-lab/argus/extensions/internal/routing"
)

type mockProduct struct {
	name  string
	calls int
}

func (m *mockProduct) Init(host DSLProvider, store Store) {
	m.calls++
	dsl := host.DSL(store, host.Name())
	dsl.Product(ProductConfig{Icon: "gear"})
	dsl.VirtualType(VirtualTypeConfig{Label: m.name, Name: m.name, Group: "Root", Weight: 99})
	dsl.BasicType([]string{m.name})
}

type mockPlugin struct {
	id       string
	metadata Metadata
	product  *mockProduct
	routes   []routing.Entry
	initErr  error
	inits    int
}

func (m *mockPlugin) ID() string { return m.id }

func (m *mockPlugin) Init(host Host) error {
	m.inits++
	if m.initErr != nil {
		return m.initErr
	}
	host.ImportTypes()
	host.SetMetadata(m.metadata)
	host.AddProduct(m.product)
	host.AddRoutes(m.routes)
	return nil
}

func newMockPlugin(id, version string) *mockPlugin {
	return &mockPlugin{
		id:       id,
		metadata: Metadata{Name: id, Version: version},
		product:  &mockProduct{name: id},
		routes: []routing.Entry{
			{Name: id + "-c-cluster", Path: "/:product/c/:cluster/dashboard", Component: "Dashboard"},
		},
	}
}

type stubImporter struct {
	types []string
	err   error
}

func (s stubImporter) ImportTypes(string) ([]string, error) { return s.types, s.err }

func TestLoadExtension(t *testing.T) {
	e := NewEngine(nil)
	p := newMockPlugin("test-pkg-1", "0.1.0")

	reg, err := e.Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.inits != 1 {
		t.Errorf("expected entry point to run once, ran %d times", p.inits)
	}
	if p.product.calls != 1 {
		t.Errorf("expected product module to init once, ran %d times", p.product.calls)
	}

	wantSteps := []string{StepImportTypes, StepMetadata, StepAddProduct, StepAddRoutes}
	if got := reg.Steps(); !reflect.DeepEqual(got, wantSteps) {
		t.Errorf("expected steps %v, got %v", wantSteps, got)
	}

	info, err := e.Get("test-pkg-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !info.Enabled {
		t.Error("expected loaded extension to be enabled")
	}
	if info.Metadata.Version != "0.1.0" {
		t.Errorf("expected version '0.1.0', got '%s'", info.Metadata.Version)
	}
	if len(info.Navigation.Products) != 1 || info.Navigation.Products[0].InStore != StoreManagement {
		t.Errorf("expected one product in the management store, got %+v", info.Navigation.Products)
	}
	if !reflect.DeepEqual(info.Navigation.BasicTypes, []string{"test-pkg-1"}) {
		t.Errorf("expected basic types [test-pkg-1], got %v", info.Navigation.BasicTypes)
	}
	if len(info.Routes) != 1 {
		t.Errorf("expected 1 route, got %d", len(info.Routes))
	}
}

func TestLoadRejectsDuplicate(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	if _, err := e.Load(ctx, newMockPlugin("test-pkg-1", "0.1.0")); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if _, err := e.Load(ctx, newMockPlugin("test-pkg-1", "0.1.0")); err == nil {
		t.Fatal("expected error on duplicate load, got nil")
	}
}

func TestLoadValidatesMetadata(t *testing.T) {
	cases := []struct {
		name     string
		metadata Metadata
	}{
		{"missing name", Metadata{Version: "1.0.0"}},
		{"missing version", Metadata{Name: "x"}},
	}
	for _, tc := range cases {
		p := newMockPlugin("test-pkg-1", "")
		p.metadata = tc.metadata

		e := NewEngine(nil)
		if _, err := e.Load(context.Background(), p); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if p.product.calls != 0 {
			t.Errorf("%s: product module must not init on a failed load", tc.name)
		}
		if len(e.ListAll()) != 0 {
			t.Errorf("%s: failed load must not be listed", tc.name)
		}
	}
}

func TestLoadRejectsInvalidRouteEntry(t *testing.T) {
	p := newMockPlugin("test-pkg-1", "0.1.0")
	p.routes = append(p.routes, routing.Entry{Name: "static", Path: "/c/:cluster/static", Component: "Static"})

	e := NewEngine(nil)
	if _, err := e.Load(context.Background(), p); !errors.Is(err, routing.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if p.product.calls != 0 {
		t.Error("product module must not init on a failed load")
	}
	if len(e.ListAll()) != 0 {
		t.Error("failed load must not be listed")
	}
}

func TestLoadPropagatesInitError(t *testing.T) {
	p := newMockPlugin("test-pkg-1", "0.1.0")
	p.initErr = errors.New("boom")

	_, err := NewEngine(nil).Load(context.Background(), p)
	if err == nil || !errors.Is(err, p.initErr) {
		t.Errorf("expected wrapped init error, got %v", err)
	}
}

func TestLoadRejectsEmptyID(t *testing.T) {
	if _, err := NewEngine(nil).Load(context.Background(), newMockPlugin("", "1.0.0")); err == nil {
		t.Fatal("expected error for empty ID, got nil")
	}
}

func TestTypeImporter(t *testing.T) {
	e := NewEngine(nil, WithTypeImporter(stubImporter{types: []string{"models/widget", "edit/widget"}}))

	if _, err := e.Load(context.Background(), newMockPlugin("test-pkg-1", "0.1.0")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	info, _ := e.Get("test-pkg-1")
	if !reflect.DeepEqual(info.Types, []string{"models/widget", "edit/widget"}) {
		t.Errorf("expected imported types, got %v", info.Types)
	}

	failing := NewEngine(nil, WithTypeImporter(stubImporter{err: errors.New("scan failed")}))
	if _, err := failing.Load(context.Background(), newMockPlugin("test-pkg-1", "0.1.0")); err == nil {
		t.Fatal("expected import failure to abort the load")
	}
}

func TestEnableDisable(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	if _, err := e.Load(ctx, newMockPlugin("test-pkg-1", "0.1.0")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := e.Disable(ctx, "test-pkg-1"); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if n := len(e.ListEnabled(ctx)); n != 0 {
		t.Fatalf("expected 0 enabled extensions after disable, got %d", n)
	}
	if n := len(e.RouteTable()); n != 0 {
		t.Errorf("expected disabled extension routes to be hidden, got %d", n)
	}

	if err := e.Enable(ctx, "test-pkg-1"); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if n := len(e.ListEnabled(ctx)); n != 1 {
		t.Fatalf("expected 1 enabled extension, got %d", n)
	}

	if err := e.Enable(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRouteTableOrder(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	_, _ = e.Load(ctx, newMockPlugin("test-pkg-2", "0.1.0"))
	_, _ = e.Load(ctx, newMockPlugin("test-pkg-1", "0.1.0"))

	table := e.RouteTable()
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}
	if table[0].Name != "test-pkg-1-c-cluster" || table[1].Name != "test-pkg-2-c-cluster" {
		t.Errorf("expected entries ordered by extension ID, got %v", table)
	}
}

func TestEngineResolve(t *testing.T) {
	e := NewEngine(nil)
	_, _ = e.Load(context.Background(), newMockPlugin("test-pkg-1", "0.1.0"))

	route := routing.Route{
		Name:   "test-pkg-1-c-cluster",
		Params: routing.Params{"product": "test-pkg-1", "cluster": "local"},
	}
	path, err := e.Resolve(route)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if path != "/test-pkg-1/c/local/dashboard" {
		t.Errorf("expected '/test-pkg-1/c/local/dashboard', got %q", path)
	}

	route.Params["product"] = "unknown"
	if _, err := e.Resolve(route); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterAllRoutes(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()
	_, _ = e.Load(ctx, newMockPlugin("test-pkg-1", "0.1.0"))
	_, _ = e.Load(ctx, newMockPlugin("test-pkg-2", "0.1.0"))

	r := mux.NewRouter()
	e.RegisterAllRoutes(r)

	cases := []struct {
		path      string
		extension string
	}{
		{"/test-pkg-1/c/_/dashboard", "test-pkg-1"},
		{"/test-pkg-2/c/local/dashboard", "test-pkg-2"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tc.path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `"extension":"`+tc.extension+`"`) {
			t.Errorf("%s: expected extension %s, got %s", tc.path, tc.extension, rr.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/test-pkg-3/c/_/dashboard", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", rr.Code)
	}

	_ = e.Disable(ctx, "test-pkg-2")
	req = httptest.NewRequest(http.MethodGet, "/test-pkg-2/c/_/dashboard", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for disabled extension, got %d", rr.Code)
	}
}
