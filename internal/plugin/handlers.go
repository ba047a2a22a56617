package plugin

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/darkden-lab/argus/extensions/internal/httputil"
	"github.com/darkden-lab/argus/extensions/internal/routing"
)

type Handlers struct {
	engine     *Engine
	writeGuard mux.MiddlewareFunc
}

func NewHandlers(engine *Engine, writeGuard mux.MiddlewareFunc) *Handlers {
	return &Handlers{engine: engine, writeGuard: writeGuard}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/extensions").Subrouter()
	api.HandleFunc("", h.handleList).Methods("GET")
	api.HandleFunc("/enabled", h.handleListEnabled).Methods("GET")
	api.HandleFunc("/routes", h.handleRouteTable).Methods("GET")
	api.HandleFunc("/{id}", h.handleGet).Methods("GET")
	api.HandleFunc("/{id}/navigation", h.handleNavigation).Methods("GET")
	api.HandleFunc("/{id}/routes", h.handleRoutes).Methods("GET")

	writeAPI := api.PathPrefix("").Subrouter()
	if h.writeGuard != nil {
		writeAPI.Use(h.writeGuard)
	}
	writeAPI.HandleFunc("/{id}/enable", h.handleEnable).Methods("POST")
	writeAPI.HandleFunc("/{id}/disable", h.handleDisable).Methods("POST")
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	infos := h.engine.ListAll()
	if infos == nil {
		infos = []ExtensionInfo{}
	}
	httputil.WriteJSON(w, http.StatusOK, infos)
}

func (h *Handlers) handleListEnabled(w http.ResponseWriter, r *http.Request) {
	infos := h.engine.ListEnabled(r.Context())
	if infos == nil {
		infos = []ExtensionInfo{}
	}
	httputil.WriteJSON(w, http.StatusOK, infos)
}

func (h *Handlers) handleRouteTable(w http.ResponseWriter, r *http.Request) {
	entries := h.engine.RouteTable()
	if entries == nil {
		entries = []routing.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	info, ok := h.lookup(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *Handlers) handleNavigation(w http.ResponseWriter, r *http.Request) {
	info, ok := h.lookup(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info.Navigation)
}

func (h *Handlers) handleRoutes(w http.ResponseWriter, r *http.Request) {
	info, ok := h.lookup(w, r)
	if !ok {
		return
	}
	routes := info.Routes
	if routes == nil {
		routes = []routing.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, routes)
}

func (h *Handlers) handleEnable(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.engine.Enable(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}

func (h *Handlers) handleDisable(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.engine.Disable(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*ExtensionInfo, bool) {
	info, err := h.engine.Get(mux.Vars(r)["id"])
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return info, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	httputil.WriteError(w, http.StatusBadRequest, err.Error())
}
