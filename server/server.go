// Package server exposes the campaign store over HTTP for player-facing
// screens: tier maps, the location hierarchy, encounter-map decks, and a
// websocket stream of the gamemaster's active view.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/icariumtech/mothership-console/data"
)

// Server is the console's HTTP sidecar
type Server struct {
	loader *data.Loader
	store  *ActiveViewStore
	hub    *Hub
	http   *http.Server
}

func New(addr string, loader *data.Loader, store *ActiveViewStore, hub *Hub) *Server {
	s := &Server{loader: loader, store: store, hub: hub}
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/star-map", s.handleStarMap)
		r.Get("/system-map/{system}", s.handleSystemMap)
		r.Get("/orbit-map/{system}/{body}", s.handleOrbitMap)
		r.Get("/locations", s.handleLocations)
		r.Get("/encounter-map/{location}", s.handleEncounterMap)
		r.Get("/active-view", s.handleActiveView)
	})
	r.Get("/ws/view", s.hub.ServeWS)

	return r
}

// Start serves until the listener fails or Shutdown is called
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
		}
	}()
}

// Shutdown drains in-flight requests and closes the hub
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleStarMap(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.LoadStarMap()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSystemMap(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.LoadSystemMap(chi.URLParam(r, "system"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleOrbitMap(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.LoadOrbitMap(chi.URLParam(r, "system"), chi.URLParam(r, "body"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.loader.LoadLocations()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// encounterMapResponse bundles the deck map with the manifest so clients
// can offer deck switching
type encounterMapResponse struct {
	Map      *data.EncounterMap `json:"map"`
	Manifest *data.DeckManifest `json:"manifest,omitempty"`
}

func (s *Server) handleEncounterMap(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "location")
	deck := r.URL.Query().Get("deck")

	m, manifest, err := s.loader.LoadEncounterMap(slug, deck)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, encounterMapResponse{Map: m, Manifest: manifest})
}

func (s *Server) handleActiveView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get())
}
