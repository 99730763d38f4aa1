// internal/httpserver/server.go
//
// HTTP wiring for the Snatch backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, CORS).
//   - Diagnostics: "/", "/health".
//   - GET /rooms/{pin}: the current room snapshot (the explicit state
//     request used on late join/rejoin).
//   - GET /ws: the websocket upgrade endpoint carrying all game traffic.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled; the origin comes from
//     CLIENT_ORIGIN.
//   - All game state lives behind the room registry; this layer never
//     touches it except through snapshots.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/snatchgame/go-server/internal/room"
	"github.com/snatchgame/go-server/internal/ws"
)

// Server bundles the router, the room registry, and the websocket hub.
type Server struct {
	r       *chi.Mux
	manager *room.Manager
	hub     *ws.Hub
}

// New constructs a Server, installs middleware, and registers routes.
func New(manager *room.Manager, hub *ws.Hub) *Server {
	s := &Server{r: chi.NewRouter(), manager: manager, hub: hub}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"snatch-go","endpoints":["/health","GET /rooms/{pin}","GET /ws"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Room snapshot gets a bounded handler time; the websocket route stays
	// outside the timeout middleware.
	s.r.With(chimw.Timeout(10 * time.Second)).Get("/rooms/{pin}", s.handleRoomState)

	s.r.Get("/ws", ws.ServeWS(s.hub, s.manager))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleRoomState returns the addressed room's consolidated snapshot.
func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	pin := chi.URLParam(r, "pin")
	state, ok := s.manager.RoomState(pin)
	if !ok {
		http.Error(w, `{"error":"room_not_found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(state)
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
