// Package scoreserver serves a tiny integer key/value API so several frontends can
// share one high score.
//
//	GET /v1/kv/{key}  -> 200 {"key": k, "value": n} | 404
//	PUT /v1/kv/{key}  <- {"value": n}
//	GET /healthz
package scoreserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/plus3/stacker/persist"
)

// Backend is where the server keeps its values.
type Backend interface {
	Lookup(key string) (int, bool)
	SetInt(key string, value int)
}

// Server routes the key/value API onto a Backend.
type Server struct {
	backend Backend
	router  chi.Router
}

// New builds the router. A nil logger disables the access log.
func New(backend Backend, log *slog.Logger) *Server {
	s := &Server{backend: backend, router: chi.NewRouter()}

	s.router.Use(chimid.RequestID)
	s.router.Use(chimid.Recoverer)
	s.router.Use(AccessLog(log))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s.router.Route("/v1/kv", func(r chi.Router) {
		r.Get("/{key}", s.get)
		r.Put("/{key}", s.put)
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps the router with the timeouts the binary listens with.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, ok := s.backend.Lookup(key)
	if !ok {
		http.Error(w, "no value for "+key, http.StatusNotFound)
		return
	}
	writeJSON(w, persist.Entry{Key: key, Value: value})
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var in persist.Entry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
	if err := dec.Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.Key != "" && in.Key != key {
		http.Error(w, "key in body does not match path", http.StatusBadRequest)
		return
	}

	s.backend.SetInt(key, in.Value)
	writeJSON(w, persist.Entry{Key: key, Value: in.Value})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
