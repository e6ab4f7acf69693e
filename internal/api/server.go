// Package api serves the catalog and save slots over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

// DefaultSlot is used when a save request names no slot.
const DefaultSlot = "quick"

// maxSaveBody caps the size of an uploaded snapshot.
const maxSaveBody = 1 << 20

// SaveStore is the slot storage behind the save routes.
type SaveStore interface {
	core.SlotStore
	// LoadVersioned returns a slot with the schema version it was saved with.
	LoadVersioned(gameID, slot string) (data []byte, version int, found bool, err error)
}

// Server handles the /api routes.
type Server struct {
	catalog *catalog.Catalog
	store   SaveStore
	logger  *log.Logger
	mux     *http.ServeMux
}

// NewServer creates a server over the given catalog.
// A nil store disables the save endpoints with 503.
func NewServer(c *catalog.Catalog, store SaveStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		catalog: c,
		store:   store,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/games", s.listGames)
	s.mux.HandleFunc("GET /api/games/{id}", s.getGame)
	s.mux.HandleFunc("GET /api/games/{id}/save", s.getSave)
	s.mux.HandleFunc("POST /api/games/{id}/save", s.postSave)
	return s
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// message is the body of every non-payload response.
type message struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

// saveResponse is the body of GET /api/games/{id}/save.
type saveResponse struct {
	Success       bool            `json:"success"`
	Slot          string          `json:"slot"`
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// saveRequest is the body of POST /api/games/{id}/save.
type saveRequest struct {
	State json.RawMessage `json:"state"`
}

func (s *Server) listGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, err := s.catalog.Lookup(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, message{Message: fmt.Sprintf("Game with ID %s not found", id)})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// persistentGame resolves id to a game that supports saves, writing the
// error response itself when it cannot.
func (s *Server) persistentGame(w http.ResponseWriter, id string) (catalog.Persistent, bool) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, message{Message: "Saves are disabled"})
		return nil, false
	}
	g, err := s.catalog.Create(id, catalog.Env{Logger: s.logger})
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, message{Message: fmt.Sprintf("Game with ID %s not found", id)})
		return nil, false
	case errors.Is(err, catalog.ErrNotPlayable):
		writeJSON(w, http.StatusBadRequest, message{Message: fmt.Sprintf("Game with ID %s is not playable", id)})
		return nil, false
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message{Message: err.Error()})
		return nil, false
	}
	p, ok := g.(catalog.Persistent)
	if !ok {
		writeJSON(w, http.StatusBadRequest, message{Message: fmt.Sprintf("Game with ID %s does not support saves", id)})
		return nil, false
	}
	return p, true
}

func slotParam(r *http.Request) string {
	if slot := r.URL.Query().Get("slot"); slot != "" {
		return slot
	}
	return DefaultSlot
}

func (s *Server) getSave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.persistentGame(w, id); !ok {
		return
	}

	slot := slotParam(r)
	data, version, found, err := s.store.LoadVersioned(id, slot)
	if err != nil {
		s.logger.Error("load slot failed", "game", id, "slot", slot, "err", err)
		writeJSON(w, http.StatusInternalServerError, message{Message: "Could not read save"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, message{Message: fmt.Sprintf("No save in slot %s for game %s", slot, id)})
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{
		Success:       true,
		Slot:          slot,
		SchemaVersion: version,
		Data:          data,
	})
}

func (s *Server) postSave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, ok := s.persistentGame(w, id)
	if !ok {
		return
	}

	var req saveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSaveBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, message{Message: "Request body must be {\"state\": ...}"})
		return
	}
	if len(req.State) == 0 {
		writeJSON(w, http.StatusBadRequest, message{Message: "Missing state"})
		return
	}
	if err := p.ValidateSnapshot(req.State); err != nil {
		writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
		return
	}

	slot := slotParam(r)
	if err := s.store.SaveSlot(id, slot, p.SnapshotVersion(), req.State); err != nil {
		if errors.Is(err, storage.ErrInvalidSlot) {
			writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
			return
		}
		s.logger.Error("save slot failed", "game", id, "slot", slot, "err", err)
		writeJSON(w, http.StatusInternalServerError, message{Message: "Could not write save"})
		return
	}
	writeJSON(w, http.StatusOK, message{Success: true, Message: fmt.Sprintf("Saved to slot %s", slot)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
