package api

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vanir-db/vanir/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   Store
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store Store, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// keyParam decodes the hex-encoded key path parameter.
func keyParam(r *http.Request) ([]byte, error) {
	raw := chi.URLParam(r, "key")
	if raw == "" {
		return nil, errors.New("key is required")
	}
	return hex.DecodeString(raw)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStoreOperation("get", false, time.Since(start))
		sendError(w, fmt.Sprintf("Invalid key: %v", err), http.StatusBadRequest)
		return
	}

	value, err := s.store.Get(key)
	if errors.Is(err, store.ErrKeyNotFound) {
		s.metrics.RecordStoreOperation("get", false, time.Since(start))
		sendError(w, "Key not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordStoreOperation("get", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to get key: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordStoreOperation("get", true, time.Since(start))
	sendSuccess(w, EntryResponse{
		Key:   hex.EncodeToString(key),
		Value: hex.EncodeToString(value),
	})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStoreOperation("put", false, time.Since(start))
		sendError(w, fmt.Sprintf("Invalid key: %v", err), http.StatusBadRequest)
		return
	}

	value, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.RecordStoreOperation("put", false, time.Since(start))
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if err := s.store.Set(key, value); err != nil {
		s.metrics.RecordStoreOperation("put", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to put key: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordStoreOperation("put", true, time.Since(start))
	sendSuccess(w, map[string]string{"key": hex.EncodeToString(key)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStoreOperation("delete", false, time.Since(start))
		sendError(w, fmt.Sprintf("Invalid key: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(key); err != nil {
		s.metrics.RecordStoreOperation("delete", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to delete key: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordStoreOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"key": hex.EncodeToString(key)})
}

// handleScan lists entries under a hex prefix, in key order. An empty prefix
// walks the whole store.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	prefix, err := hex.DecodeString(r.URL.Query().Get("prefix"))
	if err != nil {
		s.metrics.RecordStoreOperation("scan", false, time.Since(start))
		sendError(w, fmt.Sprintf("Invalid prefix: %v", err), http.StatusBadRequest)
		return
	}

	entries := []EntryResponse{}
	err = s.store.Scan(prefix, func(key, value []byte) error {
		entries = append(entries, EntryResponse{
			Key:   hex.EncodeToString(key),
			Value: hex.EncodeToString(value),
		})
		return nil
	})
	if err != nil {
		s.metrics.RecordStoreOperation("scan", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to scan: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordStoreOperation("scan", true, time.Since(start))
	sendSuccess(w, entries)
}
