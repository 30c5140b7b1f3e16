// Package api exposes a state store over HTTP. Keys and values are raw
// bytes, so they travel hex-encoded in paths and payloads.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the full route tree for the given store. The returned
// handler is self-contained, including its own metrics registry.
func NewRouter(store Store, config ServerConfig) http.Handler {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	server := NewServer(store, config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// State operations
		r.Put("/state/{key}", metrics.InstrumentHandler("PUT", "/api/v1/state/{key}", server.handlePut))
		r.Get("/state/{key}", metrics.InstrumentHandler("GET", "/api/v1/state/{key}", server.handleGet))
		r.Delete("/state/{key}", metrics.InstrumentHandler("DELETE", "/api/v1/state/{key}", server.handleDelete))
		r.Get("/state", metrics.InstrumentHandler("GET", "/api/v1/state", server.handleScan))
	})

	return r
}

// StartServer serves handler on addr, blocking until the listener fails.
func StartServer(addr string, handler http.Handler) error {
	fmt.Printf("Starting Vanir REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, handler)
}
