// Package http is the service's REST surface. Routes are versioned under
// /api/v1; cart routes require bearer authentication, catalog routes are
// public.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RouterConfig collects the handlers and middleware collaborators.
type RouterConfig struct {
	Cart       *CartHandler
	Catalog    *CatalogHandler
	Events     *EventsHandler
	Revalidate *RevalidateHandler
	Verifier   Verifier
	Logger     *logrus.Logger
}

// NewRouter builds the service router.
func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(logRequests(cfg.Logger))

	api := router.PathPrefix("/api/v1").Subrouter()

	// Authenticated cart routes
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(requireAuth(cfg.Verifier, cfg.Logger))
	cart.HandleFunc("", cfg.Cart.Get).Methods(http.MethodGet)
	cart.HandleFunc("", cfg.Cart.Upsert).Methods(http.MethodPost)
	cart.HandleFunc("", cfg.Cart.Clear).Methods(http.MethodDelete)

	// Public catalog routes; search before {id} so "search" never parses
	// as a product ID.
	api.HandleFunc("/products/search", cfg.Catalog.Search).Methods(http.MethodGet)
	api.HandleFunc("/products", cfg.Catalog.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", cfg.Catalog.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/related", cfg.Catalog.Related).Methods(http.MethodGet)
	api.HandleFunc("/categories", cfg.Catalog.Categories).Methods(http.MethodGet)

	// Operational routes
	api.Handle("/events", cfg.Events).Methods(http.MethodGet)
	api.Handle("/revalidate", cfg.Revalidate).Methods(http.MethodPost)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return router
}
