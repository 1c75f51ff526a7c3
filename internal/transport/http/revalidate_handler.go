package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/pkg/pagecache"
)

// RevalidateHandler drops cached pages on demand. Callers authenticate with a
// shared secret, not a user credential.
type RevalidateHandler struct {
	token  string
	cache  pagecache.Cache
	logger *logrus.Logger
}

// NewRevalidateHandler creates a revalidation handler.
func NewRevalidateHandler(token string, cache pagecache.Cache, logger *logrus.Logger) *RevalidateHandler {
	return &RevalidateHandler{
		token:  token,
		cache:  cache,
		logger: logger,
	}
}

type revalidateRequest struct {
	Path string `json:"path"`
}

type revalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path"`
}

// ServeHTTP handles POST /api/v1/revalidate.
func (h *RevalidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	provided := r.URL.Query().Get("token")
	if provided == "" {
		provided = bearerToken(r)
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) != 1 {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid token"})
		return
	}

	var req revalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Path is required"})
		return
	}

	h.cache.Invalidate(r.Context(), req.Path)
	h.logger.WithField("path", req.Path).Info("Revalidated path")

	respondJSON(w, http.StatusOK, revalidateResponse{Revalidated: true, Path: req.Path})
}
