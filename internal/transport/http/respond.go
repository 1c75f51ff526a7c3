package http

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes the payload as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes the uniform error envelope for a domain error.
func respondError(w http.ResponseWriter, err error) {
	status, message := mapDomainError(err)
	respondJSON(w, status, errorBody{Error: message})
}
