package utils

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	WriteJSON(w, status, payload)
}

// WriteJSON sends v as the whole response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
