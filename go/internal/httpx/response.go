// Package httpx holds the JSON envelope used by the plain HTTP handlers
// (export, upload, login) that sit beside the connect services.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/rs/zerolog/log"
)

// Envelope is the body of every plain HTTP JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a successful envelope around data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// WriteError writes a failed envelope with the status apperr maps err to.
func WriteError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	write(w, status, Envelope{Success: false, Error: apperr.Message(err)})
}

// WriteStatus writes a failed envelope with an explicit status and message.
func WriteStatus(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Error: msg})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
