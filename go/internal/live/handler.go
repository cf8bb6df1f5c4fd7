package live

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/httpx"
	"github.com/rs/zerolog/log"
)

// Handler serves the team websocket endpoint.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/team", h.teamConnection)
}

func (h *Handler) teamConnection(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("team_id")
	if raw == "" {
		httpx.WriteStatus(w, http.StatusBadRequest, "team_id is required")
		return
	}
	teamID, err := uuid.Parse(raw)
	if err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest, "invalid team_id format")
		return
	}

	// the upgrader has already written the failure response
	if err := h.hub.attach(w, r, teamID); err != nil {
		log.Warn().Err(err).Str("team_id", teamID.String()).Msg("websocket upgrade failed")
	}
}
