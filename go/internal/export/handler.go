package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/httpx"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamSource is what the export needs from the teams app
type TeamSource interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeamsByName(ctx context.Context) ([]models.Team, error)
}

// PlayerSource lists a team's players by batting order, unordered last, then
// by name
type PlayerSource interface {
	ListTeamPlayersForExport(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
}

// Handler serves workbook downloads
type Handler struct {
	teams   TeamSource
	players PlayerSource
}

func NewHandler(teams TeamSource, players PlayerSource) *Handler {
	return &Handler{teams: teams, players: players}
}

// Register mounts the export routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /export/team/{id}", h.ExportTeam)
	mux.HandleFunc("POST /export/all", h.ExportAll)
}

// ExportTeam streams one team's roster workbook
func (h *Handler) ExportTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, apperr.Validation("invalid team id %q", r.PathValue("id")))
		return
	}

	team, err := h.teams.GetTeam(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	players, err := h.players.ListTeamPlayersForExport(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteTeam(&buf, *team, players); err != nil {
		httpx.WriteError(w, fmt.Errorf("export team %s: %w", id, err))
		return
	}

	log.Info().Str("team_id", id.String()).Int("players", len(players)).Msg("exported team")
	serveWorkbook(w, FileName(team.Name), &buf)
}

// ExportAll streams a workbook with one sheet per team, teams sorted by name
func (h *Handler) ExportAll(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeamsByName(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	sheets := make([]TeamSheet, 0, len(teams))
	for _, team := range teams {
		players, err := h.players.ListTeamPlayersForExport(r.Context(), team.ID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		sheets = append(sheets, TeamSheet{Team: team, Players: players})
	}

	var buf bytes.Buffer
	if err := WriteTeams(&buf, sheets); err != nil {
		httpx.WriteError(w, fmt.Errorf("export all teams: %w", err))
		return
	}

	log.Info().Int("teams", len(sheets)).Msg("exported all teams")
	serveWorkbook(w, AllTeamsFileName, &buf)
}

func serveWorkbook(w http.ResponseWriter, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("failed to send workbook")
	}
}
