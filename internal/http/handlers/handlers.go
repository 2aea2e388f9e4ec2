// Package handlers wires the API routes to the recommendation service.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/app/recommender"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/scoring"
)

// Handler serves the JSON API.
type Handler struct {
	svc          *recommender.Service
	scoringCfg   scoring.Config
	favoriteTeam string
	version      string
	logger       *slog.Logger
}

// New constructs a Handler. favoriteTeam is the configured default; a team
// query parameter overrides it per request.
func New(svc *recommender.Service, scoringCfg scoring.Config, favoriteTeam, version string, logger *slog.Logger) *Handler {
	return &Handler{
		svc:          svc,
		scoringCfg:   scoringCfg,
		favoriteTeam: favoriteTeam,
		version:      version,
		logger:       logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, recommender.CodeValidation, "method not allowed", h.logger)
		return
	}
	switch r.URL.Path {
	case "/api/health":
		h.Health(w, r)
	case "/api/best-game":
		h.BestGame(w, r)
	case "/api/games":
		h.Games(w, r)
	case "/api/config":
		h.Config(w, r)
	default:
		writeError(w, r, http.StatusNotFound, recommender.CodeValidation, "not found", h.logger)
	}
}

// Health reports service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{"status": "ok", "version": h.version}, h.logger)
}

// BestGame returns the most engaging game in the lookback window.
func (h *Handler) BestGame(w http.ResponseWriter, r *http.Request) {
	days, team, ok := h.queryParams(w, r)
	if !ok {
		return
	}

	best, err := h.svc.BestGame(r.Context(), days, team)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "best game returned",
		slog.String("game_id", best.Game.ID),
		slog.Float64("score", best.Score),
	)
	writeData(w, best, h.logger)
}

// Games returns every game in the window ranked by score.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	days, team, ok := h.queryParams(w, r)
	if !ok {
		return
	}

	ranked, err := h.svc.RankedGames(r.Context(), days, team)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "ranked games returned",
		slog.Int(logging.FieldCount, len(ranked)),
	)
	writeList(w, ranked, len(ranked), h.logger)
}

// Config reports the active scoring weights and default favorite team.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]any{
		"scoring":       h.scoringCfg,
		"favorite_team": h.favoriteTeam,
	}, h.logger)
}

// queryParams parses days and team, writing a VALIDATION_ERROR on a
// malformed days value. days=0 means the service default.
func (h *Handler) queryParams(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	days := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, recommender.CodeValidation,
				"days must be an integer", h.logger)
			return 0, "", false
		}
		days = parsed
	}

	team := r.URL.Query().Get("team")
	if team == "" {
		team = h.favoriteTeam
	}
	return days, team, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := recommender.CodeOf(err)
	status := statusForCode(code)
	logging.Error(loggerFromContext(r, h.logger), "request failed", err,
		slog.String("error_code", code),
	)
	writeError(w, r, status, code, err.Error(), h.logger)
}

func statusForCode(code string) int {
	switch code {
	case recommender.CodeValidation:
		return http.StatusBadRequest
	case recommender.CodeNoGames:
		return http.StatusNotFound
	case recommender.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
