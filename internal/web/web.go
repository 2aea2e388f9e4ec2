// Package web serves the HTML view of ranked games.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/app/recommender"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler renders the ranked games page.
type Handler struct {
	svc          *recommender.Service
	favoriteTeam string
	logger       *slog.Logger
	tmpl         *template.Template
}

// New parses the embedded templates and returns the page handler.
func New(svc *recommender.Service, favoriteTeam string, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"add1": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		svc:          svc,
		favoriteTeam: favoriteTeam,
		logger:       logger,
		tmpl:         tmpl,
	}, nil
}

type pageData struct {
	Days    int
	Team    string
	Games   []domain.RankedGame
	Best    *domain.RankedGame
	Message string
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := pageData{Days: recommender.DefaultDays, Team: h.favoriteTeam}
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			data.Days = parsed
		}
	}
	if team := r.URL.Query().Get("team"); team != "" {
		data.Team = recommender.NormalizeTeam(team)
	}

	ranked, err := h.svc.RankedGames(r.Context(), data.Days, data.Team)
	switch {
	case err == nil:
		data.Games = ranked
		data.Best = &ranked[0]
	case recommender.CodeOf(err) == recommender.CodeNoGames:
		data.Message = "No completed games found in this window. Try a longer lookback."
	case recommender.CodeOf(err) == recommender.CodeValidation:
		data.Message = "Days must be between 1 and 30."
	default:
		logging.Error(loggerOf(r, h.logger), "rendering games failed", err)
		data.Message = "Could not load games right now. Try again in a minute."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		logging.Error(loggerOf(r, h.logger), "template render failed", err)
	}
}

func loggerOf(r *http.Request, fallback *slog.Logger) *slog.Logger {
	return logging.FromContext(r.Context(), fallback)
}
