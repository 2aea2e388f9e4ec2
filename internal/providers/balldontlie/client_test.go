package balldontlie

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		MaxPages:   3,
	})
}

func TestFetchGamesMapsCompletedGames(t *testing.T) {
	var capturedAuth string
	var capturedQuery url.Values

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games" {
			t.Fatalf("expected /games path, got %s", req.URL.Path)
		}
		capturedAuth = req.Header.Get("Authorization")
		capturedQuery = req.URL.Query()

		return jsonResponse(http.StatusOK, `{
			"data": [
				{
					"id": 10,
					"status": "Final",
					"home_team": { "id": 1, "abbreviation": "LAL", "full_name": "Los Angeles Lakers" },
					"visitor_team": { "id": 2, "abbreviation": "BOS", "full_name": "Boston Celtics" },
					"home_team_score": 118,
					"visitor_team_score": 115,
					"season": 2023
				},
				{
					"id": 11,
					"status": "In Progress",
					"home_team": { "id": 3, "abbreviation": "SAC" },
					"visitor_team": { "id": 4, "abbreviation": "POR" },
					"home_team_score": 60,
					"visitor_team_score": 55,
					"season": 2023
				}
			],
			"meta": { "total_pages": 1 }
		}`), nil
	})

	games, err := newTestClient(rt).FetchGames(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedAuth != "secret" {
		t.Fatalf("expected raw API key in Authorization header, got %q", capturedAuth)
	}
	if got := capturedQuery.Get("start_date"); got != "2024-01-15" {
		t.Fatalf("expected start_date=2024-01-15, got %s", got)
	}
	if got := capturedQuery.Get("end_date"); got != "2024-01-15" {
		t.Fatalf("expected end_date=2024-01-15, got %s", got)
	}
	if got := capturedQuery.Get("per_page"); got != "100" {
		t.Fatalf("expected per_page=100, got %s", got)
	}

	if len(games) != 1 {
		t.Fatalf("expected only the Final game, got %d", len(games))
	}
	g := games[0]
	if g.ID != "10" || g.Date != "2024-01-15" {
		t.Fatalf("unexpected identity: %+v", g)
	}
	if g.HomeTeam.Abbreviation != "LAL" || g.HomeTeam.Score != 118 {
		t.Fatalf("unexpected home side: %+v", g.HomeTeam)
	}
	if g.AwayTeam.Name != "Boston Celtics" || g.AwayTeam.Score != 115 {
		t.Fatalf("unexpected away side: %+v", g.AwayTeam)
	}
	if g.TotalPoints != 233 {
		t.Fatalf("expected total 233, got %d", g.TotalPoints)
	}
	if g.FinalMargin == nil || *g.FinalMargin != 3 {
		t.Fatalf("expected margin 3, got %v", g.FinalMargin)
	}
}

func TestFetchGamesPaginates(t *testing.T) {
	var pages []string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		page := req.URL.Query().Get("page")
		pages = append(pages, page)

		body := `{
			"data": [
				{"id": 10, "status": "Final", "home_team": {"abbreviation": "A"}, "visitor_team": {"abbreviation": "B"}, "home_team_score": 100, "visitor_team_score": 90}
			],
			"meta": { "total_pages": 2 }
		}`
		if page == "2" {
			body = `{
				"data": [
					{"id": 11, "status": "Final", "home_team": {"abbreviation": "C"}, "visitor_team": {"abbreviation": "D"}, "home_team_score": 105, "visitor_team_score": 101}
				],
				"meta": { "total_pages": 2 }
			}`
		}
		return jsonResponse(http.StatusOK, body), nil
	})

	games, err := newTestClient(rt).FetchGames(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 || pages[0] != "1" || pages[1] != "2" {
		t.Fatalf("expected pages 1 and 2 requested, got %v", pages)
	}
	if len(games) != 2 {
		t.Fatalf("expected games from both pages, got %d", len(games))
	}
}

func TestFetchGamesRateLimited(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, `{"error": "rate limited"}`)
		resp.Header.Set("Retry-After", "30")
		return resp, nil
	})

	_, err := newTestClient(rt).FetchGames(context.Background(), "2024-01-15")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Fatalf("expected Retry-After honored, got %v", rl.RetryAfter)
	}
	if rl.Provider != "balldontlie" {
		t.Fatalf("expected provider name, got %s", rl.Provider)
	}
}

func TestFetchGamesUnexpectedStatus(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error": "bad key"}`), nil
	})

	_, err := newTestClient(rt).FetchGames(context.Background(), "2024-01-15")
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", statusErr.StatusCode)
	}
}

func TestFetchTopTeamsSortsByWins(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/standings" {
			t.Fatalf("expected /standings path, got %s", req.URL.Path)
		}
		if got := req.URL.Query().Get("season"); got != "2023" {
			t.Fatalf("expected season=2023, got %s", got)
		}
		return jsonResponse(http.StatusOK, `{
			"data": [
				{"team": {"abbreviation": "SAC"}, "wins": 40},
				{"team": {"abbreviation": "BOS"}, "wins": 58},
				{"team": {"abbreviation": "DEN"}, "wins": 53},
				{"team": {"abbreviation": "POR"}, "wins": 20}
			]
		}`), nil
	})

	teams, err := newTestClient(rt).FetchTopTeams(context.Background(), 2023, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 || teams[0] != "BOS" || teams[1] != "DEN" {
		t.Fatalf("expected [BOS DEN], got %v", teams)
	}
}

func TestFetchStandingsKeysByAbbreviation(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"data": [
				{"team": {"abbreviation": "BOS"}, "wins": 58, "losses": 24},
				{"team": {"abbreviation": "DEN"}, "wins": 53, "losses": 29},
				{"team": {"abbreviation": ""}, "wins": 1, "losses": 1}
			]
		}`), nil
	})

	records, err := newTestClient(rt).FetchStandings(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected blank abbreviations dropped, got %v", records)
	}
	if records["BOS"] != [2]int{58, 24} {
		t.Fatalf("unexpected record: %v", records["BOS"])
	}
}

func TestFetchStarPlayersJoinsNames(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/leaders" {
			t.Fatalf("expected /leaders path, got %s", req.URL.Path)
		}
		if got := req.URL.Query().Get("stat_type"); got != "pts" {
			t.Fatalf("expected stat_type=pts, got %s", got)
		}
		return jsonResponse(http.StatusOK, `{
			"data": [
				{"player": {"first_name": "Luka", "last_name": "Doncic"}, "value": 33.9},
				{"player": {"first_name": "Joel", "last_name": "Embiid"}, "value": 33.0},
				{"player": {"first_name": "", "last_name": ""}, "value": 30.0}
			]
		}`), nil
	})

	players, err := newTestClient(rt).FetchStarPlayers(context.Background(), 2023, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected blank names dropped, got %v", players)
	}
	if players[0] != "Luka Doncic" {
		t.Fatalf("expected full name join, got %s", players[0])
	}
}
