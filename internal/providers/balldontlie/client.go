// Package balldontlie fetches games, standings, and scoring leaders from the
// balldontlie API and maps them to domain models.
package balldontlie

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxPages   int
}

// Client is a balldontlie API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	maxPages   int
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

// FetchGames retrieves the completed games for one date (YYYY-MM-DD).
// Games that are not Final are dropped at the mapper.
func (c *Client) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	page := 1
	games := make([]domain.Game, 0)

	for {
		query := url.Values{}
		query.Set("start_date", date)
		query.Set("end_date", date)
		query.Set("per_page", strconv.Itoa(defaultPerPage))
		query.Set("page", strconv.Itoa(page))

		var payload gamesResponse
		if err := c.getJSON(ctx, "/games", query, &payload); err != nil {
			return nil, err
		}

		for _, g := range payload.Data {
			if g.Status != statusFinal {
				continue
			}
			games = append(games, mapGame(g, date))
		}

		totalPages := payload.Meta.TotalPages
		if totalPages > 0 {
			if page >= totalPages {
				break
			}
		} else if len(payload.Data) < defaultPerPage {
			break
		}
		if page >= c.maxPages {
			break
		}
		page++
	}

	return games, nil
}

// FetchTopTeams returns the abbreviations of the n winningest teams in the
// season's standings.
func (c *Client) FetchTopTeams(ctx context.Context, season, n int) ([]string, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))

	var payload standingsResponse
	if err := c.getJSON(ctx, "/standings", query, &payload); err != nil {
		return nil, err
	}

	standings := payload.Data
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Wins > standings[j].Wins
	})

	if n <= 0 {
		n = 5
	}
	teams := make([]string, 0, n)
	for _, s := range standings {
		if len(teams) == n {
			break
		}
		if abbr := s.Team.Abbreviation; abbr != "" {
			teams = append(teams, abbr)
		}
	}
	return teams, nil
}

// FetchStandings returns every team's win/loss record for a season, keyed
// by abbreviation.
func (c *Client) FetchStandings(ctx context.Context, season int) (map[string][2]int, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))

	var payload standingsResponse
	if err := c.getJSON(ctx, "/standings", query, &payload); err != nil {
		return nil, err
	}

	records := make(map[string][2]int, len(payload.Data))
	for _, s := range payload.Data {
		if s.Team.Abbreviation == "" {
			continue
		}
		records[s.Team.Abbreviation] = [2]int{s.Wins, s.Losses}
	}
	return records, nil
}

// FetchStarPlayers returns the full names of the season's top scorers.
func (c *Client) FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))
	query.Set("stat_type", "pts")

	var payload leadersResponse
	if err := c.getJSON(ctx, "/leaders", query, &payload); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 30
	}
	players := make([]string, 0, limit)
	for _, leader := range payload.Data {
		if len(players) == limit {
			break
		}
		name := strings.TrimSpace(leader.Player.FirstName + " " + leader.Player.LastName)
		if name != "" {
			players = append(players, name)
		}
	}
	return players, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
