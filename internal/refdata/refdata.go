// Package refdata resolves the reference sets the scorer depends on: the
// current top-tier teams and the league's star players. Both come from the
// standings and leaders endpoints, are memoized for a day, and fall back to
// static defaults when upstream is unavailable.
package refdata

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
)

const (
	refreshInterval  = 24 * time.Hour
	topTeamCount     = 5
	starPlayerLimit  = 30
	seasonRolloverMo = time.October
)

// FallbackTopTeams is used when the standings endpoint is unavailable.
var FallbackTopTeams = []string{"CLE", "BOS", "OKC", "HOU", "MEM"}

// FallbackStarPlayers is used when the leaders endpoint is unavailable.
var FallbackStarPlayers = []string{
	"LeBron James",
	"Stephen Curry",
	"Kevin Durant",
	"Giannis Antetokounmpo",
	"Luka Doncic",
	"Nikola Jokic",
	"Joel Embiid",
	"Jayson Tatum",
	"Damian Lillard",
	"Anthony Davis",
	"Devin Booker",
	"Kawhi Leonard",
	"Jimmy Butler",
	"Donovan Mitchell",
	"Trae Young",
	"Kyrie Irving",
	"Shai Gilgeous-Alexander",
	"Anthony Edwards",
	"Tyrese Haliburton",
	"Ja Morant",
	"Jaylen Brown",
	"De'Aaron Fox",
	"Domantas Sabonis",
	"Bam Adebayo",
	"Pascal Siakam",
	"Paolo Banchero",
	"Chet Holmgren",
	"Victor Wembanyama",
	"Lauri Markkanen",
	"Jalen Brunson",
}

// CurrentSeason maps a point in time to the season that starts that fall.
// Seasons roll over in October: January 2024 belongs to the 2023 season.
func CurrentSeason(t time.Time) int {
	if t.Month() >= seasonRolloverMo {
		return t.Year()
	}
	return t.Year() - 1
}

// Catalog memoizes the reference sets. Fetch failures return the fallback
// without poisoning the memo, so the next call retries upstream.
type Catalog struct {
	standings providers.StandingsProvider
	leaders   providers.LeadersProvider
	logger    *slog.Logger
	now       func() time.Time

	mu         sync.Mutex
	topTeams   []string
	topFresh   time.Time
	stars      []string
	starsFresh time.Time
}

// NewCatalog builds a catalog over the given providers. Either provider may
// be nil, in which case its set is always the fallback.
func NewCatalog(standings providers.StandingsProvider, leaders providers.LeadersProvider, logger *slog.Logger) *Catalog {
	return &Catalog{
		standings: standings,
		leaders:   leaders,
		logger:    logger,
		now:       time.Now,
	}
}

// TopTierTeams returns the abbreviations of the current top teams.
func (c *Catalog) TopTierTeams(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.topTeams != nil && now.Sub(c.topFresh) < refreshInterval {
		return c.topTeams
	}
	if c.standings == nil {
		return FallbackTopTeams
	}

	teams, err := c.standings.FetchTopTeams(ctx, CurrentSeason(now), topTeamCount)
	if err != nil || len(teams) == 0 {
		logging.Warn(c.logger, "using fallback top teams", slog.Any("error", err))
		return FallbackTopTeams
	}
	c.topTeams = teams
	c.topFresh = now
	return teams
}

// TopTierTeamSet returns the top teams as a membership set.
func (c *Catalog) TopTierTeamSet(ctx context.Context) map[string]struct{} {
	return toSet(c.TopTierTeams(ctx))
}

// StarPlayers returns the full names of the league's current top scorers.
func (c *Catalog) StarPlayers(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.stars != nil && now.Sub(c.starsFresh) < refreshInterval {
		return c.stars
	}
	if c.leaders == nil {
		return FallbackStarPlayers
	}

	players, err := c.leaders.FetchStarPlayers(ctx, CurrentSeason(now), starPlayerLimit)
	if err != nil || len(players) == 0 {
		logging.Warn(c.logger, "using fallback star players", slog.Any("error", err))
		return FallbackStarPlayers
	}
	c.stars = players
	c.starsFresh = now
	return players
}

// StarPlayerSet returns the star players as a membership set.
func (c *Catalog) StarPlayerSet(ctx context.Context) map[string]struct{} {
	return toSet(c.StarPlayers(ctx))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
