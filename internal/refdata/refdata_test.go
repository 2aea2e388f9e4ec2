package refdata

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type stubStandings struct {
	teams []string
	err   error
	calls int
}

func (s *stubStandings) FetchTopTeams(ctx context.Context, season, n int) ([]string, error) {
	s.calls++
	return s.teams, s.err
}

type stubLeaders struct {
	players []string
	err     error
	calls   int
}

func (s *stubLeaders) FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error) {
	s.calls++
	return s.players, s.err
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-01-15", 2023},
		{"2024-09-30", 2023},
		{"2024-10-01", 2024},
		{"2024-12-31", 2024},
	}
	for _, tc := range cases {
		ts, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.date, err)
		}
		if got := CurrentSeason(ts); got != tc.want {
			t.Errorf("CurrentSeason(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestTopTierTeamsMemoized(t *testing.T) {
	standings := &stubStandings{teams: []string{"BOS", "DEN"}}
	c := NewCatalog(standings, nil, nil)

	first := c.TopTierTeams(context.Background())
	second := c.TopTierTeams(context.Background())
	if !reflect.DeepEqual(first, []string{"BOS", "DEN"}) {
		t.Fatalf("unexpected teams: %v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("memoized result changed: %v vs %v", first, second)
	}
	if standings.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", standings.calls)
	}
}

func TestTopTierTeamsRefreshAfterInterval(t *testing.T) {
	standings := &stubStandings{teams: []string{"BOS", "DEN"}}
	c := NewCatalog(standings, nil, nil)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.TopTierTeams(context.Background())

	c.now = func() time.Time { return base.Add(25 * time.Hour) }
	c.TopTierTeams(context.Background())
	if standings.calls != 2 {
		t.Fatalf("expected refresh after interval, got %d calls", standings.calls)
	}
}

func TestTopTierTeamsFallbackNotMemoized(t *testing.T) {
	standings := &stubStandings{err: errors.New("upstream down")}
	c := NewCatalog(standings, nil, nil)

	teams := c.TopTierTeams(context.Background())
	if !reflect.DeepEqual(teams, FallbackTopTeams) {
		t.Fatalf("expected fallback, got %v", teams)
	}

	// Upstream recovers: the next call retries instead of serving the
	// fallback for a day.
	standings.err = nil
	standings.teams = []string{"BOS"}
	teams = c.TopTierTeams(context.Background())
	if !reflect.DeepEqual(teams, []string{"BOS"}) {
		t.Fatalf("expected retry after failure, got %v", teams)
	}
	if standings.calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", standings.calls)
	}
}

func TestStarPlayersFallbackOnNilProvider(t *testing.T) {
	c := NewCatalog(nil, nil, nil)
	players := c.StarPlayers(context.Background())
	if !reflect.DeepEqual(players, FallbackStarPlayers) {
		t.Fatalf("expected fallback, got %v", players)
	}
}

func TestStarPlayerSet(t *testing.T) {
	leaders := &stubLeaders{players: []string{"Luka Doncic", "Nikola Jokic"}}
	c := NewCatalog(nil, leaders, nil)

	set := c.StarPlayerSet(context.Background())
	if len(set) != 2 {
		t.Fatalf("unexpected set: %v", set)
	}
	if _, ok := set["Luka Doncic"]; !ok {
		t.Fatal("expected Luka Doncic in set")
	}
}
