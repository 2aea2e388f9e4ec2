package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixtureConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
nba_api:
  provider: fixture
database:
  path: ":memory:"
cache:
  enabled: true
  dir: %q
`, filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := writeFixtureConfig(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--config", cfg))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootShowsBestGame(t *testing.T) {
	out, err := runCommand(t, "--days", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Most engaging game") {
		t.Fatalf("expected headline, got: %s", out)
	}
	// The fixture's 3-point Celtics game wins on closeness.
	if !strings.Contains(out, "Boston Celtics") {
		t.Fatalf("expected winning matchup, got: %s", out)
	}
}

func TestRootExplainsBreakdown(t *testing.T) {
	out, err := runCommand(t, "--days", "1", "--explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "close game") || !strings.Contains(out, "star power") {
		t.Fatalf("expected breakdown lines, got: %s", out)
	}
}

func TestRootRejectsBadDays(t *testing.T) {
	_, err := runCommand(t, "--days", "99")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "between 1 and 30") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRankListsAllGames(t *testing.T) {
	out, err := runCommand(t, "rank", "--days", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, team := range []string{"Boston Celtics", "Denver Nuggets", "Sacramento Kings"} {
		if !strings.Contains(out, team) {
			t.Fatalf("expected %s in ranking, got: %s", team, out)
		}
	}
}

func TestTeamsListsTopTier(t *testing.T) {
	out, err := runCommand(t, "teams")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "BOS") {
		t.Fatalf("expected team abbreviations, got: %s", out)
	}
}

func TestStarsListsPlayers(t *testing.T) {
	out, err := runCommand(t, "stars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Nikola Jokic") {
		t.Fatalf("expected star players, got: %s", out)
	}
}

func TestSyncRunsAgainstFixture(t *testing.T) {
	out, err := runCommand(t, "sync", "--days", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Sync complete") {
		t.Fatalf("expected sync summary, got: %s", out)
	}
}

func TestCacheStats(t *testing.T) {
	out, err := runCommand(t, "cache", "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "entries: 0") {
		t.Fatalf("expected empty cache stats, got: %s", out)
	}
}
