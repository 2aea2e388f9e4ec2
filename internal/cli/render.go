package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	rankStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("249")).PaddingLeft(2)
)

func matchupLine(g domain.Game) string {
	return fmt.Sprintf("%s %d @ %s %d",
		g.AwayTeam.Name, g.AwayTeam.Score,
		g.HomeTeam.Name, g.HomeTeam.Score,
	)
}

func renderBestGame(rg domain.RankedGame, explain bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Most engaging game"))
	b.WriteString("\n")

	card := fmt.Sprintf("%s\n%s   %s",
		matchupLine(rg.Game),
		dimStyle.Render(rg.Game.Date),
		scoreStyle.Render(fmt.Sprintf("%.2f pts", rg.Score)),
	)
	b.WriteString(cardStyle.Render(card))
	b.WriteString("\n")

	if explain {
		b.WriteString(renderBreakdown(rg.Breakdown))
	}
	return b.String()
}

func renderBreakdown(bd domain.Breakdown) string {
	lines := []string{
		fmt.Sprintf("top-tier teams   %d in game      %+.2f", bd.Top5Teams.Count, bd.Top5Teams.Points),
		fmt.Sprintf("close game       margin %-3d       %+.2f", bd.CloseGame.Margin, bd.CloseGame.Points),
		fmt.Sprintf("total points     %d scored      %+.2f", bd.TotalPoints.Total, bd.TotalPoints.Points),
		fmt.Sprintf("star power       %d stars         %+.2f", bd.StarPower.Count, bd.StarPower.Points),
		fmt.Sprintf("lead changes     %d changes       %+.2f", bd.LeadChanges.Count, bd.LeadChanges.Points),
	}
	if bd.FavoriteTeam.HasFavorite {
		lines = append(lines, fmt.Sprintf("favorite team    playing          %+.2f", bd.FavoriteTeam.Points))
	}
	return detailStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func renderRanking(games []domain.RankedGame, explain bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d games ranked by engagement", len(games))))
	b.WriteString("\n\n")
	for i, rg := range games {
		b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
			rankStyle.Render(fmt.Sprintf("%2d.", i+1)),
			matchupLine(rg.Game),
			scoreStyle.Render(fmt.Sprintf("%.2f", rg.Score)),
			dimStyle.Render(rg.Game.Date),
		))
		if explain {
			b.WriteString(renderBreakdown(rg.Breakdown))
		}
	}
	return b.String()
}

func renderList(title string, items []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%s %s\n", rankStyle.Render(fmt.Sprintf("%2d.", i+1)), item))
	}
	return b.String()
}
