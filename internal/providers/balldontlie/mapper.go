package balldontlie

import (
	"fmt"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

// mapGame normalizes an upstream game to the domain shape. Total points and
// final margin are derived here once; downstream consumers never re-derive
// them. Star players and lead changes are not available from this endpoint
// and are filled in later from the local store when present.
func mapGame(g gameResponse, date string) domain.Game {
	margin := g.HomeTeamScore - g.VisitorTeamScore
	if margin < 0 {
		margin = -margin
	}

	return domain.Game{
		ID:          fmt.Sprintf("%d", g.ID),
		Date:        date,
		Status:      mapStatus(g.Status),
		HomeTeam:    mapTeam(g.HomeTeam, g.HomeTeamScore),
		AwayTeam:    mapTeam(g.VisitorTeam, g.VisitorTeamScore),
		TotalPoints: g.HomeTeamScore + g.VisitorTeamScore,
		FinalMargin: domain.MarginOf(margin),
	}
}

func mapTeam(t teamResponse, score int) domain.TeamSide {
	name := t.FullName
	if name == "" {
		name = t.Name
	}
	return domain.TeamSide{
		Name:         name,
		Abbreviation: t.Abbreviation,
		Score:        score,
	}
}

func mapStatus(status string) domain.GameStatus {
	switch status {
	case "Final", "Ended":
		return domain.StatusFinal
	case "Postponed":
		return domain.StatusPostponed
	case "Canceled", "Cancelled":
		return domain.StatusCanceled
	default:
		return domain.StatusScheduled
	}
}
