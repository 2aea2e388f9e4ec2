package balldontlie

type gamesResponse struct {
	Data []gameResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type gameResponse struct {
	ID               int          `json:"id"`
	Date             string       `json:"date"`
	Status           string       `json:"status"`
	Postseason       bool         `json:"postseason"`
	HomeTeam         teamResponse `json:"home_team"`
	VisitorTeam      teamResponse `json:"visitor_team"`
	HomeTeamScore    int          `json:"home_team_score"`
	VisitorTeamScore int          `json:"visitor_team_score"`
	Season           int          `json:"season"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

type metaResponse struct {
	TotalPages int `json:"total_pages"`
}

type standingsResponse struct {
	Data []standingResponse `json:"data"`
}

type standingResponse struct {
	Team   teamResponse `json:"team"`
	Wins   int          `json:"wins"`
	Losses int          `json:"losses"`
}

type leadersResponse struct {
	Data []leaderResponse `json:"data"`
}

type leaderResponse struct {
	Player playerResponse `json:"player"`
	Value  float64        `json:"value"`
}

type playerResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
