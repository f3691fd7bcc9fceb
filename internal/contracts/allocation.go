package contracts

// AllocationShare decomposes a team-game differential into offense and defense.
// Offense + Defense == Differential.
type AllocationShare struct {
	Offense float64 `json:"offense_share"`
	Defense float64 `json:"defense_share"`
}

// TeamGame is a paired team-game with its resolved differential
// ⭐ SSOT: S2 → S3 팀 경기 결과 전달
type TeamGame struct {
	Key           TeamGameKey     `json:"key"`
	TeamName      string          `json:"team_name"`
	OpponentID    string          `json:"opp_team_id"`
	PointsFor     float64         `json:"points_for"`
	PointsAgainst float64         `json:"points_against"`
	Differential  float64         `json:"differential"`
	TeamMinutes   float64         `json:"team_minutes"`
	Share         AllocationShare `json:"share"`

	// FGA + TOV + w×FTA - OREB for each side
	Possessions         float64 `json:"possessions"`
	OpponentPossessions float64 `json:"opp_possessions"`
}

// PlayerGameContribution is one player's attributed value in one game
// ⭐ SSOT: S3 → S4 선수 경기 기여도 전달
type PlayerGameContribution struct {
	GameID     string `json:"game_id"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	MinutesShare float64 `json:"minutes_share"`
	OffenseAlpha float64 `json:"offense_alpha"`
	DefenseAlpha float64 `json:"defense_alpha"`

	Offense float64 `json:"offense"`
	Defense float64 `json:"defense"`
}

// Overall returns offense + defense for the game
func (c PlayerGameContribution) Overall() float64 {
	return c.Offense + c.Defense
}
