package contracts

// TeamGameKey identifies one team's side of one game
// ⭐ SSOT: 선수 기록 ↔ 팀 기록 조인 키
type TeamGameKey struct {
	GameID string
	TeamID string
}

// PlayerGameRecord is one normalized box-score row: one player in one game
// ⭐ SSOT: S1 → S3 선수 경기 기록 전달
type PlayerGameRecord struct {
	GameID     string `json:"game_id"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Jersey     string `json:"jersey,omitempty"`

	Minutes float64 `json:"minutes"`
	FGM     float64 `json:"fgm"`
	FGA     float64 `json:"fga"`
	FTM     float64 `json:"ftm"`
	FTA     float64 `json:"fta"`
	OREB    float64 `json:"oreb"`
	DREB    float64 `json:"dreb"`
	AST     float64 `json:"ast"`
	STL     float64 `json:"stl"`
	BLK     float64 `json:"blk"`
	TOV     float64 `json:"tov"`
	PF      float64 `json:"pf"`
	PTS     float64 `json:"pts"`
}

// Key returns the team-game this row joins to
func (r PlayerGameRecord) Key() TeamGameKey {
	return TeamGameKey{GameID: r.GameID, TeamID: r.TeamID}
}

// TeamGameRecord is one normalized team-totals row: one team in one game
// ⭐ SSOT: S1 → S2 팀 경기 기록 전달
type TeamGameRecord struct {
	GameID         string `json:"game_id"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	OpponentTeamID string `json:"opp_team_id"`

	Points      float64 `json:"pts"`
	FGM         float64 `json:"fgm"`
	FGA         float64 `json:"fga"`
	FTM         float64 `json:"ftm"`
	FTA         float64 `json:"fta"`
	TOV         float64 `json:"tov"`
	OREB        float64 `json:"oreb"`
	DREB        float64 `json:"dreb"`
	TeamMinutes float64 `json:"team_min"` // 0 = 미기재
}

// Key returns the team-game identity of the row
func (r TeamGameRecord) Key() TeamGameKey {
	return TeamGameKey{GameID: r.GameID, TeamID: r.TeamID}
}

// NormalizedRecords is the S1 output for one partition
type NormalizedRecords struct {
	Players []PlayerGameRecord
	Teams   []TeamGameRecord
}
