package contracts

// PlayerSeasonTotal is one leaderboard entry
// ⭐ SSOT: S4 → S5 시즌 합계 전달
type PlayerSeasonTotal struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	TeamName    string  `json:"team_name"`
	GamesPlayed int     `json:"games"`
	Offense     float64 `json:"offense"`
	Defense     float64 `json:"defense"`
}

// Overall is always derived, never stored
func (p PlayerSeasonTotal) Overall() float64 {
	return p.Offense + p.Defense
}

// LeaderboardRow is the exported, rounded form of a season total.
// Field order follows the CSV column order.
type LeaderboardRow struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	TeamName   string  `json:"team_name"`
	Games      int     `json:"games"`
	Offense    float64 `json:"off"`
	Defense    float64 `json:"def"`
	Overall    float64 `json:"overall"`
}

// PlayerRating is one player's possession-based season rating and wins above replacement
// ⭐ SSOT: S4 → S5 레이팅 전달
type PlayerRating struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	TeamName    string  `json:"team_name"`
	Possessions float64 `json:"poss"`

	OffRating float64 `json:"off_rtg"` // 100 포제션당 득점 (출전 중)
	DefRating float64 `json:"def_rtg"` // 100 포제션당 실점 (출전 중)
	OffNet    float64 `json:"o_net"`
	DefNet    float64 `json:"d_net"`
	OffWAR    float64 `json:"o_war"`
	DefWAR    float64 `json:"d_war"`
}

// TotalNet returns OffNet + DefNet
func (p PlayerRating) TotalNet() float64 {
	return p.OffNet + p.DefNet
}

// TotalWAR returns OffWAR + DefWAR
func (p PlayerRating) TotalWAR() float64 {
	return p.OffWAR + p.DefWAR
}
