package contracts

// Diagnostics counts locally recovered problems in one partition run.
// None of these are fatal.
type Diagnostics struct {
	FilesRead    int      `json:"files_read"`
	FilesSkipped int      `json:"files_skipped"`
	SkippedFiles []string `json:"skipped_files,omitempty"`

	PlayerRows       int `json:"player_rows"`
	TeamRows         int `json:"team_rows"`
	MissingKeyRows   int `json:"missing_key_rows"`
	DuplicatePlayers int `json:"duplicate_player_rows"`
	DuplicateTeams   int `json:"duplicate_team_rows"`

	UnpairedTeamRows    int `json:"unpaired_team_rows"`
	UnmatchedPlayerRows int `json:"unmatched_player_rows"`

	TeamMinutesFromPlayers int `json:"team_minutes_from_players"`
	TeamMinutesDefaulted   int `json:"team_minutes_defaulted"`
	BaselineFallbacks      int `json:"baseline_fallbacks"`

	DegenerateOffenseGames int `json:"degenerate_offense_games"`
	DegenerateDefenseGames int `json:"degenerate_defense_games"`
}

// Excluded returns the number of rows left out of the allocation
func (d Diagnostics) Excluded() int {
	return d.MissingKeyRows + d.UnpairedTeamRows + d.UnmatchedPlayerRows
}

// AsFields flattens the counters for structured logging
func (d Diagnostics) AsFields() map[string]interface{} {
	return map[string]interface{}{
		"files_read":                d.FilesRead,
		"files_skipped":             d.FilesSkipped,
		"player_rows":               d.PlayerRows,
		"team_rows":                 d.TeamRows,
		"missing_key_rows":          d.MissingKeyRows,
		"duplicate_player_rows":     d.DuplicatePlayers,
		"duplicate_team_rows":       d.DuplicateTeams,
		"unpaired_team_rows":        d.UnpairedTeamRows,
		"unmatched_player_rows":     d.UnmatchedPlayerRows,
		"team_minutes_from_players": d.TeamMinutesFromPlayers,
		"team_minutes_defaulted":    d.TeamMinutesDefaulted,
		"baseline_fallbacks":        d.BaselineFallbacks,
		"degenerate_offense_games":  d.DegenerateOffenseGames,
		"degenerate_defense_games":  d.DegenerateDefenseGames,
	}
}
