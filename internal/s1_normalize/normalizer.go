package s1_normalize

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/s0_source"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Column aliases accepted across source files. Lookup is case-insensitive.
var (
	colGameID     = []string{"game_id", "gameid", "game"}
	colTeamID     = []string{"team_id", "teamid"}
	colTeamName   = []string{"team_name", "team"}
	colOppTeamID  = []string{"opp_team_id", "opponent_id"}
	colOppName    = []string{"opp_team_name", "opponent", "opp"}
	colPlayerName = []string{"player_name", "player", "name"}
	colJersey     = []string{"jersey", "no", "#", "number"}

	colMinutes     = []string{"MIN", "minutes", "mins"}
	colTeamMinutes = []string{"team_min", "team_minutes", "MIN", "minutes"}
	colFGM         = []string{"FGM"}
	colFGA         = []string{"FGA"}
	colFG          = []string{"FG"}
	colFTM         = []string{"FTM"}
	colFTA         = []string{"FTA"}
	colFT          = []string{"FT"}
	colOREB        = []string{"OREB", "ORB", "off_reb"}
	colDREB        = []string{"DREB", "DRB", "def_reb"}
	colAST         = []string{"AST", "assists"}
	colSTL         = []string{"STL", "steals"}
	colBLK         = []string{"BLK", "blocks"}
	colTOV         = []string{"TO", "TOV", "turnovers"}
	colPF          = []string{"PF", "fouls"}
	colPTS         = []string{"PTS", "points"}
)

// Normalizer turns decoded source tables into typed records
// ⭐ SSOT: S1 정규화 로직은 여기서만
type Normalizer struct {
	season int
	title  cases.Caser // not safe for concurrent use; one Normalizer per partition
	logger *logger.Logger
}

// NewNormalizer creates a normalizer for one partition run
func NewNormalizer(season int, log *logger.Logger) *Normalizer {
	return &Normalizer{
		season: season,
		title:  cases.Title(language.Und),
		logger: log,
	}
}

// Normalize cleans all player and team tables of a partition.
// Rows are never dropped for bad numerics; rows without join keys are counted and excluded.
// A team known only by name in one file family takes the explicit id the other family gives it.
func (n *Normalizer) Normalize(src *s0_source.Sources, diag *contracts.Diagnostics) *contracts.NormalizedRecords {
	aliases := newTeamAliases()

	var players []playerRow
	for _, t := range src.BoxScores {
		for _, row := range t.Rows {
			pr, ok := n.playerRecord(t, row)
			if !ok {
				diag.MissingKeyRows++
				continue
			}
			if !pr.teamFromName {
				aliases.add(pr.rec.GameID, pr.rec.TeamName, pr.rec.TeamID)
			}
			players = append(players, pr)
		}
	}

	var teams []teamRow
	for _, t := range src.TeamStats {
		for _, row := range t.Rows {
			tr, ok := n.teamRecord(t, row)
			if !ok {
				diag.MissingKeyRows++
				continue
			}
			if !tr.teamFromName {
				aliases.add(tr.rec.GameID, tr.rec.TeamName, tr.rec.TeamID)
			}
			if !tr.oppFromName {
				aliases.add(tr.rec.GameID, tr.oppName, tr.rec.OpponentTeamID)
			}
			teams = append(teams, tr)
		}
	}

	out := &contracts.NormalizedRecords{}

	seenPlayers := make(map[[3]string]struct{})
	for _, pr := range players {
		rec := pr.rec
		if pr.teamFromName {
			if id, ok := aliases.lookup(rec.GameID, rec.TeamName); ok {
				rec.TeamID = id
				rec.PlayerID = PlayerID(id, n.season, rec.PlayerName, rec.Jersey)
			}
		}
		k := [3]string{rec.GameID, rec.TeamID, rec.PlayerID}
		if _, dup := seenPlayers[k]; dup {
			diag.DuplicatePlayers++
			continue
		}
		seenPlayers[k] = struct{}{}
		out.Players = append(out.Players, rec)
	}

	seenTeams := make(map[contracts.TeamGameKey]struct{})
	for _, tr := range teams {
		rec := tr.rec
		if tr.teamFromName {
			if id, ok := aliases.lookup(rec.GameID, rec.TeamName); ok {
				rec.TeamID = id
			}
		}
		if tr.oppFromName {
			if id, ok := aliases.lookup(rec.GameID, tr.oppName); ok {
				rec.OpponentTeamID = id
			}
		}
		if _, dup := seenTeams[rec.Key()]; dup {
			diag.DuplicateTeams++
			continue
		}
		seenTeams[rec.Key()] = struct{}{}
		out.Teams = append(out.Teams, rec)
	}

	diag.PlayerRows = len(out.Players)
	diag.TeamRows = len(out.Teams)

	n.logger.WithFields(map[string]interface{}{
		"player_rows":       len(out.Players),
		"team_rows":         len(out.Teams),
		"missing_key_rows":  diag.MissingKeyRows,
		"duplicate_players": diag.DuplicatePlayers,
		"duplicate_teams":   diag.DuplicateTeams,
	}).Info("Records normalized")

	return out
}

// playerRow carries whether the team id was backfilled from the team name
type playerRow struct {
	rec          contracts.PlayerGameRecord
	teamFromName bool
}

type teamRow struct {
	rec          contracts.TeamGameRecord
	oppName      string
	teamFromName bool
	oppFromName  bool
}

// teamAliases maps a team-name slug to the explicit team id seen for it,
// per game first and partition-wide when the name resolves to a single id
type teamAliases struct {
	byGame map[[2]string]string
	global map[string]string
	clash  map[string]bool
}

func newTeamAliases() *teamAliases {
	return &teamAliases{
		byGame: make(map[[2]string]string),
		global: make(map[string]string),
		clash:  make(map[string]bool),
	}
}

func (a *teamAliases) add(gameID, name, id string) {
	key := Slug(name)
	if key == "" || id == "" || key == id {
		return
	}
	if _, ok := a.byGame[[2]string{gameID, key}]; !ok {
		a.byGame[[2]string{gameID, key}] = id
	}
	if prev, ok := a.global[key]; ok && prev != id {
		a.clash[key] = true
		return
	}
	a.global[key] = id
}

func (a *teamAliases) lookup(gameID, name string) (string, bool) {
	key := Slug(name)
	if id, ok := a.byGame[[2]string{gameID, key}]; ok {
		return id, true
	}
	if a.clash[key] {
		return "", false
	}
	id, ok := a.global[key]
	return id, ok
}

// teamIdentity backfills the team id from the team name when the id column is absent or blank
func teamIdentity(t *s0_source.Table, row []string, idCols, nameCols []string) (id, name string, fromName bool) {
	name = CleanText(t.Value(row, nameCols...))
	rawID := CleanText(t.Value(row, idCols...))
	if rawID == "" {
		rawID = name
		fromName = true
	}
	if name == "" {
		name = rawID
	}
	return Slug(rawID), name, fromName
}

func (n *Normalizer) playerRecord(t *s0_source.Table, row []string) (playerRow, bool) {
	gameID := CanonicalGameID(t.Value(row, colGameID...))
	teamID, teamName, fromName := teamIdentity(t, row, colTeamID, colTeamName)
	name := n.DisplayName(t.Value(row, colPlayerName...))
	if gameID == "" || teamID == "" || name == "" {
		return playerRow{}, false
	}

	jersey := CleanText(t.Value(row, colJersey...))

	rec := contracts.PlayerGameRecord{
		GameID:     gameID,
		TeamID:     teamID,
		TeamName:   teamName,
		PlayerID:   PlayerID(teamID, n.season, name, jersey),
		PlayerName: name,
		Jersey:     jersey,
		Minutes:    ParseMinutes(t.Value(row, colMinutes...)),
		OREB:       ParseNumber(t.Value(row, colOREB...)),
		DREB:       ParseNumber(t.Value(row, colDREB...)),
		AST:        ParseNumber(t.Value(row, colAST...)),
		STL:        ParseNumber(t.Value(row, colSTL...)),
		BLK:        ParseNumber(t.Value(row, colBLK...)),
		TOV:        ParseNumber(t.Value(row, colTOV...)),
		PF:         ParseNumber(t.Value(row, colPF...)),
		PTS:        ParseNumber(t.Value(row, colPTS...)),
	}
	rec.FGM, rec.FGA = madeAttempted(t, row, colFGM, colFGA, colFG)
	rec.FTM, rec.FTA = madeAttempted(t, row, colFTM, colFTA, colFT)
	return playerRow{rec: rec, teamFromName: fromName}, true
}

func (n *Normalizer) teamRecord(t *s0_source.Table, row []string) (teamRow, bool) {
	gameID := CanonicalGameID(t.Value(row, colGameID...))
	teamID, teamName, fromName := teamIdentity(t, row, colTeamID, colTeamName)
	oppID, oppName, oppFromName := teamIdentity(t, row, colOppTeamID, colOppName)
	if gameID == "" || teamID == "" {
		return teamRow{}, false
	}

	rec := contracts.TeamGameRecord{
		GameID:         gameID,
		TeamID:         teamID,
		TeamName:       teamName,
		OpponentTeamID: oppID,
		Points:         ParseNumber(t.Value(row, colPTS...)),
		TOV:            ParseNumber(t.Value(row, colTOV...)),
		OREB:           ParseNumber(t.Value(row, colOREB...)),
		DREB:           ParseNumber(t.Value(row, colDREB...)),
		TeamMinutes:    ParseMinutes(t.Value(row, colTeamMinutes...)),
	}
	rec.FGM, rec.FGA = madeAttempted(t, row, colFGM, colFGA, colFG)
	rec.FTM, rec.FTA = madeAttempted(t, row, colFTM, colFTA, colFT)
	return teamRow{rec: rec, oppName: oppName, teamFromName: fromName, oppFromName: oppFromName}, true
}

// madeAttempted prefers split columns and falls back to a combined "X-Y" column
func madeAttempted(t *s0_source.Table, row []string, madeCols, attCols, combinedCols []string) (float64, float64) {
	if !t.Has(madeCols...) && !t.Has(attCols...) && t.Has(combinedCols...) {
		return ParseMadeAttempted(t.Value(row, combinedCols...))
	}
	return ParseNumber(t.Value(row, madeCols...)), ParseNumber(t.Value(row, attCols...))
}

// DisplayName renders a player name in title case regardless of source casing
func (n *Normalizer) DisplayName(raw string) string {
	s := CleanText(raw)
	if s == "" {
		return ""
	}
	return n.title.String(s)
}

// PlayerID builds a stable identity: team, season, name and optional jersey
func PlayerID(teamID string, season int, name, jersey string) string {
	id := Slug(teamID) + "_" + strconv.Itoa(season) + "_" + Slug(name)
	if j := Slug(jersey); j != "" {
		id += "_" + j
	}
	return id
}
