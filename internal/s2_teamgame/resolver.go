package s2_teamgame

import (
	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Resolver pairs team rows into games and computes each side's differential and split
// ⭐ SSOT: S2 팀 경기 차이 계산은 여기서만
type Resolver struct {
	cfg    *modelconfig.Config
	logger *logger.Logger
}

// NewResolver creates a resolver for one partition run
func NewResolver(cfg *modelconfig.Config, log *logger.Logger) *Resolver {
	return &Resolver{cfg: cfg, logger: log}
}

// Resolve returns one TeamGame per paired team row, in first-appearance order.
// Games without exactly two mutually consistent rows are excluded as a whole.
func (r *Resolver) Resolve(records *contracts.NormalizedRecords, diag *contracts.Diagnostics) ([]contracts.TeamGame, error) {
	pairs := r.pair(records.Teams, diag)

	paired := make([]contracts.TeamGameRecord, 0, 2*len(pairs))
	for _, p := range pairs {
		paired = append(paired, p[0], p[1])
	}

	split, err := NewSplitStrategy(r.cfg, paired)
	if err != nil {
		return nil, err
	}

	playerMinutes := make(map[contracts.TeamGameKey]float64)
	for _, p := range records.Players {
		playerMinutes[p.Key()] += p.Minutes
	}

	ft := r.cfg.Split.FreeThrowWeight
	games := make([]contracts.TeamGame, 0, len(paired))
	for _, p := range pairs {
		for side := 0; side < 2; side++ {
			self, opp := p[side], p[1-side]
			diff := self.Points - opp.Points

			share, fellBack := split(self, opp, diff)
			if fellBack {
				diag.BaselineFallbacks++
			}

			games = append(games, contracts.TeamGame{
				Key:           self.Key(),
				TeamName:      self.TeamName,
				OpponentID:    opp.TeamID,
				PointsFor:     self.Points,
				PointsAgainst: opp.Points,
				Differential:  diff,
				TeamMinutes:   r.teamMinutes(self, playerMinutes[self.Key()], diag),
				Share:         share,

				Possessions:         Possessions(self, ft),
				OpponentPossessions: Possessions(opp, ft),
			})
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"team_games":         len(games),
		"unpaired_team_rows": diag.UnpairedTeamRows,
		"baseline_fallbacks": diag.BaselineFallbacks,
		"split_policy":       string(r.cfg.Split.Policy),
	}).Info("Team games resolved")

	if diag.UnpairedTeamRows > 0 {
		r.logger.WithField("unpaired_team_rows", diag.UnpairedTeamRows).Warn("Team rows without a consistent opponent were excluded")
	}

	return games, nil
}

// pair groups rows by game and keeps games with exactly two rows naming each other
func (r *Resolver) pair(teams []contracts.TeamGameRecord, diag *contracts.Diagnostics) [][2]contracts.TeamGameRecord {
	var order []string
	byGame := make(map[string][]contracts.TeamGameRecord)
	for _, t := range teams {
		if _, ok := byGame[t.GameID]; !ok {
			order = append(order, t.GameID)
		}
		byGame[t.GameID] = append(byGame[t.GameID], t)
	}

	var pairs [][2]contracts.TeamGameRecord
	for _, gameID := range order {
		rows := byGame[gameID]
		if len(rows) != 2 || rows[0].OpponentTeamID != rows[1].TeamID || rows[1].OpponentTeamID != rows[0].TeamID {
			diag.UnpairedTeamRows += len(rows)
			r.logger.WithFields(map[string]interface{}{
				"game_id": gameID,
				"rows":    len(rows),
			}).Debug("Unpaired game excluded")
			continue
		}
		pairs = append(pairs, [2]contracts.TeamGameRecord{rows[0], rows[1]})
	}
	return pairs
}

// teamMinutes: declared total, else summed player minutes, else the configured default
func (r *Resolver) teamMinutes(t contracts.TeamGameRecord, fromPlayers float64, diag *contracts.Diagnostics) float64 {
	if t.TeamMinutes > 0 {
		return t.TeamMinutes
	}
	if fromPlayers > 0 {
		diag.TeamMinutesFromPlayers++
		return fromPlayers
	}
	diag.TeamMinutesDefaulted++
	return r.cfg.Minutes.DefaultTeamMinutes
}
