package s3_allocation

import (
	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Engine apportions each team-game share across the players of that game
// ⭐ SSOT: S3 선수 배분 로직은 여기서만
type Engine struct {
	cfg    *modelconfig.Config
	logger *logger.Logger
}

// NewEngine creates an allocation engine
func NewEngine(cfg *modelconfig.Config, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, logger: log}
}

type playerGroup struct {
	key     contracts.TeamGameKey
	players []contracts.PlayerGameRecord
}

// Allocate returns one contribution per matched player row, in input order per team-game.
// Rows whose (game, team) has no resolved team-game are counted and dropped.
func (e *Engine) Allocate(games []contracts.TeamGame, players []contracts.PlayerGameRecord, diag *contracts.Diagnostics) []contracts.PlayerGameContribution {
	byKey := make(map[contracts.TeamGameKey]*contracts.TeamGame, len(games))
	for i := range games {
		byKey[games[i].Key] = &games[i]
	}

	// 1차: 팀 경기별로 선수 묶기 (첫 등장 순서 유지)
	var groups []*playerGroup
	groupIdx := make(map[contracts.TeamGameKey]*playerGroup)
	for _, p := range players {
		if _, ok := byKey[p.Key()]; !ok {
			diag.UnmatchedPlayerRows++
			continue
		}
		g, ok := groupIdx[p.Key()]
		if !ok {
			g = &playerGroup{key: p.Key()}
			groupIdx[p.Key()] = g
			groups = append(groups, g)
		}
		g.players = append(g.players, p)
	}

	out := make([]contracts.PlayerGameContribution, 0, len(players))
	for _, g := range groups {
		out = append(out, e.allocateGame(byKey[g.key], g.players, diag)...)
	}

	e.logger.WithFields(map[string]interface{}{
		"team_games":               len(groups),
		"contributions":            len(out),
		"unmatched_player_rows":    diag.UnmatchedPlayerRows,
		"degenerate_offense_games": diag.DegenerateOffenseGames,
		"degenerate_defense_games": diag.DegenerateDefenseGames,
	}).Info("Allocation complete")

	if diag.UnmatchedPlayerRows > 0 {
		e.logger.WithField("unmatched_player_rows", diag.UnmatchedPlayerRows).Warn("Player rows without a resolved team game were excluded")
	}

	return out
}

// allocateGame runs the two-pass normalization for one team-game
func (e *Engine) allocateGame(tg *contracts.TeamGame, players []contracts.PlayerGameRecord, diag *contracts.Diagnostics) []contracts.PlayerGameContribution {
	wMin := e.cfg.Blend.MinuteWeight
	wStats := e.cfg.Blend.StatsWeight()

	shares := make([]float64, len(players))
	offW := make([]float64, len(players))
	defW := make([]float64, len(players))

	// pass 1: sums
	var sumOff, sumDef float64
	for i, p := range players {
		if tg.TeamMinutes > 0 {
			shares[i] = p.Minutes / tg.TeamMinutes
		}
		offW[i] = OffenseWeight(p, e.cfg.BoxWeights.Offense)
		defW[i] = DefenseWeight(p, e.cfg.BoxWeights.Defense)
		sumOff += offW[i]
		sumDef += defW[i]
	}

	if sumOff == 0 {
		diag.DegenerateOffenseGames++
	}
	if sumDef == 0 {
		diag.DegenerateDefenseGames++
	}

	// pass 2: divide and blend
	out := make([]contracts.PlayerGameContribution, len(players))
	for i, p := range players {
		alphaOff := shares[i]
		if sumOff > 0 {
			alphaOff = offW[i] / sumOff
		}
		alphaDef := shares[i]
		if sumDef > 0 {
			alphaDef = defW[i] / sumDef
		}

		out[i] = contracts.PlayerGameContribution{
			GameID:       p.GameID,
			TeamID:       p.TeamID,
			TeamName:     p.TeamName,
			PlayerID:     p.PlayerID,
			PlayerName:   p.PlayerName,
			MinutesShare: shares[i],
			OffenseAlpha: alphaOff,
			DefenseAlpha: alphaDef,
			Offense:      wMin*shares[i]*tg.Share.Offense + wStats*alphaOff*tg.Share.Offense,
			Defense:      wMin*shares[i]*tg.Share.Defense + wStats*alphaDef*tg.Share.Defense,
		}
	}
	return out
}
