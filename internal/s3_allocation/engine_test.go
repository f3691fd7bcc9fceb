package s3_allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

var keyA = contracts.TeamGameKey{GameID: "g1", TeamID: "a"}

// game80to70 is team A's side of an 80-70 win split by scoring mix
func game80to70(teamMinutes float64) contracts.TeamGame {
	off := 10 * 80.0 / 150.0
	return contracts.TeamGame{
		Key:           keyA,
		PointsFor:     80,
		PointsAgainst: 70,
		Differential:  10,
		TeamMinutes:   teamMinutes,
		Share:         contracts.AllocationShare{Offense: off, Defense: 10 - off},
	}
}

func player(id string, minutes float64) contracts.PlayerGameRecord {
	return contracts.PlayerGameRecord{GameID: "g1", TeamID: "a", PlayerID: id, PlayerName: id, Minutes: minutes}
}

func newEngine() *Engine {
	return NewEngine(modelconfig.Default(), logger.Nop())
}

func TestOffenseAndDefenseWeights(t *testing.T) {
	cfg := modelconfig.Default()
	p := contracts.PlayerGameRecord{
		PTS: 20, AST: 5, OREB: 2, FGM: 8, FGA: 15, FTM: 4, FTA: 6, TOV: 3,
		STL: 2, BLK: 1, DREB: 10, PF: 4,
	}

	assert.InDelta(t, 20+3.5+1.4-7-1-3, OffenseWeight(p, cfg.BoxWeights.Offense), 1e-12)
	assert.InDelta(t, 2+0.7+3-1, DefenseWeight(p, cfg.BoxWeights.Defense), 1e-12)

	bad := contracts.PlayerGameRecord{FGA: 10, TOV: 4, PF: 5}
	assert.Zero(t, OffenseWeight(bad, cfg.BoxWeights.Offense), "clipped at zero")
	assert.Zero(t, DefenseWeight(bad, cfg.BoxWeights.Defense), "clipped at zero")
}

func TestAllocate_DegenerateFallbackScenario(t *testing.T) {
	players := []contracts.PlayerGameRecord{
		player("p1", 40),
		player("p2", 40),
		player("p3", 40),
		player("p4", 40),
		player("p5", 40),
	}

	var diag contracts.Diagnostics
	out := newEngine().Allocate([]contracts.TeamGame{game80to70(200)}, players, &diag)
	require.Len(t, out, 5)

	c := out[0]
	assert.InDelta(t, 0.2, c.MinutesShare, 1e-12)
	assert.InDelta(t, 0.2, c.OffenseAlpha, 1e-12, "all weights zero uses minutes share")
	assert.InDelta(t, 1.067, c.Offense, 5e-4)
	assert.InDelta(t, 0.933, c.Defense, 5e-4)
	assert.Equal(t, 1, diag.DegenerateOffenseGames)
	assert.Equal(t, 1, diag.DegenerateDefenseGames)
}

func TestAllocate_Conservation(t *testing.T) {
	players := []contracts.PlayerGameRecord{
		{GameID: "g1", TeamID: "a", PlayerID: "p1", Minutes: 35, PTS: 24, FGM: 9, FGA: 17, AST: 4, DREB: 6, STL: 2},
		{GameID: "g1", TeamID: "a", PlayerID: "p2", Minutes: 30, PTS: 12, FGM: 5, FGA: 12, TOV: 4, BLK: 3, PF: 2},
		{GameID: "g1", TeamID: "a", PlayerID: "p3", Minutes: 28, PTS: 2, FGA: 6, FGM: 1, DREB: 8},
		{GameID: "g1", TeamID: "a", PlayerID: "p4", Minutes: 25, OREB: 3, AST: 6, PF: 5},
		{GameID: "g1", TeamID: "a", PlayerID: "p5", Minutes: 0},
	}
	var teamMinutes float64
	for _, p := range players {
		teamMinutes += p.Minutes
	}
	tg := game80to70(teamMinutes)

	var diag contracts.Diagnostics
	out := newEngine().Allocate([]contracts.TeamGame{tg}, players, &diag)
	require.Len(t, out, len(players))

	var sumOff, sumDef float64
	for _, c := range out {
		sumOff += c.Offense
		sumDef += c.Defense
		assert.GreaterOrEqual(t, c.OffenseAlpha, 0.0)
		assert.GreaterOrEqual(t, c.DefenseAlpha, 0.0)
		assert.GreaterOrEqual(t, c.MinutesShare, 0.0)
	}
	assert.InDelta(t, tg.Share.Offense, sumOff, 1e-9)
	assert.InDelta(t, tg.Share.Defense, sumDef, 1e-9)
	assert.Zero(t, diag.DegenerateOffenseGames)
	assert.Zero(t, out[4].MinutesShare)
}

func TestAllocate_ZeroTeamMinutes(t *testing.T) {
	var diag contracts.Diagnostics
	out := newEngine().Allocate([]contracts.TeamGame{game80to70(0)}, []contracts.PlayerGameRecord{player("p1", 30)}, &diag)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].MinutesShare)
	assert.Zero(t, out[0].Offense)
	assert.Zero(t, out[0].Defense)
}

func TestAllocate_UnmatchedPlayers(t *testing.T) {
	stray := player("p9", 20)
	stray.GameID = "g2"

	var diag contracts.Diagnostics
	out := newEngine().Allocate([]contracts.TeamGame{game80to70(40)}, []contracts.PlayerGameRecord{player("p1", 40), stray}, &diag)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].PlayerID)
	assert.Equal(t, 1, diag.UnmatchedPlayerRows)
}

func TestAllocate_MinutesOnlyBlend(t *testing.T) {
	cfg := modelconfig.Default()
	cfg.Blend.MinuteWeight = 1

	star := player("star", 20)
	star.PTS = 40
	bench := player("bench", 20)

	var diag contracts.Diagnostics
	out := NewEngine(cfg, logger.Nop()).Allocate([]contracts.TeamGame{game80to70(40)}, []contracts.PlayerGameRecord{star, bench}, &diag)
	require.Len(t, out, 2)
	assert.InDelta(t, out[0].Offense, out[1].Offense, 1e-12, "box score ignored when stats weight is zero")
}
