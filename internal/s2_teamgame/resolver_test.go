package s2_teamgame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

func team(game, id, opp string, pts float64) contracts.TeamGameRecord {
	return contracts.TeamGameRecord{GameID: game, TeamID: id, TeamName: id, OpponentTeamID: opp, Points: pts}
}

func TestScoringMix(t *testing.T) {
	tests := []struct {
		name        string
		self, opp   float64
		wantOffense float64
	}{
		{"80-70", 80, 70, 10 * 80.0 / 150.0},
		{"70-80", 70, 80, -10 * 70.0 / 150.0},
		{"0-0", 0, 0, 0},
		{"tie", 60, 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := tt.self - tt.opp
			share, fellBack := ScoringMix(team("g", "a", "b", tt.self), team("g", "b", "a", tt.opp), diff)
			assert.False(t, fellBack)
			assert.InDelta(t, tt.wantOffense, share.Offense, 1e-12)
			assert.InDelta(t, diff, share.Offense+share.Defense, 1e-12)
		})
	}
}

func TestLeagueBaseline(t *testing.T) {
	a := team("g", "a", "b", 80)
	a.FGA, a.FTA = 60, 20
	b := team("g", "b", "a", 70)
	b.FGA, b.FTA = 60, 20

	lgTS := LeagueTrueShooting([]contracts.TeamGameRecord{a, b}, 0.44)
	assert.InDelta(t, 150.0/(2*(2*(60+0.44*20))), lgTS, 1e-12)

	split := LeagueBaseline(lgTS, 0.44)
	share, fellBack := split(a, b, 10)
	require.False(t, fellBack)
	assert.InDelta(t, 5.0, share.Offense, 1e-9, "equal attempts: expected points are the game average")
	assert.InDelta(t, 5.0, share.Defense, 1e-9)

	a.FGA, a.FTA = 0, 0
	share, fellBack = split(a, b, 10)
	assert.True(t, fellBack, "no attempts falls back to scoring mix")
	assert.InDelta(t, 10*80.0/150.0, share.Offense, 1e-12)

	_, fellBack = LeagueBaseline(0, 0.44)(b, a, -10)
	assert.True(t, fellBack)
}

func TestNewSplitStrategy_UnknownPolicy(t *testing.T) {
	cfg := modelconfig.Default()
	cfg.Split.Policy = "coin_flip"
	_, err := NewSplitStrategy(cfg, nil)
	assert.Error(t, err)
}

func TestResolve_PairsAndDifferentials(t *testing.T) {
	a := team("g1", "a", "b", 80)
	a.TeamMinutes = 200
	b := team("g1", "b", "a", 70)

	records := &contracts.NormalizedRecords{
		Teams: []contracts.TeamGameRecord{a, b},
		Players: []contracts.PlayerGameRecord{
			{GameID: "g1", TeamID: "b", PlayerID: "p1", Minutes: 30},
			{GameID: "g1", TeamID: "b", PlayerID: "p2", Minutes: 25.5},
		},
	}

	var diag contracts.Diagnostics
	games, err := NewResolver(modelconfig.Default(), logger.Nop()).Resolve(records, &diag)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, contracts.TeamGameKey{GameID: "g1", TeamID: "a"}, games[0].Key)
	assert.Equal(t, 10.0, games[0].Differential)
	assert.Equal(t, 70.0, games[0].PointsAgainst)
	assert.Equal(t, 200.0, games[0].TeamMinutes, "declared minutes win")
	assert.InDelta(t, 5.333333, games[0].Share.Offense, 1e-6)
	assert.InDelta(t, 4.666667, games[0].Share.Defense, 1e-6)

	assert.Equal(t, -10.0, games[1].Differential)
	assert.Equal(t, 55.5, games[1].TeamMinutes, "summed from player minutes")
	assert.Equal(t, 1, diag.TeamMinutesFromPlayers)
	assert.Zero(t, diag.TeamMinutesDefaulted)
	assert.Zero(t, diag.UnpairedTeamRows)
}

func TestResolve_DefaultTeamMinutes(t *testing.T) {
	records := &contracts.NormalizedRecords{
		Teams: []contracts.TeamGameRecord{team("g1", "a", "b", 50), team("g1", "b", "a", 40)},
	}

	var diag contracts.Diagnostics
	games, err := NewResolver(modelconfig.Default(), logger.Nop()).Resolve(records, &diag)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, modelconfig.DefaultTeamMinutes, games[0].TeamMinutes)
	assert.Equal(t, 2, diag.TeamMinutesDefaulted)
}

func TestResolve_UnpairedGamesExcluded(t *testing.T) {
	records := &contracts.NormalizedRecords{
		Teams: []contracts.TeamGameRecord{
			// missing other side
			team("solo", "a", "b", 80),
			// three rows
			team("tri", "a", "b", 80),
			team("tri", "b", "a", 70),
			team("tri", "c", "a", 60),
			// opponents disagree
			team("bad", "a", "c", 80),
			team("bad", "b", "a", 70),
			team("ok", "a", "b", 61),
			team("ok", "b", "a", 59),
		},
	}

	var diag contracts.Diagnostics
	games, err := NewResolver(modelconfig.Default(), logger.Nop()).Resolve(records, &diag)
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Equal(t, "ok", games[0].Key.GameID)
	assert.Equal(t, "ok", games[1].Key.GameID)
	assert.Equal(t, 6, diag.UnpairedTeamRows)
}

func TestResolve_LeagueBaselineConservesDifferential(t *testing.T) {
	cfg := modelconfig.Default()
	cfg.Split.Policy = modelconfig.SplitLeagueBaseline

	a := team("g1", "a", "b", 77)
	a.FGA, a.FTA = 58, 22
	b := team("g1", "b", "a", 64)
	b.FGA, b.FTA = 66, 12
	c := team("g2", "c", "d", 50)
	d := team("g2", "d", "c", 52)

	var diag contracts.Diagnostics
	games, err := NewResolver(cfg, logger.Nop()).Resolve(&contracts.NormalizedRecords{
		Teams: []contracts.TeamGameRecord{a, b, c, d},
	}, &diag)
	require.NoError(t, err)
	require.Len(t, games, 4)

	for _, g := range games {
		assert.InDelta(t, g.Differential, g.Share.Offense+g.Share.Defense, 1e-9, g.Key.TeamID)
	}
	assert.Equal(t, 2, diag.BaselineFallbacks, "g2 carries no attempts")
}

func TestResolve_Possessions(t *testing.T) {
	a := team("g1", "a", "b", 80)
	a.FGA, a.TOV, a.FTA, a.OREB = 60, 12, 25, 10
	b := team("g1", "b", "a", 70)
	b.FGA, b.TOV, b.FTA, b.OREB = 65, 15, 10, 8

	var diag contracts.Diagnostics
	games, err := NewResolver(modelconfig.Default(), logger.Nop()).Resolve(&contracts.NormalizedRecords{
		Teams: []contracts.TeamGameRecord{a, b},
	}, &diag)
	require.NoError(t, err)
	require.Len(t, games, 2)

	tests := []struct {
		name    string
		game    contracts.TeamGame
		wantFor float64
		wantOpp float64
	}{
		{"home side", games[0], 73.0, 76.4},
		{"away side", games[1], 76.4, 73.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantFor, tt.game.Possessions, 1e-9)
			assert.InDelta(t, tt.wantOpp, tt.game.OpponentPossessions, 1e-9)
		})
	}
}
