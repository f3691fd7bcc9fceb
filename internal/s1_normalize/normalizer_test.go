package s1_normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/s0_source"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

func mustTable(t *testing.T, csv string) *s0_source.Table {
	t.Helper()
	table, err := s0_source.DecodeTable("test.csv", []byte(csv))
	require.NoError(t, err)
	return table
}

func TestNormalize_PlayerRows(t *testing.T) {
	box := mustTable(t, "game_id,team_name,player_name,MIN,FGM,FGA,FTM,FTA,OREB,DREB,AST,STL,BLK,TO,PF,PTS\n"+
		"2025-01-10 UNB v MTA,UNB Reds,JOHN   SMITH,31.5,5,11,2,4,1,6,3,2,1,2,3,12\n"+
		"2025-01-10_unb_v_mta,UNB Reds,jane doe,DNP,x,,,,,,,,,,,\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{BoxScores: []*s0_source.Table{box}}, &diag)

	require.Len(t, out.Players, 2, "bad numerics never drop a row")
	p := out.Players[0]
	assert.Equal(t, "2025-01-10-unb-mta", p.GameID)
	assert.Equal(t, "unb-reds", p.TeamID, "team id backfilled from team name")
	assert.Equal(t, "UNB Reds", p.TeamName)
	assert.Equal(t, "John Smith", p.PlayerName)
	assert.Equal(t, "unb-reds_2025_john-smith", p.PlayerID)
	assert.Equal(t, 31.5, p.Minutes)
	assert.Equal(t, 11.0, p.FGA)
	assert.Equal(t, 2.0, p.TOV)
	assert.Equal(t, 12.0, p.PTS)

	q := out.Players[1]
	assert.Equal(t, p.GameID, q.GameID, "game ids canonicalize to the same key")
	assert.Equal(t, "Jane Doe", q.PlayerName)
	assert.Zero(t, q.Minutes)
	assert.Zero(t, q.FGM)

	assert.Equal(t, 2, diag.PlayerRows)
	assert.Zero(t, diag.MissingKeyRows)
}

func TestNormalize_CombinedShootingColumnsAndAliases(t *testing.T) {
	box := mustTable(t, "Game_ID,Team,Player,Jersey,Minutes,FG,FT,ORB,DRB,TOV,Points\n"+
		"g1,MTA,Sam Lee,4,20:30,4-9,1-2,2,3,1,9\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{BoxScores: []*s0_source.Table{box}}, &diag)

	require.Len(t, out.Players, 1)
	p := out.Players[0]
	assert.Equal(t, "mta_2025_sam-lee_4", p.PlayerID)
	assert.InDelta(t, 20.5, p.Minutes, 1e-12)
	assert.Equal(t, 4.0, p.FGM)
	assert.Equal(t, 9.0, p.FGA)
	assert.Equal(t, 1.0, p.FTM)
	assert.Equal(t, 2.0, p.FTA)
	assert.Equal(t, 2.0, p.OREB)
	assert.Equal(t, 3.0, p.DREB)
	assert.Equal(t, 1.0, p.TOV)
	assert.Equal(t, 9.0, p.PTS)
}

func TestNormalize_MissingKeysAndDuplicates(t *testing.T) {
	box1 := mustTable(t, "game_id,team_name,player_name,PTS\n"+
		"g1,MTA,Sam Lee,9\n"+
		",MTA,No Game,4\n"+
		"g1,,No Team,4\n"+
		"g1,MTA,,4\n")
	box2 := mustTable(t, "game_id,team_name,player_name,PTS\n"+
		"G1,mta,SAM LEE,30\n")
	team := mustTable(t, "game_id,team_name,opp_team_name,PTS\n"+
		"g1,MTA,UNB,70\n"+
		"g1,MTA,UNB,99\n"+
		",UNB,MTA,80\n")

	var diag contracts.Diagnostics
	src := &s0_source.Sources{
		BoxScores: []*s0_source.Table{box1, box2},
		TeamStats: []*s0_source.Table{team},
	}
	out := NewNormalizer(2025, logger.Nop()).Normalize(src, &diag)

	require.Len(t, out.Players, 1)
	assert.Equal(t, 9.0, out.Players[0].PTS, "first occurrence wins")
	require.Len(t, out.Teams, 1)
	assert.Equal(t, 70.0, out.Teams[0].Points)

	assert.Equal(t, 4, diag.MissingKeyRows)
	assert.Equal(t, 1, diag.DuplicatePlayers)
	assert.Equal(t, 1, diag.DuplicateTeams)
}

func TestNormalize_TeamRows(t *testing.T) {
	team := mustTable(t, "game_id,team_id,team_name,opp_team_id,opp_team_name,team_min,FGM,FGA,FTM,FTA,OREB,DREB,TOV,PTS\n"+
		"g1,101,UNB Reds,,MTA,200,30,64,10,14,9,25,12,80\n"+
		"g1,,MTA,101,UNB Reds,,25,60,15,20,8,22,15,70\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{TeamStats: []*s0_source.Table{team}}, &diag)

	require.Len(t, out.Teams, 2)
	a, b := out.Teams[0], out.Teams[1]

	assert.Equal(t, "101", a.TeamID)
	assert.Equal(t, "UNB Reds", a.TeamName)
	assert.Equal(t, "mta", a.OpponentTeamID, "opponent id backfilled from opponent name")
	assert.Equal(t, 200.0, a.TeamMinutes)
	assert.Equal(t, 64.0, a.FGA)
	assert.Equal(t, 80.0, a.Points)

	assert.Equal(t, "mta", b.TeamID)
	assert.Equal(t, "101", b.OpponentTeamID)
	assert.Zero(t, b.TeamMinutes, "absent minutes stay 0 for the resolver")
}

func TestNormalize_TeamIDsOnlyInTeamStats(t *testing.T) {
	box := mustTable(t, "game_id,team_name,player_name,MIN,PTS\n"+
		"g1,Alpha,Ann Lee,40,10\n"+
		"g1,Beta,Bo Kim,40,8\n")
	team := mustTable(t, "game_id,team_id,team_name,opp_team_id,PTS\n"+
		"g1,101,Alpha,102,80\n"+
		"g1,102,Beta,101,70\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{
		BoxScores: []*s0_source.Table{box},
		TeamStats: []*s0_source.Table{team},
	}, &diag)

	require.Len(t, out.Players, 2)
	assert.Equal(t, "101", out.Players[0].TeamID)
	assert.Equal(t, "101_2025_ann-lee", out.Players[0].PlayerID)
	assert.Equal(t, "102", out.Players[1].TeamID)
	assert.Equal(t, "Alpha", out.Players[0].TeamName)

	require.Len(t, out.Teams, 2)
	assert.Equal(t, "102", out.Teams[0].OpponentTeamID)
}

func TestNormalize_TeamIDsOnlyInBoxScores(t *testing.T) {
	box := mustTable(t, "game_id,team_id,team_name,player_name,MIN,PTS\n"+
		"g1,A1,Alpha,Ann Lee,40,10\n"+
		"g1,B2,Beta,Bo Kim,40,8\n")
	team := mustTable(t, "game_id,team_name,opp_team_name,PTS\n"+
		"g1,Alpha,Beta,80\n"+
		"g1,Beta,Alpha,70\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{
		BoxScores: []*s0_source.Table{box},
		TeamStats: []*s0_source.Table{team},
	}, &diag)

	require.Len(t, out.Teams, 2)
	assert.Equal(t, "a1", out.Teams[0].TeamID)
	assert.Equal(t, "b2", out.Teams[0].OpponentTeamID)
	assert.Equal(t, "b2", out.Teams[1].TeamID)
	assert.Equal(t, "a1", out.Teams[1].OpponentTeamID)
}

func TestNormalize_AmbiguousTeamNameKeepsSlug(t *testing.T) {
	// the same name maps to two ids in different games; a game without its own id stays on the slug
	box := mustTable(t, "game_id,team_name,player_name,MIN\n"+
		"g3,Alpha,Ann Lee,40\n")
	team := mustTable(t, "game_id,team_id,team_name,opp_team_id\n"+
		"g1,101,Alpha,102\n"+
		"g2,201,Alpha,202\n")

	var diag contracts.Diagnostics
	out := NewNormalizer(2025, logger.Nop()).Normalize(&s0_source.Sources{
		BoxScores: []*s0_source.Table{box},
		TeamStats: []*s0_source.Table{team},
	}, &diag)

	require.Len(t, out.Players, 1)
	assert.Equal(t, "alpha", out.Players[0].TeamID)
}
