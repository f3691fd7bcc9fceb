package s4_season

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

func contrib(player, game string, off, def float64) contracts.PlayerGameContribution {
	return contracts.PlayerGameContribution{
		GameID: game, TeamID: "t", TeamName: "Team", PlayerID: player, PlayerName: player,
		Offense: off, Defense: def,
	}
}

func TestAggregate_SumsAndRanks(t *testing.T) {
	in := []contracts.PlayerGameContribution{
		contrib("a", "g1", 1, 0.5),
		contrib("b", "g1", 3, 1),
		contrib("a", "g2", 2, -0.5),
		contrib("c", "g2", -1, -1),
	}

	out := NewAggregator(logger.Nop()).Aggregate(in)
	require.Len(t, out, 3)

	assert.Equal(t, "b", out[0].PlayerID)
	assert.Equal(t, 4.0, out[0].Overall())
	assert.Equal(t, "a", out[1].PlayerID)
	assert.Equal(t, 3.0, out[1].Offense)
	assert.Equal(t, 0.0, out[1].Defense)
	assert.Equal(t, 2, out[1].GamesPlayed)
	assert.Equal(t, "c", out[2].PlayerID)
	assert.Equal(t, -2.0, out[2].Overall())
}

func TestAggregate_TiesKeepFirstAppearance(t *testing.T) {
	in := []contracts.PlayerGameContribution{
		contrib("z", "g1", 1, 1),
		contrib("m", "g1", 2, 0),
		contrib("a", "g1", 0, 2),
	}

	out := NewAggregator(logger.Nop()).Aggregate(in)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"z", "m", "a"}, []string{out[0].PlayerID, out[1].PlayerID, out[2].PlayerID})
}

func TestAggregate_Idempotent(t *testing.T) {
	in := []contracts.PlayerGameContribution{
		contrib("a", "g1", 1.25, 0.5),
		contrib("a", "g1", 0.75, 0.5),
		contrib("b", "g2", 0.1, 0.2),
	}

	agg := NewAggregator(logger.Nop())
	first := agg.Aggregate(in)
	second := agg.Aggregate(in)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first[0].GamesPlayed, "games played counts distinct game ids")
}

func TestAggregate_Empty(t *testing.T) {
	out := NewAggregator(logger.Nop()).Aggregate(nil)
	assert.Empty(t, out)
}
