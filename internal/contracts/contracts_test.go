package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_ShortName(t *testing.T) {
	for i, stage := range AllStages() {
		assert.Equal(t, "S"+string(rune('0'+i)), stage.ShortName())
	}
	assert.Equal(t, "UNKNOWN", Stage("S9_NOPE").ShortName())
}

func TestPlayerSeasonTotal_OverallIsDerived(t *testing.T) {
	p := PlayerSeasonTotal{Offense: 3.25, Defense: -1.5}
	assert.InDelta(t, 1.75, p.Overall(), 1e-12)

	p.Defense = 2
	assert.InDelta(t, 5.25, p.Overall(), 1e-12)
}

func TestDiagnostics_Excluded(t *testing.T) {
	d := Diagnostics{MissingKeyRows: 2, UnpairedTeamRows: 3, UnmatchedPlayerRows: 5, DuplicatePlayers: 7}
	assert.Equal(t, 10, d.Excluded())
	assert.Equal(t, 5, d.AsFields()["unmatched_player_rows"])
}

func TestRecordKeys(t *testing.T) {
	p := PlayerGameRecord{GameID: "g1", TeamID: "a"}
	tm := TeamGameRecord{GameID: "g1", TeamID: "a", OpponentTeamID: "b"}
	assert.Equal(t, p.Key(), tm.Key())
}
