package s5_export

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{1.5, 0, "2"},
		{2.5, 0, "3"},
		{-1.5, 0, "-2"},
		{-0.4, 0, "0"},
		{-0.04, 1, "0.0"},
		{1.0666, 2, "1.07"},
		{12.345, 1, "12.3"},
		{0, 3, "0.000"},
		{1.005, 2, "1.01"},
		{-1.005, 2, "-1.01"},
		{2.675, 2, "2.68"},
		{0.125, 2, "0.13"},
		{9.995, 2, "10.00"},
		{-9.5, 0, "-10"},
		{1.0049, 2, "1.00"},
		{123456.5, 0, "123457"},
		{-0.0001, 3, "0.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v, tt.precision), "%v @ %d", tt.v, tt.precision)
	}
}

func TestRound_Values(t *testing.T) {
	tests := []struct {
		name      string
		v         float64
		precision int
		want      float64
	}{
		{"decimal tie rounds up", 1.005, 2, 1.01},
		{"negative decimal tie rounds away from zero", -1.005, 2, -1.01},
		{"carry into integer part", 0.95, 1, 1.0},
		{"already short enough", 3.25, 3, 3.25},
		{"negative zero normalized", -0.0004, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.v, tt.precision)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.Signbit(got) && got == 0, "no negative zero")
		})
	}
}

func TestRows_OverallFromUnroundedSum(t *testing.T) {
	totals := []contracts.PlayerSeasonTotal{
		{PlayerName: "A", TeamName: "T", GamesPlayed: 3, Offense: 1.4, Defense: 1.4},
	}

	rows := Rows(totals, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1.0, rows[0].Offense)
	assert.Equal(t, 1.0, rows[0].Defense)
	assert.Equal(t, 3.0, rows[0].Overall, "2.8 rounds to 3, not 1+1")
}

func TestEncode(t *testing.T) {
	rows := []contracts.LeaderboardRow{
		{Rank: 1, PlayerName: "Jane Doe", TeamName: "Holland College, PEI", Games: 12, Offense: 20, Defense: 5, Overall: 25},
		{Rank: 2, PlayerName: "John Smith", TeamName: "UNB Reds", Games: 1, Offense: -3, Defense: 0, Overall: -3},
	}

	data, err := Encode(rows, 0)
	require.NoError(t, err)
	assert.Equal(t,
		"player_name,team_name,games,Off,Def,Overall\n"+
			"Jane Doe,\"Holland College, PEI\",12,20,5,25\n"+
			"John Smith,UNB Reds,1,-3,0,-3\n",
		string(data))
}

func TestExportRatings(t *testing.T) {
	dir := t.TempDir()
	ratings := []contracts.PlayerRating{
		{
			PlayerName: "Jane Doe", TeamName: "UNB Reds", Possessions: 412.345,
			OffRating: 108.2, DefRating: 99.4, OffNet: 3.1, DefNet: 5.9,
			OffWAR: 1.005, DefWAR: 0.496,
		},
	}

	path, err := NewExporter(dir, 0, logger.Nop()).ExportRatings("women", 2025, ratings, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rating_women_2025.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"player_name,team_name,poss,OffRtg,DefRtg,oNet,dNet,tNet,oWAR,dWAR,tWAR\n"+
			"Jane Doe,UNB Reds,412.35,108.20,99.40,3.10,5.90,9.00,1.01,0.50,1.50\n",
		string(data))
}

func TestExport_HeaderOnlyWhenEmpty(t *testing.T) {
	dir := t.TempDir()

	path, rows, err := NewExporter(dir, 0, logger.Nop()).Export("women", 2025, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, filepath.Join(dir, "leaderboard_women_2025.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "player_name,team_name,games,Off,Def,Overall\n", string(data))
}

func TestExport_DeterministicAndReadable(t *testing.T) {
	dir := t.TempDir()
	totals := []contracts.PlayerSeasonTotal{
		{PlayerID: "a", PlayerName: "A", TeamName: "T1", GamesPlayed: 2, Offense: 10.4, Defense: 3.2},
		{PlayerID: "b", PlayerName: "B", TeamName: "T2", GamesPlayed: 1, Offense: -0.2, Defense: -0.1},
	}
	exp := NewExporter(dir, 1, logger.Nop())

	path, _, err := exp.Export("men", 2025, totals)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, _, err = exp.Export("men", 2025, totals)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second, "byte-identical output")

	rows, err := ReadLeaderboard(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, contracts.LeaderboardRow{Rank: 1, PlayerName: "A", TeamName: "T1", Games: 2, Offense: 10.4, Defense: 3.2, Overall: 13.6}, rows[0])
	assert.Equal(t, -0.3, rows[1].Overall)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadLeaderboard_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadLeaderboard(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("player_name,team_name,games,Off,Def,Overall\nA,T,x,1,1,2\n"), 0o644))
	_, err = ReadLeaderboard(bad)
	assert.Error(t, err)
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRedisSink_DisabledIsNoop(t *testing.T) {
	sink := NewRedisSink(redis.NewCache(redis.Disabled(), "netpts"), logger.Nop())
	assert.Equal(t, "redis", sink.Name())

	err := sink.Publish(context.Background(), &contracts.PartitionResult{
		Division:  "men",
		Season:    2025,
		StartedAt: time.Now(),
	})
	assert.NoError(t, err)
}
