package s5_export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Header is the leaderboard column order
var Header = []string{"player_name", "team_name", "games", "Off", "Def", "Overall"}

// OutputPath returns <dir>/leaderboard_<division>_<season>.csv
func OutputPath(dir, division string, season int) string {
	return filepath.Join(dir, fmt.Sprintf("leaderboard_%s_%d.csv", division, season))
}

// Exporter writes one leaderboard CSV per partition
// ⭐ SSOT: S5 CSV 출력은 여기서만
type Exporter struct {
	outputDir string
	precision int
	logger    *logger.Logger
}

// NewExporter creates an exporter writing under outputDir
func NewExporter(outputDir string, precision int, log *logger.Logger) *Exporter {
	return &Exporter{outputDir: outputDir, precision: precision, logger: log}
}

// Rows rounds ranked season totals into leaderboard rows.
// Overall is rounded from the unrounded sum, not from the rounded parts.
func Rows(totals []contracts.PlayerSeasonTotal, precision int) []contracts.LeaderboardRow {
	rows := make([]contracts.LeaderboardRow, len(totals))
	for i, t := range totals {
		rows[i] = contracts.LeaderboardRow{
			Rank:       i + 1,
			PlayerName: t.PlayerName,
			TeamName:   t.TeamName,
			Games:      t.GamesPlayed,
			Offense:    Round(t.Offense, precision),
			Defense:    Round(t.Defense, precision),
			Overall:    Round(t.Overall(), precision),
		}
	}
	return rows
}

// Encode renders rows as CSV bytes, header first
func Encode(rows []contracts.LeaderboardRow, precision int) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.PlayerName,
			r.TeamName,
			strconv.Itoa(r.Games),
			FormatNumber(r.Offense, precision),
			FormatNumber(r.Defense, precision),
			FormatNumber(r.Overall, precision),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the partition leaderboard atomically and returns its path and rows.
// An empty totals slice produces a header-only file.
func (e *Exporter) Export(division string, season int, totals []contracts.PlayerSeasonTotal) (string, []contracts.LeaderboardRow, error) {
	rows := Rows(totals, e.precision)

	data, err := Encode(rows, e.precision)
	if err != nil {
		return "", nil, fmt.Errorf("encode leaderboard: %w", err)
	}

	path := OutputPath(e.outputDir, division, season)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", nil, err
	}

	e.logger.WithFields(map[string]interface{}{
		"division": division,
		"season":   season,
		"path":     path,
		"rows":     len(rows),
	}).Info("Leaderboard exported")

	return path, rows, nil
}

// ReadLeaderboard parses an exported leaderboard back into rows, ranked by file order
func ReadLeaderboard(path string) ([]contracts.LeaderboardRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: missing header", path)
	}

	rows := make([]contracts.LeaderboardRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("parse %s: row %d has %d columns", path, i+2, len(rec))
		}
		row := contracts.LeaderboardRow{Rank: i + 1, PlayerName: rec[0], TeamName: rec[1]}
		if row.Games, err = strconv.Atoi(rec[2]); err != nil {
			return nil, fmt.Errorf("parse %s row %d games: %w", path, i+2, err)
		}
		nums := []*float64{&row.Offense, &row.Defense, &row.Overall}
		for j, dst := range nums {
			if *dst, err = strconv.ParseFloat(rec[3+j], 64); err != nil {
				return nil, fmt.Errorf("parse %s row %d: %w", path, i+2, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
