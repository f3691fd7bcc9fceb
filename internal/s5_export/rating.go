package s5_export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/vivekpatel25/acac-war/internal/contracts"
)

// RatingHeader is the rating table column order
var RatingHeader = []string{
	"player_name", "team_name", "poss",
	"OffRtg", "DefRtg", "oNet", "dNet", "tNet",
	"oWAR", "dWAR", "tWAR",
}

// RatingPath returns <dir>/rating_<division>_<season>.csv
func RatingPath(dir, division string, season int) string {
	return filepath.Join(dir, fmt.Sprintf("rating_%s_%d.csv", division, season))
}

// EncodeRatings renders ranked ratings as CSV bytes, header first.
// Totals are rounded from the unrounded sums.
func EncodeRatings(ratings []contracts.PlayerRating, precision int) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(RatingHeader); err != nil {
		return nil, err
	}
	for _, r := range ratings {
		rec := []string{r.PlayerName, r.TeamName}
		for _, v := range []float64{
			r.Possessions,
			r.OffRating, r.DefRating,
			r.OffNet, r.DefNet, r.TotalNet(),
			r.OffWAR, r.DefWAR, r.TotalWAR(),
		} {
			rec = append(rec, FormatNumber(v, precision))
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

// ExportRatings writes the partition rating table atomically next to the leaderboard
func (e *Exporter) ExportRatings(division string, season int, ratings []contracts.PlayerRating, precision int) (string, error) {
	data, err := EncodeRatings(ratings, precision)
	if err != nil {
		return "", fmt.Errorf("encode ratings: %w", err)
	}

	path := RatingPath(e.outputDir, division, season)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}

	e.logger.WithFields(map[string]interface{}{
		"division": division,
		"path":     path,
		"rows":     len(ratings),
	}).Info("Ratings exported")

	return path, nil
}
