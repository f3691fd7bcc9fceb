package htmlbox

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vivekpatel25/acac-war/internal/s0_source"
	"github.com/vivekpatel25/acac-war/internal/s1_normalize"
	"github.com/vivekpatel25/acac-war/internal/s5_export"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Importer converts saved box-score pages into the CSV families read by the pipeline
type Importer struct {
	dataDir string
	logger  *logger.Logger
}

// NewImporter creates an importer writing under dataDir
func NewImporter(dataDir string, log *logger.Logger) *Importer {
	return &Importer{dataDir: dataDir, logger: log}
}

// Written lists the files produced for one page
type Written struct {
	BoxScore  string
	TeamStats string
}

// Fetcher downloads a page; *httputil.Client satisfies it
type Fetcher interface {
	GetBody(ctx context.Context, url string) ([]byte, error)
}

// ImportFile parses one saved HTML page and writes its box-score and team-totals CSVs.
// An empty gameID is derived from the file name.
func (im *Importer) ImportFile(file, division, gameID string) (*Written, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if gameID == "" {
		gameID = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return im.importPage(f, file, division, gameID)
}

// ImportURL downloads a box-score page and imports it like ImportFile.
// An empty gameID is derived from the last path segment of the URL.
func (im *Importer) ImportURL(ctx context.Context, fetcher Fetcher, rawURL, division, gameID string) (*Written, error) {
	if gameID == "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rawURL, err)
		}
		base := path.Base(u.Path)
		gameID = strings.TrimSuffix(base, path.Ext(base))
	}

	body, err := fetcher.GetBody(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return im.importPage(bytes.NewReader(body), rawURL, division, gameID)
}

func (im *Importer) importPage(r io.Reader, source, division, gameID string) (*Written, error) {
	gameID = s1_normalize.CanonicalGameID(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%s: empty game id", source)
	}

	game, err := Parse(r, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	w, err := im.Write(game, division)
	if err != nil {
		return nil, err
	}

	im.logger.WithFields(map[string]interface{}{
		"source":   source,
		"game_id":  gameID,
		"division": division,
		"home":     game.Teams[0].Name,
		"away":     game.Teams[1].Name,
	}).Info("Box score imported")

	return w, nil
}

// Write renders a parsed game to <dataDir>/{boxscores,teamstats}/<division>/<game_id>.csv
func (im *Importer) Write(game *Game, division string) (*Written, error) {
	box, err := boxScoreCSV(game)
	if err != nil {
		return nil, err
	}
	team, err := teamStatsCSV(game)
	if err != nil {
		return nil, err
	}

	name := game.GameID + ".csv"
	w := &Written{
		BoxScore:  filepath.Join(s0_source.FamilyDir(im.dataDir, s0_source.BoxScoreFamily, division), name),
		TeamStats: filepath.Join(s0_source.FamilyDir(im.dataDir, s0_source.TeamStatsFamily, division), name),
	}
	if err := s5_export.WriteFileAtomic(w.BoxScore, box); err != nil {
		return nil, err
	}
	if err := s5_export.WriteFileAtomic(w.TeamStats, team); err != nil {
		return nil, err
	}
	return w, nil
}

// boxScoreCSV writes one row per player; stat columns pass through with their page headers
func boxScoreCSV(game *Game) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	for i, t := range game.Teams {
		if i == 0 {
			header := append([]string{"game_id", "team_name", "player_name"}, t.Header...)
			if err := cw.Write(header); err != nil {
				return nil, err
			}
		}
		for _, p := range t.Players {
			rec := append([]string{game.GameID, t.Name}, p[0])
			rec = append(rec, alignTo(game.Teams[0].Header, t.Header, p[1:])...)
			if err := cw.Write(rec); err != nil {
				return nil, err
			}
		}
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// teamStatsCSV writes both totals rows with each side naming the other as opponent
func teamStatsCSV(game *Game) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := append([]string{"game_id", "team_name", "opp_team_name"}, game.Teams[0].Header...)
	if err := cw.Write(header); err != nil {
		return nil, err
	}

	for i, t := range game.Teams {
		if t.Totals == nil {
			return nil, fmt.Errorf("%s: no totals row", t.Name)
		}
		opp := game.Teams[1-i].Name
		rec := append([]string{game.GameID, t.Name, opp}, alignTo(game.Teams[0].Header, t.Header, t.Totals)...)
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// alignTo reorders cells from header `from` into the column order of `to`
func alignTo(to, from, cells []string) []string {
	idx := make(map[string]int, len(from))
	for i, h := range from {
		idx[strings.ToUpper(h)] = i
	}

	out := make([]string, len(to))
	for i, h := range to {
		if j, ok := idx[strings.ToUpper(h)]; ok && j < len(cells) {
			out[i] = cells[j]
		}
	}
	return out
}
