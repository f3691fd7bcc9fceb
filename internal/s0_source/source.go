package s0_source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// ErrPartitionMissing is returned when a division's input directory does not exist
var ErrPartitionMissing = errors.New("partition input directory missing")

// Directory families under the data root
const (
	BoxScoreFamily  = "boxscores"
	TeamStatsFamily = "teamstats"
)

// Loader discovers and decodes the raw CSV sources of one partition
// ⭐ SSOT: 원본 파일 읽기는 여기서만
type Loader struct {
	dataDir string
	logger  *logger.Logger
}

// Sources is the S0 output: decoded tables per family
type Sources struct {
	BoxScores []*Table
	TeamStats []*Table
}

// NewLoader creates a loader rooted at dataDir
func NewLoader(dataDir string, log *logger.Logger) *Loader {
	return &Loader{dataDir: dataDir, logger: log}
}

// FamilyDir returns <dataDir>/<family>/<division>
func FamilyDir(dataDir, family, division string) string {
	return filepath.Join(dataDir, family, division)
}

// Load reads both families for division. Unreadable files are skipped and
// recorded in diag; a missing directory fails the partition.
func (l *Loader) Load(division string, diag *contracts.Diagnostics) (*Sources, error) {
	box, err := l.loadFamily(BoxScoreFamily, division, diag)
	if err != nil {
		return nil, err
	}
	team, err := l.loadFamily(TeamStatsFamily, division, diag)
	if err != nil {
		return nil, err
	}
	return &Sources{BoxScores: box, TeamStats: team}, nil
}

func (l *Loader) loadFamily(family, division string, diag *contracts.Diagnostics) ([]*Table, error) {
	dir := FamilyDir(l.dataDir, family, division)

	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	tables := make([]*Table, 0, len(files))
	for _, path := range files {
		t, err := ReadTable(path)
		if err != nil {
			diag.FilesSkipped++
			diag.SkippedFiles = append(diag.SkippedFiles, path)
			l.logger.WithError(err).WithFields(map[string]interface{}{
				"file":     path,
				"family":   family,
				"division": division,
			}).Warn("Skipping unreadable source file")
			continue
		}
		diag.FilesRead++
		tables = append(tables, t)
	}

	l.logger.WithFields(map[string]interface{}{
		"family":   family,
		"division": division,
		"files":    len(files),
		"decoded":  len(tables),
	}).Debug("Source family loaded")

	return tables, nil
}

// Discover lists *.csv files under dir recursively in lexical order
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPartitionMissing, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPartitionMissing, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
