package s0_source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestDecodeTable_Encodings(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		wantEnc string
		wantVal string
	}{
		{
			name:    "utf-8 with BOM",
			raw:     []byte("\xef\xbb\xbfplayer_name,PTS\nJosé Tremblay,12\n"),
			wantEnc: "utf-8-sig",
			wantVal: "José Tremblay",
		},
		{
			name:    "plain utf-8",
			raw:     []byte("player_name,PTS\nJosé Tremblay,12\n"),
			wantEnc: "utf-8",
			wantVal: "José Tremblay",
		},
		{
			name:    "latin1 fallback",
			raw:     []byte("player_name,PTS\nJos\xe9 Tremblay,12\n"),
			wantEnc: "latin1",
			wantVal: "José Tremblay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeTable("x.csv", tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.wantEnc, table.Encoding)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, tt.wantVal, table.Value(table.Rows[0], "player_name"))
			// BOM must not leak into the first header
			assert.True(t, table.Has("player_name"))
		})
	}
}

func TestDecodeTable_CaseInsensitiveColumnsAndRaggedRows(t *testing.T) {
	raw := []byte("Game_ID,MIN,PTS\ng1,30\n\n,,\ng2,12,7\n")

	table, err := DecodeTable("x.csv", raw)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2, "blank rows are dropped")
	assert.Equal(t, "g1", table.Value(table.Rows[0], "game_id"))
	assert.Equal(t, "", table.Value(table.Rows[0], "PTS"), "short row reads as empty")
	assert.Equal(t, "12", table.Value(table.Rows[1], "minutes", "min"))
	assert.False(t, table.Has("jersey"))
}

func TestDecodeTable_EmptyFile(t *testing.T) {
	table, err := DecodeTable("empty.csv", nil)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.False(t, table.Has("game_id"))
}

func TestDecodeTable_Quotes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantRows int
		wantName string
		wantPTS  string
	}{
		{
			name:     "stray quotes inside a field",
			raw:      "player_name,PTS\nShaquille \"Shaq\" O'Neal,28\nBo Kim,4\n",
			wantRows: 2,
			wantName: `Shaquille "Shaq" O'Neal`,
			wantPTS:  "28",
		},
		{
			name:     "properly escaped quotes",
			raw:      "player_name,PTS\n\"Shaquille \"\"Shaq\"\" O'Neal\",28\n",
			wantRows: 1,
			wantName: `Shaquille "Shaq" O'Neal`,
			wantPTS:  "28",
		},
		{
			name:     "unterminated quote swallows the rest of the file",
			raw:      "player_name,PTS\n\"Ann Lee,12\n",
			wantRows: 1,
			wantName: "Ann Lee,12\n",
			wantPTS:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeTable("quotes.csv", []byte(tt.raw))
			require.NoError(t, err)

			require.Len(t, table.Rows, tt.wantRows)
			assert.Equal(t, tt.wantName, table.Value(table.Rows[0], "player_name"))
			assert.Equal(t, tt.wantPTS, table.Value(table.Rows[0], "PTS"))
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.csv"), []byte("x\n"))
	writeFile(t, filepath.Join(dir, "a.CSV"), []byte("x\n"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("x\n"))
	writeFile(t, filepath.Join(dir, "week2", "c.csv"), []byte("x\n"))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.CSV"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "week2", "c.csv"),
	}, files)
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPartitionMissing))
}

func TestLoader_SkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(FamilyDir(root, BoxScoreFamily, "men"), "g1.csv"), []byte("game_id,player_name\ng1,A\n"))
	writeFile(t, filepath.Join(FamilyDir(root, BoxScoreFamily, "men"), "g2.csv"), []byte("game_id,player_name\n\"g2,B\n"))
	writeFile(t, filepath.Join(FamilyDir(root, TeamStatsFamily, "men"), "g1.csv"), []byte("game_id,team_name\ng1,X\n"))

	var diag contracts.Diagnostics
	src, err := NewLoader(root, logger.Nop()).Load("men", &diag)
	require.NoError(t, err)

	assert.Len(t, src.BoxScores, 1)
	assert.Len(t, src.TeamStats, 1)
	assert.Equal(t, 2, diag.FilesRead)
	assert.Equal(t, 1, diag.FilesSkipped)
	assert.Equal(t, []string{filepath.Join(FamilyDir(root, BoxScoreFamily, "men"), "g2.csv")}, diag.SkippedFiles)
}

func TestLoader_MissingFamilyFailsPartition(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(FamilyDir(root, BoxScoreFamily, "women"), 0o755))

	var diag contracts.Diagnostics
	_, err := NewLoader(root, logger.Nop()).Load("women", &diag)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPartitionMissing))
}
