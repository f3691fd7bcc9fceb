package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/internal/ingest/htmlbox"
	"github.com/vivekpatel25/acac-war/pkg/httputil"
)

// importHTMLCmd represents the import-html command
var importHTMLCmd = &cobra.Command{
	Use:   "import-html <file|glob|url>...",
	Short: "HTML 박스스코어 가져오기",
	Long: `경기 HTML 박스스코어 페이지를 파이프라인 입력 CSV로 변환합니다.
http(s) URL은 내려받아 변환합니다 (초당 --fetch-rate 회, 5xx 재시도).

각 페이지는 두 팀의 스탯 테이블(MIN, PTS 컬럼)을 가져야 합니다.
결과는 <data-dir>/{boxscores,teamstats}/<division>/<game_id>.csv 에 씁니다.
game id는 --game-id가 없으면 파일 이름에서 만듭니다.

Example:
  go run ./cmd/netpts import-html --division men pages/*.html
  go run ./cmd/netpts import-html --division women --game-id "2025-01-10 UNB v MTA" game.html
  go run ./cmd/netpts import-html --division men https://example.org/boxscores/20250110_unb_mta.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImportHTML,
}

var (
	importDivision string
	importGameID   string
	importRate     float64
)

func init() {
	rootCmd.AddCommand(importHTMLCmd)

	// Flags
	importHTMLCmd.Flags().StringVar(&importDivision, "division", "", "디비전 (필수)")
	importHTMLCmd.Flags().StringVar(&importGameID, "game-id", "", "game id (파일 하나일 때만)")
	importHTMLCmd.Flags().Float64Var(&importRate, "fetch-rate", 1, "URL 요청 속도 (req/s)")
	_ = importHTMLCmd.MarkFlagRequired("division")
}

func runImportHTML(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if strings.ContainsAny(importDivision, `/\`) || importDivision == "." || importDivision == ".." {
		return fmt.Errorf("invalid division name %q", importDivision)
	}

	var sources []string
	for _, arg := range args {
		if isURL(arg) {
			sources = append(sources, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files match %q", arg)
		}
		sources = append(sources, matches...)
	}
	if importGameID != "" && len(sources) > 1 {
		return fmt.Errorf("--game-id needs exactly one page, got %d", len(sources))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importer := htmlbox.NewImporter(cfg.Pipeline.DataDir, log)
	fetcher := httputil.New(log).WithRateLimit(importRate, 1)

	failed := 0
	for _, src := range sources {
		var (
			w   *htmlbox.Written
			err error
		)
		if isURL(src) {
			w, err = importer.ImportURL(ctx, fetcher, src, importDivision, importGameID)
		} else {
			w, err = importer.ImportFile(src, importDivision, importGameID)
		}
		if err != nil {
			failed++
			PrintError(err.Error())
			continue
		}
		PrintSuccess(fmt.Sprintf("%s → %s", src, w.BoxScore))
	}

	PrintSeparator()
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(sources))
	}
	PrintSuccess(fmt.Sprintf("%d pages imported", len(sources)))
	return nil
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}
