package htmlbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vivekpatel25/acac-war/internal/s1_normalize"
)

// TeamBox is one team's stat table from a box-score page
type TeamBox struct {
	Name    string
	Header  []string   // stat columns, player column excluded
	Players [][]string // player name followed by one cell per header column
	Totals  []string   // one cell per header column; nil when the table has no totals row
}

// Game is a parsed two-team box score
type Game struct {
	GameID string
	Teams  [2]TeamBox
}

// Parse extracts the two team stat tables of a saved box-score page.
// A stat table is any table whose header row carries both MIN and PTS.
func Parse(r io.Reader, gameID string) (*Game, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var teams []TeamBox
	var parseErr error
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		header := headerCells(table)
		if !isStatHeader(header) {
			return true
		}

		box, err := parseTable(table, header)
		if err != nil {
			parseErr = fmt.Errorf("table %d: %w", i, err)
			return false
		}
		teams = append(teams, box)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if len(teams) != 2 {
		return nil, fmt.Errorf("expected 2 team stat tables, found %d", len(teams))
	}

	return &Game{GameID: gameID, Teams: [2]TeamBox{teams[0], teams[1]}}, nil
}

// headerCells reads the first header row: thead th cells, else the first row's th cells
func headerCells(table *goquery.Selection) []string {
	row := table.Find("thead tr").First()
	if row.Length() == 0 {
		row = table.Find("tr").First()
	}

	var cells []string
	row.Find("th,td").Each(func(_ int, c *goquery.Selection) {
		cells = append(cells, s1_normalize.CleanText(c.Text()))
	})
	return cells
}

func isStatHeader(header []string) bool {
	var hasMin, hasPts bool
	for _, h := range header {
		switch strings.ToUpper(h) {
		case "MIN":
			hasMin = true
		case "PTS":
			hasPts = true
		}
	}
	return hasMin && hasPts
}

func parseTable(table *goquery.Selection, header []string) (TeamBox, error) {
	box := TeamBox{
		Name:   teamName(table),
		Header: header[1:],
	}
	if box.Name == "" {
		return box, fmt.Errorf("no caption or heading names the team")
	}

	width := len(header)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// header and section rows (Starters / Bench) carry no td cells
		tds := row.Find("td")
		if tds.Length() == 0 {
			return
		}

		cells := make([]string, 0, width)
		row.Find("th,td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, s1_normalize.CleanText(c.Text()))
		})
		if len(cells) < 2 || cells[0] == "" {
			return
		}
		// header row written with td cells
		if cells[0] == header[0] && cells[1] == header[1] {
			return
		}
		for len(cells) < width {
			cells = append(cells, "")
		}
		cells = cells[:width]

		if strings.HasPrefix(strings.ToLower(cells[0]), "total") {
			box.Totals = cells[1:]
			return
		}
		box.Players = append(box.Players, cells)
	})

	return box, nil
}

// teamName prefers the table caption, then the closest preceding heading
func teamName(table *goquery.Selection) string {
	if caption := s1_normalize.CleanText(table.Find("caption").First().Text()); caption != "" {
		return caption
	}

	for node := table; node.Length() > 0 && !node.Is("body"); node = node.Parent() {
		heading := node.PrevAllFiltered("h1,h2,h3,h4,h5,h6").First()
		if heading.Length() > 0 {
			return s1_normalize.CleanText(heading.Text())
		}
	}
	return ""
}
