package s4_season

import (
	"sort"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Aggregator sums player-game contributions into season totals and ranks them
// ⭐ SSOT: S4 시즌 집계/정렬은 여기서만
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a season aggregator
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// Aggregate groups by player id. The input is not modified, so aggregating the
// same contributions again yields identical totals.
// Sorted by overall descending; ties keep first-appearance order.
func (a *Aggregator) Aggregate(contribs []contracts.PlayerGameContribution) []contracts.PlayerSeasonTotal {
	totals := make([]contracts.PlayerSeasonTotal, 0)
	idx := make(map[string]int)
	games := make(map[string]map[string]struct{})

	for _, c := range contribs {
		i, ok := idx[c.PlayerID]
		if !ok {
			i = len(totals)
			idx[c.PlayerID] = i
			totals = append(totals, contracts.PlayerSeasonTotal{
				PlayerID:   c.PlayerID,
				PlayerName: c.PlayerName,
				TeamName:   c.TeamName,
			})
			games[c.PlayerID] = make(map[string]struct{})
		}
		totals[i].Offense += c.Offense
		totals[i].Defense += c.Defense
		games[c.PlayerID][c.GameID] = struct{}{}
	}

	for i := range totals {
		totals[i].GamesPlayed = len(games[totals[i].PlayerID])
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Overall() > totals[j].Overall()
	})

	fields := map[string]interface{}{
		"contributions": len(contribs),
		"players":       len(totals),
	}
	if len(totals) > 0 {
		fields["top_player"] = totals[0].PlayerName
		fields["top_overall"] = totals[0].Overall()
	}
	a.logger.WithFields(fields).Info("Season totals aggregated")

	return totals
}
