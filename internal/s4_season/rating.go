package s4_season

import (
	"math"
	"sort"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Rater converts on-court points and possessions into per-100 ratings and
// wins above a replacement-level player
type Rater struct {
	cfg    modelconfig.Rating
	logger *logger.Logger
}

// NewRater creates a rater from the model's rating section
func NewRater(cfg modelconfig.Rating, log *logger.Logger) *Rater {
	return &Rater{cfg: cfg, logger: log}
}

// LeagueOffRating returns 100 × ΣPTS / ΣPOSS over all team-games (possessions floored at 1)
func LeagueOffRating(games []contracts.TeamGame) float64 {
	var pts, poss float64
	for _, g := range games {
		pts += g.PointsFor
		poss += g.Possessions
	}
	return 100 * pts / math.Max(1, poss)
}

// Percentile interpolates linearly between closest ranks; p is in [0, 100].
// Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}

type onCourt struct {
	rating               contracts.PlayerRating
	ptsFor, ptsAgainst   float64
	possFor, possAgainst float64
}

// Rate apportions each team-game's points and possessions to its players by
// minutes share, then rates every player against the league baseline.
// Sorted by total WAR descending; ties keep first-appearance order.
func (r *Rater) Rate(games []contracts.TeamGame, contribs []contracts.PlayerGameContribution) []contracts.PlayerRating {
	byKey := make(map[contracts.TeamGameKey]*contracts.TeamGame, len(games))
	for i := range games {
		byKey[games[i].Key] = &games[i]
	}

	var acc []*onCourt
	idx := make(map[string]int)
	for _, c := range contribs {
		g, ok := byKey[contracts.TeamGameKey{GameID: c.GameID, TeamID: c.TeamID}]
		if !ok {
			continue
		}
		i, seen := idx[c.PlayerID]
		if !seen {
			i = len(acc)
			idx[c.PlayerID] = i
			acc = append(acc, &onCourt{rating: contracts.PlayerRating{
				PlayerID:   c.PlayerID,
				PlayerName: c.PlayerName,
				TeamName:   c.TeamName,
			}})
		}
		a := acc[i]
		a.ptsFor += g.PointsFor * c.MinutesShare
		a.ptsAgainst += g.PointsAgainst * c.MinutesShare
		a.possFor += g.Possessions * c.MinutesShare
		a.possAgainst += g.OpponentPossessions * c.MinutesShare
	}

	league := LeagueOffRating(games)

	var eligOff, eligDef []float64
	for _, a := range acc {
		p := &a.rating
		p.Possessions = a.possFor
		p.OffRating = 100 * a.ptsFor / math.Max(1, a.possFor)
		p.DefRating = 100 * a.ptsAgainst / math.Max(1, a.possAgainst)
		p.OffNet = p.OffRating - league
		p.DefNet = league - p.DefRating
		if a.possFor >= r.cfg.MinPossessions {
			eligOff = append(eligOff, p.OffNet)
			eligDef = append(eligDef, p.DefNet)
		}
	}

	// 대체선수 기준: 출전 포제션 기준을 넘는 선수들의 하위 백분위
	repOff := Percentile(eligOff, r.cfg.ReplacementPercentile)
	repDef := Percentile(eligDef, r.cfg.ReplacementPercentile)

	ratings := make([]contracts.PlayerRating, len(acc))
	for i, a := range acc {
		p := a.rating
		factor := p.Possessions / 100 / r.cfg.WinsPerNetPoint
		p.OffWAR = (p.OffNet - repOff) * factor
		p.DefWAR = (p.DefNet - repDef) * factor
		ratings[i] = p
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].TotalWAR() > ratings[j].TotalWAR()
	})

	r.logger.WithFields(map[string]interface{}{
		"players":            len(ratings),
		"eligible":           len(eligOff),
		"league_off_rating":  league,
		"replacement_offnet": repOff,
		"replacement_defnet": repDef,
	}).Info("Player ratings computed")

	return ratings
}
