package s2_teamgame

import (
	"fmt"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
)

// SplitStrategy divides one team-game differential into offense and defense.
// The returned flag reports that the strategy had to fall back to scoring mix.
type SplitStrategy func(self, opp contracts.TeamGameRecord, diff float64) (contracts.AllocationShare, bool)

// ScoringMix credits offense with the team's share of combined points.
// 0:0 games split evenly.
func ScoringMix(self, opp contracts.TeamGameRecord, diff float64) (contracts.AllocationShare, bool) {
	ratio := 0.5
	if total := self.Points + opp.Points; total > 0 {
		ratio = self.Points / total
	}
	off := diff * ratio
	return contracts.AllocationShare{Offense: off, Defense: diff - off}, false
}

// LeagueBaseline credits offense with points above what league-average shooting
// efficiency would have produced on the team's attempts.
func LeagueBaseline(leagueTS, ftWeight float64) SplitStrategy {
	return func(self, opp contracts.TeamGameRecord, diff float64) (contracts.AllocationShare, bool) {
		attempts := self.FGA + ftWeight*self.FTA
		if leagueTS <= 0 || attempts <= 0 {
			share, _ := ScoringMix(self, opp, diff)
			return share, true
		}
		off := self.Points - 2*leagueTS*attempts
		return contracts.AllocationShare{Offense: off, Defense: diff - off}, false
	}
}

// LeagueTrueShooting computes ΣPTS / (2 × Σ(FGA + w×FTA)) over the given team rows.
// Returns 0 when there are no attempts.
func LeagueTrueShooting(teams []contracts.TeamGameRecord, ftWeight float64) float64 {
	var pts, attempts float64
	for _, t := range teams {
		pts += t.Points
		attempts += t.FGA + ftWeight*t.FTA
	}
	if attempts <= 0 {
		return 0
	}
	return pts / (2 * attempts)
}

// Possessions estimates a team's possessions in one game: FGA + TOV + w×FTA - OREB
func Possessions(t contracts.TeamGameRecord, ftWeight float64) float64 {
	return t.FGA + t.TOV + ftWeight*t.FTA - t.OREB
}

// NewSplitStrategy picks the strategy named by the model config.
// paired must hold only team rows that survived pairing.
func NewSplitStrategy(cfg *modelconfig.Config, paired []contracts.TeamGameRecord) (SplitStrategy, error) {
	switch cfg.Split.Policy {
	case modelconfig.SplitScoringMix, "":
		return ScoringMix, nil
	case modelconfig.SplitLeagueBaseline:
		ft := cfg.Split.FreeThrowWeight
		return LeagueBaseline(LeagueTrueShooting(paired, ft), ft), nil
	default:
		return nil, fmt.Errorf("unknown offense split policy %q", cfg.Split.Policy)
	}
}
