package s3_allocation

import (
	"math"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
)

// OffenseWeight scores a player's offensive box line, clipped at 0
func OffenseWeight(p contracts.PlayerGameRecord, w modelconfig.OffenseWeights) float64 {
	v := w.Points*p.PTS +
		w.Assists*p.AST +
		w.OffRebounds*p.OREB -
		w.MissedFieldGoal*math.Max(p.FGA-p.FGM, 0) -
		w.MissedFreeThrow*math.Max(p.FTA-p.FTM, 0) -
		w.Turnovers*p.TOV
	return math.Max(v, 0)
}

// DefenseWeight scores a player's defensive box line, clipped at 0
func DefenseWeight(p contracts.PlayerGameRecord, w modelconfig.DefenseWeights) float64 {
	v := w.Steals*p.STL +
		w.Blocks*p.BLK +
		w.DefRebounds*p.DREB -
		w.Fouls*p.PF
	return math.Max(v, 0)
}
