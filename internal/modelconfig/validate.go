package modelconfig

import (
	"fmt"
	"math"
)

// ValidationError 검증 실패 (실행 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// maxRoundingPrecision bounds rounding_precision; the leaderboard is read by people
const maxRoundingPrecision = 4

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ModelID == "" {
		return ValidationError{"meta.model_id", "required"}
	}

	// === Blend ===
	w := cfg.Blend.MinuteWeight
	if math.IsNaN(w) || w < 0 || w > 1 {
		return ValidationError{"blend.minute_weight", "must be in [0, 1]"}
	}

	// === Split ===
	switch cfg.Split.Policy {
	case SplitScoringMix, SplitLeagueBaseline:
	default:
		return ValidationError{"split.offense_split_policy", fmt.Sprintf("unknown policy %q (want %s|%s)", cfg.Split.Policy, SplitScoringMix, SplitLeagueBaseline)}
	}
	if ft := cfg.Split.FreeThrowWeight; math.IsNaN(ft) || ft < 0 || ft > 1 {
		return ValidationError{"split.free_throw_weight", "must be in [0, 1]"}
	}

	// === Minutes ===
	if m := cfg.Minutes.DefaultTeamMinutes; !finite(m) || m < 0 {
		return ValidationError{"minutes.default_team_minutes", "must be a finite value >= 0"}
	}

	// === BoxWeights ===
	o := cfg.BoxWeights.Offense
	d := cfg.BoxWeights.Defense
	coefficients := []struct {
		field string
		value float64
	}{
		{"box_weights.offense.points", o.Points},
		{"box_weights.offense.assists", o.Assists},
		{"box_weights.offense.off_rebounds", o.OffRebounds},
		{"box_weights.offense.missed_fg_penalty", o.MissedFieldGoal},
		{"box_weights.offense.missed_ft_penalty", o.MissedFreeThrow},
		{"box_weights.offense.turnover_penalty", o.Turnovers},
		{"box_weights.defense.steals", d.Steals},
		{"box_weights.defense.blocks", d.Blocks},
		{"box_weights.defense.def_rebounds", d.DefRebounds},
		{"box_weights.defense.foul_penalty", d.Fouls},
	}
	for _, c := range coefficients {
		if !finite(c.value) || c.value < 0 {
			return ValidationError{c.field, "must be a finite value >= 0 (penalties are magnitudes)"}
		}
	}

	// === Export ===
	if p := cfg.Export.RoundingPrecision; p < 0 || p > maxRoundingPrecision {
		return ValidationError{"export.rounding_precision", fmt.Sprintf("must be in [0, %d]", maxRoundingPrecision)}
	}

	// === Rating ===
	rt := cfg.Rating
	if !finite(rt.MinPossessions) || rt.MinPossessions < 0 {
		return ValidationError{"rating.min_possessions", "must be a finite value >= 0"}
	}
	if p := rt.ReplacementPercentile; math.IsNaN(p) || p < 0 || p > 100 {
		return ValidationError{"rating.replacement_percentile", "must be in [0, 100]"}
	}
	if !finite(rt.WinsPerNetPoint) || rt.WinsPerNetPoint <= 0 {
		return ValidationError{"rating.wins_per_netpoint", "must be a finite value > 0"}
	}
	if p := rt.RoundingPrecision; p < 0 || p > maxRoundingPrecision {
		return ValidationError{"rating.rounding_precision", fmt.Sprintf("must be in [0, %d]", maxRoundingPrecision)}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Warn returns non-fatal advice about a valid config
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Blend.MinuteWeight == 1 {
		warnings = append(warnings, Warning{
			Code:    "BLEND_MINUTES_ONLY",
			Message: "minute_weight=1 ignores box-score production entirely",
		})
	}
	if cfg.Blend.MinuteWeight == 0 {
		warnings = append(warnings, Warning{
			Code:    "BLEND_STATS_ONLY",
			Message: "minute_weight=0 gives no credit to players without box-score production",
		})
	}

	d := cfg.BoxWeights.Defense
	if d.Steals == 0 && d.Blocks == 0 && d.DefRebounds == 0 {
		warnings = append(warnings, Warning{
			Code:    "DEFENSE_WEIGHTS_EMPTY",
			Message: "all defensive rewards are zero; every team-game falls back to minutes",
		})
	}

	if cfg.Minutes.DefaultTeamMinutes == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_DEFAULT_TEAM_MINUTES",
			Message: "default_team_minutes=0 leaves minutes share at 0 for games without minutes",
		})
	}

	return warnings
}
