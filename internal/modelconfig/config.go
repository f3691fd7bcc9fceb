package modelconfig

import "time"

// SplitPolicy selects how a team-game differential is split into offense and defense
type SplitPolicy string

const (
	// SplitScoringMix splits by the team's share of combined points (default)
	SplitScoringMix SplitPolicy = "scoring_mix"
	// SplitLeagueBaseline uses points above league-expected points as the offensive part
	SplitLeagueBaseline SplitPolicy = "league_baseline"
)

// DefaultTeamMinutes is the per-game team total used when neither the team row
// nor the player rows carry any minutes
const DefaultTeamMinutes = 40.0

// Config는 득실 배분 모델의 전체 설정
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Blend      Blend      `yaml:"blend" json:"blend"`
	Split      Split      `yaml:"split" json:"split"`
	Minutes    Minutes    `yaml:"minutes" json:"minutes"`
	BoxWeights BoxWeights `yaml:"box_weights" json:"box_weights"`
	Export     Export     `yaml:"export" json:"export"`
	Rating     Rating     `yaml:"rating" json:"rating"`
}

// Meta 메타 정보
type Meta struct {
	ModelID string `yaml:"model_id" json:"model_id"`
	Version string `yaml:"version" json:"version"`
}

// Blend mixes the minutes term and the box-score term. StatsWeight is derived.
type Blend struct {
	MinuteWeight float64 `yaml:"minute_weight" json:"minute_weight"`
}

// StatsWeight returns 1 - MinuteWeight
func (b Blend) StatsWeight() float64 {
	return 1 - b.MinuteWeight
}

// Split S2: 공수 분할 정책
type Split struct {
	Policy          SplitPolicy `yaml:"offense_split_policy" json:"offense_split_policy"`
	FreeThrowWeight float64     `yaml:"free_throw_weight" json:"free_throw_weight"` // league_baseline: FGA + w×FTA
}

// Minutes S2: 팀 출전시간 정책
type Minutes struct {
	DefaultTeamMinutes float64 `yaml:"default_team_minutes" json:"default_team_minutes"`
}

// BoxWeights S3: 박스스코어 가중치 계수
type BoxWeights struct {
	Offense OffenseWeights `yaml:"offense" json:"offense"`
	Defense DefenseWeights `yaml:"defense" json:"defense"`
}

// OffenseWeights rewards scoring, assists and offensive boards; penalizes misses and turnovers.
// Penalties are written as positive magnitudes.
type OffenseWeights struct {
	Points          float64 `yaml:"points" json:"points"`
	Assists         float64 `yaml:"assists" json:"assists"`
	OffRebounds     float64 `yaml:"off_rebounds" json:"off_rebounds"`
	MissedFieldGoal float64 `yaml:"missed_fg_penalty" json:"missed_fg_penalty"`
	MissedFreeThrow float64 `yaml:"missed_ft_penalty" json:"missed_ft_penalty"`
	Turnovers       float64 `yaml:"turnover_penalty" json:"turnover_penalty"`
}

// DefenseWeights rewards steals, blocks and defensive boards; lightly penalizes fouls
type DefenseWeights struct {
	Steals      float64 `yaml:"steals" json:"steals"`
	Blocks      float64 `yaml:"blocks" json:"blocks"`
	DefRebounds float64 `yaml:"def_rebounds" json:"def_rebounds"`
	Fouls       float64 `yaml:"foul_penalty" json:"foul_penalty"`
}

// Export S5: 출력 설정
type Export struct {
	RoundingPrecision int `yaml:"rounding_precision" json:"rounding_precision"` // 0 = 정수
}

// Rating S4/S5: 포제션 기반 레이팅 + 대체선수 대비 승리 기여 (선택)
// Possessions reuse split.free_throw_weight: FGA + TOV + w×FTA - OREB.
type Rating struct {
	Enabled               bool    `yaml:"enabled" json:"enabled"`
	MinPossessions        float64 `yaml:"min_possessions" json:"min_possessions"`               // 대체선수 기준 산정 대상
	ReplacementPercentile float64 `yaml:"replacement_percentile" json:"replacement_percentile"` // 0-100
	WinsPerNetPoint       float64 `yaml:"wins_per_netpoint" json:"wins_per_netpoint"`
	RoundingPrecision     int     `yaml:"rounding_precision" json:"rounding_precision"`
}

// Default returns the model used by the published leaderboards
func Default() *Config {
	return &Config{
		Meta: Meta{
			ModelID: "acac_net_points",
			Version: "1.0.0",
		},
		Blend: Blend{MinuteWeight: 0.4},
		Split: Split{
			Policy:          SplitScoringMix,
			FreeThrowWeight: 0.44,
		},
		Minutes: Minutes{DefaultTeamMinutes: DefaultTeamMinutes},
		BoxWeights: BoxWeights{
			Offense: OffenseWeights{
				Points:          1.0,
				Assists:         0.7,
				OffRebounds:     0.7,
				MissedFieldGoal: 1.0,
				MissedFreeThrow: 0.5,
				Turnovers:       1.0,
			},
			Defense: DefenseWeights{
				Steals:      1.0,
				Blocks:      0.7,
				DefRebounds: 0.3,
				Fouls:       0.25,
			},
		},
		Export: Export{RoundingPrecision: 0},
		Rating: Rating{
			Enabled:               false,
			MinPossessions:        300,
			ReplacementPercentile: 10,
			WinsPerNetPoint:       2.7,
			RoundingPrecision:     2,
		},
	}
}

// RunSnapshot 실행 스냅샷 (재현성용)
type RunSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml,omitempty"`
	ModelID    string    `json:"model_id"`
	Division   string    `json:"division"`
	Season     int       `json:"season"`
	CreatedAt  time.Time `json:"created_at"`
}
