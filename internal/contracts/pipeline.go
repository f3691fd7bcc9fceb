package contracts

import (
	"time"

	"github.com/vivekpatel25/acac-war/internal/modelconfig"
)

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 실행 결과에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3 → S4 → S5
//   Source  Normalize  TeamGame  Allocation  Season  Export

// Stage represents a pipeline stage
type Stage string

const (
	// StageSource S0: 원본 CSV 탐색 및 디코딩
	// 위치: internal/s0_source/
	StageSource Stage = "S0_SOURCE"

	// StageNormalize S1: 레코드 정규화
	// 위치: internal/s1_normalize/
	StageNormalize Stage = "S1_NORMALIZE"

	// StageTeamGame S2: 팀 경기 득실차 및 공수 분할
	// 위치: internal/s2_teamgame/
	StageTeamGame Stage = "S2_TEAM_GAME"

	// StageAllocation S3: 선수별 배분
	// 위치: internal/s3_allocation/
	StageAllocation Stage = "S3_ALLOCATION"

	// StageSeason S4: 시즌 집계 및 순위
	// 위치: internal/s4_season/
	StageSeason Stage = "S4_SEASON"

	// StageExport S5: 리더보드 출력
	// 위치: internal/s5_export/
	StageExport Stage = "S5_EXPORT"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageSource:
		return "S0"
	case StageNormalize:
		return "S1"
	case StageTeamGame:
		return "S2"
	case StageAllocation:
		return "S3"
	case StageSeason:
		return "S4"
	case StageExport:
		return "S5"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageSource,
		StageNormalize,
		StageTeamGame,
		StageAllocation,
		StageSeason,
		StageExport,
	}
}

// StageResult represents the result of one stage execution
type StageResult struct {
	Stage       Stage `json:"stage"`
	InputCount  int   `json:"input_count"`
	OutputCount int   `json:"output_count"`
	Duration    int64 `json:"duration_ms"`
}

// PartitionResult is the outcome of one division run
type PartitionResult struct {
	RunID       string           `json:"run_id"`
	Division    string           `json:"division"`
	Season      int              `json:"season"`
	OutputPath  string           `json:"output_path"`
	Players     int              `json:"players"`
	ConfigHash  string           `json:"config_hash"`
	StartedAt   time.Time        `json:"started_at"`
	Duration    time.Duration    `json:"duration"`
	Stages      []StageResult    `json:"stages"`
	Diagnostics Diagnostics      `json:"diagnostics"`
	Rows        []LeaderboardRow `json:"-"`
	Error       string           `json:"error,omitempty"`

	// Snapshot records the exact model that produced Rows
	Snapshot *modelconfig.RunSnapshot `json:"snapshot,omitempty"`

	// 레이팅 (rating.enabled 일 때만)
	RatingPath string         `json:"rating_path,omitempty"`
	Ratings    []PlayerRating `json:"-"`
}

// Success reports whether the partition completed
func (r *PartitionResult) Success() bool {
	return r.Error == ""
}
