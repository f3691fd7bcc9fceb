package contracts

import "context"

// Publisher receives the final leaderboard of a partition (S5 sinks)
// ⭐ SSOT: 리더보드 외부 발행 인터페이스
type Publisher interface {
	Name() string
	Publish(ctx context.Context, result *PartitionResult) error
}
