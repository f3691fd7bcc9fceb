package main

import (
	"os"

	"github.com/vivekpatel25/acac-war/cmd/netpts/commands"
)

// main is the entry point for the leaderboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/netpts [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
