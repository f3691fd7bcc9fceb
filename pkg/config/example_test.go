package config_test

import (
	"fmt"

	"github.com/vivekpatel25/acac-war/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Reading from: %s\n", cfg.Pipeline.DataDir)
	fmt.Printf("Season: %d\n", cfg.Pipeline.Season)
	fmt.Printf("Divisions: %v\n", cfg.Pipeline.Divisions)
	fmt.Printf("Postgres sink enabled: %v\n", cfg.Database.Enabled())
}
