// Package main is the entry point for the spartan CLI, an operator surface
// over the progression engine and its Redis-backed game state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spartan-system/spartan-api/internal/config"
	"github.com/spartan-system/spartan-api/internal/pkg/clock"
	"github.com/spartan-system/spartan-api/internal/redis"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

var (
	configPath string
	redisAddr  string
)

var rootCmd = &cobra.Command{
	Use:   "spartan",
	Short: "Spartan study-companion engine",
	Long:  `Spartan manages the warrior profile, enemy collection and assessment history persisted in Redis.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-address", "", "redis address (overrides config file)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}

// newRepository wires the game state repository from config file and flags.
// Flag values win over file values; the file is optional.
func newRepository() (gamestate.Repository, error) {
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	addr := "localhost:6379"
	if fileCfg.Redis.Address != nil {
		addr = *fileCfg.Redis.Address
	}
	if redisAddr != "" {
		addr = redisAddr
	}

	opts := &redis.Options{}
	if fileCfg.Redis.Password != nil {
		opts.Password = *fileCfg.Redis.Password
	}
	if fileCfg.Redis.DB != nil {
		opts.DB = *fileCfg.Redis.DB
	}

	client, err := redis.NewClient(addr, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return gamestate.NewRedis(&gamestate.RedisConfig{
		Client: client,
		Clock:  clock.New(),
	})
}
