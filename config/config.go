package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig is the runtime configuration for the self-play driver. All
// values come from the environment with sensible defaults, so the binary
// runs with no setup at all.
type AppConfig struct {
	Games      int           // number of self-play games to run
	MaxPlies   int           // per-game ply cutoff before calling it a draw
	AgentDelay time.Duration // cosmetic pause between agent plies
	Seed       uint64        // jitter seed; 0 picks a time-based seed
	MetricsDir string        // CSV output directory; empty disables metrics
	MessageDir string        // message catalog override directory
	LogLevel   string        // zerolog level name
}

// Load reads configuration from the environment.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Games:    10,
		MaxPlies: 500,
		LogLevel: "info",
	}

	if v := strings.TrimSpace(os.Getenv("SELFPLAY_GAMES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid SELFPLAY_GAMES %q", v)
		}
		cfg.Games = n
	}
	if v := strings.TrimSpace(os.Getenv("MAX_PLIES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_PLIES %q", v)
		}
		cfg.MaxPlies = n
	}
	if v := strings.TrimSpace(os.Getenv("AGENT_DELAY_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid AGENT_DELAY_MS %q", v)
		}
		cfg.AgentDelay = time.Duration(n) * time.Millisecond
	}
	if v := strings.TrimSpace(os.Getenv("RANDOM_SEED")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q", v)
		}
		cfg.Seed = n
	}
	cfg.MetricsDir = strings.TrimSpace(os.Getenv("METRICS_DIR"))
	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
