package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the baseline worker service.
type Config struct {
	DBURL      string
	RedisURL   string
	RedisQueue string

	// WorkerCount > 1 enables concurrent queue consumption.
	WorkerCount   int
	JobBufferSize int

	// FlushInterval is how often accumulated baselines are merged into
	// the persisted store.
	FlushInterval time.Duration

	// AcceptedPatches is the ingestion allow-list; records from any
	// other patch are dropped at the boundary. Empty means accept all.
	AcceptedPatches []string
}

// Load builds a Config from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:         os.Getenv("DB_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisQueue:    os.Getenv("REDIS_QUEUE"),
		WorkerCount:   1,
		JobBufferSize: 64,
		FlushInterval: time.Minute,
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	if cfg.RedisQueue == "" {
		cfg.RedisQueue = "participant_records"
	}

	if raw := os.Getenv("WORKER_COUNT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("WORKER_COUNT must be a positive integer, got %q", raw)
		}
		cfg.WorkerCount = n
	}

	if raw := os.Getenv("JOB_BUFFER_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("JOB_BUFFER_SIZE must be a positive integer, got %q", raw)
		}
		cfg.JobBufferSize = n
	}

	if raw := os.Getenv("FLUSH_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("FLUSH_INTERVAL must be a positive duration, got %q", raw)
		}
		cfg.FlushInterval = d
	}

	if raw := os.Getenv("ACCEPTED_PATCHES"); raw != "" {
		for _, patch := range strings.Split(raw, ",") {
			patch = strings.TrimSpace(patch)
			if patch != "" {
				cfg.AcceptedPatches = append(cfg.AcceptedPatches, patch)
			}
		}
	}

	return cfg, nil
}
