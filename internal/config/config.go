// Package config loads runtime configuration from environment variables,
// the way most of the server's ambient dependencies expect to be wired:
// one struct, tagged, parsed in a single call.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// ServerConfig configures the HTTP API process (cmd/server).
type ServerConfig struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	ProjectDir string `env:"PROJECT_DIR" envDefault:"./data/projects"`
	WatchFiles bool   `env:"WATCH_PROJECT_FILES" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	NATSURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	RecomputeCron string `env:"RECOMPUTE_CRON" envDefault:"0 */5 * * * *"`
	DLQThreshold  int    `env:"DLQ_THRESHOLD" envDefault:"100"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// RecomputeConfig configures the standalone batch recompute daemon (cmd/recompute).
type RecomputeConfig struct {
	ProjectDir string `env:"PROJECT_DIR" envDefault:"./data/projects"`
	CronExpr   string `env:"RECOMPUTE_CRON" envDefault:"0 */5 * * * *"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	NATSURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	DLQCapacity int `env:"DLQ_CAPACITY" envDefault:"1000"`

	RunOnceAndExit bool `env:"RUN_ONCE" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServerConfig parses ServerConfig from the process environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse server config: %w", err)
	}
	return cfg, nil
}

// LoadRecomputeConfig parses RecomputeConfig from the process environment.
func LoadRecomputeConfig() (RecomputeConfig, error) {
	var cfg RecomputeConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse recompute config: %w", err)
	}
	return cfg, nil
}
