package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime knob, loaded from the environment.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Optional postgres DSN. When empty the server runs with in-memory
	// stores and a no-op session mirror.
	DatabaseURL string `env:"DATABASE_URL"`

	// Tactical-prompt evaluator endpoint. When empty a fixed bonus is used.
	EvaluatorURL     string        `env:"EVALUATOR_URL"`
	EvaluatorTimeout time.Duration `env:"EVALUATOR_TIMEOUT" envDefault:"5s"`

	BossBaseHP      int `env:"BOSS_BASE_HP" envDefault:"1000"`
	BossHPPerPlayer int `env:"BOSS_HP_PER_PLAYER" envDefault:"500"`

	TurnDuration   time.Duration `env:"TURN_DURATION" envDefault:"30s"`
	TurnTick       time.Duration `env:"TURN_TICK" envDefault:"1s"`
	BroadcastPace  time.Duration `env:"BROADCAST_PACE" envDefault:"800ms"`
	MemberSkillCnt int           `env:"MEMBER_SKILL_COUNT" envDefault:"12"`

	HeartbeatInterval time.Duration `env:"WS_HEARTBEAT_INTERVAL" envDefault:"30s"`
	HeartbeatTimeout  time.Duration `env:"WS_TIMEOUT" envDefault:"300s"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
