package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/airpong/backend/internal/game"
	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port        string
	FrontendURL string

	// Redis
	RedisURL           string
	MatchEventsChannel string

	// Match
	MatchID        string
	WinThreshold   int
	ServeIncrement int

	// Runner
	FrameRate      int
	AutoServe      bool
	ServeDelayMs   int
	InputQueueSize int

	// Physics overrides
	TableRebound    float64
	TableFriction   float64
	DragCoefficient float64
	LiftCoefficient float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	defaults := game.DefaultParams()
	match := game.DefaultMatchConfig()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", ""),

		// Redis (empty disables event publishing)
		RedisURL:           getEnv("REDIS_URL", ""),
		MatchEventsChannel: getEnv("MATCH_EVENTS_CHANNEL", "match_events"),

		// Match
		MatchID:        getEnv("MATCH_ID", "local"),
		WinThreshold:   getEnvInt("WIN_THRESHOLD", match.WinThreshold),
		ServeIncrement: getEnvInt("SERVE_INCREMENT", match.ServeIncrement),

		// Runner
		FrameRate:      getEnvInt("FRAME_RATE", 60),
		AutoServe:      getEnvBool("AUTO_SERVE", true),
		ServeDelayMs:   getEnvInt("SERVE_DELAY_MS", 1500),
		InputQueueSize: getEnvInt("INPUT_QUEUE_SIZE", 64),

		// Physics overrides
		TableRebound:    getEnvFloat("TABLE_REBOUND", defaults.TableRebound),
		TableFriction:   getEnvFloat("TABLE_FRICTION", defaults.TableFriction),
		DragCoefficient: getEnvFloat("DRAG_COEFFICIENT", defaults.DragCoefficient),
		LiftCoefficient: getEnvFloat("LIFT_COEFFICIENT", defaults.LiftCoefficient),
	}
}

// MatchConfig returns the scoring rules for a new match.
func (c *Config) MatchConfig() game.MatchConfig {
	return game.MatchConfig{
		WinThreshold:   c.WinThreshold,
		ServeIncrement: c.ServeIncrement,
	}
}

// PhysicsParams returns the default coefficients with the configured overrides applied.
func (c *Config) PhysicsParams() game.Params {
	p := game.DefaultParams()
	p.TableRebound = c.TableRebound
	p.TableFriction = c.TableFriction
	p.DragCoefficient = c.DragCoefficient
	p.LiftCoefficient = c.LiftCoefficient
	return p
}

func (c *Config) RunnerConfig() game.RunnerConfig {
	return game.RunnerConfig{
		MatchID:        c.MatchID,
		FrameRate:      c.FrameRate,
		AutoServe:      c.AutoServe,
		ServeDelay:     time.Duration(c.ServeDelayMs) * time.Millisecond,
		InputQueueSize: c.InputQueueSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("[CONFIG] Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("[CONFIG] Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return defaultValue
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	log.Printf("[CONFIG] Ignoring invalid %s=%q", key, os.Getenv(key))
	return defaultValue
}
