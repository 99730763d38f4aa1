// internal/config/config.go
//
// Tunables for the Snatch server.
// Responsibilities:
//   - Room and registry limits (players per room, concurrent rooms).
//   - Turn timeout durations, overridable from the environment.
//   - Nickname validation rule shared by the transport layer.
//
// Defaults mirror the classic game setup: 2–5 players, 30s turns, and a 5s
// short turn for players who stopped responding.

package config

import (
	"os"
	"regexp"
	"strconv"
	"time"
)

const (
	MaxPlayers = 5
	MinPlayers = 2

	// MaxRooms bounds the registry; the 4-digit pin space is 10,000 codes.
	MaxRooms = 10000

	defaultTurnTimeout         = 30 * time.Second
	defaultInactiveTurnTimeout = 5 * time.Second
)

// NicknameRE accepts 1–16 alphanumeric characters.
var NicknameRE = regexp.MustCompile(`^[a-zA-Z0-9]{1,16}$`)

// Config carries the per-room timing knobs. Rooms receive a Config at
// construction so tests can shrink the timeouts.
type Config struct {
	TurnTimeout         time.Duration // full turn for a responsive player
	InactiveTurnTimeout time.Duration // shortened turn for inactive/disconnected players
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		TurnTimeout:         defaultTurnTimeout,
		InactiveTurnTimeout: defaultInactiveTurnTimeout,
	}
}

// FromEnv returns the default configuration with TURN_TIMEOUT_MS and
// INACTIVE_TURN_TIMEOUT_MS applied when set and parseable.
func FromEnv() Config {
	cfg := Default()
	if d, ok := envMillis("TURN_TIMEOUT_MS"); ok {
		cfg.TurnTimeout = d
	}
	if d, ok := envMillis("INACTIVE_TURN_TIMEOUT_MS"); ok {
		cfg.InactiveTurnTimeout = d
	}
	return cfg
}

// envMillis reads a positive millisecond count from the environment.
func envMillis(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
