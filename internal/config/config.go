package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// Config holds runtime settings for the pullup binary.
type Config struct {
	DBPath    string
	LogEvents bool
	TickMs    int
	// RestSeconds overrides the protocol default rest per protocol.
	RestSeconds map[domain.Protocol]int
}

// DefaultConfig returns a Config with sensible defaults.
// The database lives at ~/.pullup/pullup.db when the home directory is known.
func DefaultConfig() Config {
	dbPath := "pullup.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".pullup", "pullup.db")
	}
	return Config{
		DBPath:      dbPath,
		LogEvents:   false,
		TickMs:      100,
		RestSeconds: map[domain.Protocol]int{},
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PULLUP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PULLUP_LOG_EVENTS"); v != "" {
		cfg.LogEvents, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PULLUP_TICK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TickMs = n
		}
	}

	applyRestEnv(&cfg, domain.ProtocolMaxEffort, "PULLUP_REST_MAX_EFFORT")
	applyRestEnv(&cfg, domain.ProtocolAutoVolume, "PULLUP_REST_AUTO_VOLUME")
	applyRestEnv(&cfg, domain.ProtocolLadder, "PULLUP_REST_LADDER")

	return cfg
}

// TickInterval returns the display refresh interval.
func (c Config) TickInterval() time.Duration {
	if c.TickMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

// SessionConfig returns the protocol defaults with any rest override applied.
func (c Config) SessionConfig(p domain.Protocol) (domain.SessionConfig, error) {
	sc, ok := domain.DefaultSessionConfig(p)
	if !ok {
		return domain.SessionConfig{}, fmt.Errorf("no session defaults for protocol %q", p)
	}
	if rest, ok := c.RestSeconds[p]; ok {
		sc.RestSeconds = rest
	}
	return sc, nil
}

func applyRestEnv(cfg *Config, p domain.Protocol, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return
	}
	cfg.RestSeconds[p] = n
}
