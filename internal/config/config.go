// Package config loads the server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the config is looked up when EnvPath is unset.
	DefaultPath = "config/labyrinth.yaml"
	// EnvPath overrides the config file location.
	EnvPath = "LABYRINTH_CONFIG"
)

// Labyrinth holds all configuration for the match server.
type Labyrinth struct {
	// Network
	BindAddress     string `yaml:"bind_address"`
	MatchmakingPort int    `yaml:"matchmaking_port"`

	LogLevel string `yaml:"log_level"` // debug|info|warn|error
	AIDebug  bool   `yaml:"ai_debug"`

	// Clients with another major version are refused by matchmaking.
	GameVersionMajor uint8 `yaml:"game_version_major"`

	Controller Controller     `yaml:"controller"`
	Session    Session        `yaml:"session"`
	Database   DatabaseConfig `yaml:"database"`
}

// Controller configures the session lifecycle manager.
type Controller struct {
	PortRangeStart    int `yaml:"port_range_start"`
	PortRangeSize     int `yaml:"port_range_size"`
	MaxSessions       int `yaml:"max_sessions"` // concurrent session workers
	PlayersPerSession int `yaml:"players_per_session"`
}

// Session configures one match.
type Session struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	RespawnDelay           time.Duration `yaml:"respawn_delay"`
	RespawnInvulnerability time.Duration `yaml:"respawn_invulnerability"`
	DuelInvulnerability    time.Duration `yaml:"duel_invulnerability"`

	// Map generation
	ChunkCount int `yaml:"chunk_count"`
	ChunkSize  int `yaml:"chunk_size"`
	Monsters   int `yaml:"monsters"`
	Swords     int `yaml:"swords"`

	AggroRadius float64 `yaml:"aggro_radius"`

	ReadBuffer int    `yaml:"read_buffer"` // bytes
	CipherKey  string `yaml:"cipher_key"`  // empty = plaintext datagrams
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSession returns the stock match parameters.
func DefaultSession() Session {
	return Session{
		TickInterval:           2 * time.Millisecond,
		IdleTimeout:            30 * time.Second,
		RespawnDelay:           3 * time.Second,
		RespawnInvulnerability: 5 * time.Second,
		DuelInvulnerability:    3 * time.Second,
		ChunkCount:             3,
		ChunkSize:              10,
		Monsters:               4,
		Swords:                 3,
		AggroRadius:            6,
		ReadBuffer:             512,
	}
}

// DefaultLabyrinth returns Labyrinth config with sensible defaults.
func DefaultLabyrinth() Labyrinth {
	return Labyrinth{
		BindAddress:      "0.0.0.0",
		MatchmakingPort:  1930,
		LogLevel:         "info",
		GameVersionMajor: 1,
		Controller: Controller{
			PortRangeStart:    1931,
			PortRangeSize:     2000,
			MaxSessions:       16,
			PlayersPerSession: 1,
		},
		Session: DefaultSession(),
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "labyrinth",
			Password: "labyrinth",
			DBName:   "labyrinth",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config file location, honoring EnvPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadLabyrinth loads the config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadLabyrinth(path string) (Labyrinth, error) {
	cfg := DefaultLabyrinth()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values the server cannot start with.
func (c Labyrinth) Validate() error {
	var errs []error
	if c.MatchmakingPort <= 0 || c.MatchmakingPort > 0xFFFF {
		errs = append(errs, fmt.Errorf("matchmaking_port %d out of range", c.MatchmakingPort))
	}
	if c.Controller.PortRangeStart <= 0 || c.Controller.PortRangeStart+c.Controller.PortRangeSize-1 > 0xFFFF {
		errs = append(errs, fmt.Errorf("port range %d+%d out of range",
			c.Controller.PortRangeStart, c.Controller.PortRangeSize))
	}
	if c.Controller.PortRangeSize <= 0 {
		errs = append(errs, errors.New("port_range_size must be positive"))
	}
	if c.Controller.MaxSessions <= 0 {
		errs = append(errs, errors.New("max_sessions must be positive"))
	}
	if c.Controller.PlayersPerSession <= 0 {
		errs = append(errs, errors.New("players_per_session must be positive"))
	}
	if c.Session.TickInterval <= 0 {
		errs = append(errs, errors.New("tick_interval must be positive"))
	}
	if c.Session.ChunkCount < 1 || c.Session.ChunkSize < 4 {
		errs = append(errs, fmt.Errorf("map %dx%d chunks is too small", c.Session.ChunkCount, c.Session.ChunkSize))
	}
	if k := len(c.Session.CipherKey); k > 56 {
		errs = append(errs, fmt.Errorf("cipher_key of %d bytes exceeds 56", k))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps a config level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}
