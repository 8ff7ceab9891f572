package config

import (
	"fmt"
	"os"

	"github.com/gravitas-games/hexboard/internal/board"
	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Board  BoardConfig  `yaml:"board"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer   string `yaml:"issuer"`
	Secret   string `yaml:"secret"`   // HS256 shared secret
	Disabled bool   `yaml:"disabled"` // local play without tokens
}

// RedisConfig holds Redis connection settings. An empty address runs
// without Redis.
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	ArchivePrefix   string `yaml:"archive_prefix"`
}

// BoardConfig holds rendering settings
type BoardConfig struct {
	HexSize    float64       `yaml:"hex_size"`
	ManyMarker string        `yaml:"many_marker"`
	Palette    board.Palette `yaml:"palette"` // overrides of the default colours
}

// GameConfig selects the game to host
type GameConfig struct {
	ID           string `yaml:"id"`
	ScenarioPath string `yaml:"scenario_path"`
	StatsPath    string `yaml:"stats_path"` // optional stat overrides
	LocalePath   string `yaml:"locale_path"`
	Language     string `yaml:"language"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "hexboard"
	}
	if cfg.Redis.BlacklistPrefix == "" {
		cfg.Redis.BlacklistPrefix = "hexboard:blacklist:"
	}
	if cfg.Redis.ArchivePrefix == "" {
		cfg.Redis.ArchivePrefix = "hexboard:reports:"
	}
	if cfg.Board.HexSize == 0 {
		cfg.Board.HexSize = 32
	}
	if cfg.Board.ManyMarker == "" {
		cfg.Board.ManyMarker = board.DefaultManyMarker
	}
	cfg.Board.Palette = board.DefaultPalette.Merge(cfg.Board.Palette)
	if cfg.Game.ID == "" {
		cfg.Game.ID = "local"
	}
	if cfg.Game.LocalePath == "" {
		cfg.Game.LocalePath = "./locales"
	}
	if cfg.Game.Language == "" {
		cfg.Game.Language = "en_US"
	}
}

// Validate checks settings that have no safe default.
func (cfg *Config) Validate() error {
	if cfg.Board.HexSize < 0 {
		return fmt.Errorf("invalid board.hex_size %v", cfg.Board.HexSize)
	}
	if err := cfg.Board.Palette.Validate(); err != nil {
		return fmt.Errorf("invalid board.palette: %w", err)
	}
	if !cfg.JWT.Disabled && cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required unless jwt.disabled is set")
	}
	return nil
}
