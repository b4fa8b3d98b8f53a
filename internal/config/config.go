// Package config loads and saves the zenfin TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "zenfin"

// Config holds all zenfin configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advice     AdviceConfig     `toml:"advice"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage and display preferences.
type GeneralConfig struct {
	DBPath      string `toml:"db_path,omitempty"`
	RecentCount int    `toml:"recent_count"`
}

// AdviceConfig selects the model provider used for insights.
type AdviceConfig struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model,omitempty"`
	BaseURL         string `toml:"base_url,omitempty"`
	APIKey          string `toml:"api_key,omitempty"`
	MinTransactions int    `toml:"min_transactions"`
	TimeoutSec      int    `toml:"timeout_sec"`
}

// Timeout returns the request timeout; zero means the transport default.
func (a AdviceConfig) Timeout() time.Duration {
	if a.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSec) * time.Second
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			RecentCount: 6,
		},
		Advice: AdviceConfig{
			Provider:        "openai",
			MinTransactions: 3,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the XDG-compliant state directory.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback, appName)
}

// DBPath returns the configured database path or the default one.
func DBPath(cfg Config) string {
	if cfg.General.DBPath != "" {
		return expandHome(cfg.General.DBPath)
	}
	return filepath.Join(DataDir(), "zenfin.db")
}

// LogPath returns the configured log file or the default one.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return expandHome(cfg.Log.File)
	}
	return filepath.Join(StateDir(), "zenfin.log")
}

func expandHome(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, rest)
	}
	return p
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.RecentCount <= 0 {
		cfg.General.RecentCount = 6
	}
	if cfg.Advice.MinTransactions <= 0 {
		cfg.Advice.MinTransactions = 3
	}

	return cfg, nil
}

// Save writes the config to disk. The file may hold an API key, so it is
// only readable by the owner.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// apiKeyEnv lists the environment variables checked for an API key, in order.
var apiKeyEnv = []string{"ZENFIN_API_KEY", "GEMINI_API_KEY", "API_KEY"}

// GetAPIKey returns the advice API key from env vars or config, in that order.
func GetAPIKey(cfg Config) string {
	for _, env := range apiKeyEnv {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return cfg.Advice.APIKey
}

// MaskKey hides all but the last four characters of a secret.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
