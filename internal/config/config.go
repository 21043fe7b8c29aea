// Package config loads the client configuration from the user's config
// directory (config.yaml under ~/.config/retroterm by default), with
// RETROTERM_* environment variables taking precedence. UI preference flags
// (theme, notification toggles) live in the same file and are written back
// through Save; they are cosmetic and nothing else depends on them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appDirName     = "retroterm"
	configFileName = "config"

	defaultServerURL = "http://localhost:4000/api"
	defaultLogLevel  = "info"
	defaultTheme     = "dark"
)

// ServerConfig points the client at the backend and tunes its HTTP client.
type ServerConfig struct {
	BaseURL             string
	DialTimeout         time.Duration
	ResponseTimeout     time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// UIConfig holds the persisted cosmetic preferences.
type UIConfig struct {
	Theme         string
	Notifications bool
	ShowActivity  bool
}

// Config is the resolved runtime configuration.
type Config struct {
	Dir      string
	LogLevel string
	Server   ServerConfig
	UI       UIConfig

	v *viper.Viper
}

// Load resolves the config directory, reads config.yaml if present, and
// applies env overrides. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve config dir: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDirName))
}

// LoadFrom reads configuration rooted at dir. Split out so tests can point at
// a temp directory.
func LoadFrom(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("config: ensure dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("RETROTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", defaultServerURL)
	v.SetDefault("server.dial_timeout", "10s")
	v.SetDefault("server.response_timeout", "30s")
	v.SetDefault("server.max_idle_conns", 16)
	v.SetDefault("server.max_idle_conns_per_host", 8)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("ui.theme", defaultTheme)
	v.SetDefault("ui.notifications", true)
	v.SetDefault("ui.show_activity", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{
		Dir:      dir,
		LogLevel: v.GetString("log.level"),
		Server: ServerConfig{
			BaseURL:             v.GetString("server.url"),
			DialTimeout:         v.GetDuration("server.dial_timeout"),
			ResponseTimeout:     v.GetDuration("server.response_timeout"),
			MaxIdleConns:        v.GetInt("server.max_idle_conns"),
			MaxIdleConnsPerHost: v.GetInt("server.max_idle_conns_per_host"),
		},
		UI: UIConfig{
			Theme:         v.GetString("ui.theme"),
			Notifications: v.GetBool("ui.notifications"),
			ShowActivity:  v.GetBool("ui.show_activity"),
		},
		v: v,
	}
	return cfg, nil
}

// Save writes the current UI preferences back to config.yaml, creating the
// file on first write.
func (c *Config) Save() error {
	c.v.Set("ui.theme", c.UI.Theme)
	c.v.Set("ui.notifications", c.UI.Notifications)
	c.v.Set("ui.show_activity", c.UI.ShowActivity)
	path := filepath.Join(c.Dir, configFileName+".yaml")
	if err := c.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: write config file: %w", err)
	}
	return nil
}
