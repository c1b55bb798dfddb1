package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// appName names the XDG subdirectories and the database file.
const appName = "siptrackr"

// Defaults applied when a key is absent from config.toml.
const (
	DefaultSipType        = "coffee"
	DefaultPreviewLength  = 150
	DefaultRemindSchedule = "0 9 * * *"
)

// Config holds the top-level siptrackr configuration.
type Config struct {
	User     UserConfig     `toml:"user"`
	Sip      SipConfig      `toml:"sip"`
	Journal  JournalConfig  `toml:"journal"`
	Remind   RemindConfig   `toml:"remind"`
	Telegram TelegramConfig `toml:"telegram"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

type SipConfig struct {
	DefaultType string `toml:"default_type"`
}

// JournalConfig controls how journal entries are listed and shown.
type JournalConfig struct {
	PreviewLength int `toml:"preview_length"`
	// RenderMarkdown defaults to true when not set.
	RenderMarkdown *bool `toml:"render_markdown,omitempty"`
}

// MarkdownEnabled treats a missing render_markdown as true.
func (j JournalConfig) MarkdownEnabled() bool {
	if j.RenderMarkdown == nil {
		return true
	}
	return *j.RenderMarkdown
}

// RemindConfig drives the `siptrackr remind` daemon.
type RemindConfig struct {
	Schedule    string `toml:"schedule"`     // standard 5-field cron spec
	MetricsAddr string `toml:"metrics_addr"` // e.g. ":9464"; empty disables /metrics
}

// TelegramConfig enables reminder delivery through a Telegram bot.
// Both fields must be set; otherwise reminders print to stdout.
type TelegramConfig struct {
	Token  string `toml:"token"`
	ChatID int64  `toml:"chat_id"`
}

// Enabled reports whether both token and chat are configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	appConfig := filepath.Join(configDir, appName)
	appData := filepath.Join(dataDir, appName)

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		CacheDir:   filepath.Join(cacheDir, appName),
		StateDir:   filepath.Join(stateDir, appName),
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, appName+".db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// Keys missing from the file fall back to their defaults.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.fillDefaults()
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file has been written.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		Sip: SipConfig{
			DefaultType: DefaultSipType,
		},
		Journal: JournalConfig{
			PreviewLength:  DefaultPreviewLength,
			RenderMarkdown: BoolPtr(true),
		},
		Remind: RemindConfig{
			Schedule: DefaultRemindSchedule,
		},
	}
}

// fillDefaults restores defaults for keys explicitly emptied in the file.
func (c *Config) fillDefaults() {
	if c.Sip.DefaultType == "" {
		c.Sip.DefaultType = DefaultSipType
	}
	if c.Journal.PreviewLength <= 0 {
		c.Journal.PreviewLength = DefaultPreviewLength
	}
	if c.Remind.Schedule == "" {
		c.Remind.Schedule = DefaultRemindSchedule
	}
}

// WithEnv returns a copy of c with SIPTRACKR_TELEGRAM_TOKEN and
// SIPTRACKR_TELEGRAM_CHAT_ID applied. The copy is never meant to be saved.
func (c Config) WithEnv() *Config {
	if v := os.Getenv("SIPTRACKR_TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("SIPTRACKR_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	return &c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
