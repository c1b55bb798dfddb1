package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// sipTypes mirrors sip.Types; config cannot import the sip package.
var sipTypes = []string{"coffee", "tea", "water", "other"}

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	Type       KeyType
	Desc       string
	DefaultStr string
	// Secret values are masked by `siptrackr config`.
	Secret bool

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:  KeyTypeString,
		Desc:  "Display name used in greetings",
		get:   func(cfg *Config) string { return cfg.User.Name },
		set:   func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset: func(cfg *Config) { cfg.User.Name = "" },
	},
	"sip.default_type": {
		Type:       KeyTypeString,
		Desc:       "Drink used when --type is omitted (coffee, tea, water, other)",
		DefaultStr: DefaultSipType,
		get:        func(cfg *Config) string { return cfg.Sip.DefaultType },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, t := range sipTypes {
				if t == v {
					cfg.Sip.DefaultType = v
					return nil
				}
			}
			return fmt.Errorf("invalid sip type %q (use one of: %s)", v, strings.Join(sipTypes, ", "))
		},
		unset: func(cfg *Config) { cfg.Sip.DefaultType = DefaultSipType },
	},
	"journal.preview_length": {
		Type:       KeyTypeInt,
		Desc:       "Characters shown per entry in `siptrackr journal`",
		DefaultStr: strconv.Itoa(DefaultPreviewLength),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Journal.PreviewLength) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value %q for journal.preview_length: must be a positive integer", v)
			}
			cfg.Journal.PreviewLength = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Journal.PreviewLength = DefaultPreviewLength },
	},
	"journal.render_markdown": {
		Type:       KeyTypeBool,
		Desc:       "Render journal entries as markdown in `journal show`",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Journal.MarkdownEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for journal.render_markdown: %w", v, err)
			}
			cfg.Journal.RenderMarkdown = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Journal.RenderMarkdown = BoolPtr(true) },
	},
	"remind.schedule": {
		Type:       KeyTypeString,
		Desc:       "Cron spec for reminder checks (e.g. \"0 9 * * *\")",
		DefaultStr: DefaultRemindSchedule,
		get:        func(cfg *Config) string { return cfg.Remind.Schedule },
		set: func(cfg *Config, v string) error {
			if _, err := cron.ParseStandard(v); err != nil {
				return fmt.Errorf("invalid cron spec %q: %w", v, err)
			}
			cfg.Remind.Schedule = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Remind.Schedule = DefaultRemindSchedule },
	},
	"remind.metrics_addr": {
		Type:  KeyTypeString,
		Desc:  "Listen address for reminder daemon /metrics (empty disables)",
		get:   func(cfg *Config) string { return cfg.Remind.MetricsAddr },
		set:   func(cfg *Config, v string) error { cfg.Remind.MetricsAddr = v; return nil },
		unset: func(cfg *Config) { cfg.Remind.MetricsAddr = "" },
	},
	"telegram.token": {
		Type:   KeyTypeString,
		Desc:   "Telegram bot token for reminders",
		Secret: true,
		get:    func(cfg *Config) string { return cfg.Telegram.Token },
		set:    func(cfg *Config, v string) error { cfg.Telegram.Token = v; return nil },
		unset:  func(cfg *Config) { cfg.Telegram.Token = "" },
	},
	"telegram.chat_id": {
		Type:       KeyTypeInt,
		Desc:       "Telegram chat that receives reminders",
		DefaultStr: "0",
		get:        func(cfg *Config) string { return strconv.FormatInt(cfg.Telegram.ChatID, 10) },
		set: func(cfg *Config, v string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q for telegram.chat_id: must be an integer", v)
			}
			cfg.Telegram.ChatID = id
			return nil
		},
		unset: func(cfg *Config) { cfg.Telegram.ChatID = 0 },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
