// FILE: config.go
package louislog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// ShowConfig controls console output and record formatting.
type ShowConfig struct {
	Console      bool     `toml:"console"`       // Mirror records to stdout
	MainProcess  bool     `toml:"main_process"`  // Include the main process tag
	SubProcess   bool     `toml:"sub_process"`   // Include the sub process tag
	Date         bool     `toml:"date"`          // Include the formatted date
	DateFormat   string   `toml:"date_format"`   // Go layout for the human-readable date
	Level        bool     `toml:"level"`         // Include the level tag
	IgnoreLevels []string `toml:"ignore_levels"` // Levels muted on the console
}

// StorageConfig controls the file sink.
type StorageConfig struct {
	Path         string   `toml:"path"`          // Base directory for bucketed log files
	Text         bool     `toml:"text"`          // Write the plain-text log file
	JSON         bool     `toml:"json"`          // Write the JSON-lines log file
	SplitBy      string   `toml:"split_by"`      // none, year, month, day, hour, minute, second
	Strategy     string   `toml:"strategy"`      // single or batch
	BatchSize    int64    `toml:"batch_size"`    // Records buffered per flush when batching
	IgnoreLevels []string `toml:"ignore_levels"` // Levels excluded from file storage
}

// WebhookConfig controls the webhook sink.
type WebhookConfig struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	Provider       string `toml:"provider"`         // none or discord
	PostsPerMinute int64  `toml:"posts_per_minute"` // Delivery self-limit, 0 disables limiting
}

// HeartbeatConfig controls the periodic pipeline statistics record.
type HeartbeatConfig struct {
	Enabled   bool  `toml:"enabled"`
	IntervalS int64 `toml:"interval_s"`
}

// Config holds all logger configuration values. It is merged from defaults
// and user overrides at construction and treated as immutable afterwards.
type Config struct {
	MainProcess string `toml:"main_process"`
	SubProcess  string `toml:"sub_process"`

	Show      ShowConfig      `toml:"show"`
	Storage   StorageConfig   `toml:"storage"`
	Webhook   WebhookConfig   `toml:"webhook"`
	Heartbeat HeartbeatConfig `toml:"heartbeat"`

	// InternalErrorsToStderr writes logger self-diagnostics to stderr
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	MainProcess: "main",
	SubProcess:  "log",

	Show: ShowConfig{
		Console:     true,
		MainProcess: true,
		SubProcess:  true,
		Date:        true,
		DateFormat:  "2006-01-02 15:04:05",
		Level:       true,
	},

	Storage: StorageConfig{
		Path:      "./logs",
		Text:      true,
		JSON:      true,
		SplitBy:   "day",
		Strategy:  "single",
		BatchSize: 16,
	},

	Webhook: WebhookConfig{
		Enabled:        false,
		Provider:       "none",
		PostsPerMinute: 30,
	},

	Heartbeat: HeartbeatConfig{
		Enabled:   false,
		IntervalS: 60,
	},

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	copiedConfig.Show.IgnoreLevels = append([]string(nil), c.Show.IgnoreLevels...)
	copiedConfig.Storage.IgnoreLevels = append([]string(nil), c.Storage.IgnoreLevels...)
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	// Validate the loaded configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides.
// Override keys use dotted toml paths, e.g. "storage.batch_size".
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into a struct value,
// descending into nested settings groups by their toml tags.
func extractConfig(loader *config.Config, prefix string, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		if fieldValue.Kind() == reflect.Struct {
			if err := extractConfig(loader, prefix+tomlTag+".", fieldValue); err != nil {
				return err
			}
			continue
		}

		key := prefix + tomlTag
		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of dotted-key overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	for key, value := range overrides {
		fieldValue, err := lookupField(reflect.ValueOf(cfg).Elem(), key)
		if err != nil {
			return err
		}
		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// lookupField resolves a dotted toml path to a settable struct field.
func lookupField(v reflect.Value, key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	for depth, part := range parts {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmtErrorf("unknown config key: %s", key)
		}
		t := v.Type()
		found := false
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("toml") == part {
				v = v.Field(i)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmtErrorf("unknown config key: %s", key)
		}
		if depth < len(parts)-1 && v.Kind() != reflect.Struct {
			return reflect.Value{}, fmtErrorf("unknown config key: %s", key)
		}
	}
	return v, nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	case reflect.Slice:
		switch v := value.(type) {
		case []string:
			field.Set(reflect.ValueOf(append([]string(nil), v...)))
		case []any:
			strs := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected string list element, got %T", item)
				}
				strs = append(strs, s)
			}
			field.Set(reflect.ValueOf(strs))
		default:
			return fmt.Errorf("expected string list, got %T", value)
		}

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.MainProcess) == "" {
		return fmtErrorf("main_process cannot be empty")
	}

	if strings.TrimSpace(c.Show.DateFormat) == "" {
		return fmtErrorf("show.date_format cannot be empty")
	}

	if _, err := parseIgnoreLevels(c.Show.IgnoreLevels); err != nil {
		return fmtErrorf("invalid show.ignore_levels: %w", err)
	}

	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmtErrorf("storage.path cannot be empty")
	}

	// split_by is deliberately not rejected here; an unrecognized value
	// falls back to the unsplit bucket at dispatch time and is reported
	// as a record-level error.

	strat, err := parseStrategy(c.Storage.Strategy)
	if err != nil {
		return err
	}

	// A batching sink with a batch of one would never behave like a
	// buffer; the rest of the pipeline assumes this invariant holds.
	if strat == strategyBatch && c.Storage.BatchSize <= 1 {
		return fmtErrorf("storage.batch_size must be greater than 1 when strategy is batch: %d", c.Storage.BatchSize)
	}

	if _, err := parseIgnoreLevels(c.Storage.IgnoreLevels); err != nil {
		return fmtErrorf("invalid storage.ignore_levels: %w", err)
	}

	provider := strings.ToLower(strings.TrimSpace(c.Webhook.Provider))
	if provider != "" && provider != "none" && provider != "discord" {
		return fmtErrorf("invalid webhook.provider: '%s' (use none or discord)", c.Webhook.Provider)
	}

	if c.Webhook.PostsPerMinute < 0 {
		return fmtErrorf("webhook.posts_per_minute cannot be negative: %d", c.Webhook.PostsPerMinute)
	}

	if c.Heartbeat.Enabled && c.Heartbeat.IntervalS <= 0 {
		return fmtErrorf("heartbeat.interval_s must be positive when heartbeat is enabled: %d", c.Heartbeat.IntervalS)
	}

	return nil
}
