// FILE: lixenwraith/recorder/config.go
package recorder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
	"github.com/lixenwraith/recorder/export"
	"github.com/lixenwraith/recorder/formatter"
	"github.com/lixenwraith/recorder/sanitizer"
	"github.com/robfig/cron/v3"
)

// Config holds all recorder configuration values. A Recorder copies its Config at
// construction; later changes to the struct have no effect on it.
type Config struct {
	// Log file
	Name      string `toml:"name"`      // Base name of the log file
	Extension string `toml:"extension"` // File extension without the dot
	Directory string `toml:"directory"` // Directory holding the active log file
	Enabled   bool   `toml:"enabled"`   // Disabled recorders open no file and drop every entry

	// Export
	Destination       string `toml:"destination"`         // "documents" or "downloads"; empty for none
	ExportTarget      string `toml:"export_target"`       // s3://, gs://, file:// or a directory; overrides destination
	OverwriteOnExport bool   `toml:"overwrite_on_export"` // Replace a single exported file instead of adding a new one per export
	ExportCompression string `toml:"export_compression"`  // "none" or "zstd"
	ExportSchedule    string `toml:"export_schedule"`     // Standard 5-field cron expression; empty disables

	// Queue and formatting
	QueueCapacity    int64  `toml:"queue_capacity"`    // Entries buffered between producers and the writer
	TimestampFormat  string `toml:"timestamp_format"`  // Go time layout for the line prefix
	TextSanitization string `toml:"text_sanitization"` // "raw", "hex", "escape" or "strip" for plain-text entries

	// Mask rules
	MaskRulesFile  string `toml:"mask_rules_file"`  // YAML rule file loaded at construction
	WatchMaskRules bool   `toml:"watch_mask_rules"` // Reload the rule file when it changes

	// Heartbeat
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // Interval seconds for stats lines, 0 disables

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Log file
	Name:      DefaultName,
	Extension: "log",
	Directory: "./logs",
	Enabled:   true,

	// Export
	Destination:       string(export.Documents),
	ExportTarget:      "",
	OverwriteOnExport: false,
	ExportCompression: CompressionNone,
	ExportSchedule:    "",

	// Queue and formatting
	QueueCapacity:    DefaultQueueCapacity,
	TimestampFormat:  formatter.DefaultTimestampFormat,
	TextSanitization: "raw",

	// Mask rules
	MaskRulesFile:  "",
	WatchMaskRules: false,

	// Heartbeat
	HeartbeatIntervalS: 0,

	// Internal error handling
	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys live under the [recorder] table; a missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("recorder.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "recorder.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
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
		case float64:
			// TOML decoders may hand back whole numbers as floats
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
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

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	// String validations
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmtErrorf("name cannot be empty")
	}
	if strings.ContainsAny(c.Name, `/\`) || name == "." || name == ".." {
		return fmtErrorf("invalid log file name: '%s'", c.Name)
	}

	if strings.HasPrefix(c.Extension, ".") {
		return fmtErrorf("extension should not start with dot: %s", c.Extension)
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return fmtErrorf("invalid extension: '%s'", c.Extension)
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if c.Destination != "" {
		if _, err := export.ParseDestination(c.Destination); err != nil {
			return fmtErrorf("invalid destination: %w", err)
		}
	}

	if c.ExportCompression != CompressionNone && c.ExportCompression != CompressionZstd {
		return fmtErrorf("invalid export_compression: '%s' (use none or zstd)", c.ExportCompression)
	}

	if c.ExportSchedule != "" {
		if _, err := cron.ParseStandard(c.ExportSchedule); err != nil {
			return fmtErrorf("invalid export_schedule %q: %w", c.ExportSchedule, err)
		}
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if _, err := sanitizer.ParseMode(c.TextSanitization); err != nil {
		return fmtErrorf("invalid text_sanitization: %w", err)
	}

	// Numeric validations
	if c.QueueCapacity <= 0 {
		return fmtErrorf("queue_capacity must be positive: %d", c.QueueCapacity)
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	// Cross-field validations
	if c.WatchMaskRules && c.MaskRulesFile == "" {
		return fmtErrorf("watch_mask_rules requires mask_rules_file")
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// logFileName returns the log file name including the extension
func (c *Config) logFileName() string {
	if c.Extension == "" {
		return c.Name
	}
	return c.Name + "." + c.Extension
}
