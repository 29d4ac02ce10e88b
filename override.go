// FILE: lixenwraith/recorder/override.go
package recorder

import (
	"fmt"
	"strconv"
	"strings"
)

// NewConfigFromOverrides creates a Config with default values and applies
// string overrides, each in the format "key=value".
//
// Example:
//
//	cfg, err := recorder.NewConfigFromOverrides(
//	    "directory=/var/log/app",
//	    "queue_capacity=500",
//	    "export_target=s3://logs/app",
//	)
func NewConfigFromOverrides(overrides ...string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverride(overrides...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverride applies "key=value" overrides to the configuration in place.
// All overrides are attempted and their errors are combined.
func (c *Config) ApplyOverride(overrides ...string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	return combineConfigErrors(errors)
}

// combineConfigErrors combines multiple configuration errors into a single error
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString(errorPrefix + "multiple configuration errors:")
	for i, err := range errors {
		// Remove prefix from individual errors to avoid duplication
		errMsg := strings.TrimPrefix(err.Error(), errorPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Log file
	case "name":
		cfg.Name = value
	case "extension":
		cfg.Extension = value
	case "directory":
		cfg.Directory = value
	case "enabled":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for enabled '%s': %w", value, err)
		}
		cfg.Enabled = boolVal

	// Export
	case "destination":
		cfg.Destination = value
	case "export_target":
		cfg.ExportTarget = value
	case "overwrite_on_export":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for overwrite_on_export '%s': %w", value, err)
		}
		cfg.OverwriteOnExport = boolVal
	case "export_compression":
		cfg.ExportCompression = value
	case "export_schedule":
		cfg.ExportSchedule = value

	// Queue and formatting
	case "queue_capacity":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for queue_capacity '%s': %w", value, err)
		}
		cfg.QueueCapacity = intVal
	case "timestamp_format":
		cfg.TimestampFormat = value
	case "text_sanitization":
		cfg.TextSanitization = value

	// Mask rules
	case "mask_rules_file":
		cfg.MaskRulesFile = value
	case "watch_mask_rules":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for watch_mask_rules '%s': %w", value, err)
		}
		cfg.WatchMaskRules = boolVal

	// Heartbeat
	case "heartbeat_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for heartbeat_interval_s '%s': %w", value, err)
		}
		cfg.HeartbeatIntervalS = intVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
