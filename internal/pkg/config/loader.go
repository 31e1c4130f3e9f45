// Package config provides fail-open environment loaders and validators.
//
// Loaders never return an error: a missing variable yields the default silently,
// an unparsable or invalid one yields the default plus a warning in the
// ConfigLoadResult. Callers log the warnings and record them with ConfigMetrics.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigLoadResult represents the result of loading a configuration value.
//
//	result := LoadEnvDuration("GENERATION_TIMEOUT", 10*time.Minute, ValidatePositiveDuration)
//	if result.FallbackApplied {
//	    for _, warning := range result.Warnings {
//	        logger.Warn("configuration fallback", slog.String("warning", warning))
//	    }
//	}
//	timeout := result.Value.(time.Duration)
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func loaded(v interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: v}
}

func fallback(v interface{}, warning string) ConfigLoadResult {
	return ConfigLoadResult{Value: v, Warnings: []string{warning}, FallbackApplied: true}
}

// LoadEnvString loads a string value from an environment variable.
// No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string value and validates it.
// On validation failure the default is used and a warning of the form
//
//	"Invalid {envKey}='{value}': {error}, falling back to default '{default}'"
//
// is returned.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return loaded(defaultValue)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(defaultValue, fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%s'",
				envKey, value, err, defaultValue))
		}
	}

	return loaded(value)
}

// LoadEnvDuration loads a Go duration string ("30s", "5m", "1h30m").
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback(defaultValue, fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to default '%v'",
			envKey, valueStr, err, defaultValue))
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(defaultValue, fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%v'",
				envKey, valueStr, err, defaultValue))
		}
	}

	return loaded(parsed)
}

// LoadEnvInt loads a base-10 integer. Values with spaces or decimals are rejected.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	parsed, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback(defaultValue, fmt.Sprintf(
			"Invalid %s='%s': invalid integer format, falling back to default '%d'",
			envKey, valueStr, defaultValue))
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(defaultValue, fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%d'",
				envKey, valueStr, err, defaultValue))
		}
	}

	return loaded(parsed)
}

// LoadEnvBool loads a boolean. Accepted: 1/t/T/true/TRUE/True and 0/f/F/false/FALSE/False.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return loaded(true)
	case "0", "f", "F", "false", "FALSE", "False":
		return loaded(false)
	}

	return fallback(defaultValue, fmt.Sprintf(
		"Invalid %s='%s': invalid boolean format, expected 'true' or 'false', falling back to default '%t'",
		envKey, valueStr, defaultValue))
}

// LoadEnvList loads a comma-separated list. Items are trimmed and empty items dropped.
// An unset or blank variable yields defaultValue.
func LoadEnvList(envKey string, defaultValue []string) []string {
	return SplitList(os.Getenv(envKey), defaultValue)
}

// SplitList splits a comma-separated value into trimmed, non-empty items.
func SplitList(value string, defaultValue []string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
