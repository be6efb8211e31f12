package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Validate validates a configuration against the schema
func Validate(cfg Config) []string {
	var errors []string

	for _, arg := range Schema() {
		// Check if field is visible based on dependencies
		if !isArgVisible(arg, cfg) {
			continue
		}

		value, exists := cfg[arg.Key]

		if arg.Required {
			if !exists || value == nil || value == "" {
				errors = append(errors, fmt.Sprintf("%s is required", arg.Key))
				continue
			}
		}

		if !exists || value == nil {
			continue
		}

		switch arg.Type {
		case "enum":
			strVal := fmt.Sprint(value)
			if !contains(arg.Options, strVal) {
				errors = append(errors, fmt.Sprintf("%s must be one of: %s", arg.Key, strings.Join(arg.Options, ", ")))
			}
		case "bool":
			if _, ok := toBool(value); !ok {
				errors = append(errors, fmt.Sprintf("%s must be true or false", arg.Key))
			}
		case "int":
			n, ok := toInt(value)
			if !ok {
				errors = append(errors, fmt.Sprintf("%s must be an integer", arg.Key))
			} else if arg.Max > arg.Min && (n < arg.Min || n > arg.Max) {
				errors = append(errors, fmt.Sprintf("%s must be between %d and %d", arg.Key, arg.Min, arg.Max))
			}
		case "string":
			strVal, _ := value.(string)
			if err := validateStringField(arg.Key, strVal); err != nil {
				errors = append(errors, err.Error())
			}
		}
	}

	return errors
}

func isArgVisible(arg Argument, cfg Config) bool {
	if arg.Dependencies == "" {
		return true
	}

	// Split by comma for AND logic
	for _, dep := range strings.Split(arg.Dependencies, ",") {
		if !evaluateDependency(strings.TrimSpace(dep), cfg) {
			return false
		}
	}
	return true
}

func evaluateDependency(depStr string, cfg Config) bool {
	key, expected, ok := strings.Cut(depStr, "=")
	if !ok {
		return false
	}
	key = strings.TrimSpace(key)
	expected = strings.TrimSpace(expected)

	actual, exists := cfg[key]
	if !exists {
		return false
	}

	switch expected {
	case "true", "false":
		b, ok := toBool(actual)
		return ok && strconv.FormatBool(b) == expected
	}
	return fmt.Sprint(actual) == expected
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	}
	return false, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		return parsed, err == nil
	}
	return 0, false
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validateStringField performs field-specific validation based on field name
func validateStringField(key, value string) error {
	if value == "" {
		return nil
	}

	if strings.HasSuffix(key, "_FILE") {
		if err := validateFilePath(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	switch key {
	case "RULES_FILE", "LOCALE_FILE":
		return validateYAMLPath(key, value)
	}

	return nil
}

// validateFilePath validates file path format
func validateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path cannot be empty or whitespace only")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("file path cannot contain NUL characters")
	}
	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("file path must name a file, not a directory: %s", path)
	}
	return nil
}

// validateYAMLPath requires a .yaml or .yml extension
func validateYAMLPath(key, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return nil
	}
	return fmt.Errorf("%s must be a .yaml or .yml file, got %s", key, path)
}
