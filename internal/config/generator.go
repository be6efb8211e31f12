package config

import (
	"fmt"
	"strings"
)

// GenerateYAML generates a settings file from the configuration. Keys
// follow schema order under section comments; keys absent from cfg are
// written with their defaults.
func GenerateYAML(cfg Config) string {
	var lines []string
	section := ""

	for _, arg := range Schema() {
		value, exists := cfg[arg.Key]
		if !exists || value == nil {
			value = arg.Default
		}

		if arg.Section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = arg.Section
			lines = append(lines, "# "+section)
		}
		lines = append(lines, "# "+arg.Description)
		if line := formatYAMLLine(arg.Key, value); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

func formatYAMLLine(key string, value any) string {
	switch v := value.(type) {
	case bool:
		return fmt.Sprintf("%s: %t", key, v)
	case string:
		// Quote strings if they contain special characters or are empty
		if needsQuotes(v) {
			return fmt.Sprintf("%s: \"%s\"", key, escapeString(v))
		}
		return fmt.Sprintf("%s: %s", key, v)
	default:
		return fmt.Sprintf("%s: %v", key, v)
	}
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	// Check for special YAML characters
	special := []string{":", "#", "[", "]", "{", "}", ",", "&", "*", "!", "|", ">", "'", "\"", "%", "@", "`"}
	for _, char := range special {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// GetFieldOrder returns the schema order for deterministic output
func GetFieldOrder() []string {
	schema := Schema()
	keys := make([]string, len(schema))
	for i, arg := range schema {
		keys[i] = arg.Key
	}
	return keys
}
