package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a rulebloom settings file. Keys missing from the file
// take their schema defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	var unknown []string
	cfg := Defaults()
	for key, value := range file {
		if _, ok := Lookup(key); !ok {
			unknown = append(unknown, key)
			continue
		}
		cfg[key] = value
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("parse config file: unknown settings %v", unknown)
	}

	return cfg, nil
}
