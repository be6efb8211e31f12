/**
 * Copyright 2025 Advanced Micro Devices, Inc.  All rights reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
**/

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"Yes", true, false},
		{" y ", true, false},
		{"1", true, false},
		{"on", true, false},
		{"false", false, false},
		{"N", false, false},
		{"0", false, false},
		{"off", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseBool(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBool(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	choices := []string{"Sharded", "Crux", "Malis"}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"First by number", "1", 0, false},
		{"Last by number", "3", 2, false},
		{"By label", "Crux", 1, false},
		{"By label ignoring case", "malis", 2, false},
		{"Number too small", "0", -1, true},
		{"Number too large", "4", -1, true},
		{"Unknown label", "Derelict", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChoice(tt.input, choices)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChoice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseChoice(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRulesPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"YAML file", "rules.yaml", false},
		{"YML file", "maps/desert.yml", false},
		{"Upper-case extension", "RULES.YAML", false},
		{"Stdin", "-", false},
		{"Empty", "", true},
		{"JSON file", "rules.json", true},
		{"No extension", "rules", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRulesPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRulesPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	defer viper.Reset()

	tests := []struct {
		name    string
		config  map[string]any
		wantErr string
	}{
		{
			name:   "Defaults",
			config: map[string]any{},
		},
		{
			name: "Values from environment are strings",
			config: map[string]any{
				"COMPACT":    "true",
				"CARD_WIDTH": "60",
			},
		},
		{
			name:    "Card width out of range",
			config:  map[string]any{"CARD_WIDTH": 5},
			wantErr: "CARD_WIDTH must be between 20 and 200",
		},
		{
			name:    "Unknown log level",
			config:  map[string]any{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL must be one of",
		},
		{
			name: "Log file only needed when logging to file",
			config: map[string]any{
				"LOG_TO_FILE": false,
				"LOG_FILE":    "",
			},
		},
		{
			name:    "Rules file must be YAML",
			config:  map[string]any{"RULES_FILE": "rules.txt"},
			wantErr: "RULES_FILE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.config {
				viper.Set(k, v)
			}

			err := validateSettings()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateSettings() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateSettings() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettingsRejectsUnknownKeys(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("COMPACT: true\nTHEME: dark\n"), 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	err := validateSettings()
	if err == nil || !strings.Contains(err.Error(), "THEME") {
		t.Errorf("validateSettings() error = %v, want unknown THEME", err)
	}
}
