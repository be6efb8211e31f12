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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/silogen/rulebloom/internal/config"
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// parseBool accepts the boolean spellings the wizard offers
func parseBool(input string) (bool, error) {
	v, ok := binding.ParseBool(input)
	if !ok {
		return false, fmt.Errorf("invalid boolean value. Please enter: true/false, yes/no, y/n, or 1/0")
	}
	return v, nil
}

// parseChoice resolves an answer to a member index. Members can be picked
// by their 1-based number or by label, ignoring case.
func parseChoice(input string, choices []string) (int, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return -1, fmt.Errorf("choice %d out of range, expected 1-%d", n, len(choices))
		}
		return n - 1, nil
	}
	for i, c := range choices {
		if strings.EqualFold(c, input) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown choice '%s'", input)
}

// validateRulesPath checks a rules file argument
func validateRulesPath(path string) error {
	if path == "" {
		return fmt.Errorf("rules file path is empty")
	}
	if path == "-" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("rules file must be a .yaml or .yml file, got %s", path)
	}
	return nil
}

// settingsConfig collects every schema key as viper resolved it
func settingsConfig() config.Config {
	cfg := config.Defaults()
	for _, arg := range config.Schema() {
		if viper.IsSet(arg.Key) {
			cfg[arg.Key] = viper.Get(arg.Key)
		}
	}
	return cfg
}

// validateSettings validates the settings from file, environment and
// defaults together.
func validateSettings() error {
	if used := viper.ConfigFileUsed(); used != "" {
		// Rejects keys viper would silently ignore.
		if _, err := config.LoadConfig(used); err != nil {
			return err
		}
	}
	errors := config.Validate(settingsConfig())
	if len(errors) > 0 {
		return fmt.Errorf("invalid settings:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func checkSettings(cmd *cobra.Command, args []string) error {
	return validateSettings()
}
