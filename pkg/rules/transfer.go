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

package rules

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidData is returned when imported text does not decode to a
// ruleset.
var ErrInvalidData = errors.New("invalid rule data")

// Export serializes r for sharing. Spawn groups are left out and restored
// before returning.
func Export(r *Rules) ([]byte, error) {
	spawns := r.Spawns
	r.Spawns = nil
	defer func() { r.Spawns = spawns }()

	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("export rules: %w", err)
	}
	return data, nil
}

// CanImport reports whether data is worth offering to Import.
func CanImport(data []byte) bool {
	return len(bytes.TrimSpace(data)) > 0
}

// Import decodes data into a fresh ruleset. Spawns and objectives belong
// to the map, so they are carried over from current. On error current is
// left untouched.
func Import(data []byte, current *Rules) (*Rules, error) {
	if !CanImport(data) {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidData)
	}
	next := Defaults()
	if err := yaml.Unmarshal(data, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if err := checkChoices(next); err != nil {
		return nil, err
	}
	next.Spawns = current.Spawns
	next.Objectives = current.Objectives
	return next, nil
}

// checkChoices rejects picker fields holding a value outside their
// members, which would leave the picker with nothing selected.
func checkChoices(r *Rules) error {
	for _, f := range []struct {
		name string
		team Team
	}{{"defaultTeam", r.DefaultTeam}, {"waveTeam", r.WaveTeam}} {
		if !slices.Contains(BaseTeams, f.team) {
			return fmt.Errorf("%w: %s %q is not a base team", ErrInvalidData, f.name, f.team)
		}
	}
	for _, c := range planetChoices() {
		if c.Value == r.Planet {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown planet %q", ErrInvalidData, r.Planet)
}

// LoadFile reads a ruleset saved by SaveFile. Fields missing from the
// file keep their defaults.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	r := Defaults()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := checkChoices(r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Debugf("Loaded rules from %s", path)
	return r, nil
}

// SaveFile writes the full ruleset, spawns included.
func SaveFile(path string, r *Rules) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	log.Infof("Saved rules to %s", path)
	return nil
}
