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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silogen/rulebloom/internal/config"
	"github.com/silogen/rulebloom/pkg/rules"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func testSettings() settings {
	return settings{RulesFile: "rules.yaml", CardWidth: 46, LogLevel: "info"}
}

func writeRules(t *testing.T, path string, r *rules.Rules) {
	t.Helper()
	if err := rules.SaveFile(path, r); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
}

func readRules(t *testing.T, path string) *rules.Rules {
	t.Helper()
	r, err := rules.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return r
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	want := []string{"edit", "show", "wizard", "export", "import", "reset", "keys", "config", "version"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing sub-command %q", name)
		}
	}
}

func TestSettingsHelpListsEverySetting(t *testing.T) {
	help := buildConfigFieldsHelp()
	for _, arg := range config.Schema() {
		if !strings.Contains(help, arg.Key) {
			t.Errorf("settings help is missing %s", arg.Key)
		}
	}
	if !strings.Contains(help, "[Range: 20-200]") {
		t.Errorf("settings help should show the CARD_WIDTH range")
	}
	if !strings.Contains(help, "[Requires: LOG_TO_FILE=true]") {
		t.Errorf("settings help should show the LOG_FILE dependency")
	}
}

func TestShowDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	var out bytes.Buffer
	if err := runShow(&out, path, "", testSettings()); err != nil {
		t.Fatalf("runShow: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Waves\n",
		"[ ] Waves\n",
		"[x] Wave sending (disabled)",
		"> Weather",
		"Player team: Derelict (Sharded) Crux",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("show output missing %q\n%s", want, text)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("show must not create the rules file")
	}
}

func TestShowSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	var out bytes.Buffer
	if err := runShow(&out, path, "spacing", testSettings()); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Wave spacing (seconds)") {
		t.Errorf("search should keep wave spacing:\n%s", text)
	}
	if strings.Contains(text, "Fire") {
		t.Errorf("search should drop unrelated rules:\n%s", text)
	}

	out.Reset()
	if err := runShow(&out, path, "no such rule", testSettings()); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	if !strings.Contains(out.String(), "No rules match") {
		t.Errorf("empty search result should say so, got %q", out.String())
	}
}

func TestShowBadLocale(t *testing.T) {
	s := testSettings()
	s.LocaleFile = filepath.Join(t.TempDir(), "missing.yaml")

	var out bytes.Buffer
	if err := runShow(&out, filepath.Join(t.TempDir(), "rules.yaml"), "", s); err == nil {
		t.Errorf("a missing locale file should fail")
	}
}

func TestKeys(t *testing.T) {
	var out bytes.Buffer
	if err := runKeys(&out, testSettings()); err != nil {
		t.Fatalf("runKeys: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if !strings.HasPrefix(lines[0], "KEY") {
		t.Errorf("first line should be the header, got %q", lines[0])
	}
	var limit string
	for _, l := range lines {
		if strings.HasPrefix(l, "rules.wavelimit ") {
			limit = l
		}
	}
	if !strings.Contains(limit, "Wave limit") || !strings.HasSuffix(strings.TrimSpace(limit), "yes") {
		t.Errorf("wave limit row = %q, want label and info marker", limit)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.yaml")
	dst := filepath.Join(dir, "dst.yaml")

	r := rules.Defaults()
	r.Waves = true
	r.WinWave = 30
	r.Spawns = []rules.SpawnGroup{{Type: "dagger", Amount: 2}}
	writeRules(t, src, r)

	target := rules.Defaults()
	target.Spawns = []rules.SpawnGroup{{Type: "flare"}}
	target.Objectives = []rules.Objective{{Type: "research", Text: "silicon"}}
	writeRules(t, dst, target)

	var exported bytes.Buffer
	if err := runExport(&exported, src, ""); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	if strings.Contains(exported.String(), "dagger") {
		t.Errorf("export must leave out spawn groups:\n%s", exported.String())
	}

	var out bytes.Buffer
	if err := runImport(&exported, &out, "-", dst); err != nil {
		t.Fatalf("runImport: %v", err)
	}

	got := readRules(t, dst)
	if !got.Waves || got.WinWave != 30 {
		t.Errorf("imported rules not applied: waves=%v winWave=%d", got.Waves, got.WinWave)
	}
	if len(got.Spawns) != 1 || got.Spawns[0].Type != "flare" {
		t.Errorf("target spawns should be kept, got %+v", got.Spawns)
	}
	if len(got.Objectives) != 1 || got.Objectives[0].Text != "silicon" {
		t.Errorf("target objectives should be kept, got %+v", got.Objectives)
	}
	if len(readRules(t, src).Spawns) != 1 {
		t.Errorf("export must not change the source file")
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "shared.yaml")

	var out bytes.Buffer
	if err := runExport(&out, filepath.Join(dir, "rules.yaml"), output); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("export file not written: %v", err)
	}
	if !strings.Contains(out.String(), "Exported") {
		t.Errorf("export should report the output file, got %q", out.String())
	}
}

func TestImportInvalidLeavesTarget(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "rules.yaml")
	target := rules.Defaults()
	target.WinWave = 12
	writeRules(t, dst, target)

	var out bytes.Buffer
	err := runImport(strings.NewReader("waves: [unclosed"), &out, "-", dst)
	if !errors.Is(err, rules.ErrInvalidData) {
		t.Fatalf("runImport error = %v, want ErrInvalidData", err)
	}
	if got := readRules(t, dst); got.WinWave != 12 {
		t.Errorf("failed import changed the target: winWave=%d", got.WinWave)
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	r := rules.Defaults()
	r.Waves = true
	r.Spawns = []rules.SpawnGroup{{Type: "dagger"}}
	writeRules(t, path, r)

	var out bytes.Buffer
	if err := runReset(strings.NewReader("no\n"), &out, path, false); err != nil {
		t.Fatalf("runReset: %v", err)
	}
	if !strings.Contains(out.String(), "aborted") || !readRules(t, path).Waves {
		t.Fatalf("reset without confirmation must not change the file")
	}

	out.Reset()
	if err := runReset(strings.NewReader("yes\n"), &out, path, false); err != nil {
		t.Fatalf("runReset: %v", err)
	}
	got := readRules(t, path)
	if got.Waves {
		t.Errorf("reset should restore the defaults")
	}
	if len(got.Spawns) != 1 {
		t.Errorf("reset should keep spawn groups, got %+v", got.Spawns)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rulebloom.yaml")

	var out bytes.Buffer
	if err := runConfigInit(&out, path, false); err != nil {
		t.Fatalf("runConfigInit: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("generated settings do not load: %v", err)
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		t.Errorf("generated settings are invalid: %v", errs)
	}

	if err := runConfigInit(&out, path, false); err == nil {
		t.Errorf("existing settings file must not be overwritten without --force")
	}
	if err := runConfigInit(&out, path, true); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestEditSaveLogsOnce(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	r := rules.Defaults()
	r.WinWave = 30
	if err := saveRules(path)(r); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := readRules(t, path).WinWave; got != 30 {
		t.Errorf("WinWave = %d, want 30", got)
	}

	saved := 0
	for _, e := range hook.AllEntries() {
		if strings.HasPrefix(e.Message, "Saved rules to") {
			saved++
		}
	}
	if saved != 1 {
		t.Errorf("logged %d save lines, want 1", saved)
	}
}
