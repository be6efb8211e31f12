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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/silogen/rulebloom/internal/config"
	"github.com/silogen/rulebloom/pkg/rules"
	log "github.com/sirupsen/logrus"
)

func runExport(w io.Writer, path, output string) error {
	r, err := loadRules(path)
	if err != nil {
		return err
	}
	data, err := rules.Export(r)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(w, "✅ Exported %s to %s\n", path, output)
	return nil
}

func runImport(in io.Reader, w io.Writer, source, path string) error {
	if err := validateRulesPath(path); err != nil {
		return err
	}

	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}

	current, err := loadRules(path)
	if err != nil {
		return err
	}
	next, err := rules.Import(data, current)
	if err != nil {
		log.Errorf("Import from %s failed: %v", source, err)
		return err
	}
	if err := rules.SaveFile(path, next); err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Imported rules into %s\n", path)
	return nil
}

func runReset(in io.Reader, w io.Writer, path string, force bool) error {
	if err := validateRulesPath(path); err != nil {
		return err
	}
	if !force && !confirmReset(in, w, path) {
		fmt.Fprintln(w, "❌ Reset aborted by user.")
		return nil
	}

	r := rules.Defaults()
	if current, err := loadRules(path); err == nil {
		r.Spawns = current.Spawns
		r.Objectives = current.Objectives
	}
	if err := rules.SaveFile(path, r); err != nil {
		return err
	}
	log.Infof("Reset %s to defaults", path)
	fmt.Fprintf(w, "✅ %s reset to the default rules\n", path)
	return nil
}

// confirmReset prompts the user to confirm overwriting every rule
func confirmReset(in io.Reader, w io.Writer, path string) bool {
	fmt.Fprintf(w, "\n⚠️  This will replace every rule in %s with the defaults.\n", path)
	fmt.Fprintln(w, "Spawn groups and objectives are kept.")
	fmt.Fprint(w, "Type \"yes\" to proceed: ")

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		fmt.Fprintf(w, "\n❌ Error reading input: %v\n", err)
		return false
	}

	input = strings.TrimSpace(input)
	if input != "yes" {
		fmt.Fprintf(w, "\n❌ Received: \"%s\", expected: \"yes\"\n", input)
		return false
	}
	return true
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := os.WriteFile(path, []byte(config.GenerateYAML(config.Defaults())), 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	fmt.Fprintf(w, "✅ Settings written to %s\n", path)
	return nil
}
