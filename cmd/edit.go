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
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/silogen/rulebloom/pkg/rules"
	"github.com/silogen/rulebloom/pkg/tui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := rulesPath(args)
	if err := validateRulesPath(path); err != nil {
		return err
	}
	s := loadSettings()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Not a terminal, printing the ruleset instead. Use 'rulebloom wizard' for interactive input.")
		return runShow(cmd.OutOrStdout(), path, "", s)
	}

	r, err := loadRules(path)
	if err != nil {
		return err
	}
	bundle, err := s.bundle()
	if err != nil {
		return err
	}

	var clip tui.Clipboard
	if s.ClipboardFile != "" {
		clip = tui.FileClipboard(s.ClipboardFile)
	}

	// The terminal belongs to the editor from here on.
	if !s.LogToFile {
		log.SetOutput(io.Discard)
	}

	app := tui.New(r, nil, tui.Config{
		Bundle:    bundle,
		Form:      s.formOptions(),
		Rules:     s.ruleOptions(rules.Dialogs{}),
		CardWidth: s.CardWidth,
		Clipboard: clip,
		Save:      saveRules(path),
	})

	if s.WatchConfig {
		watchSettings(app)
	}

	log.Infof("Editing %s", path)
	return app.Run()
}

// watchSettings reloads the presentation settings when the settings file
// changes. Rules options and file paths need a restart.
func watchSettings(app *tui.App) {
	if viper.ConfigFileUsed() == "" {
		log.Warn("WATCH_CONFIG is set but no settings file is in use")
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("Settings changed: %s", e.Name)
		if err := validateSettings(); err != nil {
			log.Errorf("Ignoring settings change: %v", err)
			return
		}
		s := loadSettings()
		bundle, err := s.bundle()
		if err != nil {
			log.Errorf("Ignoring settings change: %v", err)
			return
		}
		app.Reload(bundle, s.formOptions())
	})
	viper.WatchConfig()
	log.Infof("Watching %s for changes", viper.ConfigFileUsed())
}

// saveRules binds the editor's save action to path.
func saveRules(path string) func(*rules.Rules) error {
	return func(r *rules.Rules) error { return rules.SaveFile(path, r) }
}
