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
	"os"

	"github.com/silogen/rulebloom/internal/config"
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/locale"
	"github.com/silogen/rulebloom/pkg/rules"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var cfgFile string

// settings is the resolved view of the rulebloom settings.
type settings struct {
	RulesFile     string
	LocaleFile    string
	ClipboardFile string
	Compact       bool
	ShowAllowEdit bool
	InGame        bool
	CardWidth     int
	WatchConfig   bool
	LogLevel      string
	LogToFile     bool
	LogFile       string
}

func initConfig() {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			log.Fatalf("Config file does not exist: %s", cfgFile)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rulebloom")
	}

	for _, arg := range config.Schema() {
		viper.SetDefault(arg.Key, arg.Default)
	}

	viper.AutomaticEnv()
	readErr := viper.ReadInConfig()

	setupLogging(loadSettings())
	if readErr == nil {
		log.Infof("Using config file: %s", viper.ConfigFileUsed())
	}
	logConfigValues()
}

func setupLogging(s settings) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if !s.LogToFile {
		return
	}
	logFile, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Warnf("Could not open log file: %v", err)
		return
	}
	log.SetOutput(logFile)
}

func logConfigValues() {
	log.Info("Configuration values:")
	for _, key := range viper.AllKeys() {
		log.Infof("%s: %v", key, viper.Get(key))
	}
}

func loadSettings() settings {
	return settings{
		RulesFile:     viper.GetString("RULES_FILE"),
		LocaleFile:    viper.GetString("LOCALE_FILE"),
		ClipboardFile: viper.GetString("CLIPBOARD_FILE"),
		Compact:       viper.GetBool("COMPACT"),
		ShowAllowEdit: viper.GetBool("SHOW_ALLOW_EDIT"),
		InGame:        viper.GetBool("IN_GAME"),
		CardWidth:     viper.GetInt("CARD_WIDTH"),
		WatchConfig:   viper.GetBool("WATCH_CONFIG"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		LogToFile:     viper.GetBool("LOG_TO_FILE"),
		LogFile:       viper.GetString("LOG_FILE"),
	}
}

// bundle loads LOCALE_FILE over the built-in English strings.
func (s settings) bundle() (locale.Bundle, error) {
	if s.LocaleFile == "" {
		return locale.English(), nil
	}
	m, err := locale.LoadFile(s.LocaleFile)
	if err != nil {
		return nil, fmt.Errorf("load locale %s: %w", s.LocaleFile, err)
	}
	return m, nil
}

func (s settings) formOptions() form.Options {
	return form.Options{Compact: s.Compact}
}

func (s settings) ruleOptions(d rules.Dialogs) rules.Options {
	return rules.Options{
		ShowAllowEdit: s.ShowAllowEdit,
		InGame:        s.InGame,
		Dialogs:       d,
	}
}

// loadRules opens path, or starts from the defaults when it does not
// exist yet.
func loadRules(path string) (*rules.Rules, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Infof("Rules file %s not found, starting from defaults", path)
		return rules.Defaults(), nil
	}
	return rules.LoadFile(path)
}
