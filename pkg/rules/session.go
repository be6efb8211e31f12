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
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/locale"
	log "github.com/sirupsen/logrus"
)

// Session is an open ruleset form. Import and reset replace the target
// object and rebuild the form around the new one.
type Session struct {
	rules  *Rules
	reset  func() *Rules
	editor *form.Editor
	// replaced run after the target is swapped.
	replaced []func()
}

// NewSession opens a form over r. reset supplies the ruleset used by
// Reset; nil means Defaults.
func NewSession(r *Rules, reset func() *Rules, bundle locale.Bundle, fo form.Options, o Options) *Session {
	if reset == nil {
		reset = Defaults
	}
	s := &Session{rules: r, reset: reset}
	s.editor = form.NewEditor(bundle, Declaration(s.Rules, o), fo)
	return s
}

func (s *Session) Rules() *Rules { return s.rules }

func (s *Session) Editor() *form.Editor { return s.editor }

// OnReplace registers fn to run after import or reset swaps the target.
// Anything still holding the old ruleset must let go of it there.
func (s *Session) OnReplace(fn func()) {
	s.replaced = append(s.replaced, fn)
}

// Export serializes the current ruleset.
func (s *Session) Export() ([]byte, error) {
	return Export(s.rules)
}

// Import replaces the ruleset with data. A failed import leaves the
// session unchanged.
func (s *Session) Import(data []byte) error {
	next, err := Import(data, s.rules)
	if err != nil {
		log.Errorf("Import failed: %v", err)
		return err
	}
	s.Replace(next)
	return nil
}

// Reset replaces the ruleset with a fresh one from the resetter.
func (s *Session) Reset() {
	s.Replace(s.reset())
}

// Replace swaps the target and rebuilds the form.
func (s *Session) Replace(r *Rules) {
	s.rules = r
	s.editor.Rebuild()
	for _, fn := range s.replaced {
		fn()
	}
}
