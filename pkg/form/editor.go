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

package form

import (
	"github.com/silogen/rulebloom/pkg/locale"
	log "github.com/sirupsen/logrus"
)

// Editor owns the live form for one declaration. Rebuild replays the
// declaration from scratch; Refresh re-evaluates the existing controls.
type Editor struct {
	bundle    locale.Bundle
	declare   func(*Builder)
	opts      Options
	query     string
	cats      []*Category
	controls  []*Control
	expanded  map[string]bool
	missing   map[string]bool
	rebuilds  int
	listeners []func()
}

// NewEditor builds the initial form.
func NewEditor(bundle locale.Bundle, declare func(*Builder), opts Options) *Editor {
	e := &Editor{
		bundle:   bundle,
		declare:  declare,
		opts:     opts,
		expanded: map[string]bool{},
		missing:  map[string]bool{},
	}
	e.Rebuild()
	return e
}

func (e *Editor) Query() string { return e.query }

func (e *Editor) Options() Options { return e.opts }

func (e *Editor) Bundle() locale.Bundle { return e.bundle }

// SetQuery normalizes q and rebuilds.
func (e *Editor) SetQuery(q string) {
	e.query = locale.NormalizeQuery(q)
	e.Rebuild()
}

// SetBundle swaps the localization collaborator and rebuilds.
func (e *Editor) SetBundle(b locale.Bundle) {
	e.bundle = b
	e.Rebuild()
}

// SetOptions changes presentation options and rebuilds.
func (e *Editor) SetOptions(o Options) {
	e.opts = o
	e.Rebuild()
}

// OnRebuild registers fn to run after every rebuild.
func (e *Editor) OnRebuild(fn func()) {
	e.listeners = append(e.listeners, fn)
}

// Rebuild discards all controls and replays the declaration. It is safe to
// call on every keystroke.
func (e *Editor) Rebuild() {
	b := newBuilder(e.bundle, e.query, e.opts, e.expanded)
	e.declare(b)
	e.cats = b.Categories()
	e.controls = b.Controls()
	e.rebuilds++

	for _, key := range b.index.Missing() {
		if !e.missing[key] {
			e.missing[key] = true
			log.Debugf("No translation for %q", key)
		}
	}
	log.Debugf("Form rebuilt: query=%q categories=%d controls=%d", e.query, len(e.cats), len(e.controls))

	for _, fn := range e.listeners {
		fn()
	}
}

// Refresh re-evaluates every live control and returns how many changed.
func (e *Editor) Refresh() int {
	changed := 0
	for _, c := range e.controls {
		if _, ok := c.Refresh(); ok {
			changed++
		}
	}
	return changed
}

func (e *Editor) Categories() []*Category { return e.cats }

func (e *Editor) Controls() []*Control { return e.controls }

// Rebuilds counts rebuilds since construction.
func (e *Editor) Rebuilds() int { return e.rebuilds }

// Control returns the first live control bound to key, or nil.
func (e *Editor) Control(key string) *Control {
	for _, c := range e.controls {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

// ControlsFor returns every live control bound to key. Repeated keys are
// normal inside per-team subsections.
func (e *Editor) ControlsFor(key string) []*Control {
	var out []*Control
	for _, c := range e.controls {
		if c.Key() == key {
			out = append(out, c)
		}
	}
	return out
}

// Section returns the live subsection keyed by key, or nil.
func (e *Editor) Section(key string) *Section {
	for _, cat := range e.cats {
		if s := findSection(cat.Rows, key); s != nil {
			return s
		}
	}
	return nil
}

func findSection(rows []Row, key string) *Section {
	for _, r := range rows {
		if r.Section == nil {
			continue
		}
		if r.Section.Key == key {
			return r.Section
		}
		if s := findSection(r.Section.Rows, key); s != nil {
			return s
		}
	}
	return nil
}

// SetExpanded opens or closes a subsection. The choice survives rebuilds.
func (e *Editor) SetExpanded(key string, open bool) {
	e.expanded[key] = open
	if s := e.Section(key); s != nil {
		s.Expanded = open
	}
}

func (e *Editor) Expanded(key string) bool { return e.expanded[key] }
