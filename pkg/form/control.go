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
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/locale"
)

// State is what a renderer needs to draw a control on one refresh.
type State struct {
	Enabled  bool
	Invalid  bool
	Text     string
	Checked  bool
	Selected int
}

// Control is a rendered binding. It keeps a standing link to the binding's
// predicates so Refresh can recompute enablement and validity from the live
// target without a rebuild.
type Control struct {
	Binding *binding.Binding
	Label   string
	Help    string
	HasHelp bool
	// Choices holds localized member labels for enum bindings.
	Choices []string

	raw    string
	edited bool
	state  State
}

func newControl(b *binding.Binding, ix *locale.Index) *Control {
	c := &Control{Binding: b, Label: ix.Label(b.Key)}
	c.Help, c.HasHelp = ix.Help(b.Key)
	if f, ok := b.Value.(*binding.EnumField); ok {
		c.Choices = make([]string, len(f.Keys))
		for i, k := range f.Keys {
			c.Choices[i] = ix.Label(k)
		}
	}
	c.state = c.compute()
	return c
}

func (c *Control) Key() string { return c.Binding.Key }

func (c *Control) Kind() binding.Kind { return c.Binding.Kind() }

// State returns the state computed by the last Refresh.
func (c *Control) State() State { return c.state }

// Text is the text a field shows: the last raw input once the user has
// typed, otherwise the formatted value of the target.
func (c *Control) Text() string {
	if c.edited {
		return c.raw
	}
	return c.Binding.Format()
}

// Commit applies raw input. A disabled control rejects input outright; an
// invalid value marks the control and leaves the target unchanged.
func (c *Control) Commit(raw string) bool {
	if !c.Binding.IsEnabled() {
		return false
	}
	c.raw, c.edited = raw, true
	ok := c.Binding.Commit(raw)
	c.state = c.compute()
	return ok
}

// Toggle flips a boolean control.
func (c *Control) Toggle() bool {
	f, ok := c.Binding.Value.(*binding.BoolField)
	if !ok || !c.Binding.IsEnabled() {
		return false
	}
	f.Toggle()
	c.state = c.compute()
	return true
}

// Select picks member i of an enum control. Siblings un-check on the next
// Refresh because the checked member is derived from the getter.
func (c *Control) Select(i int) bool {
	f, ok := c.Binding.Value.(*binding.EnumField)
	if !ok || !c.Binding.IsEnabled() || i < 0 || i >= len(f.Keys) {
		return false
	}
	f.Select(i)
	c.state = c.compute()
	return true
}

// Activate runs an action control.
func (c *Control) Activate() bool {
	f, ok := c.Binding.Value.(*binding.ActionField)
	if !ok || !c.Binding.IsEnabled() {
		return false
	}
	f.Run()
	return true
}

// Refresh re-evaluates the control against the live target and reports
// whether anything visible changed.
func (c *Control) Refresh() (State, bool) {
	next := c.compute()
	changed := next != c.state
	c.state = next
	return next, changed
}

func (c *Control) compute() State {
	s := State{Enabled: c.Binding.IsEnabled(), Selected: -1}
	switch c.Binding.Kind() {
	case binding.KindBool:
		s.Checked = c.Binding.Value.(*binding.BoolField).Get()
		s.Text = c.Binding.Format()
	case binding.KindInt, binding.KindFloat:
		s.Text = c.Text()
		s.Invalid = c.edited && !c.Binding.Valid(c.raw)
	case binding.KindEnum:
		s.Selected = c.Binding.Value.(*binding.EnumField).Index()
		if s.Selected >= 0 {
			s.Text = c.Choices[s.Selected]
		}
	case binding.KindAction:
	}
	return s
}
