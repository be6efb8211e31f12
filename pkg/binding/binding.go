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

// Package binding pairs a getter, a setter and live predicates for one
// field of an externally owned settings object.
//
// A Binding never copies the target. Every read and write goes through the
// closures it was declared with, so the same binding stays correct for as
// long as the instance it closes over is the one being edited.
package binding

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Binding.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindEnum
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindAction:
		return "action"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Predicate is evaluated against the current state of the target. It must
// be cheap: renderers call it on every refresh.
type Predicate func() bool

// Always is the predicate used when a binding declares no condition.
func Always() bool { return true }

// All combines predicates with logical AND. Nil entries are skipped.
func All(preds ...Predicate) Predicate {
	var live []Predicate
	for _, p := range preds {
		if p != nil {
			live = append(live, p)
		}
	}
	switch len(live) {
	case 0:
		return Always
	case 1:
		return live[0]
	}
	return func() bool {
		for _, p := range live {
			if !p() {
				return false
			}
		}
		return true
	}
}

// Value is the closed set of field variants. The unexported method keeps
// implementations inside this package so renderers can switch on Kind
// exhaustively.
type Value interface {
	Kind() Kind
	// Format renders the current value of the target as display text.
	Format() string
	// Valid reports whether raw input would be accepted by Commit.
	Valid(raw string) bool
	apply(raw string)
}

// Binding connects one control to one field of the target.
type Binding struct {
	Key     string
	Value   Value
	Enabled Predicate
}

// New wraps a value. Multiple predicates are combined with All.
func New(key string, v Value, when ...Predicate) *Binding {
	return &Binding{Key: key, Value: v, Enabled: All(when...)}
}

func (b *Binding) Kind() Kind { return b.Value.Kind() }

// IsEnabled evaluates the enablement predicate against the live target.
func (b *Binding) IsEnabled() bool {
	if b.Enabled == nil {
		return true
	}
	return b.Enabled()
}

func (b *Binding) Format() string { return b.Value.Format() }

func (b *Binding) Valid(raw string) bool { return b.Value.Valid(raw) }

// Commit writes raw input through the setter when it is valid. Invalid
// input leaves the target untouched. It does not consult Enabled; callers
// that present the binding decide whether a disabled control accepts input.
func (b *Binding) Commit(raw string) bool {
	if !b.Value.Valid(raw) {
		return false
	}
	b.Value.apply(raw)
	return true
}

// BoolField is a toggle.
type BoolField struct {
	Get func() bool
	Set func(bool)
}

// Bool declares a toggle binding.
func Bool(key string, get func() bool, set func(bool), when ...Predicate) *Binding {
	return New(key, &BoolField{Get: get, Set: set}, when...)
}

func (f *BoolField) Kind() Kind { return KindBool }

func (f *BoolField) Format() string {
	if f.Get() {
		return "true"
	}
	return "false"
}

func (f *BoolField) Valid(raw string) bool {
	_, ok := ParseBool(raw)
	return ok
}

func (f *BoolField) apply(raw string) {
	v, _ := ParseBool(raw)
	f.Set(v)
}

// Toggle flips the current value.
func (f *BoolField) Toggle() { f.Set(!f.Get()) }

// ParseBool accepts the spellings an operator types at a prompt.
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, true
	case "false", "f", "no", "n", "0", "off":
		return false, true
	}
	return false, false
}

// ActionField opens a collaborator (a sub-dialog) instead of holding a value.
type ActionField struct {
	Run func()
}

// Action declares a row whose only behaviour is to run fn when activated.
func Action(key string, run func(), when ...Predicate) *Binding {
	return New(key, &ActionField{Run: run}, when...)
}

func (f *ActionField) Kind() Kind { return KindAction }

func (f *ActionField) Format() string { return "" }

func (f *ActionField) Valid(string) bool { return false }

func (f *ActionField) apply(string) {}
