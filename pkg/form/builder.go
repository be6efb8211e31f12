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

// Package form builds searchable, categorized forms out of field bindings.
//
// A declaration function calls Category, Check, Number and friends on a
// Builder in display order. The Builder drops every binding whose localized
// label does not match the active search query, so a declaration is replayed
// from scratch on each rebuild and never mutates earlier output.
package form

import (
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/locale"
)

// TitlePrefix is prepended to a category name to find its title key.
const TitlePrefix = "rules.title."

// Options control presentation choices that do not affect values.
type Options struct {
	// Compact replaces hover help with an explicit info affordance, for
	// layouts where tooltips cannot be shown.
	Compact bool
}

// Dialog is a sub-dialog collaborator that edits a value outside the form.
type Dialog[T any] interface {
	Show(current T, onChange func(T))
}

// DialogFunc adapts a function to Dialog.
type DialogFunc[T any] func(current T, onChange func(T))

func (f DialogFunc[T]) Show(current T, onChange func(T)) { f(current, onChange) }

// Row is either a control or a nested subsection.
type Row struct {
	Control *Control
	Section *Section
}

// SectionState is the outcome of evaluating a subsection.
type SectionState int

const (
	Empty SectionState = iota
	Populated
)

// Section is a collapsible group nested in a category.
type Section struct {
	Key      string
	Title    string
	Rows     []Row
	Expanded bool
}

// Category is a named group of rows. Categories with no rows are never
// materialized.
type Category struct {
	Name     string
	TitleKey string
	Title    string
	Rows     []Row
}

// Header reports whether the category has a title and divider. Rows added
// before the first Category call land in an untitled category.
func (c *Category) Header() bool { return c.Name != "" }

// Builder is the context threaded through a declaration pass: the active
// query, the category in progress and everything accumulated so far.
type Builder struct {
	index    *locale.Index
	opts     Options
	cats     []*Category
	rows     *[]Row
	controls []*Control
	expanded map[string]bool
}

// NewBuilder starts a pass for query against bundle.
func NewBuilder(bundle locale.Bundle, query string, opts Options) *Builder {
	return newBuilder(bundle, query, opts, nil)
}

func newBuilder(bundle locale.Bundle, query string, opts Options, expanded map[string]bool) *Builder {
	b := &Builder{
		index:    locale.NewIndex(bundle, query),
		opts:     opts,
		expanded: expanded,
	}
	untitled := &Category{}
	b.cats = append(b.cats, untitled)
	b.rows = &untitled.Rows
	return b
}

func (b *Builder) Index() *locale.Index { return b.index }

func (b *Builder) Options() Options { return b.opts }

func (b *Builder) Query() string { return b.index.Query() }

// Visible reports whether a row keyed by key survives the search filter.
// Declarations that render something other than a binding use it to follow
// the same rule.
func (b *Builder) Visible(key string) bool { return b.index.Visible(key) }

// Category opens a new section; following rows belong to it.
func (b *Builder) Category(name string) {
	c := &Category{Name: name, TitleKey: TitlePrefix + name}
	c.Title = b.index.Label(c.TitleKey)
	b.cats = append(b.cats, c)
	b.rows = &c.Rows
}

// Add appends bd to the current section when its label matches the query.
// It returns nil when the binding was filtered out.
func (b *Builder) Add(bd *binding.Binding) *Control {
	if !b.index.Visible(bd.Key) {
		return nil
	}
	c := newControl(bd, b.index)
	*b.rows = append(*b.rows, Row{Control: c})
	b.controls = append(b.controls, c)
	return c
}

// Check declares a toggle.
func (b *Builder) Check(key string, get func() bool, set func(bool), when ...binding.Predicate) *Control {
	return b.Add(binding.Bool(key, get, set, when...))
}

// Number declares a continuous field.
func (b *Builder) Number(key string, get func() float64, set func(float64), opts ...binding.FloatOption) *Control {
	return b.Add(binding.Float(key, get, set, opts...))
}

// NumberInt declares an integer field bounded to [min, max].
func (b *Builder) NumberInt(key string, get func() int, set func(int), min, max int, when ...binding.Predicate) *Control {
	return b.Add(binding.Int(key, get, set, min, max, when...))
}

// Button declares an action row.
func (b *Builder) Button(key string, run func(), when ...binding.Predicate) *Control {
	return b.Add(binding.Action(key, run, when...))
}

// Choice declares a single-selection group over a closed set of members.
func Choice[T comparable](b *Builder, key string, choices []binding.Choice[T], get func() T, set func(T), when ...binding.Predicate) *Control {
	return b.Add(binding.Enum(key, choices, get, set, when...))
}

// Show declares an action row that opens d with the current value and
// writes whatever d reports back through set. A nil dialog omits the row.
func Show[T any](b *Builder, key string, d Dialog[T], get func() T, set func(T), when ...binding.Predicate) *Control {
	if d == nil {
		return nil
	}
	return b.Button(key, func() { d.Show(get(), set) }, when...)
}

// Subsection evaluates fn into a nested group. The group is emitted only
// when at least one of its rows survived the search filter. fn must not
// open categories.
func (b *Builder) Subsection(key string, fn func(*Builder)) SectionState {
	sec := &Section{Key: key, Title: b.index.Label(key), Expanded: b.expanded[key]}
	parent := b.rows
	b.rows = &sec.Rows
	fn(b)
	b.rows = parent
	if len(sec.Rows) == 0 {
		return Empty
	}
	*b.rows = append(*b.rows, Row{Section: sec})
	return Populated
}

// Categories materializes the pass: categories without rows are dropped,
// the rest keep declaration order.
func (b *Builder) Categories() []*Category {
	var out []*Category
	for _, c := range b.cats {
		if len(c.Rows) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Controls lists every control produced by the pass in declaration order.
func (b *Builder) Controls() []*Control { return b.controls }

// Each walks the rows of cats depth-first in display order.
func Each(cats []*Category, fn func(c *Control, depth int)) {
	for _, cat := range cats {
		eachRow(cat.Rows, 0, fn)
	}
}

func eachRow(rows []Row, depth int, fn func(*Control, int)) {
	for _, r := range rows {
		if r.Control != nil {
			fn(r.Control, depth)
			continue
		}
		eachRow(r.Section.Rows, depth+1, fn)
	}
}
