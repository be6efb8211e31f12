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

package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/form"
)

const (
	colLabel = iota
	colValue
	colInfo
)

var (
	headerColor   = tcell.ColorYellow
	labelColor    = tcell.ColorWhite
	disabledColor = tcell.ColorGray
	invalidColor  = tcell.ColorRed
	sectionColor  = tcell.ColorAqua
)

// line is one table row. Headers have neither a control nor a section.
type line struct {
	control *form.Control
	section *form.Section
	depth   int
}

// rulesView shows the editor's materialized categories as a table.
type rulesView struct {
	editor  *form.Editor
	table   *tview.Table
	status  *tview.TextView
	lines   []line
	applied map[*form.Control]form.State
}

func newRulesView(editor *form.Editor) *rulesView {
	v := &rulesView{
		editor: editor,
		table:  tview.NewTable(),
		status: tview.NewTextView(),
	}
	v.table.SetSelectable(true, false).SetBorder(true)
	v.table.SetSelectionChangedFunc(func(row, _ int) { v.showHelp(row) })
	v.status.SetTextColor(tcell.ColorGray)
	editor.OnRebuild(v.render)
	v.render()
	return v
}

// render lays the table out again from the editor's categories. It runs
// after every rebuild and every subsection toggle.
func (v *rulesView) render() {
	row, _ := v.table.GetSelection()
	v.table.Clear()
	v.lines = v.lines[:0]
	v.applied = map[*form.Control]form.State{}

	for _, cat := range v.editor.Categories() {
		if cat.Header() {
			v.add(line{}, tview.NewTableCell(cat.Title).
				SetTextColor(headerColor).
				SetAttributes(tcell.AttrBold).
				SetSelectable(false))
		}
		v.addRows(cat.Rows, 0)
	}

	if row >= len(v.lines) {
		row = len(v.lines) - 1
	}
	v.table.Select(max(row, 0), colLabel)
	v.showHelp(max(row, 0))
}

func (v *rulesView) addRows(rows []form.Row, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range rows {
		if r.Section != nil {
			mark := "▸ "
			if r.Section.Expanded {
				mark = "▾ "
			}
			v.add(line{section: r.Section, depth: depth},
				tview.NewTableCell(indent+mark+r.Section.Title).SetTextColor(sectionColor))
			if r.Section.Expanded {
				v.addRows(r.Section.Rows, depth+1)
			}
			continue
		}
		c := r.Control
		v.add(line{control: c, depth: depth}, tview.NewTableCell(indent+c.Label).SetReference(c))
		v.paint(len(v.lines)-1, c, c.State())
	}
}

func (v *rulesView) add(l line, label *tview.TableCell) {
	row := len(v.lines)
	v.lines = append(v.lines, l)
	v.table.SetCell(row, colLabel, label.SetExpansion(1))
	v.table.SetCell(row, colValue, tview.NewTableCell("").SetSelectable(l.control != nil || l.section != nil))
	v.table.SetCell(row, colInfo, tview.NewTableCell("").SetSelectable(l.control != nil || l.section != nil))
	if l.control == nil && l.section == nil {
		v.table.GetCell(row, colLabel).SetSelectable(false)
	}
}

// refresh repaints the rows whose state changed since they were last
// drawn. It is called before every draw.
func (v *rulesView) refresh() int {
	v.editor.Refresh()
	n := 0
	for row, l := range v.lines {
		if l.control == nil {
			continue
		}
		s := l.control.State()
		if prev, ok := v.applied[l.control]; ok && prev == s {
			continue
		}
		v.paint(row, l.control, s)
		n++
	}
	return n
}

func (v *rulesView) paint(row int, c *form.Control, s form.State) {
	v.applied[c] = s

	color := stateColor(s)
	v.table.GetCell(row, colLabel).SetTextColor(color)
	v.table.GetCell(row, colValue).SetText(valueText(c, s)).SetTextColor(color)

	info := ""
	if c.HasHelp && v.editor.Options().Compact {
		info = "(i)"
	}
	v.table.GetCell(row, colInfo).SetText(info).SetTextColor(tcell.ColorBlue)
}

func stateColor(s form.State) tcell.Color {
	switch {
	case !s.Enabled:
		return disabledColor
	case s.Invalid:
		return invalidColor
	}
	return labelColor
}

func valueText(c *form.Control, s form.State) string {
	switch c.Kind() {
	case binding.KindBool:
		if s.Checked {
			return "☑"
		}
		return "☐"
	case binding.KindInt, binding.KindFloat:
		return s.Text
	case binding.KindEnum:
		return strings.Join(memberToggles(c.Choices, s.Selected), "  ")
	case binding.KindAction:
		return "..."
	}
	return ""
}

// memberToggles renders one toggle per member, set on the selected one.
func memberToggles(choices []string, selected int) []string {
	out := make([]string, len(choices))
	for i, choice := range choices {
		mark := "○ "
		if i == selected {
			mark = "◉ "
		}
		out[i] = mark + choice
	}
	return out
}

// selected returns the line under the cursor.
func (v *rulesView) selected() (line, bool) {
	row, _ := v.table.GetSelection()
	if row < 0 || row >= len(v.lines) {
		return line{}, false
	}
	return v.lines[row], true
}

// toggleSection opens or closes a subsection without rebuilding the form.
func (v *rulesView) toggleSection(s *form.Section) {
	v.editor.SetExpanded(s.Key, !s.Expanded)
	v.render()
}

// In compact mode help is reached through the info marker, otherwise it
// follows the cursor in the status line.
func (v *rulesView) showHelp(row int) {
	v.status.Clear()
	if v.editor.Options().Compact || row < 0 || row >= len(v.lines) {
		return
	}
	if c := v.lines[row].control; c != nil && c.HasHelp {
		v.status.SetText(c.Help)
	}
}

func (v *rulesView) rowOf(key string) int {
	for i, l := range v.lines {
		if l.control != nil && l.control.Key() == key {
			return i
		}
	}
	return -1
}
