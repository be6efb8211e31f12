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
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/listedit"
	"github.com/silogen/rulebloom/pkg/rules"
	log "github.com/sirupsen/logrus"
)

const cardHeight = 11

// weatherDialog opens the weather list editor as its own page.
type weatherDialog struct {
	app *App
}

func (d *weatherDialog) Show(current []rules.WeatherEntry, onChange func([]rules.WeatherEntry)) {
	a := d.app
	e := a.session.Editor()
	p := &weatherScreen{app: a, list: current, cardWidth: a.cfg.CardWidth}
	p.editor = rules.NewWeatherEditor(&p.list, e.Bundle(), e.Options())
	p.editor.OnChange(func() {
		onChange(p.list)
		p.layout()
	})
	if err := p.editor.Open(); err != nil {
		log.Errorf("Weather editor: %v", err)
		return
	}
	p.build()
	a.weather = p
	a.pages.AddPage(weatherPage, p.root, true, true)
	a.app.SetFocus(p.root)
}

// weatherScreen lays the entries out as cards, as many per row as fit.
type weatherScreen struct {
	app       *App
	list      []rules.WeatherEntry
	editor    *listedit.Editor[rules.WeatherEntry]
	root      *tview.Flex
	grid      *tview.Grid
	buttons   *tview.Form
	cards     []*cardView
	cardWidth int
	cols      int
	width     int
	focus     int
}

// cardView is the tview form of one card and the state last applied to
// each of its widgets.
type cardView struct {
	card    *listedit.Card[rules.WeatherEntry]
	form    *tview.Form
	items   []tview.FormItem
	applied map[*form.Control]form.State
}

func (p *weatherScreen) build() {
	a := p.app
	p.grid = tview.NewGrid()
	p.buttons = tview.NewForm().
		AddButton(a.text("add"), p.beginAdd).
		AddButton(a.text("close"), p.close)
	p.buttons.SetButtonsAlign(tview.AlignCenter)

	p.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.grid, 0, 1, true).
		AddItem(p.buttons, 3, 0, false)
	p.root.SetBorder(true).SetTitle(a.text("rules.weather"))
	p.root.SetInputCapture(p.keys)

	p.width = a.width
	p.layout()
}

// layout rebuilds the cards. Cards hold pointers into the list, so this
// runs after every add and remove.
func (p *weatherScreen) layout() {
	hadFocus := p.root != nil && p.root.HasFocus() && !p.buttons.HasFocus()
	p.grid.Clear()
	p.cards = p.cards[:0]
	p.cols = listedit.Columns(p.width, p.cardWidth)

	for _, card := range p.editor.Cards() {
		p.cards = append(p.cards, p.newCardView(card))
	}

	rows := listedit.Rows(len(p.cards), p.cols)
	colSizes := make([]int, p.cols)
	for i := range colSizes {
		colSizes[i] = p.cardWidth
	}
	rowSizes := make([]int, len(rows))
	for i := range rowSizes {
		rowSizes[i] = cardHeight
	}
	p.grid.SetColumns(colSizes...).SetRows(rowSizes...)
	for r, idx := range rows {
		for c, i := range idx {
			p.grid.AddItem(p.cards[i].form, r, c, 1, 1, 0, 0, i == 0)
		}
	}
	log.Debugf("Weather cards laid out: %d entries, %d columns", len(p.cards), p.cols)
	// The previous cards are gone; focus must not stay on one of them.
	if hadFocus {
		p.focusCard(p.focus)
	}
}

// focusCard focuses the card nearest to i, or the button bar when there
// are no cards.
func (p *weatherScreen) focusCard(i int) {
	if len(p.cards) == 0 {
		p.focus = 0
		p.app.app.SetFocus(p.buttons)
		return
	}
	p.focus = min(max(i, 0), len(p.cards)-1)
	p.app.app.SetFocus(p.cards[p.focus].form)
}

func (p *weatherScreen) newCardView(card *listedit.Card[rules.WeatherEntry]) *cardView {
	v := &cardView{card: card, form: tview.NewForm(), applied: map[*form.Control]form.State{}}
	for _, c := range card.Controls {
		c := c
		s := c.State()
		switch c.Kind() {
		case binding.KindInt, binding.KindFloat:
			v.form.AddInputField(c.Label, s.Text, 8, nil, func(text string) { c.Commit(text) })
		case binding.KindBool:
			v.form.AddCheckbox(c.Label, s.Checked, func(checked bool) {
				if checked != c.State().Checked {
					c.Toggle()
				}
			})
		default:
			continue
		}
		v.items = append(v.items, v.form.GetFormItem(v.form.GetFormItemCount()-1))
	}
	v.form.AddButton(p.app.text("remove"), func() { p.remove(card) })
	v.form.SetBorder(true).SetTitle(card.Title)
	v.apply()
	return v
}

// apply pushes control state into the widgets that changed.
func (v *cardView) apply() int {
	n := 0
	i := 0
	for _, c := range v.card.Controls {
		if c.Kind() == binding.KindAction || c.Kind() == binding.KindEnum {
			continue
		}
		item := v.items[i]
		i++
		s := c.State()
		if prev, ok := v.applied[c]; ok && prev == s {
			continue
		}
		v.applied[c] = s
		n++
		switch w := item.(type) {
		case *tview.InputField:
			w.SetDisabled(!s.Enabled)
			if s.Invalid {
				w.SetFieldTextColor(invalidColor)
			} else {
				w.SetFieldTextColor(labelColor)
			}
		case *tview.Checkbox:
			w.SetDisabled(!s.Enabled)
			w.SetChecked(s.Checked)
		}
	}
	return n
}

func (p *weatherScreen) refresh() int {
	p.editor.Refresh()
	n := 0
	for _, v := range p.cards {
		n += v.apply()
	}
	return n
}

// resize relays the cards out when the column count changes.
func (p *weatherScreen) resize(width int) {
	p.width = width
	if listedit.Columns(width, p.cardWidth) != p.cols {
		p.layout()
	}
}

// remove deletes the entry shown by card. A card left over from an earlier
// layout matches nothing and is ignored.
func (p *weatherScreen) remove(card *listedit.Card[rules.WeatherEntry]) {
	for i, c := range p.editor.Cards() {
		if c != card {
			continue
		}
		p.focus = i
		if err := p.editor.Remove(i); err != nil {
			log.Errorf("Remove weather: %v", err)
		}
		return
	}
	log.Debugf("Ignoring remove from a stale weather card")
}

func (p *weatherScreen) beginAdd() {
	a := p.app
	if err := p.editor.BeginAdd(); err != nil {
		log.Errorf("Add weather: %v", err)
		return
	}
	list := tview.NewList().ShowSecondaryText(false)
	for _, k := range p.editor.Kinds() {
		key := k.Key
		list.AddItem(a.text(key), "", 0, func() {
			if err := p.editor.Choose(key); err != nil {
				log.Errorf("Add weather: %v", err)
			}
			a.closePopup(chooserPage)
		})
	}
	list.SetDoneFunc(func() {
		p.editor.CancelAdd()
		a.closePopup(chooserPage)
	})
	list.SetBorder(true).SetTitle(a.text("add"))
	a.popup(chooserPage, list, 30, len(p.editor.Kinds())+2)
}

func (p *weatherScreen) close() {
	a := p.app
	p.editor.Close()
	a.weather = nil
	a.pages.RemovePage(chooserPage)
	a.pages.RemovePage(weatherPage)
	a.app.SetFocus(a.view.table)
}

// keys moves focus between cards and the button bar.
func (p *weatherScreen) keys(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyPgDn:
		p.moveFocus(1)
		return nil
	case tcell.KeyPgUp:
		p.moveFocus(-1)
		return nil
	case tcell.KeyEscape:
		p.close()
		return nil
	}
	return ev
}

func (p *weatherScreen) moveFocus(delta int) {
	n := len(p.cards) + 1
	p.focus = ((p.focus+delta)%n + n) % n
	if p.focus == len(p.cards) {
		p.app.app.SetFocus(p.buttons)
		return
	}
	p.app.app.SetFocus(p.cards[p.focus].form)
}
