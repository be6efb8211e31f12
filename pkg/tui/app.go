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

// Package tui is the terminal front end of the rules editor, built on
// tview. The form is re-evaluated before every draw, so controls follow
// the live ruleset without rebuilding.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/locale"
	"github.com/silogen/rulebloom/pkg/rules"
	log "github.com/sirupsen/logrus"
)

const (
	mainPage    = "main"
	popupPage   = "popup"
	menuPage    = "menu"
	messagePage = "message"
	weatherPage = "weather"
	chooserPage = "chooser"
)

// DefaultCardWidth is the width of a weather card in cells.
const DefaultCardWidth = 46

// Config holds everything the editor needs besides the ruleset.
type Config struct {
	Bundle    locale.Bundle
	Form      form.Options
	Rules     rules.Options
	CardWidth int
	Clipboard Clipboard
	// Save persists the ruleset; nil disables saving.
	Save func(*rules.Rules) error
}

// App is a running rules editor.
type App struct {
	cfg     Config
	app     *tview.Application
	pages   *tview.Pages
	search  *tview.InputField
	session *rules.Session
	view    *rulesView
	weather *weatherScreen
	width   int
}

// New builds the editor around r. reset supplies the ruleset used by the
// reset action; nil means rules.Defaults. Dialogs left nil in cfg.Rules
// are filled with the built-in ones.
func New(r *rules.Rules, reset func() *rules.Rules, cfg Config) *App {
	if cfg.Bundle == nil {
		cfg.Bundle = locale.English()
	}
	if cfg.CardWidth <= 0 {
		cfg.CardWidth = DefaultCardWidth
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = &MemClipboard{}
	}
	a := &App{
		cfg:   cfg,
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
	}
	a.cfg.Rules.Dialogs = a.dialogs(cfg.Rules.Dialogs)
	a.session = rules.NewSession(r, reset, cfg.Bundle, cfg.Form, a.cfg.Rules)
	a.session.OnReplace(a.dropDialogs)
	a.view = newRulesView(a.session.Editor())

	a.search = tview.NewInputField().
		SetLabel(a.text("search") + ": ").
		SetFieldWidth(0)
	a.search.SetChangedFunc(func(text string) {
		a.session.Editor().SetQuery(text)
	})
	a.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.search.SetText("")
		}
		a.app.SetFocus(a.view.table)
	})

	a.view.table.SetTitle(a.text("mode.custom"))
	a.view.table.SetSelectedFunc(func(row, _ int) { a.activate(row) })
	a.view.table.SetInputCapture(a.tableKeys)

	hints := tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]/[-] search  [yellow]Enter[-] edit  [yellow]?[-] info  [yellow]Ctrl-E[-] rules  [yellow]Ctrl-S[-] save  [yellow]Ctrl-Q[-] quit")

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(a.view.table, 0, 1, true).
		AddItem(a.view.status, 1, 0, false).
		AddItem(hints, 1, 0, false)
	a.pages.AddPage(mainPage, root, true, true)

	a.app.SetRoot(a.pages, true).
		SetFocus(a.view.table).
		SetInputCapture(a.globalKeys).
		SetBeforeDrawFunc(a.beforeDraw)
	return a
}

func (a *App) dialogs(d rules.Dialogs) rules.Dialogs {
	if d.Loadout == nil {
		d.Loadout = &textDialog[[]rules.ItemStack]{app: a, title: a.text("configure"), format: formatLoadout, parse: parseLoadout}
	}
	if d.BannedBlocks == nil {
		d.BannedBlocks = &textDialog[[]string]{app: a, title: a.text("bannedblocks"), format: formatList, parse: parseList}
	}
	if d.BannedUnits == nil {
		d.BannedUnits = &textDialog[[]string]{app: a, title: a.text("bannedunits"), format: formatList, parse: parseList}
	}
	if d.AmbientLight == nil {
		d.AmbientLight = &textDialog[rules.Color]{app: a, title: a.text("rules.ambientlight"), format: formatColor, parse: rules.ParseColor}
	}
	if d.Weather == nil {
		d.Weather = &weatherDialog{app: a}
	}
	return d
}

// Run blocks until the editor is closed.
func (a *App) Run() error {
	return a.app.Run()
}

// Stop closes the editor.
func (a *App) Stop() { a.app.Stop() }

// Session exposes the open ruleset.
func (a *App) Session() *rules.Session { return a.session }

// Reload applies new presentation settings from another goroutine.
func (a *App) Reload(bundle locale.Bundle, opts form.Options) {
	a.app.QueueUpdateDraw(func() { a.apply(bundle, opts) })
}

func (a *App) apply(bundle locale.Bundle, opts form.Options) {
	e := a.session.Editor()
	if bundle != nil {
		a.cfg.Bundle = bundle
		e.SetBundle(bundle)
	}
	if opts != e.Options() {
		e.SetOptions(opts)
	}
	log.Infof("Editor settings reloaded: compact=%v", opts.Compact)
}

// dropDialogs closes the dialogs bound to a ruleset that import or reset
// has just replaced, so later edits cannot land in the old one.
func (a *App) dropDialogs() {
	a.pages.RemovePage(popupPage)
	if a.weather != nil {
		a.weather.close()
		return
	}
	a.app.SetFocus(a.view.table)
}

func (a *App) text(key string) string { return a.cfg.Bundle.Lookup(key) }

// beforeDraw runs the re-evaluation loop on every frame.
func (a *App) beforeDraw(screen tcell.Screen) bool {
	w, _ := screen.Size()
	a.width = w
	a.view.refresh()
	if a.weather != nil {
		a.weather.resize(w)
		a.weather.refresh()
	}
	return false
}

func (a *App) globalKeys(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		a.app.Stop()
		return nil
	case tcell.KeyCtrlE:
		a.showMenu()
		return nil
	case tcell.KeyCtrlS:
		a.save()
		return nil
	}
	return ev
}

func (a *App) tableKeys(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Rune() {
	case '/':
		a.app.SetFocus(a.search)
		return nil
	case '?':
		a.showInfo()
		return nil
	case ' ':
		row, _ := a.view.table.GetSelection()
		a.activate(row)
		return nil
	}
	return ev
}

// activate performs the default action of a table row.
func (a *App) activate(row int) {
	if row < 0 || row >= len(a.view.lines) {
		return
	}
	l := a.view.lines[row]
	if l.section != nil {
		a.view.toggleSection(l.section)
		return
	}
	c := l.control
	if c == nil || !c.State().Enabled {
		return
	}
	switch c.Kind() {
	case binding.KindBool:
		c.Toggle()
	case binding.KindInt, binding.KindFloat:
		a.editNumber(c)
	case binding.KindEnum:
		a.chooseOption(c)
	case binding.KindAction:
		c.Activate()
	}
}

// editNumber commits on every keystroke; invalid text stays in the field
// and leaves the ruleset untouched.
func (a *App) editNumber(c *form.Control) {
	field := tview.NewInputField().
		SetLabel(c.Label + ": ").
		SetText(c.Text()).
		SetFieldWidth(16)
	field.SetChangedFunc(func(text string) {
		if c.Commit(text) {
			field.SetFieldTextColor(labelColor)
		} else {
			field.SetFieldTextColor(invalidColor)
		}
	})
	field.SetDoneFunc(func(tcell.Key) { a.closePopup(popupPage) })
	field.SetBorder(true)
	a.popup(popupPage, field, len(c.Label)+24, 3)
}

// chooseOption shows the members as a row of toggles. The marks are taken
// from the control's state, so exactly one is set.
func (a *App) chooseOption(c *form.Control) {
	s := c.State()
	group := tview.NewTable().SetSelectable(false, true)
	width := runewidth.StringWidth(c.Label) + 4
	for i, text := range memberToggles(c.Choices, s.Selected) {
		group.SetCell(0, i, tview.NewTableCell(text).SetExpansion(1).SetAlign(tview.AlignCenter))
		width += runewidth.StringWidth(text) + 2
	}
	group.Select(0, max(s.Selected, 0))
	group.SetSelectedFunc(func(_, col int) {
		c.Select(col)
		a.closePopup(popupPage)
	})
	group.SetDoneFunc(func(tcell.Key) { a.closePopup(popupPage) })
	group.SetBorder(true).SetTitle(c.Label)
	a.popup(popupPage, group, width, 3)
}

func (a *App) showInfo() {
	l, ok := a.view.selected()
	if !ok || l.control == nil || !l.control.HasHelp {
		return
	}
	a.message(l.control.Help)
}

// showMenu offers export, import and reset. Import is only offered when
// the clipboard holds something.
func (a *App) showMenu() {
	exportLabel := a.text("waves.copy")
	importLabel := a.text("waves.load")
	resetLabel := a.text("settings.reset")
	buttons := []string{exportLabel}
	if data, err := a.cfg.Clipboard.Read(); err == nil && rules.CanImport(data) {
		buttons = append(buttons, importLabel)
	}
	buttons = append(buttons, resetLabel, a.text("close"))

	m := tview.NewModal().
		SetText(a.text("waves.edit")).
		AddButtons(buttons).
		SetDoneFunc(func(_ int, label string) {
			a.pages.RemovePage(menuPage)
			a.app.SetFocus(a.view.table)
			switch label {
			case exportLabel:
				a.exportRules()
			case importLabel:
				a.importRules()
			case resetLabel:
				a.session.Reset()
			}
		})
	a.pages.AddPage(menuPage, m, true, true)
	a.app.SetFocus(m)
}

func (a *App) exportRules() error {
	data, err := a.session.Export()
	if err == nil {
		err = a.cfg.Clipboard.Write(data)
	}
	if err != nil {
		log.Errorf("Export failed: %v", err)
		a.message(err.Error())
		return err
	}
	a.message(a.text("copied"))
	return nil
}

func (a *App) importRules() error {
	data, err := a.cfg.Clipboard.Read()
	if err == nil {
		err = a.session.Import(data)
	}
	if err != nil {
		a.message(a.text("rules.invaliddata"))
		return err
	}
	return nil
}

func (a *App) save() error {
	if a.cfg.Save == nil {
		return nil
	}
	if err := a.cfg.Save(a.session.Rules()); err != nil {
		log.Errorf("Save failed: %v", err)
		a.message(fmt.Sprintf("Save failed: %v", err))
		return err
	}
	return nil
}

func (a *App) message(text string) {
	m := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { a.closePopup(messagePage) })
	a.pages.AddPage(messagePage, m, true, true)
	a.app.SetFocus(m)
}

func (a *App) popup(name string, p tview.Primitive, width, height int) {
	a.pages.AddPage(name, center(p, width, height), true, true)
	a.app.SetFocus(p)
}

func (a *App) closePopup(name string) {
	a.pages.RemovePage(name)
	if a.weather != nil {
		a.app.SetFocus(a.weather.root)
		return
	}
	a.app.SetFocus(a.view.table)
}

func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
