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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/silogen/rulebloom/pkg/rules"
)

// Clipboard carries exported rules between editor sessions.
type Clipboard interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileClipboard keeps the clipboard in a file.
type FileClipboard string

func (f FileClipboard) Read() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f FileClipboard) Write(data []byte) error {
	return os.WriteFile(string(f), data, 0644)
}

// MemClipboard is an in-process clipboard.
type MemClipboard struct {
	data []byte
}

func (m *MemClipboard) Read() ([]byte, error) { return m.data, nil }

func (m *MemClipboard) Write(data []byte) error {
	m.data = append(m.data[:0], data...)
	return nil
}

// textDialog edits a value through a single line of text. The value is
// applied when the text parses; otherwise the field turns red.
type textDialog[T any] struct {
	app    *App
	title  string
	format func(T) string
	parse  func(string) (T, error)
}

func (d *textDialog[T]) Show(current T, onChange func(T)) {
	field := tview.NewInputField().
		SetLabel(d.title + ": ").
		SetText(d.format(current)).
		SetFieldWidth(0)
	field.SetChangedFunc(func(text string) {
		v, err := d.parse(text)
		if err != nil {
			field.SetFieldTextColor(invalidColor)
			return
		}
		field.SetFieldTextColor(labelColor)
		onChange(v)
	})
	field.SetDoneFunc(func(tcell.Key) { d.app.closePopup(popupPage) })
	field.SetBorder(true).SetTitle(d.title)
	d.app.popup(popupPage, field, 70, 3)
}

func formatList(v []string) string { return strings.Join(v, ", ") }

func parseList(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

func formatLoadout(v []rules.ItemStack) string {
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = fmt.Sprintf("%s=%d", s.Item, s.Amount)
	}
	return strings.Join(parts, ", ")
}

func parseLoadout(s string) ([]rules.ItemStack, error) {
	var out []rules.ItemStack
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		item, amount, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want item=amount", f)
		}
		n, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%q: bad amount", f)
		}
		out = append(out, rules.ItemStack{Item: strings.TrimSpace(item), Amount: n})
	}
	return out, nil
}

func formatColor(c rules.Color) string { return "#" + c.Hex() }
