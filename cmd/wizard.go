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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/silogen/rulebloom/pkg/binding"
	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/rules"
	log "github.com/sirupsen/logrus"
)

// wizard asks for every enabled control in display order. Enablement is
// re-evaluated before each question, so answers switch later questions
// on and off.
type wizard struct {
	in  *bufio.Reader
	out io.Writer
	// answered counts controls whose value was changed.
	answered int
}

func newWizard(in io.Reader, out io.Writer) *wizard {
	return &wizard{in: bufio.NewReader(in), out: out}
}

func runWizard(in io.Reader, out io.Writer, path string, s settings) error {
	if err := validateRulesPath(path); err != nil {
		return err
	}
	r, err := loadRules(path)
	if err != nil {
		return err
	}
	// Sub-editors need a screen; their rows are left out.
	e, err := newEditor(r, s, rules.Dialogs{})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "╔════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║                    Rulebloom Ruleset Wizard                    ║")
	fmt.Fprintln(out, "╚════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This wizard walks through every rule that applies to the ruleset.")
	fmt.Fprintln(out, "Press Enter to keep the value shown as current.")

	w := newWizard(in, out)
	w.run(e.Categories())

	if err := rules.SaveFile(path, r); err != nil {
		return err
	}
	log.Infof("Wizard changed %d rules in %s", w.answered, path)

	fmt.Fprintln(out, "\n╔════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║                      Ruleset Complete!                         ║")
	fmt.Fprintln(out, "╚════════════════════════════════════════════════════════════════╝")
	fmt.Fprintf(out, "\nRules saved to: %s\n", path)
	fmt.Fprintf(out, "\nTo keep editing, run:\n  rulebloom edit %s\n\n", path)
	return nil
}

// run walks cats and reports whether input is still available.
func (w *wizard) run(cats []*form.Category) bool {
	for _, cat := range cats {
		if cat.Header() {
			fmt.Fprintf(w.out, "\n── %s ──\n", cat.Title)
		}
		if !w.rows(cat.Rows, 0) {
			return false
		}
	}
	return true
}

func (w *wizard) rows(rows []form.Row, depth int) bool {
	indent := strings.Repeat("  ", depth)
	for _, row := range rows {
		if row.Section != nil {
			fmt.Fprintf(w.out, "\n%s▾ %s\n", indent, row.Section.Title)
			if !w.rows(row.Section.Rows, depth+1) {
				return false
			}
			continue
		}
		c := row.Control
		if c.Kind() == binding.KindAction {
			continue
		}
		if s, _ := c.Refresh(); !s.Enabled {
			continue
		}
		if !w.ask(c, indent) {
			return false
		}
	}
	return true
}

func (w *wizard) ask(c *form.Control, indent string) bool {
	fmt.Fprintf(w.out, "\n%s%s:\n", indent, c.Label)
	if c.HasHelp {
		fmt.Fprintf(w.out, "%s  %s\n", indent, c.Help)
	}
	if c.Kind() == binding.KindEnum {
		for i, choice := range c.Choices {
			fmt.Fprintf(w.out, "%s  %d) %s\n", indent, i+1, choice)
		}
	}

	for {
		fmt.Fprintf(w.out, "%s  Current: %s [press Enter to keep]\n", indent, currentValue(c))
		fmt.Fprintf(w.out, "%s  Enter value: ", indent)

		input, err := w.in.ReadString('\n')
		if err != nil && input == "" {
			fmt.Fprintln(w.out)
			return false
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return true
		}

		if err := applyAnswer(c, input); err != nil {
			fmt.Fprintf(w.out, "%s  ❌ Error: %v\n", indent, err)
			fmt.Fprintf(w.out, "%s  Please try again.\n", indent)
			continue
		}
		w.answered++
		return true
	}
}

func currentValue(c *form.Control) string {
	s := c.State()
	switch c.Kind() {
	case binding.KindBool:
		return strconv.FormatBool(s.Checked)
	case binding.KindEnum:
		if s.Selected >= 0 && s.Selected < len(c.Choices) {
			return c.Choices[s.Selected]
		}
		return "(none)"
	default:
		return s.Text
	}
}

// applyAnswer commits input to c. An error leaves the target unchanged.
func applyAnswer(c *form.Control, input string) error {
	switch c.Kind() {
	case binding.KindBool:
		v, err := parseBool(input)
		if err != nil {
			return err
		}
		if v != c.State().Checked {
			c.Toggle()
		}
	case binding.KindInt, binding.KindFloat:
		if !c.Commit(input) {
			return fmt.Errorf("'%s' is not an accepted value", input)
		}
	case binding.KindEnum:
		i, err := parseChoice(input, c.Choices)
		if err != nil {
			return err
		}
		c.Select(i)
	}
	return nil
}
