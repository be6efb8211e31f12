package form

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/silogen/rulebloom/pkg/binding"
)

// WriteText renders materialized categories as plain text. Every category
// gets its title and a divider; subsections are printed expanded.
func WriteText(w io.Writer, cats []*Category) error {
	var sb strings.Builder
	for i, cat := range cats {
		if i > 0 {
			sb.WriteString("\n")
		}
		if cat.Header() {
			sb.WriteString(cat.Title + "\n")
			sb.WriteString(strings.Repeat("─", max(utf8.RuneCountInString(cat.Title), 3)) + "\n")
		}
		writeRows(&sb, cat.Rows, 1)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRows(sb *strings.Builder, rows []Row, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range rows {
		if r.Section != nil {
			sb.WriteString(fmt.Sprintf("%s▸ %s\n", indent, r.Section.Title))
			writeRows(sb, r.Section.Rows, depth+1)
			continue
		}
		sb.WriteString(indent + FormatRow(r.Control) + "\n")
		if r.Control.HasHelp {
			sb.WriteString(fmt.Sprintf("%s    %s\n", indent, r.Control.Help))
		}
	}
}

// FormatRow renders one control on a single line, including its disabled
// and invalid markers.
func FormatRow(c *Control) string {
	s := c.State()
	var line string
	switch c.Kind() {
	case binding.KindBool:
		mark := " "
		if s.Checked {
			mark = "x"
		}
		line = fmt.Sprintf("[%s] %s", mark, c.Label)
	case binding.KindInt, binding.KindFloat:
		line = fmt.Sprintf("%s: %s", c.Label, s.Text)
	case binding.KindEnum:
		opts := make([]string, len(c.Choices))
		for i, o := range c.Choices {
			if i == s.Selected {
				o = "(" + o + ")"
			}
			opts[i] = o
		}
		line = fmt.Sprintf("%s: %s", c.Label, strings.Join(opts, " "))
	case binding.KindAction:
		line = "> " + c.Label
	}
	if !s.Enabled {
		line += " (disabled)"
	}
	if s.Invalid {
		line += " (invalid)"
	}
	return line
}
