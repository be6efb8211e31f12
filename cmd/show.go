package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/rules"
)

// listDialogs stand in for the editor's dialogs in commands without a
// screen, so action rows are still declared. They never open.
func listDialogs() rules.Dialogs {
	return rules.Dialogs{
		Loadout:      form.DialogFunc[[]rules.ItemStack](func([]rules.ItemStack, func([]rules.ItemStack)) {}),
		BannedBlocks: form.DialogFunc[[]string](func([]string, func([]string)) {}),
		BannedUnits:  form.DialogFunc[[]string](func([]string, func([]string)) {}),
		Weather:      form.DialogFunc[[]rules.WeatherEntry](func([]rules.WeatherEntry, func([]rules.WeatherEntry)) {}),
		AmbientLight: form.DialogFunc[rules.Color](func(rules.Color, func(rules.Color)) {}),
	}
}

func newEditor(r *rules.Rules, s settings, d rules.Dialogs) (*form.Editor, error) {
	bundle, err := s.bundle()
	if err != nil {
		return nil, err
	}
	get := func() *rules.Rules { return r }
	return form.NewEditor(bundle, rules.Declaration(get, s.ruleOptions(d)), s.formOptions()), nil
}

func runShow(w io.Writer, path, query string, s settings) error {
	r, err := loadRules(path)
	if err != nil {
		return err
	}
	e, err := newEditor(r, s, listDialogs())
	if err != nil {
		return err
	}
	if query != "" {
		e.SetQuery(query)
	}

	cats := e.Categories()
	if len(cats) == 0 {
		fmt.Fprintf(w, "No rules match %q\n", query)
		return nil
	}
	return form.WriteText(w, cats)
}

func runKeys(w io.Writer, s settings) error {
	e, err := newEditor(rules.Defaults(), s, listDialogs())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tINFO")
	form.Each(e.Categories(), func(c *form.Control, depth int) {
		info := ""
		if c.HasHelp {
			info = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Key(), c.Label, info)
	})
	return tw.Flush()
}
