package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/silogen/rulebloom/internal/config"
	"github.com/spf13/cobra"
)

var (
	Version     string // Set via ldflags during build
	searchQuery string
	forceReset  bool
	forceInit   bool
	exportPath  string
)

func init() {
	cobra.OnInitialize(initConfig)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfigFieldsHelp() string {
	var sb strings.Builder

	sb.WriteString("SETTINGS\n\n")

	schema := config.Schema()
	currentSection := ""

	for _, field := range schema {
		if field.Section != currentSection {
			currentSection = field.Section
			sb.WriteString(fmt.Sprintf("%s\n", currentSection))
		}

		// NAME (type) - Description [Default: value] [Requires: deps]
		line := fmt.Sprintf("  %-18s %-10s", field.Key, "("+field.Type+")")

		if field.Description != "" {
			line += fmt.Sprintf(" %s", field.Description)
		}

		if field.Default != nil {
			defaultStr := fmt.Sprintf("%v", field.Default)
			if defaultStr != "" && defaultStr != "false" {
				if len(defaultStr) > 60 {
					defaultStr = defaultStr[:57] + "..."
				}
				line += fmt.Sprintf(" [Default: %s]", defaultStr)
			}
		}

		if len(field.Options) > 0 {
			line += fmt.Sprintf(" [Options: %s]", strings.Join(field.Options, ", "))
		}

		if field.Max > field.Min {
			line += fmt.Sprintf(" [Range: %d-%d]", field.Min, field.Max)
		}

		if field.Dependencies != "" {
			line += fmt.Sprintf(" [Requires: %s]", field.Dependencies)
		}

		sb.WriteString(line + "\n")
	}

	sb.WriteString("\nSettings are read from --config, ./.rulebloom.yaml or ~/.rulebloom.yaml, and from environment variables of the same name.\n")
	return sb.String()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rulebloom",
		Short: "Terminal editor for game rulesets",
		Long: `Rulebloom - edit, inspect and share game rulesets.

The editor shows every rule grouped by category. Rules that do not apply
to the current ruleset are greyed out and follow your edits as you type.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: checkSettings,
		SilenceUsage:      true,
		RunE:              runEdit,
	}

	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + "\n" + buildConfigFieldsHelp())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is ./.rulebloom.yaml)")

	editCmd := &cobra.Command{
		Use:   "edit [rules-file]",
		Short: "Open the ruleset editor",
		Long: `Open the interactive ruleset editor. A missing rules file starts from
the default ruleset and is created on save (Ctrl-S).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}

	showCmd := &cobra.Command{
		Use:   "show [rules-file]",
		Short: "Print the ruleset form as text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), rulesPath(args), searchQuery, loadSettings())
		},
	}
	showCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Only show rules whose label matches")

	wizardCmd := &cobra.Command{
		Use:   "wizard [rules-file]",
		Short: "Answer questions to build a ruleset",
		Long: `The wizard walks through every rule that applies to the ruleset and
asks for a value. Press Enter to keep the current one. Rules that stop
applying because of an earlier answer are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.InOrStdin(), cmd.OutOrStdout(), rulesPath(args), loadSettings())
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [rules-file]",
		Short: "Write the shareable form of a ruleset",
		Long:  `Export writes the ruleset without its spawn groups, ready to be imported into another map.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), rulesPath(args), exportPath)
		},
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Write to a file instead of stdout")

	importCmd := &cobra.Command{
		Use:   "import <source> [rules-file]",
		Short: "Replace a ruleset with exported rules",
		Long: `Import replaces every rule with the ones in source ("-" reads stdin).
Spawn groups and objectives of the target are kept.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], rulesPath(args[1:]))
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset [rules-file]",
		Short: "Restore the default ruleset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd.InOrStdin(), cmd.OutOrStdout(), rulesPath(args), forceReset)
		},
	}
	resetCmd.Flags().BoolVarP(&forceReset, "force", "f", false, "Skip the confirmation prompt")

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List every rule key and its label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd.OutOrStdout(), loadSettings())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rulebloom settings",
		// Broken settings must not block writing a fresh file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	configInitCmd := &cobra.Command{
		Use:   "init [settings-file]",
		Short: "Write a settings file with every option and its default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".rulebloom.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			return runConfigInit(cmd.OutOrStdout(), path, forceInit)
		},
	}
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if Version != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "dev")
			}
		},
	}

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// rulesPath picks the rules file from the optional positional argument,
// falling back to RULES_FILE.
func rulesPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return loadSettings().RulesFile
}
