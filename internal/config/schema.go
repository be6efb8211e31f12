package config

// Argument represents one rulebloom setting
type Argument struct {
	Key          string   `json:"key"`
	Type         string   `json:"type"`
	Default      any      `json:"default"`
	Description  string   `json:"description"`
	Options      []string `json:"options,omitempty"`
	Dependencies string   `json:"dependencies,omitempty"`
	Required     bool     `json:"required"`
	Section      string   `json:"section,omitempty"`
	Min          int      `json:"min,omitempty"`
	Max          int      `json:"max,omitempty"`
}

// Schema returns all setting definitions
func Schema() []Argument {
	return []Argument{
		// ========================================
		// 📄 Files
		// ========================================
		{
			Key:         "RULES_FILE",
			Type:        "string",
			Default:     "rules.yaml",
			Description: "Ruleset file opened by edit, show and wizard when no file argument is given.",
			Required:    true,
			Section:     "📄 Files",
		},
		{
			Key:         "LOCALE_FILE",
			Type:        "string",
			Default:     "",
			Description: "YAML translation file overlaid on the built-in English strings. Empty uses English only.",
			Required:    false,
			Section:     "📄 Files",
		},
		{
			Key:         "CLIPBOARD_FILE",
			Type:        "string",
			Default:     "",
			Description: "File used as the clipboard by export and import in the editor. Empty keeps the clipboard in memory.",
			Required:    false,
			Section:     "📄 Files",
		},

		// ========================================
		// 🖥️ Editor
		// ========================================
		{
			Key:         "COMPACT",
			Type:        "bool",
			Default:     false,
			Description: "Show an info marker for help text instead of a status line.",
			Required:    false,
			Section:     "🖥️ Editor",
		},
		{
			Key:         "SHOW_ALLOW_EDIT",
			Type:        "bool",
			Default:     false,
			Description: "Show the \"allow editing rules\" setting in the teams category.",
			Required:    false,
			Section:     "🖥️ Editor",
		},
		{
			Key:         "IN_GAME",
			Type:        "bool",
			Default:     false,
			Description: "Edit the rules of a running game. Map area limits become read-only.",
			Required:    false,
			Section:     "🖥️ Editor",
		},
		{
			Key:         "CARD_WIDTH",
			Type:        "int",
			Default:     46,
			Description: "Width of a weather card in terminal cells.",
			Required:    false,
			Section:     "🖥️ Editor",
			Min:         20,
			Max:         200,
		},
		{
			Key:         "WATCH_CONFIG",
			Type:        "bool",
			Default:     false,
			Description: "Reload COMPACT and LOCALE_FILE while the editor is running when the settings file changes.",
			Required:    false,
			Section:     "🖥️ Editor",
		},

		// ========================================
		// 🪵 Logging
		// ========================================
		{
			Key:         "LOG_LEVEL",
			Type:        "enum",
			Default:     "info",
			Description: "Minimum level written to the log.",
			Options:     []string{"debug", "info", "warn", "error"},
			Required:    false,
			Section:     "🪵 Logging",
		},
		{
			Key:         "LOG_TO_FILE",
			Type:        "bool",
			Default:     true,
			Description: "Write the log to LOG_FILE. The terminal belongs to the editor, so disabling this discards log output.",
			Required:    false,
			Section:     "🪵 Logging",
		},
		{
			Key:          "LOG_FILE",
			Type:         "string",
			Default:      "rulebloom.log",
			Description:  "Log file path.",
			Dependencies: "LOG_TO_FILE=true",
			Required:     true,
			Section:      "🪵 Logging",
		},
	}
}

// Lookup returns the argument with the given key.
func Lookup(key string) (Argument, bool) {
	for _, arg := range Schema() {
		if arg.Key == key {
			return arg, true
		}
	}
	return Argument{}, false
}
