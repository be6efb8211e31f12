package config

// Config holds rulebloom settings keyed by schema key.
type Config map[string]any

// Defaults returns the schema defaults as a Config.
func Defaults() Config {
	cfg := Config{}
	for _, arg := range Schema() {
		cfg[arg.Key] = arg.Default
	}
	return cfg
}

// Sections returns section names in schema order.
func Sections() []string {
	var out []string
	seen := map[string]bool{}
	for _, arg := range Schema() {
		if !seen[arg.Section] {
			seen[arg.Section] = true
			out = append(out, arg.Section)
		}
	}
	return out
}
