// Package locale resolves display keys to localized strings and decides
// which keys match an incremental search query.
package locale

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed en.yaml
var englishData []byte

// Bundle is the localization collaborator. Lookup of an unknown key must
// not fail; implementations return the key itself.
type Bundle interface {
	Lookup(key string) string
	Has(key string) bool
}

// Map is an in-memory bundle keyed by dotted identifiers.
type Map map[string]string

func (m Map) Lookup(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the bundle keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a bundle where entries of over shadow entries of m.
func (m Map) Merge(over Map) Map {
	out := make(Map, len(m)+len(over))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Parse decodes a YAML bundle. Nested mappings are flattened into dotted
// keys, so "rules: {waves: Waves}" yields "rules.waves".
func Parse(data []byte) (Map, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	out := make(Map)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out Map) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// LoadFile reads a YAML bundle and overlays it on the built-in English
// strings, so a partial translation still labels every field.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d strings from %s", len(m), path)
	return English().Merge(m), nil
}

// English returns the built-in bundle.
func English() Map {
	m, err := Parse(englishData)
	if err != nil {
		panic(fmt.Sprintf("embedded bundle: %v", err))
	}
	return m
}
