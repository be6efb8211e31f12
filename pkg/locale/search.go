package locale

import (
	"strings"
)

// NormalizeQuery trims the query, collapses runs of whitespace to a single
// space and lower-cases it.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// Matches reports whether label contains the normalized query as a
// case-insensitive substring. The empty query matches everything.
func Matches(label, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), query)
}

// InfoSuffix is appended to a key to find its help text.
const InfoSuffix = ".info"

// Index answers visibility and help questions for one search pass.
type Index struct {
	bundle Bundle
	query  string
	missed map[string]bool
}

// NewIndex normalizes query once for the whole pass.
func NewIndex(b Bundle, query string) *Index {
	return &Index{bundle: b, query: NormalizeQuery(query), missed: map[string]bool{}}
}

func (ix *Index) Query() string { return ix.query }

func (ix *Index) Bundle() Bundle { return ix.bundle }

// Label resolves key, remembering keys the bundle does not know.
func (ix *Index) Label(key string) string {
	if !ix.bundle.Has(key) {
		ix.missed[key] = true
	}
	return ix.bundle.Lookup(key)
}

// Visible reports whether the localized label of key matches the query.
func (ix *Index) Visible(key string) bool {
	return Matches(ix.Label(key), ix.query)
}

// Help returns the help text for key, if the bundle has one.
func (ix *Index) Help(key string) (string, bool) {
	if !ix.bundle.Has(key + InfoSuffix) {
		return "", false
	}
	return ix.bundle.Lookup(key + InfoSuffix), true
}

// Missing lists keys resolved during this pass that had no translation.
func (ix *Index) Missing() []string {
	var out []string
	for k := range ix.missed {
		out = append(out, k)
	}
	return out
}
