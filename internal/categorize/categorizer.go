// Package categorize maps free-text counterparty names to spending
// categories using a configurable keyword mapping.
package categorize

import (
	"strings"

	"fils/internal/core"
)

// Mapping is an ordered mapping from category name to its lowercase
// keywords. Registration order is preserved: it drives display and
// breaks equal-length match ties. The reserved "other" category always
// exists, owns no keywords, and is the fallback rather than a match
// target.
//
// Callers must treat a Mapping as single-writer during mutation and
// save sequences; concurrent mutation is undefined.
type Mapping struct {
	names    []string
	keywords map[string][]string
}

// New returns an empty mapping containing only the reserved fallback
// category.
func New() *Mapping {
	m := &Mapping{keywords: make(map[string][]string)}
	m.names = append(m.names, core.FallbackCategory)
	m.keywords[core.FallbackCategory] = []string{}
	return m
}

// Default returns the built-in mapping used when no configuration is
// available.
func Default() *Mapping {
	m := New()
	m.AddCategory("grocery", "carrefour", "al maya", "spinneys", "waitrose", "viva")
	m.AddCategory("restaurant", "gastronomy nasha kuhny")
	m.AddCategory("entertainment", "cinema", "movie", "theatre", "event", "concert", "game", "amazon", "apple")
	m.AddCategory("transport", "careem", "uber", "taxi", "rta", "metro", "bus", "petrol", "gas", "fuel")
	m.AddCategory("clothes", "apparel", "fashion", "zara", "h&m", "clothing", "shoes", "dress", "wear")
	m.AddCategory("utilities", " virgin mobile")
	return m
}

// Categories returns the category names in registration order.
func (m *Mapping) Categories() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Keywords returns the keywords of a category in insertion order, or
// nil for an unregistered category.
func (m *Mapping) Keywords(category string) []string {
	kws, ok := m.keywords[category]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Has reports whether a category is registered.
func (m *Mapping) Has(category string) bool {
	_, ok := m.keywords[category]
	return ok
}

// AddCategory registers a new category with optional keywords,
// lowercased and deduplicated. Registering an existing name is a no-op.
func (m *Mapping) AddCategory(name string, keywords ...string) {
	if _, exists := m.keywords[name]; exists {
		return
	}
	m.names = append(m.names, name)
	m.keywords[name] = []string{}
	for _, kw := range keywords {
		m.AddKeyword(name, kw)
	}
}

// AddKeyword appends a lowercased keyword to an existing category.
// Duplicates, unregistered categories, and the reserved fallback
// category are all no-ops.
func (m *Mapping) AddKeyword(category, keyword string) {
	if category == core.FallbackCategory {
		return
	}
	kws, ok := m.keywords[category]
	if !ok {
		return
	}
	keyword = strings.ToLower(keyword)
	for _, existing := range kws {
		if existing == keyword {
			return
		}
	}
	m.keywords[category] = append(kws, keyword)
}

// Categorize maps a counterparty name to a category. Pure with respect
// to the current mapping. The empty string and the Unknown sentinel go
// straight to the fallback category without a scan.
//
// Match strengths, strongest first:
//
//  1. exact: the normalized counterparty equals the keyword; returns
//     immediately.
//  2. word-boundary: the keyword occurs bounded by non-word characters
//     or string edges; supersedes the running best when longer, or when
//     equal in length and the running best is only a substring match.
//  3. substring: the keyword occurs anywhere; supersedes the running
//     best only when strictly longer.
//
// The word-boundary/substring asymmetry at equal lengths reproduces the
// historical matcher and is pending product review; equal-length ties
// within the same strength go to the first-registered category.
func (m *Mapping) Categorize(counterparty string) string {
	if counterparty == "" || counterparty == core.UnknownCounterparty {
		return core.FallbackCategory
	}

	name := strings.ToLower(counterparty)

	best := core.FallbackCategory
	bestLen := 0
	bestBounded := false

	for _, category := range m.names {
		for _, kw := range m.keywords[category] {
			if kw == name {
				return category
			}
			if !strings.Contains(name, kw) {
				continue
			}
			if wordBounded(name, kw) {
				if len(kw) > bestLen || (len(kw) == bestLen && !bestBounded && bestLen > 0) {
					best, bestLen, bestBounded = category, len(kw), true
				}
			} else if len(kw) > bestLen {
				best, bestLen, bestBounded = category, len(kw), false
			}
		}
	}

	return best
}

// Uncategorized returns the distinct counterparties of transactions
// that fell through to the fallback category, in first-seen order.
// These are the candidates for new keywords; counterparties that could
// not be extracted at all are excluded.
func Uncategorized(txs []core.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range txs {
		if tx.Category != core.FallbackCategory {
			continue
		}
		name := strings.TrimSpace(tx.Counterparty)
		if name == "" || name == core.UnknownCounterparty || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// wordBounded reports whether kw occurs in s delimited by non-word
// characters or the string edges.
func wordBounded(s, kw string) bool {
	if kw == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
