package categorize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"fils/internal/core"
	applog "fils/internal/log"
)

// MarshalJSON serializes the mapping as a JSON object whose keys appear
// in registration order, so that a save/load cycle keeps equal-length
// tie-breaks stable.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		kws := m.keywords[name]
		if kws == nil {
			kws = []string{}
		}
		val, err := json.Marshal(kws)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a category→keywords object, preserving key order.
// A plain map would shuffle registration order, so the object is walked
// token by token. Keywords listed under the reserved fallback category
// are dropped to keep it keyword-free.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category mapping must be a JSON object, got %v", tok)
	}

	fresh := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read category name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category name must be a string, got %v", keyTok)
		}
		var kws []string
		if err := dec.Decode(&kws); err != nil {
			return fmt.Errorf("read keywords for %q: %w", name, err)
		}
		if name == core.FallbackCategory {
			continue
		}
		fresh.AddCategory(name, kws...)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read mapping end: %w", err)
	}

	*m = *fresh
	return nil
}

// Load reads a mapping from a JSON file.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	return m, nil
}

// LoadOrDefault reads a mapping from path, substituting the built-in
// default when the file is missing or unreadable. Categorization never
// aborts over a bad configuration file.
func LoadOrDefault(path string) *Mapping {
	if path == "" {
		return Default()
	}
	m, err := Load(path)
	if err != nil {
		applog.ForComponent(slog.Default(), applog.ComponentCategorize).
			Warn("falling back to default category mapping", "path", path, applog.FieldError, err)
		return Default()
	}
	return m
}

// Save writes the mapping to a JSON file.
func (m *Mapping) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write categories file: %w", err)
	}
	return nil
}
