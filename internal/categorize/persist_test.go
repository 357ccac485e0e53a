package categorize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := New()
	m.AddCategory("grocery", "carrefour", "spinneys")
	m.AddCategory("transport", "careem")

	path := filepath.Join(t.TempDir(), "categories.json")
	if err := m.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantOrder := []string{"other", "grocery", "transport"}
	gotOrder := loaded.Categories()
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("categories = %v, want %v", gotOrder, wantOrder)
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("category order = %v, want %v", gotOrder, wantOrder)
		}
	}

	if kws := loaded.Keywords("grocery"); len(kws) != 2 || kws[0] != "carrefour" || kws[1] != "spinneys" {
		t.Errorf("grocery keywords = %v", kws)
	}
	if got := loaded.Categorize("Careem"); got != "transport" {
		t.Errorf("reloaded mapping miscategorizes: %q", got)
	}
}

func TestLoadKeepsFallbackKeywordFree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	data := `{"other": ["sneaky"], "grocery": ["lulu"]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if kws := m.Keywords("other"); len(kws) != 0 {
		t.Errorf("fallback category picked up keywords: %v", kws)
	}
	if got := m.Categorize("Lulu"); got != "grocery" {
		t.Errorf("Categorize = %q, want grocery", got)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		m := LoadOrDefault(filepath.Join(t.TempDir(), "nope.json"))
		if got := m.Categorize("Carrefour"); got != "grocery" {
			t.Errorf("default mapping should apply, got %q", got)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.json")
		if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
			t.Fatal(err)
		}
		m := LoadOrDefault(path)
		if got := m.Categorize("Careem"); got != "transport" {
			t.Errorf("default mapping should apply, got %q", got)
		}
	})
}
