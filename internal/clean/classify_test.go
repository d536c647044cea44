package clean

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyIsTotalAndCaseInsensitive(t *testing.T) {
	m := DefaultColumnMap()

	if got := m.Classify("Masked Deal value"); got != ClassCurrency {
		t.Fatalf("expected currency, got %s", got)
	}
	if got := m.Classify("  TENTATIVE CLOSE DATE  "); got != ClassDate {
		t.Fatalf("expected date for upper-cased padded title, got %s", got)
	}
	if got := m.Classify("Deal Status"); got != ClassStatus {
		t.Fatalf("expected status, got %s", got)
	}
	if got := m.Classify("Sector/service"); got != ClassText {
		t.Fatalf("expected text, got %s", got)
	}
	if got := m.Classify("Never Seen Before"); got != ClassUnclassified {
		t.Fatalf("expected unclassified default, got %s", got)
	}
}

func TestDefaultColumnMapReturnsCopy(t *testing.T) {
	m := DefaultColumnMap()
	m["deal status"] = ClassText
	if got := DefaultColumnMap().Classify("Deal Status"); got != ClassStatus {
		t.Fatalf("mutating a copy must not affect the builtin map, got %s", got)
	}
}

func TestLoadColumnMapMergesOverBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	content := "Custom Budget Column: currency\nDeal Status: text\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp column map: %v", err)
	}

	m, err := LoadColumnMap(path)
	if err != nil {
		t.Fatalf("LoadColumnMap failed: %v", err)
	}
	if got := m.Classify("Custom Budget Column"); got != ClassCurrency {
		t.Fatalf("expected merged custom column to be currency, got %s", got)
	}
	if got := m.Classify("Deal Status"); got != ClassText {
		t.Fatalf("expected file to override builtin class, got %s", got)
	}
	if got := m.Classify("Masked Deal value"); got != ClassCurrency {
		t.Fatalf("expected untouched builtin entries to survive, got %s", got)
	}
}

func TestLoadColumnMapRejectsUnknownClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	if err := os.WriteFile(path, []byte("Some Column: numeric\n"), 0644); err != nil {
		t.Fatalf("write temp column map: %v", err)
	}
	if _, err := LoadColumnMap(path); err == nil {
		t.Fatalf("expected error for unknown class name")
	}
}
