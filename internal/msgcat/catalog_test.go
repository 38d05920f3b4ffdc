package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCatalogRenders(t *testing.T) {
	c := Default()
	got, err := c.Render("notice.joined", map[string]any{"Nickname": "bob"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "bob joined the game" {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := c.Text("reject.invalid_move", nil); got != "Invalid move." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestMissingDataIsAnError(t *testing.T) {
	c := Default()
	if _, err := c.Render("notice.joined", map[string]any{}); err == nil {
		t.Fatalf("expected missingkey error")
	}
	if got := c.Text("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("Text should fall back to key, got %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("reject:\n  invalid_move: \"Nope.\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Text("reject.invalid_move", nil); got != "Nope." {
		t.Fatalf("override not applied: %q", got)
	}
	if got := c.Text("reject.not_your_turn", nil); got != "It is not your turn." {
		t.Fatalf("defaults lost: %q", got)
	}
}

func TestDuplicateOverrideKeys(t *testing.T) {
	dir := t.TempDir()
	body := []byte("reject:\n  invalid_move: \"x\"\n")
	for _, name := range []string{"a.yaml", "b.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	_, err := New(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate override key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestNonStringLeafRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("reject:\n  invalid_move: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected error for non-string leaf")
	}
}
