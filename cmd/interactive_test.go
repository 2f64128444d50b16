package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Beastly713/hashira/pkg/pipeline"
	tea "github.com/charmbracelet/bubbletea"
)

const firstTestCase = `{
    "keys": { "n": 4, "k": 3 },
    "1": { "base": "10", "value": "4" },
    "2": { "base": "2", "value": "111" },
    "3": { "base": "10", "value": "12" },
    "6": { "base": "4", "value": "213" }
}`

func TestInteractiveSolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "testcase1.json"), []byte(firstTestCase), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	m := initialModel(pipeline.Config{})
	m.path = dir
	m.loadFiles()

	// ".." plus the one document; notes.txt is filtered out
	if len(m.files) != 2 || m.files[1].name != "testcase1.json" {
		t.Fatalf("unexpected listing: %+v", m.files)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})
	m = next.(model)
	if !m.files[1].selected {
		t.Fatal("space did not select the document")
	}

	cmd := m.solveSelected()
	msg := cmd()
	next, _ = m.Update(msg)
	m = next.(model)

	if len(m.results) != 1 || !strings.Contains(m.results[0], "testcase1.json: 3") {
		t.Errorf("unexpected results: %q", m.results)
	}
	if !strings.Contains(m.View(), "testcase1.json: 3") {
		t.Error("view does not show the secret")
	}
}

func TestInteractiveNothingSelected(t *testing.T) {
	m := initialModel(pipeline.Config{})
	m.path = t.TempDir()
	m.loadFiles()

	msg := m.solveSelected()()
	if r, ok := msg.(resultsMsg); !ok || r.status != "No files selected!" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestInteractiveFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.json", "beta.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(firstTestCase), 0644); err != nil {
			t.Fatal(err)
		}
	}

	m := initialModel(pipeline.Config{})
	m.path = dir
	m.loadFiles()
	if len(m.files) != 3 {
		t.Fatalf("expected 3 entries, got %+v", m.files)
	}

	m.filter.SetValue("BETA")
	m.loadFiles()
	if len(m.files) != 2 || m.files[1].name != "beta.yaml" {
		t.Errorf("filter not applied: %+v", m.files)
	}
}
