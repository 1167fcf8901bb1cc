package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPreviewModelResolvesOnResize(t *testing.T) {
	m := newPreviewModel(50, "")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	pm := updated.(previewModel)

	if pm.layout.IsZero() {
		t.Fatal("layout should be solved after resize")
	}
	if len(pm.cells) != 50 {
		t.Errorf("cells = %d, want 50", len(pm.cells))
	}

	// A smaller terminal forces a new, tighter layout.
	updated, _ = pm.Update(tea.WindowSizeMsg{Width: 20, Height: 12})
	smaller := updated.(previewModel)
	if smaller.layout.CellSize > pm.layout.CellSize {
		t.Errorf("cell size grew on shrink: %d > %d", smaller.layout.CellSize, pm.layout.CellSize)
	}
}

func TestPreviewModelCountKeys(t *testing.T) {
	m := newPreviewModel(10, "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	pm := updated.(previewModel)

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	pm = updated.(previewModel)
	if pm.count != 11 {
		t.Errorf("count = %d, want 11 after '+'", pm.count)
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	pm = updated.(previewModel)
	if pm.count != 10 {
		t.Errorf("count = %d, want 10 after '-'", pm.count)
	}
}

func TestPreviewModelQuitKeys(t *testing.T) {
	m := newPreviewModel(1, "")

	for _, key := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestPreviewModelViewEmpty(t *testing.T) {
	m := newPreviewModel(0, "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	pm := updated.(previewModel)

	view := pm.View()
	if !strings.Contains(view, "empty pile") {
		t.Error("empty preview should say so")
	}
}

func TestPreviewModelCapsVisible(t *testing.T) {
	m := newPreviewModel(previewMaxVisible+500, "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pm := updated.(previewModel)

	if pm.hidden != 500 {
		t.Errorf("hidden = %d, want 500", pm.hidden)
	}
	if len(pm.cells) > previewMaxVisible {
		t.Errorf("cells = %d, want <= %d", len(pm.cells), previewMaxVisible)
	}
}
