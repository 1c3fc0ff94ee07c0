package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/reflow/pkg/geom"
	pkgio "github.com/matzehuels/reflow/pkg/io"
)

func testGenerations() []pkgio.Generation {
	return []pkgio.Generation{
		{Generation: 1, Rects: []pkgio.Rect{
			{ID: "window", Size: geom.Size2{44, 26}},
			{ID: "body", Offset: geom.Offset2{2, 5}, Size: geom.Size2{40, 20}},
		}},
		{Generation: 2, Rects: []pkgio.Rect{
			{ID: "status", Offset: geom.Offset2{2, 26}, Size: geom.Size2{40, 1}},
		}},
		{Generation: 3},
	}
}

func press(m stepModel, key string) stepModel {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(stepModel)
}

func TestStepModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"right", []string{"right"}, 1},
		{"vim keys", []string{"l", "l", "h"}, 1},
		{"clamped at end", []string{"right", "right", "right", "right"}, 2},
		{"clamped at start", []string{"left", "h"}, 0},
		{"last", []string{"G"}, 2},
		{"first", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStepModel("window.toml", testGenerations())
			for _, k := range tt.keys {
				m = press(m, k)
			}
			if m.current != tt.want {
				t.Errorf("current = %d, want %d", m.current, tt.want)
			}
		})
	}
}

func TestStepModelQuit(t *testing.T) {
	m := newStepModel("window.toml", testGenerations())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStepModelView(t *testing.T) {
	m := newStepModel("window.toml", testGenerations())

	view := m.View()
	for _, want := range []string{"window.toml", "Generation 1/3", "body", "40x20"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	view = press(m, "G").View()
	if !strings.Contains(view, "Generation 3/3") || strings.Contains(view, "body") {
		t.Errorf("unexpected last page:\n%s", view)
	}

	empty := newStepModel("empty", nil)
	if !strings.Contains(empty.View(), "No generations") {
		t.Error("empty model should say so")
	}
	if got := press(empty, "G").current; got != 0 {
		t.Errorf("G on empty model = %d, want 0", got)
	}
}

func TestChangesTable(t *testing.T) {
	out := changesTable(testGenerations()[0].Rects)
	for _, want := range []string{"ID", "Size", "window", "44x26", "body"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "window") > strings.Index(out, "body") {
		t.Error("rows should keep the given order")
	}
}
