package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/farah/internal/checklist"
	"github.com/idilsaglam/farah/internal/model"
	"github.com/idilsaglam/farah/internal/store"
)

func newTestModel(t *testing.T) (Model, *checklist.Checklist, *store.Memory) {
	t.Helper()
	cat := model.Catalog{
		Title: "Wedding",
		Sections: []model.Section{
			{Name: "ktb", Title: "Contract", Items: []model.Item{{Text: "Dress"}, {Text: "Suit"}}},
			{Name: "farah", Title: "Party", Budgeted: true, Items: []model.Item{
				{Text: "Veil", Price: model.ParsePrice("1000ج")},
				{Text: "Makeup", Price: model.ParsePrice("4000ج")},
			}},
		},
	}
	m := store.NewMemory()
	ctl := checklist.New(cat, checklist.NewStore(m, checklist.DefaultKey, nil), nil)
	return New(ctl, Options{Locale: "en", Currency: "EGP"}), ctl, m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestSpaceTogglesSelectedItem(t *testing.T) {
	m, ctl, mem := newTestModel(t)

	m = send(t, m, keyRunes(" "))
	if !ctl.IsDone("ktb", 0) {
		t.Fatal("space did not toggle ktb-0")
	}
	if raw, ok, _ := mem.GetItem(checklist.DefaultKey); !ok || !strings.Contains(raw, `"ktb-0":true`) {
		t.Errorf("toggle not persisted, stored %q", raw)
	}

	m = send(t, m, keyRunes("x"))
	if ctl.IsDone("ktb", 0) {
		t.Error("x did not toggle ktb-0 back")
	}
}

func TestEnterToggles(t *testing.T) {
	m, ctl, _ := newTestModel(t)
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !ctl.IsDone("ktb", 0) {
		t.Error("enter did not toggle")
	}
}

func TestTabSwitchesSection(t *testing.T) {
	m, ctl, _ := newTestModel(t)
	if m.Active() != "ktb" {
		t.Fatalf("initial section = %q", m.Active())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Active() != "farah" {
		t.Fatalf("after tab = %q, want farah", m.Active())
	}
	m = send(t, m, keyRunes(" "))
	if !ctl.IsDone("farah", 0) || ctl.IsDone("ktb", 0) {
		t.Error("toggle went to the wrong section")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Active() != "ktb" {
		t.Errorf("tab should wrap around, got %q", m.Active())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Active() != "farah" {
		t.Errorf("shift+tab = %q, want farah", m.Active())
	}
}

func TestCursorMovesThenToggles(t *testing.T) {
	m, ctl, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	send(t, m, keyRunes(" "))
	if !ctl.IsDone("ktb", 1) {
		t.Error("expected ktb-1 toggled after moving down")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewShowsProgressAndCost(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes(" "))

	view := m.View()
	for _, want := range []string{"Wedding", "Party", "50%", "5,000 EGP", "Veil"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
