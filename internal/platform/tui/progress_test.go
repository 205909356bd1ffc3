package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/portalhop/internal/storage"
)

func newTestProgress(t *testing.T) (ProgressModel, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	if err := store.SaveHighestStage(4); err != nil {
		t.Fatal(err)
	}
	for _, stage := range []int{1, 2, 3} {
		if err := store.RecordClear(stage, uint32(stage*100)); err != nil {
			t.Fatal(err)
		}
	}
	return NewProgressModel(store, 100, 30), store
}

func sendProgress(t *testing.T, m ProgressModel, msg tea.Msg) ProgressModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(ProgressModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected ProgressModel", next)
	}
	return pm
}

func TestProgressModelLoads(t *testing.T) {
	m, _ := newTestProgress(t)

	s := m.Summary()
	if s.HighestStage != 4 {
		t.Errorf("HighestStage = %d, expected 4", s.HighestStage)
	}
	if len(s.Recent) != 3 || s.Recent[0].Stage != 3 {
		t.Errorf("Recent = %+v, expected 3 clears newest first", s.Recent)
	}

	view := m.View()
	if !strings.Contains(view, "Best stage: 4") {
		t.Error("view missing best stage")
	}
	if !strings.Contains(view, "300") {
		t.Error("view missing newest clear seed")
	}
}

func TestProgressModelResetNeedsConfirm(t *testing.T) {
	m, store := newTestProgress(t)

	m = sendProgress(t, m, runeKey('x'))
	if !m.Confirming() {
		t.Fatal("first x should ask for confirmation")
	}
	if got, _ := store.LoadHighestStage(); got != 4 {
		t.Errorf("stage = %d before confirm, expected 4", got)
	}

	m = sendProgress(t, m, runeKey('x'))
	if m.Confirming() {
		t.Error("confirmation should be consumed")
	}
	if got, _ := store.LoadHighestStage(); got != 1 {
		t.Errorf("stage = %d after reset, expected 1", got)
	}
	if m.Summary().HighestStage != 1 {
		t.Errorf("summary stage = %d, expected 1", m.Summary().HighestStage)
	}
	if len(m.Summary().Recent) != 3 {
		t.Error("reset should keep clear history")
	}
}

func TestProgressModelOtherKeyCancelsReset(t *testing.T) {
	m, store := newTestProgress(t)

	m = sendProgress(t, m, runeKey('x'))
	m = sendProgress(t, m, runeKey('j'))
	m = sendProgress(t, m, runeKey('x'))
	if !m.Confirming() {
		t.Error("x after a cancel should ask again")
	}
	if got, _ := store.LoadHighestStage(); got != 4 {
		t.Errorf("stage = %d, expected 4", got)
	}
}

func TestProgressModelEmpty(t *testing.T) {
	m := NewProgressModel(nil, 80, 24)
	if m.Summary().HighestStage != 1 {
		t.Errorf("HighestStage = %d, expected 1", m.Summary().HighestStage)
	}
	if !strings.Contains(m.View(), "No stages cleared yet") {
		t.Error("expected empty message")
	}
}

func TestClearRow(t *testing.T) {
	row := ClearRow(storage.ClearEntry{ID: 7, Stage: 12, Seed: 4294967295})
	want := []string{"7", "12", "4294967295", "-"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, expected %q", i, row[i], want[i])
		}
	}
}
