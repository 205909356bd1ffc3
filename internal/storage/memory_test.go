package storage

import (
	"testing"
	"time"
)

func TestMemoryProgress(t *testing.T) {
	m := NewMemory()

	if got, _ := m.LoadHighestStage(); got != 1 {
		t.Errorf("LoadHighestStage() = %d, expected 1", got)
	}
	m.SaveHighestStage(4)
	m.SaveHighestStage(2)
	if got, _ := m.LoadHighestStage(); got != 4 {
		t.Errorf("LoadHighestStage() = %d, expected 4", got)
	}
	m.ClearHighestStage()
	if got, _ := m.LoadHighestStage(); got != 1 {
		t.Errorf("LoadHighestStage() = %d after clear, expected 1", got)
	}
}

func TestMemoryRecentClears(t *testing.T) {
	m := NewMemory()
	fixed := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	for stage := 1; stage <= 4; stage++ {
		m.RecordClear(stage, uint32(stage))
	}

	clears, _ := m.RecentClears(2)
	if len(clears) != 2 || clears[0].Stage != 4 || clears[1].Stage != 3 {
		t.Errorf("RecentClears(2) = %+v, expected stages 4 and 3", clears)
	}
	if !clears[0].ClearedAt.Equal(fixed) {
		t.Errorf("ClearedAt = %v, expected %v", clears[0].ClearedAt, fixed)
	}
}

func TestSummarize(t *testing.T) {
	m := NewMemory()
	m.SaveHighestStage(6)
	m.RecordClear(5, 11)

	sum, err := Summarize(m, 5)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if sum.HighestStage != 6 || len(sum.Recent) != 1 {
		t.Errorf("Summarize() = %+v, expected stage 6 with one clear", sum)
	}
	if got := FormatClearedAt(time.Time{}); got != "-" {
		t.Errorf("FormatClearedAt(zero) = %q, expected -", got)
	}
}
