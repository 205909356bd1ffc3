package sim

// ProgressStore persists the highest stage reached.
type ProgressStore interface {
	// LoadHighestStage returns the saved stage, 1 when nothing valid is stored.
	LoadHighestStage() (int, error)
	// SaveHighestStage stores stage only if it exceeds the saved value.
	SaveHighestStage(stage int) error
	// ClearHighestStage removes the saved value.
	ClearHighestStage() error
}

// ClearRecorder is an optional ProgressStore extension that keeps a history
// of stage clears.
type ClearRecorder interface {
	RecordClear(stage int, seed uint32) error
}

// nopProgress stores nothing.
type nopProgress struct{}

func (nopProgress) LoadHighestStage() (int, error) { return 1, nil }
func (nopProgress) SaveHighestStage(int) error { return nil }
func (nopProgress) ClearHighestStage() error { return nil }
