package storage

import "time"

// Progress is the full progress surface shared by Store and Memory.
type Progress interface {
	LoadHighestStage() (int, error)
	SaveHighestStage(stage int) error
	ClearHighestStage() error
	RecordClear(stage int, seed uint32) error
	RecentClears(limit int) ([]ClearEntry, error)
}

var (
	_ Progress = (*Store)(nil)
	_ Progress = (*Memory)(nil)
)

// Summary is a printable view of saved progress.
type Summary struct {
	HighestStage int
	Recent       []ClearEntry
}

// Summarize loads the highest stage and the most recent clears.
func Summarize(p Progress, limit int) (Summary, error) {
	stage, err := p.LoadHighestStage()
	if err != nil {
		return Summary{}, err
	}
	recent, err := p.RecentClears(limit)
	if err != nil {
		return Summary{}, err
	}
	return Summary{HighestStage: stage, Recent: recent}, nil
}

// FormatClearedAt renders a clear timestamp for tables.
func FormatClearedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
