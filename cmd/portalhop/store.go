package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
	"github.com/vovakirdan/portalhop/internal/storage"
)

// loggedProgress reports store failures that the simulation cannot surface
// from inside a tick.
type loggedProgress struct {
	store  storage.Progress
	logger *log.Logger
}

var (
	_ sim.ProgressStore = (*loggedProgress)(nil)
	_ sim.ClearRecorder = (*loggedProgress)(nil)
)

func newLoggedProgress(store storage.Progress, logger *log.Logger) *loggedProgress {
	return &loggedProgress{store: store, logger: logger}
}

func (p *loggedProgress) LoadHighestStage() (int, error) {
	stage, err := p.store.LoadHighestStage()
	if err != nil {
		p.logger.Warn("could not load progress, starting at stage 1", "error", err)
	}
	return stage, err
}

func (p *loggedProgress) SaveHighestStage(stage int) error {
	err := p.store.SaveHighestStage(stage)
	if err != nil {
		p.logger.Warn("could not save progress", "stage", stage, "error", err)
	}
	return err
}

func (p *loggedProgress) ClearHighestStage() error {
	err := p.store.ClearHighestStage()
	if err != nil {
		p.logger.Warn("could not clear progress, the old stage will load next session", "error", err)
	}
	return err
}

func (p *loggedProgress) RecordClear(stage int, seed uint32) error {
	err := p.store.RecordClear(stage, seed)
	if err != nil {
		p.logger.Warn("could not record stage clear", "stage", stage, "seed", seed, "error", err)
	}
	return err
}
