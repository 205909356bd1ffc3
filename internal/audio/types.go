// Package audio plays simulation cues through a beep mixer piped into a
// system audio tool.
package audio

import "errors"

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoBackend  = errors.New("audio: no compatible audio backend found")
	ErrPipeClosed = errors.New("audio: pipe closed")
)
