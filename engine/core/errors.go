package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("invalid application config")
	ErrUnknownBackend = errors.New("unknown platform backend")
	ErrEngineNotReady = errors.New("engine is not initialized or has already run")
	ErrMalformedAsset = errors.New("malformed asset")
	ErrNoLogDirectory = errors.New("no available log directory")
)

// InitStage identifies which step of the engine construction failed.
type InitStage uint8

const (
	InitStageConfig InitStage = iota
	InitStageSubsystem
	InitStageWindow
	InitStageSurface
)

func (s InitStage) String() string {
	switch s {
	case InitStageConfig:
		return "config"
	case InitStageSubsystem:
		return "subsystem"
	case InitStageWindow:
		return "window"
	case InitStageSurface:
		return "surface"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// InitError is returned when the engine cannot be constructed. No native
// state survives an InitError.
type InitError struct {
	Stage InitStage
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s initialization failed: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// RuntimeError terminates a running frame loop.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("frame loop failed: %v", e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// LoadError reports a failed asset load. It is local to one load call.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load asset %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
