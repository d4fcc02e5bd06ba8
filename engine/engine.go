// Package engine runs the frame loop of an application: it owns the native
// window and surface and drives a single Behavior once per frame.
package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/math"
	"github.com/spaghettifunk/oxide/engine/platform"
)

// MaxDeltaTime caps the delta time handed to OnUpdate, in seconds, so that
// a stalled frame does not turn into one huge simulation step.
const MaxDeltaTime = 0.1

// firstFrameTick is the elapsed time assumed for the first frame when the
// clock has not moved since the loop started.
const firstFrameTick = time.Microsecond

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete, Run can be called
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released its native resources and cannot be run again
	EngineStageStopped
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	case EngineStageStopped:
		return "stopped"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

type Engine struct {
	config   ApplicationConfig
	behavior Behavior

	backend platform.Backend
	window  platform.Window
	surface platform.Surface

	clock     *core.Clock
	metrics   *core.FrameMetrics
	frameRate float64
	startedAt time.Time

	currentStage  atomic.Uint32
	stopRequested atomic.Bool
}

type Option func(*Engine)

// WithBackend drives the engine with b instead of the backend registered
// under the config's backend name.
func WithBackend(b platform.Backend) Option {
	return func(e *Engine) {
		e.backend = b
	}
}

// WithClock replaces the wall clock used to measure and throttle frames.
func WithClock(c *core.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New brings up the platform subsystem, the window and the render surface.
// On failure it returns a *core.InitError naming the failed stage, and
// whatever was already created is released.
func New(config ApplicationConfig, behavior Behavior, opts ...Option) (*Engine, error) {
	if behavior == nil {
		return nil, &core.InitError{Stage: core.InitStageConfig, Err: fmt.Errorf("%w: behavior is nil", core.ErrInvalidConfig)}
	}
	if err := config.Validate(); err != nil {
		return nil, &core.InitError{Stage: core.InitStageConfig, Err: err}
	}

	e := &Engine{
		config:   config,
		behavior: behavior,
		clock:    core.NewClock(),
		metrics:  core.NewFrameMetrics(),
	}
	for _, o := range opts {
		o(e)
	}

	if e.backend == nil {
		b, err := platform.Open(config.Backend)
		if err != nil {
			return nil, &core.InitError{Stage: core.InitStageSubsystem, Err: err}
		}
		e.backend = b
	}

	if err := e.backend.Init(); err != nil {
		return nil, &core.InitError{Stage: core.InitStageSubsystem, Err: err}
	}

	window, err := e.backend.CreateWindow(platform.WindowOptions{
		Title:      config.Name,
		Width:      config.Width,
		Height:     config.Height,
		Fullscreen: config.Fullscreen,
		Centered:   true,
		Resizable:  true,
		HighDPI:    true,
	})
	if err != nil {
		e.release()
		return nil, &core.InitError{Stage: core.InitStageWindow, Err: err}
	}
	e.window = window

	surface, err := e.backend.CreateSurface(window, config.VSync)
	if err != nil {
		e.release()
		return nil, &core.InitError{Stage: core.InitStageSurface, Err: err}
	}
	e.surface = surface

	e.setStage(EngineStageInitialized)
	core.LogInfo("Engine initialized: '%s' %dx%d (backend=%s, vsync=%t, max_fps=%d)",
		config.Name, config.Width, config.Height, config.Backend, config.VSync, config.MaxFPS)

	return e, nil
}

// Run drives the frame loop until a QuitEvent is polled or Stop is called.
// It fails with a *core.RuntimeError when polling events fails. The native
// resources are released when Run returns, so an engine runs only once.
func (e *Engine) Run() error {
	if !e.currentStage.CompareAndSwap(uint32(EngineStageInitialized), uint32(EngineStageRunning)) {
		return core.ErrEngineNotReady
	}
	defer e.shutdown()

	var targetFrameTime time.Duration
	if !e.config.VSync && e.config.MaxFPS > 0 {
		targetFrameTime = time.Second / time.Duration(e.config.MaxFPS)
	} else if e.config.MaxFPS > 0 {
		core.LogDebug("VSync paces the frame loop, max fps %d is ignored", e.config.MaxFPS)
	}

	core.LogInfo("Running '%s'", e.config.Name)

	e.clock.Start()
	e.startedAt = e.clock.Now()
	lastFrame := e.startedAt
	events := make([]core.Event, 0, 64)

	for frame := 0; ; frame++ {
		frameStart := e.clock.Now()

		elapsed := frameStart.Sub(lastFrame)
		if frame == 0 && elapsed <= 0 {
			elapsed = firstFrameTick
		}
		deltaTime := math.Clamp(elapsed.Seconds(), 0, MaxDeltaTime)
		lastFrame = frameStart
		e.metrics.Update(deltaTime)
		e.frameRate = e.metrics.InstantFPS()
		e.clock.Update()

		var err error
		events, err = e.backend.PollEvents(events[:0])
		if err != nil {
			core.LogError("Event polling failed, shutting down: %s", err)
			return &core.RuntimeError{Err: err}
		}

		if e.dispatch(events) {
			break
		}

		e.behavior.OnUpdate(deltaTime)

		e.surface.Clear()
		e.behavior.OnRender(e.surface)
		e.surface.Present()

		if targetFrameTime > 0 {
			e.clock.Sleep(targetFrameTime - e.clock.Since(frameStart))
		}
		core.LogTrace("frame done: dt=%.4fs fps=%.1f", deltaTime, e.frameRate)
	}

	fps, frameTime := e.metrics.Frame()
	core.LogInfo("'%s' has exited (uptime %s, last fps %.0f, avg frame %.2fms)",
		e.config.Name, e.Uptime().Round(time.Millisecond), fps, frameTime)
	return nil
}

// dispatch forwards events to the behavior up to the first QuitEvent and
// reports whether the loop must end.
func (e *Engine) dispatch(events []core.Event) bool {
	if e.stopRequested.Load() {
		core.LogInfo("Stop requested, shutting down.")
		return true
	}
	for _, evt := range events {
		if core.IsQuit(evt) {
			core.LogInfo("Quit event received, shutting down.")
			return true
		}
		e.behavior.OnEvent(evt)
	}
	return false
}

// Stop asks a running frame loop to exit before dispatching the next
// frame. It is safe to call from any goroutine.
func (e *Engine) Stop() {
	e.stopRequested.Store(true)
}

func (e *Engine) shutdown() {
	e.setStage(EngineStageShuttingDown)
	e.release()
	e.clock.Stop()
	e.setStage(EngineStageStopped)
}

// release closes the window and shuts the backend down. It tolerates a
// partially initialized engine.
func (e *Engine) release() {
	var errs []error
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close window: %w", err))
		}
		e.window = nil
	}
	e.surface = nil
	if e.backend != nil {
		if err := e.backend.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down backend: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		core.LogError(err.Error())
	}
}

func (e *Engine) setStage(s Stage) {
	e.currentStage.Store(uint32(s))
}

func (e *Engine) Stage() Stage {
	return Stage(e.currentStage.Load())
}

func (e *Engine) Config() ApplicationConfig {
	return e.config
}

// FrameRate returns the instant frame rate estimated for the last frame.
// It is advisory only.
func (e *Engine) FrameRate() float64 {
	return e.frameRate
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

// Surface returns the render surface while the frame loop is running, nil
// otherwise.
func (e *Engine) Surface() platform.Surface {
	if e.Stage() != EngineStageRunning {
		return nil
	}
	return e.surface
}

// Uptime is the time elapsed since the frame loop started.
func (e *Engine) Uptime() time.Duration {
	return e.clock.Elapsed()
}
