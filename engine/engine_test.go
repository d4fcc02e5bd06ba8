package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
	"github.com/spaghettifunk/oxide/engine/platform/headless"
)

func init() {
	core.DisableLogging()
}

type manualClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *manualClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *manualClock) clock() *core.Clock {
	return core.NewClockWith(c.Now, c.Sleep)
}

type recordingBehavior struct {
	calls  []string
	events []core.Event
	dts    []float64

	onUpdate func(dt float64)
	onRender func(s platform.Surface)
}

func (b *recordingBehavior) OnEvent(evt core.Event) {
	b.calls = append(b.calls, "event")
	b.events = append(b.events, evt)
}

func (b *recordingBehavior) OnUpdate(dt float64) {
	b.calls = append(b.calls, "update")
	b.dts = append(b.dts, dt)
	if b.onUpdate != nil {
		b.onUpdate(dt)
	}
}

func (b *recordingBehavior) OnRender(s platform.Surface) {
	b.calls = append(b.calls, "render")
	if b.onRender != nil {
		b.onRender(s)
	}
}

func testConfig() ApplicationConfig {
	cfg := DefaultConfig()
	cfg.Name = "test"
	cfg.Width = 32
	cfg.Height = 24
	cfg.Backend = headless.Name
	return cfg
}

func TestRunCallOrder(t *testing.T) {
	backend := headless.New(headless.WithFrames(
		[]core.Event{core.KeyEvent{Key: core.KEY_A, Pressed: true}},
		[]core.Event{core.MouseMotionEvent{X: 1, Y: 2}, core.MouseWheelEvent{DY: 1}},
	))
	b := &recordingBehavior{}
	b.onRender = func(s platform.Surface) {
		hs := s.(*headless.Surface)
		frame := len(b.dts)
		assert.Equal(t, frame, hs.Clears(), "surface is cleared before render")
		assert.Equal(t, frame-1, hs.Presents(), "surface is presented after render")
	}

	e, err := New(testConfig(), b, WithBackend(backend), WithClock(newManualClock().clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.Equal(t, []string{
		"event", "update", "render",
		"event", "event", "update", "render",
	}, b.calls)
	assert.Equal(t, 2, backend.Surface().Presents())
	assert.Equal(t, 3, backend.Polls())
}

func TestQuitStopsDispatchingForTheFrame(t *testing.T) {
	backend := headless.New(headless.WithFrames(
		[]core.Event{core.KeyEvent{Key: core.KEY_W, Pressed: true}},
		[]core.Event{
			core.KeyEvent{Key: core.KEY_A, Pressed: true},
			core.QuitEvent{},
			core.KeyEvent{Key: core.KEY_B, Pressed: true},
		},
	), headless.WithFrameLimit(10))
	b := &recordingBehavior{}

	e, err := New(testConfig(), b, WithBackend(backend), WithClock(newManualClock().clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.Equal(t, []string{"event", "update", "render", "event"}, b.calls)
	require.Len(t, b.events, 2)
	assert.Equal(t, core.KEY_A, b.events[1].(core.KeyEvent).Key)
	assert.Equal(t, 1, backend.Surface().Presents())
}

func TestDeltaTimeIsClamped(t *testing.T) {
	mc := newManualClock()
	work := []time.Duration{
		10 * time.Millisecond,
		2 * time.Second,
		50 * time.Millisecond,
		100 * time.Millisecond,
		101 * time.Millisecond,
		0,
	}
	backend := headless.New(headless.WithFrameLimit(len(work) + 1))
	b := &recordingBehavior{}
	b.onUpdate = func(float64) {
		mc.advance(work[len(b.dts)-1])
	}
	cfg := testConfig()
	cfg.VSync = true

	e, err := New(cfg, b, WithBackend(backend), WithClock(mc.clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	require.Len(t, b.dts, len(work))
	for i, dt := range b.dts {
		assert.GreaterOrEqual(t, dt, 0.0, "frame %d", i)
		assert.LessOrEqual(t, dt, MaxDeltaTime, "frame %d", i)
	}
	assert.InDelta(t, firstFrameTick.Seconds(), b.dts[0], 1e-12)
	assert.InDelta(t, 0.010, b.dts[1], 1e-9)
	assert.Equal(t, MaxDeltaTime, b.dts[2])
	assert.InDelta(t, 0.050, b.dts[3], 1e-9)
	assert.InDelta(t, 0.100, b.dts[4], 1e-9)
	assert.Equal(t, MaxDeltaTime, b.dts[5])
}

func TestFirstFrameDeltaIsMeasuredFromLoopEntry(t *testing.T) {
	mc := newManualClock()
	step := 2 * time.Millisecond
	clock := core.NewClockWith(func() time.Time {
		now := mc.Now()
		mc.advance(step)
		return now
	}, mc.Sleep)
	backend := headless.New(headless.WithFrameLimit(2))
	b := &recordingBehavior{}

	e, err := New(testConfig(), b, WithBackend(backend), WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	require.NotEmpty(t, b.dts)
	assert.Greater(t, b.dts[0], 0.0)
	assert.InDelta(t, step.Seconds(), b.dts[0], 1e-9)
}

func TestFirstFrameDeltaIsNeverZero(t *testing.T) {
	backend := headless.New(headless.WithFrameLimit(2))
	b := &recordingBehavior{}

	e, err := New(testConfig(), b, WithBackend(backend), WithClock(newManualClock().clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	require.Len(t, b.dts, 1)
	assert.Greater(t, b.dts[0], 0.0)
}

func TestFrameRateThrottle(t *testing.T) {
	mc := newManualClock()
	backend := headless.New(headless.WithFrameLimit(4))
	b := &recordingBehavior{}
	b.onUpdate = func(float64) {
		mc.advance(5 * time.Millisecond)
	}
	cfg := testConfig()
	cfg.VSync = false
	cfg.MaxFPS = 60

	e, err := New(cfg, b, WithBackend(backend), WithClock(mc.clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	require.Len(t, mc.sleeps, 3)
	expected := time.Second/60 - 5*time.Millisecond
	for _, d := range mc.sleeps {
		assert.InDelta(t, expected.Seconds(), d.Seconds(), 1e-6)
		assert.InDelta(t, 0.011667, d.Seconds(), 1e-4)
	}
	assert.InDelta(t, 1.0/60, b.dts[1], 1e-6)
	assert.InDelta(t, 60, e.FrameRate(), 0.1)
}

func TestNoThrottleWhenFrameIsSlow(t *testing.T) {
	mc := newManualClock()
	backend := headless.New(headless.WithFrameLimit(3))
	b := &recordingBehavior{}
	b.onUpdate = func(float64) {
		mc.advance(40 * time.Millisecond)
	}
	cfg := testConfig()
	cfg.VSync = false
	cfg.MaxFPS = 60

	e, err := New(cfg, b, WithBackend(backend), WithClock(mc.clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.Empty(t, mc.sleeps)
}

func TestVSyncDisablesThrottle(t *testing.T) {
	for name, cfg := range map[string]func(*ApplicationConfig){
		"vsync with max fps": func(c *ApplicationConfig) { c.VSync = true; c.MaxFPS = 30 },
		"unbounded":          func(c *ApplicationConfig) { c.VSync = false; c.MaxFPS = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			mc := newManualClock()
			backend := headless.New(headless.WithFrameLimit(3))
			b := &recordingBehavior{}
			b.onUpdate = func(float64) { mc.advance(time.Millisecond) }
			c := testConfig()
			cfg(&c)

			e, err := New(c, b, WithBackend(backend), WithClock(mc.clock()))
			require.NoError(t, err)
			require.NoError(t, e.Run())

			assert.Empty(t, mc.sleeps)
			assert.Equal(t, c.VSync, backend.Surface().VSync())
		})
	}
}

func TestInitErrorStages(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		opts   []headless.Option
		stage  core.InitStage
		closed bool
	}{
		{"subsystem", []headless.Option{headless.WithInitError(boom)}, core.InitStageSubsystem, false},
		{"window", []headless.Option{headless.WithWindowError(boom)}, core.InitStageWindow, false},
		{"surface", []headless.Option{headless.WithSurfaceError(boom)}, core.InitStageSurface, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := headless.New(tt.opts...)

			e, err := New(testConfig(), &recordingBehavior{}, WithBackend(backend))

			assert.Nil(t, e)
			var initErr *core.InitError
			require.ErrorAs(t, err, &initErr)
			assert.Equal(t, tt.stage, initErr.Stage)
			assert.ErrorIs(t, err, boom)
			if tt.stage != core.InitStageSubsystem {
				assert.True(t, backend.IsShutdown())
			}
			if tt.closed {
				require.NotNil(t, backend.Window())
				assert.True(t, backend.Window().IsClosed())
			}
		})
	}
}

func TestInitErrorConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0

	_, err := New(cfg, &recordingBehavior{})

	var initErr *core.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, core.InitStageConfig, initErr.Stage)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = New(testConfig(), nil)
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, core.InitStageConfig, initErr.Stage)
}

func TestUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = "vulkan"

	_, err := New(cfg, &recordingBehavior{})

	var initErr *core.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, core.InitStageSubsystem, initErr.Stage)
	assert.ErrorIs(t, err, core.ErrUnknownBackend)
}

func TestBackendFromRegistry(t *testing.T) {
	e, err := New(testConfig(), &recordingBehavior{})
	require.NoError(t, err)

	assert.Equal(t, EngineStageInitialized, e.Stage())
	require.NoError(t, e.Run())
	assert.Equal(t, EngineStageStopped, e.Stage())
}

func TestPollFailureIsRuntimeError(t *testing.T) {
	lost := errors.New("display connection lost")
	backend := headless.New(headless.WithFrameLimit(10), headless.WithPollError(2, lost))
	b := &recordingBehavior{}

	e, err := New(testConfig(), b, WithBackend(backend), WithClock(newManualClock().clock()))
	require.NoError(t, err)
	err = e.Run()

	var runtimeErr *core.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.ErrorIs(t, err, lost)
	assert.Equal(t, []string{"update", "render"}, b.calls)
	assert.True(t, backend.IsShutdown())
	assert.True(t, backend.Window().IsClosed())
	assert.Equal(t, EngineStageStopped, e.Stage())
}

func TestRunOnlyOnce(t *testing.T) {
	backend := headless.New()
	e, err := New(testConfig(), &recordingBehavior{}, WithBackend(backend))
	require.NoError(t, err)

	require.NoError(t, e.Run())
	assert.ErrorIs(t, e.Run(), core.ErrEngineNotReady)
	assert.True(t, backend.IsShutdown())
}

func TestStop(t *testing.T) {
	backend := headless.New(headless.WithFrameLimit(100))
	var e *Engine
	b := &recordingBehavior{}
	b.onUpdate = func(float64) {
		if len(b.dts) == 3 {
			e.Stop()
		}
	}

	var err error
	e, err = New(testConfig(), b, WithBackend(backend), WithClock(newManualClock().clock()))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.Len(t, b.dts, 3)
	assert.Equal(t, 4, backend.Polls())
}

func TestSurfaceOnlyWhileRunning(t *testing.T) {
	backend := headless.New(headless.WithFrameLimit(2))
	var e *Engine
	var seen platform.Surface
	b := &recordingBehavior{}
	b.onRender = func(s platform.Surface) {
		seen = e.Surface()
		assert.Same(t, s, seen)
		assert.Equal(t, EngineStageRunning, e.Stage())
	}

	var err error
	e, err = New(testConfig(), b, WithBackend(backend))
	require.NoError(t, err)
	assert.Nil(t, e.Surface())

	require.NoError(t, e.Run())
	assert.NotNil(t, seen)
	assert.Nil(t, e.Surface())
}

func TestWindowOptionsFromConfig(t *testing.T) {
	backend := headless.New()
	cfg := testConfig()
	cfg.Fullscreen = true

	_, err := New(cfg, &recordingBehavior{}, WithBackend(backend))
	require.NoError(t, err)

	opts := backend.Window().Options
	assert.Equal(t, "test", opts.Title)
	assert.Equal(t, 32, opts.Width)
	assert.Equal(t, 24, opts.Height)
	assert.True(t, opts.Fullscreen)
	assert.True(t, opts.Centered)
	assert.True(t, opts.Resizable)
	assert.True(t, opts.HighDPI)
}

func TestGameAdapter(t *testing.T) {
	var calls []string
	g := &Game{
		FnEvent:  func(core.Event) { calls = append(calls, "event") },
		FnUpdate: func(float64) { calls = append(calls, "update") },
	}
	backend := headless.New(headless.WithFrames([]core.Event{core.TextInputEvent{Char: 'x'}}))

	e, err := New(testConfig(), g, WithBackend(backend))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.Equal(t, []string{"event", "update"}, calls)
}
