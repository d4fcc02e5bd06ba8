// Package headless provides a platform backend without any native window.
// Events are scripted per frame and rendering goes to an in-memory RGBA
// framebuffer, which makes the engine usable in tests and on CI machines.
package headless

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

const Name = "headless"

var ErrNotInitialized = errors.New("headless backend is not initialized")

func init() {
	platform.Register(Name, func() platform.Backend { return New() })
}

type Option func(*Backend)

// WithFrames scripts the events returned by successive polls: the i-th
// slice is delivered by the i-th poll.
func WithFrames(frames ...[]core.Event) Option {
	return func(b *Backend) {
		b.script = append(b.script, frames...)
	}
}

// WithFrameLimit makes the n-th poll report a QuitEvent after the scripted
// events of that frame. Without a limit the backend quits on the first poll
// past the end of the script.
func WithFrameLimit(n int) Option {
	return func(b *Backend) {
		b.frameLimit = n
	}
}

func WithInitError(err error) Option {
	return func(b *Backend) { b.initErr = err }
}

func WithWindowError(err error) Option {
	return func(b *Backend) { b.windowErr = err }
}

func WithSurfaceError(err error) Option {
	return func(b *Backend) { b.surfaceErr = err }
}

// WithPollError makes the poll number n (1-based) fail with err.
func WithPollError(n int, err error) Option {
	return func(b *Backend) {
		b.pollErrAt = n
		b.pollErr = err
	}
}

// Backend is the scripted, in-memory platform backend.
type Backend struct {
	script     [][]core.Event
	frameLimit int
	polls      int

	initErr    error
	windowErr  error
	surfaceErr error
	pollErr    error
	pollErrAt  int

	initialized bool
	shutdown    bool
	window      *Window
	surface     *Surface
}

func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.initialized = true
	b.shutdown = false
	return nil
}

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if b.windowErr != nil {
		return nil, b.windowErr
	}
	b.window = &Window{Options: opts, width: opts.Width, height: opts.Height}
	return b.window, nil
}

func (b *Backend) CreateSurface(w platform.Window, vsync bool) (platform.Surface, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if b.surfaceErr != nil {
		return nil, b.surfaceErr
	}
	width, height := w.Size()
	b.surface = NewSurface(width, height)
	b.surface.vsync = vsync
	return b.surface, nil
}

func (b *Backend) PollEvents(dst []core.Event) ([]core.Event, error) {
	if !b.initialized {
		return dst, ErrNotInitialized
	}
	b.polls++
	if b.pollErr != nil && b.polls == b.pollErrAt {
		return dst, b.pollErr
	}

	idx := b.polls - 1
	if idx < len(b.script) {
		dst = append(dst, b.script[idx]...)
	}

	switch {
	case b.frameLimit > 0 && b.polls >= b.frameLimit:
		dst = append(dst, core.QuitEvent{})
	case b.frameLimit <= 0 && idx >= len(b.script):
		dst = append(dst, core.QuitEvent{})
	}
	return dst, nil
}

func (b *Backend) Shutdown() error {
	b.initialized = false
	b.shutdown = true
	return nil
}

// Polls returns how many times PollEvents was called.
func (b *Backend) Polls() int {
	return b.polls
}

func (b *Backend) IsShutdown() bool {
	return b.shutdown
}

func (b *Backend) Window() *Window {
	return b.window
}

func (b *Backend) Surface() *Surface {
	return b.surface
}

// Window is the fake native window.
type Window struct {
	Options platform.WindowOptions
	width   int
	height  int
	closed  bool
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Close() error {
	w.closed = true
	return nil
}

func (w *Window) IsClosed() bool {
	return w.closed
}

// Surface renders into a back buffer and copies it to a front buffer on
// Present.
type Surface struct {
	back     *image.RGBA
	front    *image.RGBA
	color    color.Color
	vsync    bool
	clears   int
	presents int
}

func NewSurface(width, height int) *Surface {
	bounds := image.Rect(0, 0, width, height)
	return &Surface{
		back:  image.NewRGBA(bounds),
		front: image.NewRGBA(bounds),
		color: color.Black,
	}
}

func (s *Surface) Size() (int, int) {
	b := s.back.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) SetDrawColor(c color.Color) {
	s.color = c
}

func (s *Surface) Clear() {
	s.clears++
	draw.Draw(s.back, s.back.Bounds(), image.NewUniform(s.color), image.Point{}, draw.Src)
}

func (s *Surface) FillRect(r image.Rectangle) {
	draw.Draw(s.back, r.Intersect(s.back.Bounds()), image.NewUniform(s.color), image.Point{}, draw.Over)
}

func (s *Surface) Present() {
	s.presents++
	copy(s.front.Pix, s.back.Pix)
}

// Frame returns the last presented image.
func (s *Surface) Frame() *image.RGBA {
	return s.front
}

func (s *Surface) VSync() bool {
	return s.vsync
}

func (s *Surface) Clears() int {
	return s.clears
}

func (s *Surface) Presents() int {
	return s.presents
}
