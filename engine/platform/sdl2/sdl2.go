// Package sdl2 implements the platform backend on top of SDL2 and its 2D
// accelerated renderer.
package sdl2

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

const Name = "sdl"

var ErrNotInitialized = errors.New("sdl backend is not initialized")

func init() {
	runtime.LockOSThread()

	platform.Register(Name, func() platform.Backend { return &Backend{} })
}

type Backend struct {
	initialized bool
}

func (b *Backend) Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("failed to initialize sdl: %w", err)
	}
	b.initialized = true
	return nil
}

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	var flags uint32 = sdl.WINDOW_SHOWN
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if opts.HighDPI {
		flags |= sdl.WINDOW_ALLOW_HIGHDPI
	}
	if opts.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var pos int32 = sdl.WINDOWPOS_UNDEFINED
	if opts.Centered {
		pos = sdl.WINDOWPOS_CENTERED
	}

	w, err := sdl.CreateWindow(opts.Title, pos, pos, int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	return &Window{handle: w}, nil
}

func (b *Backend) CreateSurface(w platform.Window, vsync bool) (platform.Surface, error) {
	win, ok := w.(*Window)
	if !ok || win.handle == nil {
		return nil, fmt.Errorf("sdl backend cannot render to %T", w)
	}

	var flags uint32 = sdl.RENDERER_ACCELERATED
	if vsync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	r, err := sdl.CreateRenderer(win.handle, -1, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	win.renderer = r

	return newSurface(r)
}

func (b *Backend) PollEvents(dst []core.Event) ([]core.Event, error) {
	if !b.initialized {
		return dst, ErrNotInitialized
	}
	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		if e, ok := translateEvent(evt); ok {
			dst = append(dst, e)
		}
	}
	return dst, nil
}

func (b *Backend) Shutdown() error {
	if b.initialized {
		sdl.Quit()
		b.initialized = false
	}
	return nil
}

func translateEvent(evt sdl.Event) (core.Event, bool) {
	switch e := evt.(type) {
	case *sdl.QuitEvent:
		return core.QuitEvent{}, true
	case *sdl.KeyboardEvent:
		return core.KeyEvent{
			Key:     translateKey(e.Keysym.Sym),
			Pressed: e.State == sdl.PRESSED,
			Repeat:  e.Repeat != 0,
			Mods:    translateMods(e.Keysym.Mod),
		}, true
	case *sdl.TextInputEvent:
		text := []rune(e.GetText())
		if len(text) == 0 {
			return nil, false
		}
		return core.TextInputEvent{Char: text[0]}, true
	case *sdl.MouseButtonEvent:
		return core.MouseButtonEvent{
			Button:  translateButton(e.Button),
			Pressed: e.State == sdl.PRESSED,
			X:       float64(e.X),
			Y:       float64(e.Y),
		}, true
	case *sdl.MouseMotionEvent:
		return core.MouseMotionEvent{
			X:  float64(e.X),
			Y:  float64(e.Y),
			DX: float64(e.XRel),
			DY: float64(e.YRel),
		}, true
	case *sdl.MouseWheelEvent:
		return core.MouseWheelEvent{DX: float64(e.X), DY: float64(e.Y)}, true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return core.WindowResizedEvent{Width: int(e.Data1), Height: int(e.Data2)}, true
		}
	}
	return nil, false
}

type Window struct {
	handle   *sdl.Window
	renderer *sdl.Renderer
}

func (w *Window) Size() (int, int) {
	if w.handle == nil {
		return 0, 0
	}
	width, height := w.handle.GetSize()
	return int(width), int(height)
}

// Close destroys the renderer created for the window, if any, and the
// window itself.
func (w *Window) Close() error {
	var errs []error
	if w.renderer != nil {
		errs = append(errs, w.renderer.Destroy())
		w.renderer = nil
	}
	if w.handle != nil {
		errs = append(errs, w.handle.Destroy())
		w.handle = nil
	}
	return errors.Join(errs...)
}

type Surface struct {
	renderer *sdl.Renderer
}

// newSurface wraps r with alpha blending enabled so translucent fills are
// composited over what is already drawn.
func newSurface(r *sdl.Renderer) (*Surface, error) {
	if err := r.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return nil, fmt.Errorf("failed to enable blending: %w", err)
	}
	return &Surface{renderer: r}, nil
}

func (s *Surface) Size() (int, int) {
	w, h, err := s.renderer.GetOutputSize()
	if err != nil {
		return 0, 0
	}
	return int(w), int(h)
}

func (s *Surface) SetDrawColor(c color.Color) {
	r, g, b, a := platform.RGBA(c)
	if err := s.renderer.SetDrawColor(r, g, b, a); err != nil {
		core.LogWarn("sdl: failed to set draw color: %s", err)
	}
}

func (s *Surface) Clear() {
	if err := s.renderer.Clear(); err != nil {
		core.LogWarn("sdl: failed to clear: %s", err)
	}
}

func (s *Surface) FillRect(r image.Rectangle) {
	rect := &sdl.Rect{
		X: int32(r.Min.X),
		Y: int32(r.Min.Y),
		W: int32(r.Dx()),
		H: int32(r.Dy()),
	}
	if err := s.renderer.FillRect(rect); err != nil {
		core.LogWarn("sdl: failed to fill rect: %s", err)
	}
}

func (s *Surface) Present() {
	s.renderer.Present()
}
