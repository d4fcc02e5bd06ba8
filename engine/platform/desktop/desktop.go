// Package desktop implements the platform backend on top of GLFW with an
// OpenGL 2.1 context used for clearing, filling and presenting.
package desktop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/oxide/engine/containers"
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

const Name = "glfw"

// eventQueueSize bounds the events buffered between two polls.
const eventQueueSize = 1024

var ErrNotInitialized = errors.New("glfw backend is not initialized")

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()

	platform.Register(Name, func() platform.Backend { return New() })
}

type Backend struct {
	initialized bool
	window      *Window
	events      *containers.RingQueue[core.Event]
	dropped     int
}

func New() *Backend {
	return &Backend{
		events: containers.NewRingQueue[core.Event](eventQueueSize),
	}
}

func (b *Backend) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	b.initialized = true
	return nil
}

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, boolHint(opts.HighDPI))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, boolHint(opts.HighDPI))
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	w, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if opts.Centered && monitor == nil {
		if primary := glfw.GetPrimaryMonitor(); primary != nil {
			if vm := primary.GetVideoMode(); vm != nil {
				w.SetPos((vm.Width-opts.Width)/2, (vm.Height-opts.Height)/2)
			}
		}
	}

	b.window = &Window{handle: w}
	b.installCallbacks(w)
	w.Show()

	return b.window, nil
}

func (b *Backend) CreateSurface(w platform.Window, vsync bool) (platform.Surface, error) {
	win, ok := w.(*Window)
	if !ok || win.handle == nil {
		return nil, fmt.Errorf("glfw backend cannot render to %T", w)
	}

	win.handle.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s := &Surface{window: win, color: color.Black}
	s.syncViewport()
	return s, nil
}

func (b *Backend) PollEvents(dst []core.Event) ([]core.Event, error) {
	if !b.initialized || b.window == nil || b.window.handle == nil {
		return dst, ErrNotInitialized
	}

	glfw.PollEvents()

	if b.dropped > 0 {
		core.LogWarn("glfw event queue overflowed, %d events dropped", b.dropped)
		b.dropped = 0
	}
	dst = b.events.Drain(dst)
	if b.window.handle.ShouldClose() {
		dst = append(dst, core.QuitEvent{})
	}
	return dst, nil
}

func (b *Backend) Shutdown() error {
	if b.initialized {
		glfw.Terminate()
		b.initialized = false
	}
	return nil
}

func (b *Backend) push(evt core.Event) {
	if err := b.events.Enqueue(evt); err != nil {
		b.dropped++
	}
}

func (b *Backend) installCallbacks(w *glfw.Window) {
	var lastX, lastY float64
	var seenCursor bool

	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		b.push(core.KeyEvent{
			Key:     translateKey(key),
			Pressed: action != glfw.Release,
			Repeat:  action == glfw.Repeat,
			Mods:    translateMods(mods),
		})
	})
	w.SetCharCallback(func(_ *glfw.Window, char rune) {
		b.push(core.TextInputEvent{Char: char})
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		b.push(core.MouseButtonEvent{
			Button:  translateButton(button),
			Pressed: action == glfw.Press,
			X:       x,
			Y:       y,
		})
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		evt := core.MouseMotionEvent{X: xpos, Y: ypos}
		if seenCursor {
			evt.DX = xpos - lastX
			evt.DY = ypos - lastY
		}
		lastX, lastY, seenCursor = xpos, ypos, true
		b.push(evt)
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		b.push(core.MouseWheelEvent{DX: xoff, DY: yoff})
	})
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		b.push(core.WindowResizedEvent{Width: width, Height: height})
	})
}

type Window struct {
	handle *glfw.Window
}

func (w *Window) Size() (int, int) {
	if w.handle == nil {
		return 0, 0
	}
	return w.handle.GetFramebufferSize()
}

func (w *Window) Close() error {
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	return nil
}

// Surface draws into the default framebuffer of the window's GL context.
type Surface struct {
	window *Window
	color  color.Color
	width  int
	height int
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) SetDrawColor(c color.Color) {
	s.color = c
}

func (s *Surface) Clear() {
	s.syncViewport()
	r, g, b, a := glColor(s.color)
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// FillRect draws a blended quad. The projection maps surface pixels with
// the origin in the top-left corner.
func (s *Surface) FillRect(rect image.Rectangle) {
	rect = rect.Intersect(image.Rect(0, 0, s.width, s.height))
	if rect.Empty() {
		return
	}
	r, g, b, a := glColor(s.color)
	gl.Color4f(r, g, b, a)
	gl.Rectf(float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Max.X), float32(rect.Max.Y))
}

func (s *Surface) Present() {
	if s.window.handle != nil {
		s.window.handle.SwapBuffers()
	}
}

func (s *Surface) syncViewport() {
	w, h := s.window.Size()
	if w != s.width || h != s.height {
		s.width, s.height = w, h
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.MatrixMode(gl.PROJECTION)
		gl.LoadIdentity()
		gl.Ortho(0, float64(w), float64(h), 0, -1, 1)
		gl.MatrixMode(gl.MODELVIEW)
		gl.LoadIdentity()
	}
}

func glColor(c color.Color) (float32, float32, float32, float32) {
	r, g, b, a := platform.RGBA(c)
	return float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
