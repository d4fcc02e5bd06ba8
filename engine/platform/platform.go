package platform

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/spaghettifunk/oxide/engine/core"
)

// WindowOptions describes the native window requested by the engine.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Centered   bool
	Resizable  bool
	HighDPI    bool
}

// Window is a native window owned by the engine.
type Window interface {
	Size() (int, int)
	Close() error
}

// Surface is the render target handed to behaviors during OnRender. It must
// not be retained after the call returns.
type Surface interface {
	Size() (int, int)
	SetDrawColor(c color.Color)
	// Clear replaces the whole surface with the draw color.
	Clear()
	// FillRect fills r, in surface pixels, with the draw color. The fill is
	// blended source-over, so a translucent color lets the pixels below
	// show through.
	FillRect(r image.Rectangle)
	Present()
}

// Backend is the windowing and graphics layer the engine drives. All calls
// happen on the frame loop goroutine.
type Backend interface {
	// Init brings up the native subsystem.
	Init() error
	CreateWindow(opts WindowOptions) (Window, error)
	CreateSurface(w Window, vsync bool) (Surface, error)
	// PollEvents appends every pending event to dst and returns it.
	PollEvents(dst []core.Event) ([]core.Event, error)
	// Shutdown releases the subsystem. Windows must be closed before.
	Shutdown() error
}

// Factory creates a fresh backend instance.
type Factory func() Backend

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a backend available by name. It panics when called twice
// with the same name or with a nil factory.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if factory == nil {
		panic("platform: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("platform: Register called twice for backend " + name)
	}
	factories[name] = factory
}

// Open instantiates the backend registered under name.
func Open(name string) (Backend, error) {
	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", core.ErrUnknownBackend, name, Backends())
	}
	return factory(), nil
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RGBA converts any color to its 8-bit non-premultiplied components.
func RGBA(c color.Color) (uint8, uint8, uint8, uint8) {
	if c == nil {
		return 0, 0, 0, 0xff
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B, n.A
}
