package core

// Event is anything a platform backend reports while polling. The concrete
// types below form a closed set; switch on them with a type switch.
type Event interface {
	isEvent()
}

// QuitEvent is emitted when the window is closed. It ends the frame loop.
type QuitEvent struct{}

// KeyEvent reports a keyboard key changing state.
type KeyEvent struct {
	Key     KeyCode
	Pressed bool
	Repeat  bool
	Mods    Modifier
}

// MouseButtonEvent reports a mouse button changing state at a position.
type MouseButtonEvent struct {
	Button  Button
	Pressed bool
	X       float64
	Y       float64
}

// MouseMotionEvent reports the cursor position and the delta since the
// previous motion event.
type MouseMotionEvent struct {
	X  float64
	Y  float64
	DX float64
	DY float64
}

type MouseWheelEvent struct {
	DX float64
	DY float64
}

// TextInputEvent carries one unicode character typed by the user.
type TextInputEvent struct {
	Char rune
}

// WindowResizedEvent reports the new framebuffer size of the window.
type WindowResizedEvent struct {
	Width  int
	Height int
}

func (QuitEvent) isEvent()          {}
func (KeyEvent) isEvent()           {}
func (MouseButtonEvent) isEvent()   {}
func (MouseMotionEvent) isEvent()   {}
func (MouseWheelEvent) isEvent()    {}
func (TextInputEvent) isEvent()     {}
func (WindowResizedEvent) isEvent() {}

// IsQuit reports whether the event asks the application to terminate.
func IsQuit(evt Event) bool {
	_, ok := evt.(QuitEvent)
	return ok
}

// KeyPressed reports whether evt is the initial press of key.
func KeyPressed(evt Event, key KeyCode) bool {
	ke, ok := evt.(KeyEvent)
	return ok && ke.Pressed && !ke.Repeat && ke.Key == key
}

// KeyReleased reports whether evt is the release of key.
func KeyReleased(evt Event, key KeyCode) bool {
	ke, ok := evt.(KeyEvent)
	return ok && !ke.Pressed && ke.Key == key
}

// ButtonPressed reports whether evt is a press of the given mouse button.
func ButtonPressed(evt Event, button Button) bool {
	me, ok := evt.(MouseButtonEvent)
	return ok && me.Pressed && me.Button == button
}
