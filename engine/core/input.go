package core

import "github.com/kamstrup/intmap"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Modifier is a bit set of the modifier keys held during a key event.
type Modifier uint8

const (
	MOD_SHIFT Modifier = 1 << iota
	MOD_CONTROL
	MOD_ALT
	MOD_SUPER
)

// Key code definitions. Backends translate their native codes to these;
// anything without a mapping is reported as KEY_UNKNOWN.
type KeyCode uint16

const (
	KEY_UNKNOWN      KeyCode = 0x00
	KEY_BACKSPACE    KeyCode = 0x08
	KEY_TAB          KeyCode = 0x09
	KEY_ENTER        KeyCode = 0x0D
	KEY_SHIFT        KeyCode = 0x10
	KEY_PAUSE        KeyCode = 0x13
	KEY_CAPITAL      KeyCode = 0x14
	KEY_ESCAPE       KeyCode = 0x1B
	KEY_SPACE        KeyCode = 0x20
	KEY_PRIOR        KeyCode = 0x21
	KEY_NEXT         KeyCode = 0x22
	KEY_END          KeyCode = 0x23
	KEY_HOME         KeyCode = 0x24
	KEY_LEFT         KeyCode = 0x25
	KEY_UP           KeyCode = 0x26
	KEY_RIGHT        KeyCode = 0x27
	KEY_DOWN         KeyCode = 0x28
	KEY_PRINT        KeyCode = 0x2A
	KEY_INSERT       KeyCode = 0x2D
	KEY_DELETE       KeyCode = 0x2E
	KEY_0            KeyCode = 0x30
	KEY_1            KeyCode = 0x31
	KEY_2            KeyCode = 0x32
	KEY_3            KeyCode = 0x33
	KEY_4            KeyCode = 0x34
	KEY_5            KeyCode = 0x35
	KEY_6            KeyCode = 0x36
	KEY_7            KeyCode = 0x37
	KEY_8            KeyCode = 0x38
	KEY_9            KeyCode = 0x39
	KEY_A            KeyCode = 0x41
	KEY_B            KeyCode = 0x42
	KEY_C            KeyCode = 0x43
	KEY_D            KeyCode = 0x44
	KEY_E            KeyCode = 0x45
	KEY_F            KeyCode = 0x46
	KEY_G            KeyCode = 0x47
	KEY_H            KeyCode = 0x48
	KEY_I            KeyCode = 0x49
	KEY_J            KeyCode = 0x4A
	KEY_K            KeyCode = 0x4B
	KEY_L            KeyCode = 0x4C
	KEY_M            KeyCode = 0x4D
	KEY_N            KeyCode = 0x4E
	KEY_O            KeyCode = 0x4F
	KEY_P            KeyCode = 0x50
	KEY_Q            KeyCode = 0x51
	KEY_R            KeyCode = 0x52
	KEY_S            KeyCode = 0x53
	KEY_T            KeyCode = 0x54
	KEY_U            KeyCode = 0x55
	KEY_V            KeyCode = 0x56
	KEY_W            KeyCode = 0x57
	KEY_X            KeyCode = 0x58
	KEY_Y            KeyCode = 0x59
	KEY_Z            KeyCode = 0x5A
	KEY_NUMPAD0      KeyCode = 0x60
	KEY_NUMPAD1      KeyCode = 0x61
	KEY_NUMPAD2      KeyCode = 0x62
	KEY_NUMPAD3      KeyCode = 0x63
	KEY_NUMPAD4      KeyCode = 0x64
	KEY_NUMPAD5      KeyCode = 0x65
	KEY_NUMPAD6      KeyCode = 0x66
	KEY_NUMPAD7      KeyCode = 0x67
	KEY_NUMPAD8      KeyCode = 0x68
	KEY_NUMPAD9      KeyCode = 0x69
	KEY_F1           KeyCode = 0x70
	KEY_F2           KeyCode = 0x71
	KEY_F3           KeyCode = 0x72
	KEY_F4           KeyCode = 0x73
	KEY_F5           KeyCode = 0x74
	KEY_F6           KeyCode = 0x75
	KEY_F7           KeyCode = 0x76
	KEY_F8           KeyCode = 0x77
	KEY_F9           KeyCode = 0x78
	KEY_F10          KeyCode = 0x79
	KEY_F11          KeyCode = 0x7A
	KEY_F12          KeyCode = 0x7B
	KEY_NUMLOCK      KeyCode = 0x90
	KEY_SCROLL       KeyCode = 0x91
	KEY_LSHIFT       KeyCode = 0xA0
	KEY_RSHIFT       KeyCode = 0xA1
	KEY_LCONTROL     KeyCode = 0xA2
	KEY_RCONTROL     KeyCode = 0xA3
	KEY_LMENU        KeyCode = 0xA4
	KEY_RMENU        KeyCode = 0xA5
	KEY_SEMICOLON    KeyCode = 0xBA
	KEY_PLUS         KeyCode = 0xBB
	KEY_COMMA        KeyCode = 0xBC
	KEY_MINUS        KeyCode = 0xBD
	KEY_PERIOD       KeyCode = 0xBE
	KEY_SLASH        KeyCode = 0xBF
	KEY_GRAVE        KeyCode = 0xC0
)

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// InputState holds the current and previous keyboard and mouse state. It is
// fed with events and snapshotted once per frame with Update.
type InputState struct {
	keysCurrent   *intmap.Map[KeyCode, struct{}]
	keysPrevious  *intmap.Map[KeyCode, struct{}]
	mouseCurrent  MouseState
	mousePrevious MouseState
}

func NewInputState() *InputState {
	return &InputState{
		keysCurrent:  intmap.New[KeyCode, struct{}](16),
		keysPrevious: intmap.New[KeyCode, struct{}](16),
	}
}

// Process records the state change carried by evt. Events that do not
// affect input state are ignored.
func (s *InputState) Process(evt Event) {
	switch e := evt.(type) {
	case KeyEvent:
		if e.Pressed {
			s.keysCurrent.Put(e.Key, struct{}{})
		} else {
			s.keysCurrent.Del(e.Key)
		}
	case MouseButtonEvent:
		if e.Button < BUTTON_MAX_BUTTONS {
			s.mouseCurrent.Buttons[e.Button] = e.Pressed
		}
		s.mouseCurrent.X = e.X
		s.mouseCurrent.Y = e.Y
	case MouseMotionEvent:
		s.mouseCurrent.X = e.X
		s.mouseCurrent.Y = e.Y
	}
}

// Update copies the current state into the previous state. Call it once at
// the end of a frame, after every event for the frame was processed.
func (s *InputState) Update() {
	s.keysPrevious.Clear()
	s.keysCurrent.ForEach(func(k KeyCode, _ struct{}) bool {
		s.keysPrevious.Put(k, struct{}{})
		return true
	})
	s.mousePrevious = s.mouseCurrent
}

// keyboard input
func (s *InputState) IsKeyDown(key KeyCode) bool {
	return s.keysCurrent.Has(key)
}

func (s *InputState) IsKeyUp(key KeyCode) bool {
	return !s.keysCurrent.Has(key)
}

func (s *InputState) WasKeyDown(key KeyCode) bool {
	return s.keysPrevious.Has(key)
}

func (s *InputState) WasKeyUp(key KeyCode) bool {
	return !s.keysPrevious.Has(key)
}

// KeysDown returns how many keys are currently held.
func (s *InputState) KeysDown() int {
	return s.keysCurrent.Len()
}

// mouse input
func (s *InputState) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && s.mouseCurrent.Buttons[button]
}

func (s *InputState) WasButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && s.mousePrevious.Buttons[button]
}

func (s *InputState) MousePosition() (float64, float64) {
	return s.mouseCurrent.X, s.mouseCurrent.Y
}

func (s *InputState) PreviousMousePosition() (float64, float64) {
	return s.mousePrevious.X, s.mousePrevious.Y
}
