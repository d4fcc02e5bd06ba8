package sdl2

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/spaghettifunk/oxide/engine/core"
)

var keyTable = map[sdl.Keycode]core.KeyCode{
	sdl.K_BACKSPACE:    core.KEY_BACKSPACE,
	sdl.K_TAB:          core.KEY_TAB,
	sdl.K_RETURN:       core.KEY_ENTER,
	sdl.K_KP_ENTER:     core.KEY_ENTER,
	sdl.K_PAUSE:        core.KEY_PAUSE,
	sdl.K_CAPSLOCK:     core.KEY_CAPITAL,
	sdl.K_ESCAPE:       core.KEY_ESCAPE,
	sdl.K_SPACE:        core.KEY_SPACE,
	sdl.K_PAGEUP:       core.KEY_PRIOR,
	sdl.K_PAGEDOWN:     core.KEY_NEXT,
	sdl.K_END:          core.KEY_END,
	sdl.K_HOME:         core.KEY_HOME,
	sdl.K_LEFT:         core.KEY_LEFT,
	sdl.K_UP:           core.KEY_UP,
	sdl.K_RIGHT:        core.KEY_RIGHT,
	sdl.K_DOWN:         core.KEY_DOWN,
	sdl.K_PRINTSCREEN:  core.KEY_PRINT,
	sdl.K_INSERT:       core.KEY_INSERT,
	sdl.K_DELETE:       core.KEY_DELETE,
	sdl.K_NUMLOCKCLEAR: core.KEY_NUMLOCK,
	sdl.K_SCROLLLOCK:   core.KEY_SCROLL,
	sdl.K_LSHIFT:       core.KEY_LSHIFT,
	sdl.K_RSHIFT:       core.KEY_RSHIFT,
	sdl.K_LCTRL:        core.KEY_LCONTROL,
	sdl.K_RCTRL:        core.KEY_RCONTROL,
	sdl.K_LALT:         core.KEY_LMENU,
	sdl.K_RALT:         core.KEY_RMENU,
	sdl.K_SEMICOLON:    core.KEY_SEMICOLON,
	sdl.K_EQUALS:       core.KEY_PLUS,
	sdl.K_COMMA:        core.KEY_COMMA,
	sdl.K_MINUS:        core.KEY_MINUS,
	sdl.K_PERIOD:       core.KEY_PERIOD,
	sdl.K_SLASH:        core.KEY_SLASH,
	sdl.K_BACKQUOTE:    core.KEY_GRAVE,
	sdl.K_KP_0:         core.KEY_NUMPAD0,
	sdl.K_KP_1:         core.KEY_NUMPAD1,
	sdl.K_KP_2:         core.KEY_NUMPAD2,
	sdl.K_KP_3:         core.KEY_NUMPAD3,
	sdl.K_KP_4:         core.KEY_NUMPAD4,
	sdl.K_KP_5:         core.KEY_NUMPAD5,
	sdl.K_KP_6:         core.KEY_NUMPAD6,
	sdl.K_KP_7:         core.KEY_NUMPAD7,
	sdl.K_KP_8:         core.KEY_NUMPAD8,
	sdl.K_KP_9:         core.KEY_NUMPAD9,
	sdl.K_F1:           core.KEY_F1,
	sdl.K_F2:           core.KEY_F2,
	sdl.K_F3:           core.KEY_F3,
	sdl.K_F4:           core.KEY_F4,
	sdl.K_F5:           core.KEY_F5,
	sdl.K_F6:           core.KEY_F6,
	sdl.K_F7:           core.KEY_F7,
	sdl.K_F8:           core.KEY_F8,
	sdl.K_F9:           core.KEY_F9,
	sdl.K_F10:          core.KEY_F10,
	sdl.K_F11:          core.KEY_F11,
	sdl.K_F12:          core.KEY_F12,
}

// translateKey maps an SDL keycode to the engine key code. SDL reports
// letters as lowercase ASCII while the engine uses the uppercase values.
func translateKey(sym sdl.Keycode) core.KeyCode {
	switch {
	case sym >= 'a' && sym <= 'z':
		return core.KEY_A + core.KeyCode(sym-'a')
	case sym >= '0' && sym <= '9':
		return core.KEY_0 + core.KeyCode(sym-'0')
	}
	if code, ok := keyTable[sym]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}

func translateMods(mod uint16) core.Modifier {
	var m core.Modifier
	if mod&sdl.KMOD_SHIFT != 0 {
		m |= core.MOD_SHIFT
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m |= core.MOD_CONTROL
	}
	if mod&sdl.KMOD_ALT != 0 {
		m |= core.MOD_ALT
	}
	if mod&sdl.KMOD_GUI != 0 {
		m |= core.MOD_SUPER
	}
	return m
}

func translateButton(button uint8) core.Button {
	switch button {
	case sdl.BUTTON_LEFT:
		return core.BUTTON_LEFT
	case sdl.BUTTON_RIGHT:
		return core.BUTTON_RIGHT
	case sdl.BUTTON_MIDDLE:
		return core.BUTTON_MIDDLE
	}
	return core.BUTTON_MAX_BUTTONS
}
