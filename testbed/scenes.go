package testbed

import (
	"image"
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/spaghettifunk/oxide/engine/assets/loaders"
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/math"
	"github.com/spaghettifunk/oxide/engine/platform"
	"github.com/spaghettifunk/oxide/engine/scene"
)

// MainMenu shows a pulsing title bar.
type MainMenu struct {
	scene.Base

	palette *loaders.Palette
	pulse   *gween.Tween
	scale   float32
	Entered int
}

func NewMainMenu(p *loaders.Palette) *MainMenu {
	return &MainMenu{palette: p}
}

func (m *MainMenu) OnEnter() {
	m.Entered++
	m.pulse = gween.New(0.6, 1, 0.8, ease.InOutSine)
	m.scale = 0.6
	core.LogDebug("main menu entered (%d)", m.Entered)
}

func (m *MainMenu) OnUpdate(dt float64) {
	value, done := m.pulse.Update(float32(dt))
	m.scale = value
	if done {
		// ping-pong between the two bounds
		m.pulse = gween.New(value, 1.6-value, 0.8, ease.InOutSine)
	}
}

func (m *MainMenu) OnRender(s platform.Surface) {
	w, h := s.Size()
	s.SetDrawColor(m.palette.Color("menu", color.Gray{Y: 0x80}))
	s.Clear()

	barW := int(float32(w/2) * m.scale)
	s.SetDrawColor(m.palette.Color("accent", color.White))
	s.FillRect(image.Rect(w/2-barW/2, h/3, w/2+barW/2, h/3+h/12))
}

// GameScene moves a square around with the arrow keys or WASD. The world
// only advances while the scene is on top of the stack.
type GameScene struct {
	palette *loaders.Palette
	input   *core.InputState

	X, Y   float64
	Speed  float64
	paused bool
	Ticks  int
}

func NewGameScene(p *loaders.Palette, input *core.InputState) *GameScene {
	return &GameScene{palette: p, input: input, Speed: 240}
}

func (g *GameScene) OnEnter() {
	g.paused = false
	core.LogDebug("game scene resumed at (%.0f, %.0f)", g.X, g.Y)
}

func (g *GameScene) OnExit() {
	g.paused = true
	core.LogDebug("game scene paused")
}

func (g *GameScene) OnEvent(evt core.Event) {
	if e, ok := evt.(core.WindowResizedEvent); ok {
		core.LogDebug("game scene sees a %dx%d window", e.Width, e.Height)
	}
}

func (g *GameScene) OnUpdate(dt float64) {
	g.Ticks++

	var dx, dy float64
	if g.input.IsKeyDown(core.KEY_LEFT) || g.input.IsKeyDown(core.KEY_A) {
		dx--
	}
	if g.input.IsKeyDown(core.KEY_RIGHT) || g.input.IsKeyDown(core.KEY_D) {
		dx++
	}
	if g.input.IsKeyDown(core.KEY_UP) || g.input.IsKeyDown(core.KEY_W) {
		dy--
	}
	if g.input.IsKeyDown(core.KEY_DOWN) || g.input.IsKeyDown(core.KEY_S) {
		dy++
	}
	g.X += dx * g.Speed * dt
	g.Y += dy * g.Speed * dt
}

func (g *GameScene) IsPaused() bool {
	return g.paused
}

func (g *GameScene) OnRender(s platform.Surface) {
	w, h := s.Size()
	s.SetDrawColor(g.palette.Color("world", color.RGBA{G: 0x40, A: 0xff}))
	s.FillRect(image.Rect(0, 0, w, h))

	const size = 24
	x := int(math.Clamp(g.X+float64(w)/2, 0, float64(w-size)))
	y := int(math.Clamp(g.Y+float64(h)/2, 0, float64(h-size)))
	s.SetDrawColor(g.palette.Color("player", color.White))
	s.FillRect(image.Rect(x, y, x+size, y+size))
}

// PauseScene darkens the scenes below it with a fading overlay.
type PauseScene struct {
	scene.Base

	palette *loaders.Palette
	fade    *gween.Tween
	Alpha   float32
}

func NewPauseScene(p *loaders.Palette) *PauseScene {
	return &PauseScene{palette: p}
}

func (p *PauseScene) OnEnter() {
	p.fade = gween.New(0, 1, 0.25, ease.Linear)
	p.Alpha = 0
}

func (p *PauseScene) OnUpdate(dt float64) {
	p.Alpha, _ = p.fade.Update(float32(dt))
}

func (p *PauseScene) OnRender(s platform.Surface) {
	w, h := s.Size()
	base := color.NRGBAModel.Convert(p.palette.Color("overlay", color.NRGBA{A: 0xb3})).(color.NRGBA)
	base.A = uint8(float32(base.A) * p.Alpha)
	s.SetDrawColor(base)
	s.FillRect(image.Rect(0, 0, w, h))
}
