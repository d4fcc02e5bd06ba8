// Package testbed is a small application built on the engine: a main menu,
// a game scene and a pause overlay managed by a scene stack.
package testbed

import (
	"image/color"

	"github.com/spaghettifunk/oxide/engine"
	"github.com/spaghettifunk/oxide/engine/assets"
	"github.com/spaghettifunk/oxide/engine/assets/loaders"
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
	"github.com/spaghettifunk/oxide/engine/scene"
)

const PalettePath = "assets/palettes/testbed.toml"

type GameState uint8

const (
	GameStateMainMenu GameState = iota
	GameStateInGame
	GameStatePaused
)

type TestGame struct {
	*engine.Game

	Scenes *scene.Stack
	Input  *core.InputState
	Assets *assets.Registry

	palette *loaders.Palette
	menu    *MainMenu
	game    *GameScene
	pause   *PauseScene
	quit    func()
}

type Option func(*TestGame)

// WithQuit sets the function called when Escape is pressed on the main
// menu, typically the engine Stop.
func WithQuit(fn func()) Option {
	return func(tg *TestGame) {
		tg.quit = fn
	}
}

// NewTestGame loads the testbed palette through the registry and pushes
// the main menu. A missing palette falls back to built-in colors.
func NewTestGame(registry *assets.Registry, opts ...Option) *TestGame {
	tg := &TestGame{
		Game:   &engine.Game{State: GameStateMainMenu},
		Scenes: scene.NewStack(),
		Input:  core.NewInputState(),
		Assets: registry,
		quit:   func() {},
	}
	for _, o := range opts {
		o(tg)
	}

	p, err := assets.Load[loaders.Palette](registry, PalettePath)
	if err != nil {
		core.LogWarn("using default colors: %s", err)
		p = defaultPalette()
	}
	tg.palette = p

	tg.menu = NewMainMenu(p)
	tg.game = NewGameScene(p, tg.Input)
	tg.pause = NewPauseScene(p)

	tg.FnEvent = tg.onEvent
	tg.FnUpdate = tg.onUpdate
	tg.FnRender = tg.onRender

	tg.Scenes.Push(tg.menu)
	return tg
}

func (tg *TestGame) CurrentState() GameState {
	return tg.State.(GameState)
}

func (tg *TestGame) onEvent(evt core.Event) {
	tg.Input.Process(evt)

	switch tg.CurrentState() {
	case GameStateMainMenu:
		if core.KeyPressed(evt, core.KEY_ENTER) {
			tg.State = GameStateInGame
			tg.Scenes.Push(tg.game)
			return
		}
		if core.KeyPressed(evt, core.KEY_ESCAPE) {
			core.LogInfo("Escape pressed on the main menu, quitting.")
			tg.quit()
			return
		}
	case GameStateInGame:
		if core.KeyPressed(evt, core.KEY_ESCAPE) || core.KeyPressed(evt, core.KEY_P) {
			tg.State = GameStatePaused
			tg.Scenes.Push(tg.pause)
			return
		}
	case GameStatePaused:
		if core.KeyPressed(evt, core.KEY_ESCAPE) || core.KeyPressed(evt, core.KEY_P) {
			tg.State = GameStateInGame
			tg.Scenes.Pop()
			return
		}
		if core.KeyPressed(evt, core.KEY_Q) {
			tg.State = GameStateMainMenu
			tg.Scenes.Pop()
			tg.Scenes.Pop()
			return
		}
	}
	tg.Scenes.HandleEvent(evt)
}

func (tg *TestGame) onUpdate(dt float64) {
	tg.Scenes.Update(dt)
	tg.Input.Update()
}

func (tg *TestGame) onRender(s platform.Surface) {
	tg.Scenes.Render(s)
}

// Close exits the remaining scenes and drops the registry's assets. The
// palette stays with the scenes that still draw with it.
func (tg *TestGame) Close() {
	tg.Scenes.Clear()
	tg.Assets.Close()
}

func defaultPalette() *loaders.Palette {
	return &loaders.Palette{
		Name: "default",
		Colors: map[string]color.NRGBA{
			"background": {R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff},
			"menu":       {R: 0x58, G: 0x5b, B: 0x70, A: 0xff},
			"accent":     {R: 0xf3, G: 0x8b, B: 0xa8, A: 0xff},
			"world":      {R: 0x1e, G: 0x3a, B: 0x2e, A: 0xff},
			"player":     {R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff},
			"overlay":    {R: 0x11, G: 0x11, B: 0x1b, A: 0xb3},
		},
	}
}
