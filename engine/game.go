package engine

import (
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

// Behavior is the user code driven by the frame loop. Every call happens on
// the frame loop goroutine, in the order OnEvent, OnUpdate, OnRender.
type Behavior interface {
	OnEvent(evt core.Event)
	OnUpdate(deltaTime float64)
	// OnRender draws the frame. The surface must not be retained.
	OnRender(surface platform.Surface)
}

// Game adapts plain functions to a Behavior. Nil functions are skipped.
type Game struct {
	State    interface{}
	FnEvent  Event
	FnUpdate Update
	FnRender Render
}

type Event func(evt core.Event)
type Update func(deltaTime float64)
type Render func(surface platform.Surface)

func (g *Game) OnEvent(evt core.Event) {
	if g.FnEvent != nil {
		g.FnEvent(evt)
	}
}

func (g *Game) OnUpdate(deltaTime float64) {
	if g.FnUpdate != nil {
		g.FnUpdate(deltaTime)
	}
}

func (g *Game) OnRender(surface platform.Surface) {
	if g.FnRender != nil {
		g.FnRender(surface)
	}
}
