// Package scene implements a stack of layered scenes. Only the scene on top
// of the stack is live, while every scene in the stack is rendered.
package scene

import (
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

// Scene is a unit of behavior managed by a Stack. Embed Base to get no-op
// implementations of the hooks a scene does not need.
type Scene interface {
	// OnEnter is called when the scene becomes the top of the stack.
	OnEnter()
	// OnExit is called when the scene stops being the top of the stack,
	// either because it was popped or because another scene was pushed.
	OnExit()
	OnUpdate(dt float64)
	OnEvent(evt core.Event)
	// OnRender draws the scene. The surface must not be retained.
	OnRender(surface platform.Surface)
}

// Base implements every Scene hook as a no-op.
type Base struct{}

func (Base) OnEnter()                  {}
func (Base) OnExit()                   {}
func (Base) OnUpdate(float64)          {}
func (Base) OnEvent(core.Event)        {}
func (Base) OnRender(platform.Surface) {}
