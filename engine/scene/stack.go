package scene

import (
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform"
)

// Stack owns an ordered set of scenes, the last pushed being the top.
//
// Pushing or popping from within OnEnter or OnExit is not supported and
// leaves the stack in an undefined state; callers must defer such
// transitions to OnUpdate or OnEvent.
type Stack struct {
	scenes []Scene
}

func NewStack() *Stack {
	return &Stack{}
}

// Push exits the current top, if any, and enters s as the new top.
func (st *Stack) Push(s Scene) {
	if top, ok := st.Top(); ok {
		top.OnExit()
	}
	st.scenes = append(st.scenes, s)
	s.OnEnter()
}

// Pop removes the top scene, exits it and enters the scene below, if any.
// The removed scene is handed back to the caller. Popping an empty stack
// returns false and invokes no hook.
func (st *Stack) Pop() (Scene, bool) {
	n := len(st.scenes)
	if n == 0 {
		return nil, false
	}

	top := st.scenes[n-1]
	st.scenes[n-1] = nil
	st.scenes = st.scenes[:n-1]

	top.OnExit()
	if next, ok := st.Top(); ok {
		next.OnEnter()
	}
	return top, true
}

// Top returns the active scene.
func (st *Stack) Top() (Scene, bool) {
	if len(st.scenes) == 0 {
		return nil, false
	}
	return st.scenes[len(st.scenes)-1], true
}

func (st *Stack) Len() int {
	return len(st.scenes)
}

func (st *Stack) IsEmpty() bool {
	return len(st.scenes) == 0
}

// Update ticks the top scene only.
func (st *Stack) Update(dt float64) {
	if top, ok := st.Top(); ok {
		top.OnUpdate(dt)
	}
}

// HandleEvent forwards evt to the top scene only.
func (st *Stack) HandleEvent(evt core.Event) {
	if top, ok := st.Top(); ok {
		top.OnEvent(evt)
	}
}

// Render draws every scene from the bottom to the top so that upper scenes
// overlay the ones below.
func (st *Stack) Render(surface platform.Surface) {
	for _, s := range st.scenes {
		s.OnRender(surface)
	}
}

// Clear exits and drops every scene, from the top to the bottom. Scenes
// exposed while clearing are not entered.
func (st *Stack) Clear() {
	for i := len(st.scenes) - 1; i >= 0; i-- {
		st.scenes[i].OnExit()
		st.scenes[i] = nil
	}
	st.scenes = st.scenes[:0]
}
