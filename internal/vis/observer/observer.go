// Package observer connects a simulation's event bus to the viewer state.
package observer

import (
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/event"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

// StateObserver folds events into a state.State and asks for a redraw.
type StateObserver struct {
	state      *state.State
	invalidate func()
}

// NewStateObserver creates an observer. invalidate may be nil.
func NewStateObserver(st *state.State, invalidate func()) *StateObserver {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &StateObserver{state: st, invalidate: invalidate}
}

// OnEvent implements event.Listener.
func (o *StateObserver) OnEvent(e event.Event) {
	o.state.Apply(e)
	// Looking and computing do not change the picture.
	switch e.Type {
	case event.RobotMoving, event.RobotIdle:
	default:
		if !e.Type.IsGlobal() {
			return
		}
	}
	o.invalidate()
}

var _ event.Listener = (*StateObserver)(nil)
