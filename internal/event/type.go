// Package event carries simulation events from the engine to observers.
package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// Type is the kind of a simulation event.
type Type int

const (
	// === Global Event ===

	// SimulationStart signals the activation loop is about to run
	// Trigger: Simulation.Start / Simulation.Run | Robot: -1
	SimulationStart Type = iota

	// SimulationEnd is the last event of a run, whatever the reason
	// Trigger: activation loop exit | Robot: -1
	SimulationEnd

	// SimulationFail signals the run ended without forming the pattern
	// Trigger: activation budget exhausted, loop crash | Robot: -1 | Err set
	SimulationFail

	// === Robot Event ===

	// RobotLooking signals a robot captured its snapshot
	// Trigger: robot LOOK
	RobotLooking

	// RobotComputing signals a robot is running the placement algorithm
	// Trigger: robot COMPUTE
	RobotComputing

	// RobotMoving signals a unit move was applied to the live configuration
	// Trigger: robot MOVE_* | From, To set
	RobotMoving

	// RobotIdle signals a robot finished its cycle
	// Trigger: robot IDLE
	RobotIdle
)

func (t Type) String() string {
	return [...]string{"SIMULATION_START", "SIMULATION_END", "SIMULATION_FAIL",
		"ROBOT_LOOKING", "ROBOT_COMPUTING", "ROBOT_MOVING", "ROBOT_IDLE"}[t]
}

// IsGlobal reports whether t concerns the whole simulation.
func (t Type) IsGlobal() bool {
	return t <= SimulationFail
}

// Event is one simulation event. The bus stamps RunID, Seq and Time.
type Event struct {
	Type  Type
	RunID uuid.UUID
	Seq   uint64
	Time  time.Time

	Robot int // robot index, -1 for global events
	Cycle int // the robot's activation number

	From, To core.Point // RobotMoving only
	Err      error      // SimulationFail only
}

// Global builds a simulation-wide event.
func Global(t Type) Event {
	return Event{Type: t, Robot: -1}
}

func (e Event) String() string {
	switch {
	case e.Type == RobotMoving:
		return fmt.Sprintf("#%d %s robot=%d cycle=%d %v->%v", e.Seq, e.Type, e.Robot, e.Cycle, e.From, e.To)
	case e.Type.IsGlobal() && e.Err != nil:
		return fmt.Sprintf("#%d %s: %v", e.Seq, e.Type, e.Err)
	case e.Type.IsGlobal():
		return fmt.Sprintf("#%d %s", e.Seq, e.Type)
	}
	return fmt.Sprintf("#%d %s robot=%d cycle=%d", e.Seq, e.Type, e.Robot, e.Cycle)
}

// Listener observes events. Calls for one listener are sequential and in
// publish order, on a goroutine owned by the bus.
//
// Closing the bus waits for every listener to drain its queue, and a
// simulation closes its bus before it reports done. A listener must
// therefore never block on the end of the run it observes: calling Wait,
// Run or reading Done of its own simulation from OnEvent deadlocks. Stop
// and SetDelay only set flags and are safe to call.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(e Event) { f(e) }
