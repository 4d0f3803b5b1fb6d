// Package core defines the lattice geometry, problem instances and the
// oblivious robot state machine.
package core

// Phase is a robot's position in its LOOK-COMPUTE-MOVE cycle.
type Phase int

const (
	PhaseIdle            Phase = iota // Cycle complete, waiting for the scheduler
	PhaseActive                       // Picked by the scheduler
	PhaseLook                         // Capturing a snapshot
	PhaseCompute                      // Running the placement algorithm
	PhaseMove                         // Requesting a unit cardinal step
	PhaseStayPut                      // Nothing to do this cycle
	PhasePatternComplete              // Pattern observed as formed
)

// NumPhases is the number of distinct phases.
const NumPhases = 7

func (p Phase) String() string {
	return [...]string{"IDLE", "ACTIVE", "LOOK", "COMPUTE", "MOVE", "STAY_PUT", "PATTERN_COMPLETE"}[p]
}

// RobotEventKind is what a robot reports to its handler while cycling.
type RobotEventKind int

const (
	EventActive RobotEventKind = iota
	EventLook
	EventCompute
	EventMoveNorth
	EventMoveEast
	EventMoveSouth
	EventMoveWest
	EventStayPut
	EventPatternComplete
	EventIdle
)

func (k RobotEventKind) String() string {
	return [...]string{"ACTIVE", "LOOK", "COMPUTE", "MOVE_NORTH", "MOVE_EAST", "MOVE_SOUTH", "MOVE_WEST",
		"STAY_PUT", "PATTERN_COMPLETE", "IDLE"}[k]
}

// MoveEvent returns the MOVE_* kind for d.
func MoveEvent(d Direction) RobotEventKind {
	return EventMoveNorth + RobotEventKind(d.normalize())
}

// IsMove reports whether k is one of the MOVE_* kinds.
func (k RobotEventKind) IsMove() bool {
	return k >= EventMoveNorth && k <= EventMoveWest
}

// Direction returns the step direction of a MOVE_* kind.
func (k RobotEventKind) Direction() (Direction, bool) {
	if !k.IsMove() {
		return North, false
	}
	return Direction(k - EventMoveNorth), true
}

// Phase returns the phase the robot enters when emitting k.
func (k RobotEventKind) Phase() Phase {
	switch {
	case k == EventActive:
		return PhaseActive
	case k == EventLook:
		return PhaseLook
	case k == EventCompute:
		return PhaseCompute
	case k.IsMove():
		return PhaseMove
	case k == EventStayPut:
		return PhaseStayPut
	case k == EventPatternComplete:
		return PhasePatternComplete
	default:
		return PhaseIdle
	}
}
