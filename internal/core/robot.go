package core

import "fmt"

// RobotID is the robot's index in the configuration.
type RobotID int

// DecisionKind is the outcome of COMPUTE.
type DecisionKind int

const (
	DecisionStay DecisionKind = iota
	DecisionMove
	DecisionComplete
)

func (k DecisionKind) String() string {
	return [...]string{"STAY", "MOVE", "COMPLETE"}[k]
}

// Decision is what a Planner wants the robot to do this cycle. Direction
// is only meaningful for DecisionMove and is expressed in the robot's own
// frame.
type Decision struct {
	Kind      DecisionKind
	Direction Direction
}

// Stay keeps the robot where it is.
func Stay() Decision { return Decision{Kind: DecisionStay} }

// Complete reports the pattern as formed.
func Complete() Decision { return Decision{Kind: DecisionComplete} }

// Move requests a unit step in direction d.
func Move(d Direction) Decision { return Decision{Kind: DecisionMove, Direction: d} }

func (d Decision) String() string {
	if d.Kind == DecisionMove {
		return "MOVE_" + d.Direction.String()
	}
	return d.Kind.String()
}

// Planner is the placement algorithm run during COMPUTE. Both
// configurations are in the robot's local frame, with the robot itself at
// (0,0) in view.
type Planner interface {
	Plan(view, target Configuration) (Decision, error)
}

// RobotHandler receives the events of a robot's cycle. The LOOK handler is
// expected to call Robot.Observe.
type RobotHandler interface {
	HandleRobotEvent(r *Robot, kind RobotEventKind)
}

// RobotHandlerFunc adapts a function to RobotHandler.
type RobotHandlerFunc func(r *Robot, kind RobotEventKind)

// HandleRobotEvent calls f.
func (f RobotHandlerFunc) HandleRobotEvent(r *Robot, kind RobotEventKind) { f(r, kind) }

// Robot is an oblivious agent. Its snapshot is overwritten every cycle and
// nothing it computes survives into the next one.
type Robot struct {
	ID RobotID

	planner Planner
	phase   Phase
	cycle   int

	view   Configuration
	target Configuration

	lastMove Direction
	moved    bool
}

// NewRobot creates an idle robot.
func NewRobot(id RobotID, planner Planner) *Robot {
	return &Robot{ID: id, planner: planner}
}

// Phase returns the current phase.
func (r *Robot) Phase() Phase { return r.phase }

// Cycle returns the number of the current or most recent activation,
// starting at 1.
func (r *Robot) Cycle() int { return r.cycle }

// LastMove returns the direction of the last computed move, if the last
// cycle produced one.
func (r *Robot) LastMove() (Direction, bool) { return r.lastMove, r.moved }

// Observe hands the robot its LOOK snapshot. Both slices are copied.
func (r *Robot) Observe(view, target Configuration) {
	r.view = view.Copy()
	r.target = target.Copy()
}

// Snapshot returns copies of the configuration and target captured at LOOK.
func (r *Robot) Snapshot() (view, target Configuration) {
	return r.view.Copy(), r.target.Copy()
}

// Activate runs one LOOK-COMPUTE-MOVE cycle, reporting each step to h in
// the order ACTIVE, LOOK, COMPUTE, one of MOVE_*/STAY_PUT/PATTERN_COMPLETE,
// IDLE. A failed cycle returns the robot to IDLE without emitting IDLE.
func (r *Robot) Activate(h RobotHandler) error {
	if r.phase != PhaseIdle {
		return fmt.Errorf("robot %d in %s: %w", r.ID, r.phase, ErrRobotBusy)
	}
	done := false
	defer func() {
		if !done {
			r.phase = PhaseIdle
		}
	}()

	r.cycle++
	r.moved = false
	r.view, r.target = nil, nil
	r.emit(h, EventActive)

	r.emit(h, EventLook)
	if r.view == nil {
		return fmt.Errorf("robot %d: %w", r.ID, ErrNoObservation)
	}

	r.emit(h, EventCompute)
	decision, err := r.planner.Plan(r.view, r.target)
	if err != nil {
		return fmt.Errorf("robot %d compute: %w", r.ID, err)
	}

	switch decision.Kind {
	case DecisionMove:
		r.lastMove, r.moved = decision.Direction, true
		r.emit(h, MoveEvent(decision.Direction))
	case DecisionComplete:
		r.emit(h, EventPatternComplete)
	default:
		r.emit(h, EventStayPut)
	}

	done = true
	r.emit(h, EventIdle)
	return nil
}

func (r *Robot) emit(h RobotHandler, kind RobotEventKind) {
	r.phase = kind.Phase()
	h.HandleRobotEvent(r, kind)
}
