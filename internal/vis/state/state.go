// Package state holds what the viewer shows, rebuilt from simulation events.
package state

import (
	"sync"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/event"
)

// Status is the run status as seen by the viewer.
type Status int

const (
	StatusReady Status = iota
	StatusRunning
	StatusFailed
	StatusEnded
)

func (s Status) String() string {
	return [...]string{"ready", "running", "failed", "ended"}[s]
}

// RobotActivity is the last reported step of a robot's cycle.
type RobotActivity int

const (
	ActivityIdle RobotActivity = iota
	ActivityLooking
	ActivityComputing
	ActivityMoving
)

// MaxTrail bounds the remembered positions per robot.
const MaxTrail = 64

// State is written by the event observer and read by the UI goroutine.
type State struct {
	mu sync.RWMutex

	pattern   core.Configuration
	positions core.Configuration
	trails    [][]core.Point
	activity  []RobotActivity
	cycles    []int

	status    Status
	failure   error
	moves     int
	lastSeq   uint64
	lastEvent string
	selected  int

	Playback *Playback
}

// NewState starts from the initial configuration.
func NewState(configuration, pattern core.Configuration) *State {
	n := len(configuration)
	s := &State{
		pattern:   pattern.Copy(),
		positions: configuration.Copy(),
		trails:    make([][]core.Point, n),
		activity:  make([]RobotActivity, n),
		cycles:    make([]int, n),
		selected:  -1,
		Playback:  NewPlayback(),
	}
	for i, p := range configuration {
		s.trails[i] = []core.Point{p}
	}
	return s
}

// Apply folds one event into the state.
func (s *State) Apply(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeq = e.Seq
	s.lastEvent = e.String()

	switch e.Type {
	case event.SimulationStart:
		s.status = StatusRunning
		return
	case event.SimulationFail:
		s.status = StatusFailed
		s.failure = e.Err
		return
	case event.SimulationEnd:
		if s.status != StatusFailed {
			s.status = StatusEnded
		}
		return
	}

	i := e.Robot
	if i < 0 || i >= len(s.positions) {
		return
	}
	s.cycles[i] = e.Cycle
	switch e.Type {
	case event.RobotLooking:
		s.activity[i] = ActivityLooking
	case event.RobotComputing:
		s.activity[i] = ActivityComputing
	case event.RobotMoving:
		s.activity[i] = ActivityMoving
		s.positions[i] = e.To
		s.moves++
		trail := append(s.trails[i], e.To)
		if len(trail) > MaxTrail {
			trail = trail[len(trail)-MaxTrail:]
		}
		s.trails[i] = trail
	case event.RobotIdle:
		s.activity[i] = ActivityIdle
	}
}

// Select marks robot i, or clears the selection for a negative i.
func (s *State) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= len(s.positions) {
		i = -1
	}
	s.selected = i
}

// View is a consistent copy of the state for one frame.
type View struct {
	Pattern   core.Configuration
	Positions core.Configuration
	Trails    [][]core.Point
	Activity  []RobotActivity
	Cycles    []int
	Status    Status
	Failure   error
	Moves     int
	LastSeq   uint64
	LastEvent string
	Selected  int
}

// Formed reports whether the robots sit on the pattern.
func (v View) Formed() bool {
	return v.Positions.EqualMultiset(v.Pattern)
}

// Placed counts robots standing on a target cell, each target taken once.
func (v View) Placed() int {
	need := make(map[core.Point]int, len(v.Pattern))
	for _, p := range v.Pattern {
		need[p]++
	}
	placed := 0
	for _, p := range v.Positions {
		if need[p] > 0 {
			need[p]--
			placed++
		}
	}
	return placed
}

// Bounds encloses robots and pattern.
func (v View) Bounds() core.Bounds {
	all := append(v.Positions.Copy(), v.Pattern...)
	return all.Bounds()
}

// View copies the state.
func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trails := make([][]core.Point, len(s.trails))
	for i, t := range s.trails {
		trails[i] = append([]core.Point(nil), t...)
	}
	return View{
		Pattern:   s.pattern.Copy(),
		Positions: s.positions.Copy(),
		Trails:    trails,
		Activity:  append([]RobotActivity(nil), s.activity...),
		Cycles:    append([]int(nil), s.cycles...),
		Status:    s.status,
		Failure:   s.failure,
		Moves:     s.moves,
		LastSeq:   s.lastSeq,
		LastEvent: s.lastEvent,
		Selected:  s.selected,
	}
}
