package sim

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/algo"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/event"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sched"
)

type collector struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *collector) OnEvent(e event.Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

func (c *collector) Events() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Event(nil), c.events...)
}

func types(events []event.Event) []event.Type {
	out := make([]event.Type, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func count(events []event.Event, t event.Type) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// runToEnd starts s and waits for it with a deadline.
func runToEnd(t *testing.T, s *Simulation) []event.Event {
	t.Helper()
	c := &collector{}
	s.Subscribe(c)
	require.NoError(t, s.Start())
	select {
	case <-s.Done():
	case <-time.After(10 * time.Second):
		s.Stop()
		t.Fatal("simulation did not end")
	}
	return c.Events()
}

// stayPlanner never moves and never sees the pattern.
type stayPlanner struct{}

func (stayPlanner) Plan(view, target core.Configuration) (core.Decision, error) {
	return core.Stay(), nil
}

// flakyPlanner panics on its first call and fails on its second.
type flakyPlanner struct {
	calls atomic.Int32
	next  core.Planner
}

func (p *flakyPlanner) Plan(view, target core.Configuration) (core.Decision, error) {
	switch p.calls.Add(1) {
	case 1:
		panic(errors.New("planner bug"))
	case 2:
		return core.Decision{}, errors.New("planner failure")
	}
	return p.next.Plan(view, target)
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New(core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 1}}, core.Configuration{{X: 0, Y: 0}})
	var invalid *core.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.ConfigurationLen)
	assert.Equal(t, 1, invalid.PatternLen)

	s, err := New(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestEmptySimulation(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)

	events := runToEnd(t, s)
	assert.Equal(t, []event.Type{event.SimulationStart, event.SimulationEnd}, types(events))
	assert.True(t, s.Completed())
	assert.False(t, s.IsRunning())
}

func TestTrivialPattern(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}}, core.Configuration{{X: 0, Y: 0}})
	require.NoError(t, err)

	events := runToEnd(t, s)
	require.NotEmpty(t, events)
	assert.Equal(t, event.SimulationStart, events[0].Type)
	assert.Equal(t, event.SimulationEnd, events[len(events)-1].Type)
	assert.Zero(t, count(events, event.RobotMoving))
	assert.Zero(t, count(events, event.SimulationFail))
	assert.True(t, s.Completed())

	stats := s.Statistics()
	assert.Equal(t, 1, stats.TotalActivations())
	assert.Equal(t, 1, stats.PhaseTotal(core.PhasePatternComplete))
	assert.True(t, stats.Completed)
}

func TestAlreadyFormed(t *testing.T) {
	pts := core.Configuration{{X: 0, Y: 0}, {X: 5, Y: 5}}
	s, err := New(pts, pts, WithSeed(7))
	require.NoError(t, err)

	events := runToEnd(t, s)
	assert.Zero(t, count(events, event.RobotMoving))
	assert.Zero(t, s.Statistics().TotalSteps())
	assert.True(t, s.Completed())
	assert.Equal(t, pts, s.Configuration())
}

func TestConvergence(t *testing.T) {
	start := core.Configuration{{X: 0, Y: 0}, {X: 4, Y: 1}, {X: -2, Y: 3}, {X: 1, Y: -3}}
	pattern := core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}}

	tests := []struct {
		name string
		opts []Option
	}{
		{"random", []Option{WithSeed(1)}},
		{"round robin", []Option{WithScheduler(sched.NewRoundRobin())}},
		{"disoriented", []Option{WithSeed(5), WithDisorientedFrames(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(start, pattern, tt.opts...)
			require.NoError(t, err)

			events := runToEnd(t, s)
			require.True(t, s.Completed())
			assert.True(t, s.Configuration().EqualMultiset(pattern))

			stats := s.Statistics()
			assert.Equal(t, count(events, event.RobotMoving), stats.TotalSteps())
			assert.Equal(t, count(events, event.RobotIdle), stats.TotalCycles())
			assert.Equal(t, stats.TotalActivations(), stats.TotalCycles())
			assert.Zero(t, stats.Failures)
			assert.GreaterOrEqual(t, stats.TotalSteps(), algo.AssignmentCost(start, pattern))

			assertMovesLegal(t, events)
			assertCycleOrder(t, events)
		})
	}
}

func assertMovesLegal(t *testing.T, events []event.Event) {
	t.Helper()
	for _, e := range events {
		if e.Type != event.RobotMoving {
			continue
		}
		step := e.To.Sub(e.From)
		if _, ok := core.DirectionOf(step); !ok {
			t.Errorf("%v: step %v is not a unit cardinal move", e, step)
		}
	}
}

// assertCycleOrder checks every activation reads LOOKING, COMPUTING,
// optionally MOVING, then IDLE, with nothing else interleaved.
func assertCycleOrder(t *testing.T, events []event.Event) {
	t.Helper()
	var cycle []event.Type
	robot := -1
	for _, e := range events {
		if e.Type.IsGlobal() {
			continue
		}
		if len(cycle) > 0 && e.Robot != robot {
			t.Fatalf("robot %d interleaved into robot %d's cycle: %v", e.Robot, robot, cycle)
		}
		robot = e.Robot
		cycle = append(cycle, e.Type)
		if e.Type != event.RobotIdle {
			continue
		}
		ok := len(cycle) == 3 || (len(cycle) == 4 && cycle[2] == event.RobotMoving)
		if !ok || cycle[0] != event.RobotLooking || cycle[1] != event.RobotComputing {
			t.Errorf("robot %d cycle %d: %v", e.Robot, e.Cycle, cycle)
		}
		cycle = cycle[:0]
	}
	assert.Empty(t, cycle, "unfinished cycle")
}

func TestSequenceNumbersIncrease(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}, {X: 3, Y: 0}}, core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 2}},
		WithRunID(uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001")))
	require.NoError(t, err)

	events := runToEnd(t, s)
	for i, e := range events {
		assert.Equal(t, s.RunID(), e.RunID)
		if i > 0 {
			assert.Greater(t, e.Seq, events[i-1].Seq)
		}
	}
	assert.Equal(t, "6f1c2d3e-0000-4000-8000-000000000001", s.Statistics().RunID)
}

func TestActivationFailureIsRecovered(t *testing.T) {
	p := &flakyPlanner{next: algo.NewMatchingPlanner()}
	s, err := New(core.Configuration{{X: 0, Y: 0}, {X: 2, Y: 0}}, core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 1}},
		WithPlanner(p), WithScheduler(sched.NewRoundRobin()))
	require.NoError(t, err)

	events := runToEnd(t, s)
	assert.True(t, s.Completed())
	assert.Zero(t, count(events, event.SimulationFail))

	stats := s.Statistics()
	assert.Equal(t, 2, stats.Failures)
	assert.Equal(t, stats.TotalActivations()-2, stats.TotalCycles())
}

func TestActivationBudget(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}}, core.Configuration{{X: 1, Y: 0}},
		WithPlanner(stayPlanner{}), WithMaxActivations(10))
	require.NoError(t, err)

	events := runToEnd(t, s)
	require.GreaterOrEqual(t, len(events), 3)
	fail, end := events[len(events)-2], events[len(events)-1]
	assert.Equal(t, event.SimulationFail, fail.Type)
	assert.ErrorIs(t, fail.Err, ErrActivationBudget)
	assert.Equal(t, event.SimulationEnd, end.Type)

	assert.False(t, s.Completed())
	assert.Equal(t, 10, s.Statistics().TotalActivations())
}

func TestStop(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}}, core.Configuration{{X: 5, Y: 5}, {X: 6, Y: 6}},
		WithPlanner(stayPlanner{}), WithDelay(time.Hour))
	require.NoError(t, err)
	c := &collector{}
	s.Subscribe(c)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "Start while running is a no-op")
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not interrupt the pacing delay")
	}

	events := c.Events()
	assert.Equal(t, event.SimulationEnd, events[len(events)-1].Type)
	assert.Zero(t, count(events, event.SimulationFail))
	assert.False(t, s.Completed())
	assert.ErrorIs(t, s.Start(), ErrAlreadyFinished)
}

func TestRunCancelled(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}}, core.Configuration{{X: 1, Y: 0}},
		WithPlanner(stayPlanner{}), WithDelay(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, s.IsRunning())
	assert.Positive(t, s.Statistics().TotalActivations())
}

func TestRunCompletes(t *testing.T) {
	s, err := New(core.Configuration{{X: 2, Y: 2}}, core.Configuration{{X: 0, Y: 0}})
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, core.Configuration{{X: 0, Y: 0}}, s.Configuration())
	assert.Equal(t, 4, s.Statistics().TotalSteps())
}

func TestSetDelay(t *testing.T) {
	s, err := New(nil, nil, WithDelay(time.Second))
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.Delay())
	s.SetDelay(-5)
	assert.Equal(t, time.Duration(0), s.Delay())
	s.SetDelay(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, s.Delay())
}

func TestBadScheduler(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}}, core.Configuration{{X: 1, Y: 0}},
		WithScheduler(schedulerFunc(func(n int) int { return n })), WithPlanner(stayPlanner{}))
	require.NoError(t, err)

	events := runToEnd(t, s)
	assert.Equal(t, []event.Type{event.SimulationStart, event.SimulationFail, event.SimulationEnd}, types(events))
}

type schedulerFunc func(n int) int

func (f schedulerFunc) Next(n int) int { return f(n) }

func TestDisorientedFramesAreSeeded(t *testing.T) {
	pts := core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 0}}
	a, err := New(pts, pts, WithSeed(11), WithDisorientedFrames(true))
	require.NoError(t, err)
	b, err := New(pts, pts, WithSeed(11), WithDisorientedFrames(true))
	require.NoError(t, err)
	plain, err := New(pts, pts)
	require.NoError(t, err)

	for i := range pts {
		assert.Equal(t, a.Frame(i), b.Frame(i))
		assert.Equal(t, core.IdentityFrame, plain.Frame(i))
	}
}

func TestStatisticsExport(t *testing.T) {
	s, err := New(core.Configuration{{X: 0, Y: 0}, {X: 3, Y: 1}}, core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 1}})
	require.NoError(t, err)
	runToEnd(t, s)

	snap := s.Statistics()
	assert.Equal(t, 2, snap.Robots)
	assert.Equal(t, 2, snap.MaxSERWidth)
	assert.Equal(t, 4, snap.MaxSERHeight)
	assert.Equal(t, snap.TotalSteps(), snap.Steps[0]+snap.Steps[1])
	assert.GreaterOrEqual(t, snap.MaxSteps, 1)
	assert.Len(t, snap.CSVRecord(), len(CSVHeader))
	assert.False(t, snap.EndTime.Before(snap.StartTime))

	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, snap.ExportJSON(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, snap.Steps, back.Steps)
	assert.Equal(t, snap.Phases, back.Phases)
	assert.True(t, back.Completed)
	assert.Equal(t, "min-cost-matching", back.Planner)
	assert.Equal(t, "min-cost-matching", snap.CSVRecord()[len(CSVHeader)-1])
}

func TestPlannerName(t *testing.T) {
	assert.Equal(t, "min-cost-matching", PlannerName(algo.NewMatchingPlanner()))
	assert.Equal(t, "sim.stayPlanner", PlannerName(stayPlanner{}))

	s, err := New(core.Configuration{{}}, core.Configuration{{}}, WithPlanner(stayPlanner{}))
	require.NoError(t, err)
	assert.Equal(t, "sim.stayPlanner", s.Statistics().Planner)
}

func TestListenerMayStopFromOnEvent(t *testing.T) {
	s, err := New(
		core.Configuration{{X: 0, Y: 0}, {X: 5, Y: 0}},
		core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 5}},
	)
	require.NoError(t, err)
	s.Subscribe(event.ListenerFunc(func(e event.Event) {
		if e.Type == event.RobotMoving {
			s.SetDelay(time.Millisecond)
			s.Stop()
		}
	}))

	events := runToEnd(t, s)
	assert.False(t, s.IsRunning())
	assert.Equal(t, event.SimulationEnd, events[len(events)-1].Type)
}
