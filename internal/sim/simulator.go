// Package sim runs an asynchronous pattern formation simulation.
//
// A Simulation owns the live configuration and one goroutine that
// activates robots picked by a scheduler, one full LOOK-COMPUTE-MOVE
// cycle at a time. Everything observers see goes through the event bus.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/event"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sched"
)

var (
	// ErrAlreadyFinished is returned by Start once the run has ended.
	ErrAlreadyFinished = errors.New("simulation already finished")

	// ErrActivationBudget is carried by SimulationFail when the activation
	// budget runs out before the pattern forms.
	ErrActivationBudget = errors.New("activation budget exhausted")
)

// ActivationError is a failed robot activation. It is logged and counted,
// and the loop carries on with the next activation.
type ActivationError struct {
	Robot int
	Err   error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("robot %d activation: %v", e.Robot, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// Simulation is a single-use run of one instance.
type Simulation struct {
	runID  uuid.UUID
	seed   uint64
	logger *log.Logger
	bus    *event.Bus
	stats  *Statistics

	// configuration is written only by the loop; the lock lets observers
	// read it.
	mu            sync.RWMutex
	configuration core.Configuration
	pattern       core.Configuration

	robots         []*core.Robot
	frames         []core.Frame
	scheduler      sched.Scheduler
	maxActivations int
	activations    int

	started   atomic.Bool
	running   atomic.Bool
	stopped   atomic.Bool
	finished  atomic.Bool
	completed atomic.Bool
	delay     atomic.Int64

	wake chan struct{}
	done chan struct{}
}

// New creates a simulation of robots starting at configuration that must
// form pattern. Both are copied. It fails with *core.InvalidInputError when
// their lengths differ.
func New(configuration, pattern core.Configuration, opts ...Option) (*Simulation, error) {
	inst, err := core.NewInstance(configuration, pattern)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == uuid.Nil {
		o.runID = uuid.New()
	}
	if o.scheduler == nil {
		o.scheduler = sched.NewRandom(o.seed)
	}

	n := inst.RobotCount()
	s := &Simulation{
		runID:          o.runID,
		seed:           o.seed,
		logger:         o.logger.With("run", o.runID.String()[:8]),
		configuration:  inst.Configuration,
		pattern:        inst.Pattern,
		robots:         make([]*core.Robot, n),
		frames:         make([]core.Frame, n),
		scheduler:      o.scheduler,
		maxActivations: o.maxActivations,
		wake:           make(chan struct{}, 1),
		done:           make(chan struct{}),
	}
	s.bus = event.NewBus(s.runID, s.logger)
	s.stats = NewStatistics(s.runID, s.seed, n)
	s.stats.planner = PlannerName(o.planner)
	s.delay.Store(int64(o.delay))

	for i := range s.robots {
		s.robots[i] = core.NewRobot(core.RobotID(i), o.planner)
	}
	if o.disoriented {
		// Frames come from their own stream so they do not shift the
		// scheduler's sequence for the same seed.
		rng := rand.New(rand.NewPCG(o.seed, 1))
		all := core.AllFrames()
		for i := range s.frames {
			s.frames[i] = all[rng.IntN(len(all))]
		}
	}
	return s, nil
}

// RunID identifies this run on events, statistics and log lines.
func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Subscribe attaches a listener to the event bus. Listeners should attach
// before Start; the bus detaches them all after SimulationEnd. A listener
// must not wait for this simulation to end, see event.Listener.
func (s *Simulation) Subscribe(l event.Listener) (unsubscribe func()) {
	return s.bus.Subscribe(l)
}

// Start launches the activation loop. Calling it while the loop runs is a
// no-op; calling it after the run ended returns ErrAlreadyFinished.
func (s *Simulation) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		if s.finished.Load() {
			return ErrAlreadyFinished
		}
		return nil
	}
	s.running.Store(true)
	go s.loop()
	return nil
}

// Run starts the simulation and blocks until it ends or ctx is done, in
// which case it stops the loop, waits for it and returns ctx.Err().
func (s *Simulation) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.Stop()
		<-s.done
		return ctx.Err()
	}
}

// Stop asks the loop to end. An activation in flight completes first.
func (s *Simulation) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.logger.Debug("stop requested")
	}
	s.signal()
}

// IsRunning reports whether the loop was started and not yet stopped.
func (s *Simulation) IsRunning() bool {
	return s.running.Load() && !s.stopped.Load()
}

// SetDelay sets the pause between activations. It only paces the loop.
func (s *Simulation) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if old := time.Duration(s.delay.Swap(int64(d))); old != d {
		s.logger.Debug("delay changed", "from", old, "to", d)
		s.signal()
	}
}

// Delay returns the current pause between activations.
func (s *Simulation) Delay() time.Duration {
	return time.Duration(s.delay.Load())
}

// Done is closed after SimulationEnd was delivered to every listener.
func (s *Simulation) Done() <-chan struct{} { return s.done }

// Wait blocks until the run has ended.
func (s *Simulation) Wait() { <-s.done }

// Completed reports whether the pattern was formed.
func (s *Simulation) Completed() bool { return s.completed.Load() }

// Statistics returns a copy of the run's counters.
func (s *Simulation) Statistics() Snapshot { return s.stats.Snapshot() }

// Configuration returns a copy of the live configuration.
func (s *Simulation) Configuration() core.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configuration.Copy()
}

// Pattern returns a copy of the target pattern.
func (s *Simulation) Pattern() core.Configuration { return s.pattern.Copy() }

// Frame returns the private frame of robot i.
func (s *Simulation) Frame(i int) core.Frame { return s.frames[i] }

func (s *Simulation) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Simulation) loop() {
	var failure error
	defer func() {
		if r := recover(); r != nil {
			failure = fmt.Errorf("activation loop crashed: %v", r)
			s.logger.Error("activation loop crashed", "panic", r)
		}
		s.finish(failure)
	}()

	s.stats.begin(time.Now(), s.Configuration())
	s.logger.Info("simulation started", "robots", len(s.robots), "seed", s.seed, "planner", s.stats.planner)
	s.bus.Publish(event.Global(event.SimulationStart))

	if len(s.robots) == 0 {
		s.complete()
		return
	}

	failure = s.activateUntilDone()
}

// activateUntilDone is the activation loop proper. It returns the reason
// the run failed, if it did.
func (s *Simulation) activateUntilDone() error {
	n := len(s.robots)
	for s.running.Load() && !s.stopped.Load() {
		if s.maxActivations > 0 && s.activations >= s.maxActivations {
			return fmt.Errorf("%w after %d activations", ErrActivationBudget, s.activations)
		}
		i := s.scheduler.Next(n)
		if i < 0 || i >= n {
			return fmt.Errorf("scheduler picked robot %d of %d", i, n)
		}
		s.activate(i)
		if s.running.Load() {
			s.pace()
		}
	}
	return nil
}

func (s *Simulation) activate(i int) {
	s.activations++
	s.stats.recordActivation(i)

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}
			s.activationFailed(i, err)
		}
	}()
	if err := s.robots[i].Activate(handler{s}); err != nil {
		s.activationFailed(i, err)
	}
}

func (s *Simulation) activationFailed(i int, err error) {
	err = &ActivationError{Robot: i, Err: err}
	s.stats.recordFailure()
	s.logger.Error("activation failed", "robot", i, "err", err)
}

// pace sleeps for the configured delay. Stop and SetDelay cut it short.
func (s *Simulation) pace() {
	d := s.Delay()
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-s.wake:
	}
}

func (s *Simulation) complete() {
	s.completed.Store(true)
	s.running.Store(false)
}

func (s *Simulation) finish(failure error) {
	s.running.Store(false)
	s.finished.Store(true)

	if failure != nil {
		fail := event.Global(event.SimulationFail)
		fail.Err = failure
		s.bus.Publish(fail)
		s.logger.Warn("simulation failed", "err", failure)
	}
	s.stats.finish(time.Now(), s.completed.Load())
	snap := s.stats.Snapshot()
	s.logger.Info("simulation ended",
		"completed", snap.Completed,
		"activations", snap.TotalActivations(),
		"steps", snap.TotalSteps(),
		"failures", snap.Failures,
		"elapsed", snap.Duration())
	s.bus.Publish(event.Global(event.SimulationEnd))

	s.bus.Close()
	close(s.done)
}

// look hands robot r its snapshot: the live configuration and the pattern,
// both relative to r's position and in r's private frame.
func (s *Simulation) look(r *core.Robot) {
	i := int(r.ID)
	s.mu.RLock()
	origin := s.configuration[i]
	view := s.configuration.Translate(origin)
	s.mu.RUnlock()
	target := s.pattern.Translate(origin)

	if f := s.frames[i]; f != core.IdentityFrame {
		view, target = f.ApplyAll(view), f.ApplyAll(target)
	}
	r.Observe(view, target)
}

// move applies a unit step requested in r's frame to the live configuration.
func (s *Simulation) move(r *core.Robot, d core.Direction) {
	i := int(r.ID)
	step := s.frames[i].Invert(d.Vector())

	s.mu.Lock()
	from := s.configuration[i]
	to := from.Add(step)
	s.configuration[i] = to
	snapshot := s.configuration.Copy()
	s.mu.Unlock()

	s.stats.recordStep(i, snapshot)
	e := s.robotEvent(event.RobotMoving, r)
	e.From, e.To = from, to
	s.bus.Publish(e)
}

func (s *Simulation) robotEvent(t event.Type, r *core.Robot) event.Event {
	return event.Event{Type: t, Robot: int(r.ID), Cycle: r.Cycle()}
}

// handler routes a robot's cycle into engine state and outward events.
type handler struct{ s *Simulation }

func (h handler) HandleRobotEvent(r *core.Robot, kind core.RobotEventKind) {
	s := h.s
	s.stats.recordPhase(int(r.ID), kind.Phase())

	switch {
	case kind == core.EventLook:
		s.look(r)
		s.bus.Publish(s.robotEvent(event.RobotLooking, r))
	case kind == core.EventCompute:
		s.bus.Publish(s.robotEvent(event.RobotComputing, r))
	case kind.IsMove():
		d, _ := kind.Direction()
		s.move(r, d)
	case kind == core.EventPatternComplete:
		s.logger.Info("pattern formed", "robot", int(r.ID), "activations", s.activations)
		s.complete()
	case kind == core.EventIdle:
		s.stats.recordCycle(int(r.ID))
		s.bus.Publish(s.robotEvent(event.RobotIdle, r))
	}
}
