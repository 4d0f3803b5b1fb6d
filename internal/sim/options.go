package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/algo"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sched"
)

// DefaultSeed seeds the scheduler when no seed or scheduler is given.
const DefaultSeed = 42

type options struct {
	seed           uint64
	scheduler      sched.Scheduler
	planner        core.Planner
	logger         *log.Logger
	delay          time.Duration
	maxActivations int
	disoriented    bool
	runID          uuid.UUID
}

func defaultOptions() options {
	return options{
		seed:    DefaultSeed,
		planner: algo.NewMatchingPlanner(),
		logger:  log.New(io.Discard),
	}
}

// PlannerName names p for logs and statistics. Planners with a Name method
// report it; others are named by their type.
func PlannerName(p core.Planner) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// Option configures a Simulation.
type Option func(*options)

// WithSeed seeds the default random scheduler and the private frames.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithScheduler replaces the random scheduler.
func WithScheduler(s sched.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithPlanner replaces the placement algorithm shared by all robots.
func WithPlanner(p core.Planner) Option {
	return func(o *options) { o.planner = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDelay sets the initial pause between activations.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithMaxActivations bounds the run. Zero means unbounded. When the budget
// runs out before the pattern forms the run ends with SimulationFail.
func WithMaxActivations(n int) Option {
	return func(o *options) { o.maxActivations = n }
}

// WithDisorientedFrames gives each robot a private random rotation and
// mirror, so robots share no compass.
func WithDisorientedFrames(on bool) Option {
	return func(o *options) { o.disoriented = on }
}

// WithRunID sets the run id stamped on events and statistics.
func WithRunID(id uuid.UUID) Option {
	return func(o *options) { o.runID = id }
}
