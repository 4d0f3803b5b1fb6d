package sim

import (
	"encoding/json"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// PhaseCounts counts how often a robot entered each phase, indexed by
// core.Phase.
type PhaseCounts [core.NumPhases]int

// Statistics aggregates per-robot counters for one run. Only the
// activation loop writes; readers take a Snapshot.
type Statistics struct {
	mu sync.RWMutex

	runID   uuid.UUID
	seed    uint64
	planner string

	activations []int
	cycles      []int
	steps       []int
	phases      []PhaseCounts
	failures    int

	startTime time.Time
	endTime   time.Time
	completed bool

	maxSERWidth  int
	maxSERHeight int
	maxSteps     int
}

// NewStatistics creates zeroed counters for robots robots.
func NewStatistics(runID uuid.UUID, seed uint64, robots int) *Statistics {
	return &Statistics{
		runID:       runID,
		seed:        seed,
		activations: make([]int, robots),
		cycles:      make([]int, robots),
		steps:       make([]int, robots),
		phases:      make([]PhaseCounts, robots),
	}
}

func (s *Statistics) begin(now time.Time, c core.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startTime = now
	s.observeLocked(c)
}

func (s *Statistics) finish(now time.Time, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endTime = now
	s.completed = completed
}

func (s *Statistics) recordActivation(robot int) {
	s.mu.Lock()
	s.activations[robot]++
	s.mu.Unlock()
}

func (s *Statistics) recordCycle(robot int) {
	s.mu.Lock()
	s.cycles[robot]++
	s.mu.Unlock()
}

func (s *Statistics) recordPhase(robot int, p core.Phase) {
	s.mu.Lock()
	s.phases[robot][p]++
	s.mu.Unlock()
}

func (s *Statistics) recordFailure() {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()
}

// recordStep counts a move of robot and folds the resulting configuration
// into the running maxima.
func (s *Statistics) recordStep(robot int, c core.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[robot]++
	s.maxSteps = max(s.maxSteps, s.steps[robot])
	s.observeLocked(c)
}

func (s *Statistics) observeLocked(c core.Configuration) {
	if len(c) == 0 {
		return
	}
	b := c.Bounds()
	s.maxSERWidth = max(s.maxSERWidth, b.SERWidth())
	s.maxSERHeight = max(s.maxSERHeight, b.SERHeight())
}

// Snapshot is a point-in-time copy of the statistics.
type Snapshot struct {
	RunID        string        `json:"run_id"`
	Seed         uint64        `json:"seed"`
	Planner      string        `json:"planner"`
	Robots       int           `json:"robots"`
	Activations  []int         `json:"activations"`
	Cycles       []int         `json:"cycles"`
	Steps        []int         `json:"steps"`
	Phases       []PhaseCounts `json:"phases"`
	Failures     int           `json:"failures"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Completed    bool          `json:"completed"`
	MaxSERWidth  int           `json:"max_ser_width"`
	MaxSERHeight int           `json:"max_ser_height"`
	MaxSteps     int           `json:"max_steps"`
}

// Snapshot copies the current counters.
func (s *Statistics) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		RunID:        s.runID.String(),
		Seed:         s.seed,
		Planner:      s.planner,
		Robots:       len(s.activations),
		Activations:  append([]int(nil), s.activations...),
		Cycles:       append([]int(nil), s.cycles...),
		Steps:        append([]int(nil), s.steps...),
		Phases:       append([]PhaseCounts(nil), s.phases...),
		Failures:     s.failures,
		StartTime:    s.startTime,
		EndTime:      s.endTime,
		Completed:    s.completed,
		MaxSERWidth:  s.maxSERWidth,
		MaxSERHeight: s.maxSERHeight,
		MaxSteps:     s.maxSteps,
	}
}

// Duration is the wall-clock length of the run, or of the run so far.
func (s Snapshot) Duration() time.Duration {
	switch {
	case s.StartTime.IsZero():
		return 0
	case s.EndTime.IsZero():
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// TotalActivations sums activations over all robots.
func (s Snapshot) TotalActivations() int { return sum(s.Activations) }

// TotalCycles sums completed cycles over all robots.
func (s Snapshot) TotalCycles() int { return sum(s.Cycles) }

// TotalSteps sums moves over all robots.
func (s Snapshot) TotalSteps() int { return sum(s.Steps) }

// PhaseTotal sums the count of phase p over all robots.
func (s Snapshot) PhaseTotal(p core.Phase) int {
	total := 0
	for _, pc := range s.Phases {
		total += pc[p]
	}
	return total
}

func sum(vs []int) int {
	total := 0
	for _, v := range vs {
		total += v
	}
	return total
}

// CSVHeader names the columns of CSVRecord.
var CSVHeader = []string{
	"run_id", "seed", "robots", "completed", "activations", "cycles", "steps",
	"failures", "max_ser_width", "max_ser_height", "max_steps", "duration_ms",
	"planner",
}

// CSVRecord flattens the snapshot into one summary row.
func (s Snapshot) CSVRecord() []string {
	return []string{
		s.RunID,
		strconv.FormatUint(s.Seed, 10),
		strconv.Itoa(s.Robots),
		strconv.FormatBool(s.Completed),
		strconv.Itoa(s.TotalActivations()),
		strconv.Itoa(s.TotalCycles()),
		strconv.Itoa(s.TotalSteps()),
		strconv.Itoa(s.Failures),
		strconv.Itoa(s.MaxSERWidth),
		strconv.Itoa(s.MaxSERHeight),
		strconv.Itoa(s.MaxSteps),
		strconv.FormatFloat(float64(s.Duration().Microseconds())/1000, 'f', 3, 64),
		s.Planner,
	}
}

// ExportJSON writes the snapshot to path.
func (s Snapshot) ExportJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
