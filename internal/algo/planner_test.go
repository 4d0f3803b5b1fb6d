package algo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

func TestPlanDecisions(t *testing.T) {
	p := NewMatchingPlanner()

	tests := []struct {
		name   string
		view   core.Configuration
		target core.Configuration
		want   core.Decision
	}{
		{
			name:   "single robot on target",
			view:   core.Configuration{{}},
			target: core.Configuration{{}},
			want:   core.Complete(),
		},
		{
			name:   "formed in another order",
			view:   core.Configuration{{X: 0, Y: 0}, {X: 3, Y: 1}},
			target: core.Configuration{{X: 3, Y: 1}, {X: 0, Y: 0}},
			want:   core.Complete(),
		},
		{
			name:   "already placed",
			view:   core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 2}},
			target: core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 3}},
			want:   core.Stay(),
		},
		{
			name:   "one step north",
			view:   core.Configuration{{X: 0, Y: -2}, {X: 1, Y: -2}, {X: 0, Y: 0}},
			target: core.Configuration{{X: 0, Y: -2}, {X: 1, Y: -2}, {X: 0, Y: 1}},
			want:   core.Move(core.North),
		},
		{
			name:   "symmetric view steps east",
			view:   core.Configuration{{X: -1, Y: 0}, {X: 0, Y: 0}},
			target: core.Configuration{{X: -1, Y: 0}, {X: 1, Y: 0}},
			want:   core.Move(core.East),
		},
		{
			name:   "stacked robots shed one",
			view:   core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 0}},
			target: core.Configuration{{X: 0, Y: 0}, {X: 0, Y: -1}},
			want:   core.Move(core.South),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Plan(tt.view, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanLengthMismatch(t *testing.T) {
	_, err := NewMatchingPlanner().Plan(core.Configuration{{}}, nil)
	var invalid *core.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestPlanMoveIsFrameIndependent(t *testing.T) {
	p := NewMatchingPlanner()
	view := core.Configuration{{X: 0, Y: -2}, {X: 1, Y: -2}, {X: 0, Y: 0}}
	target := core.Configuration{{X: 0, Y: -2}, {X: 1, Y: -2}, {X: 0, Y: 1}}

	for _, f := range core.AllFrames() {
		d, err := p.Plan(f.ApplyAll(view), f.ApplyAll(target))
		require.NoError(t, err)
		require.Equal(t, core.DecisionMove, d.Kind)
		if got := f.InvertDirection(d.Direction); got != core.North {
			t.Errorf("frame %+v: move maps back to %v, want NORTH", f, got)
		}
	}
}

// converge activates random robots, each in its own frame, until one
// reports the pattern complete.
func converge(t *testing.T, start, target core.Configuration, frames []core.Frame, seed uint64) int {
	t.Helper()
	p := NewMatchingPlanner()
	rng := rand.New(rand.NewPCG(seed, 0))
	live := start.Copy()
	cost := AssignmentCost(live, target)

	for activation := 1; activation <= 50_000; activation++ {
		i := rng.IntN(len(live))
		f := frames[i%len(frames)]
		view := f.ApplyAll(live.Translate(live[i]))
		local := f.ApplyAll(target.Translate(live[i]))

		d, err := p.Plan(view, local)
		require.NoError(t, err)
		switch d.Kind {
		case core.DecisionComplete:
			require.True(t, live.EqualMultiset(target))
			return activation
		case core.DecisionMove:
			live[i] = live[i].Add(f.InvertDirection(d.Direction).Vector())
			next := AssignmentCost(live, target)
			require.Less(t, next, cost, "a move must lower the matching cost")
			cost = next
		}
	}
	t.Fatalf("no convergence from %v to %v", start, target)
	return 0
}

func TestPlanConverges(t *testing.T) {
	tests := []struct {
		name   string
		start  core.Configuration
		target core.Configuration
	}{
		{"line to column", core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}},
		{"scatter to square", core.Configuration{{X: -3, Y: 4}, {X: 5, Y: 1}, {X: 0, Y: -2}, {X: 7, Y: 7}}, square(2)},
		{"stacked start", core.Configuration{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}, core.Configuration{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 3}}},
		{"far target", core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}}, core.Configuration{{X: 10, Y: -6}, {X: 12, Y: -6}}},
		{"nine robots", square(3), core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 0, Y: 4}}},
	}

	shared := []core.Frame{core.IdentityFrame}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				converge(t, tt.start, tt.target, shared, seed)
				converge(t, tt.start, tt.target, core.AllFrames(), seed)
			}
		})
	}
}
