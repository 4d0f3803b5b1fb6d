// Package algo implements the canonical orientation engine, the symmetry
// classifier and the placement algorithm robots run during COMPUTE.
package algo

import (
	"fmt"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// MatchingPlanner is the placement algorithm. Each cycle it matches robots
// to target cells at minimum total Manhattan distance and steps the
// observing robot one cell toward its own match.
//
// The matching is computed in the canonical frame agreed through
// Canonicalize, so robots with differently oriented local frames break
// ties the same way. When the configuration is symmetric the canonical
// frame is not unique and the robot falls back to its own frame.
//
// A step toward an optimal match lowers the optimal matching cost by at
// least one, so the run terminates as long as misplaced robots keep being
// activated, whatever frame each robot used.
type MatchingPlanner struct{}

// NewMatchingPlanner creates the planner.
func NewMatchingPlanner() *MatchingPlanner {
	return &MatchingPlanner{}
}

// Name returns the algorithm name.
func (p *MatchingPlanner) Name() string {
	return "min-cost-matching"
}

// Plan implements core.Planner.
func (p *MatchingPlanner) Plan(view, target core.Configuration) (core.Decision, error) {
	if len(view) != len(target) {
		return core.Decision{}, &core.InvalidInputError{ConfigurationLen: len(view), PatternLen: len(target)}
	}
	if view.EqualMultiset(target) {
		return core.Complete(), nil
	}

	frame, robots, targets, self := p.agree(view, target)

	robots = robots.Sorted()
	targets = targets.Sorted()
	cost := manhattanCosts(robots, targets)
	assign := minCostAssignment(cost)

	// Co-located robots are interchangeable and compute the same thing.
	// Take the farthest match among the ones on our cell, so a cell
	// holding more robots than targets always sheds one.
	goal, best := core.Point{}, -1
	for i, r := range robots {
		if r != self {
			continue
		}
		if c := cost[i][assign[i]]; c > best {
			goal, best = targets[assign[i]], c
		}
	}
	if best < 0 {
		return core.Decision{}, fmt.Errorf("observer %v missing from canonical view: %w", self, core.ErrSelfNotFound)
	}
	if best == 0 {
		return core.Stay(), nil
	}

	step := stepToward(self, goal)
	d, ok := core.DirectionOf(frame.Invert(step))
	if !ok {
		return core.Decision{}, fmt.Errorf("non-cardinal step %v", step)
	}
	return core.Move(d), nil
}

// agree expresses the view and target in the canonical frame, or leaves
// them in the local frame when the view is symmetric.
func (p *MatchingPlanner) agree(view, target core.Configuration) (core.Frame, core.Configuration, core.Configuration, core.Point) {
	ro := CanonicalizeRobot(view)
	if ClassifySymmetry(view).Symmetric() {
		return core.IdentityFrame, view.Copy(), target.Copy(), core.Point{}
	}
	return ro.Frame, ro.Transform(view, view), ro.Transform(view, target), ro.Position
}

// stepToward returns the unit cardinal step from p that closes the larger
// gap to q, preferring the vertical axis on a tie.
func stepToward(p, q core.Point) core.Point {
	dx, dy := q.X-p.X, q.Y-p.Y
	if abs(dx) > abs(dy) {
		return core.Point{X: sign(dx)}
	}
	return core.Point{Y: sign(dy)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
