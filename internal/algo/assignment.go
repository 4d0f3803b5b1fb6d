package algo

import (
	"math"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// minCostAssignment solves the square assignment problem with the
// Hungarian method (potentials form, O(n^3)). It returns assign where row
// i is matched to column assign[i]. Ties resolve deterministically by
// row and column order.
func minCostAssignment(cost [][]int) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	const inf = math.MaxInt / 4

	// 1-based; column 0 is the virtual start of each augmenting path.
	u := make([]int, n+1)
	v := make([]int, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)
	minv := make([]int, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0, delta, j1 := p[j0], inf, 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				if cur := cost[i0-1][j-1] - u[i0] - v[j]; cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assign := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}

// manhattanCosts builds the robot-to-target cost matrix.
func manhattanCosts(robots, targets core.Configuration) [][]int {
	cost := make([][]int, len(robots))
	for i, r := range robots {
		cost[i] = make([]int, len(targets))
		for j, t := range targets {
			cost[i][j] = r.Manhattan(t)
		}
	}
	return cost
}

// AssignmentCost is the total Manhattan distance of an optimal matching of
// robots to targets. It is the progress measure of MatchingPlanner: every
// move the planner makes lowers it by at least one.
func AssignmentCost(robots, targets core.Configuration) int {
	if len(robots) != len(targets) {
		return -1
	}
	cost := manhattanCosts(robots, targets)
	total := 0
	for i, j := range minCostAssignment(cost) {
		total += cost[i][j]
	}
	return total
}
