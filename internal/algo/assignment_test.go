package algo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

func assignmentTotal(cost [][]int, assign []int) int {
	total := 0
	for i, j := range assign {
		total += cost[i][j]
	}
	return total
}

// bruteForce returns the optimal total over all permutations.
func bruteForce(cost [][]int) int {
	n := len(cost)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := -1
	var permute func(k int)
	permute = func(k int) {
		if k == n {
			if total := assignmentTotal(cost, perm); best < 0 || total < best {
				best = total
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	permute(0)
	return best
}

func TestMinCostAssignmentKnown(t *testing.T) {
	cost := [][]int{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	assign := minCostAssignment(cost)
	assert.Equal(t, []int{1, 0, 2}, assign)
	assert.Equal(t, 5, assignmentTotal(cost, assign))
}

func TestMinCostAssignmentMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(6)
		cost := make([][]int, n)
		for i := range cost {
			cost[i] = make([]int, n)
			for j := range cost[i] {
				cost[i][j] = rng.IntN(20)
			}
		}

		assign := minCostAssignment(cost)
		seen := make(map[int]bool, n)
		for _, j := range assign {
			if seen[j] {
				t.Fatalf("trial %d: column %d assigned twice in %v", trial, j, assign)
			}
			seen[j] = true
		}
		if got, want := assignmentTotal(cost, assign), bruteForce(cost); got != want {
			t.Errorf("trial %d: total %d, want %d for %v", trial, got, want, cost)
		}
	}
}

func TestMinCostAssignmentEmpty(t *testing.T) {
	assert.Nil(t, minCostAssignment(nil))
}

func TestAssignmentCost(t *testing.T) {
	robots := core.Configuration{{X: 0, Y: 0}, {X: 5, Y: 5}}
	targets := core.Configuration{{X: 5, Y: 4}, {X: 1, Y: 0}}

	assert.Equal(t, 2, AssignmentCost(robots, targets))
	assert.Equal(t, 0, AssignmentCost(robots, robots))
	assert.Equal(t, -1, AssignmentCost(robots, targets[:1]))
}
