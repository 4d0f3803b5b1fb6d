package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

func square(n int) core.Configuration {
	var c core.Configuration
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c = append(c, core.Point{X: x, Y: y})
		}
	}
	return c
}

func TestClassifySymmetry(t *testing.T) {
	tests := []struct {
		name   string
		points core.Configuration
		want   Symmetry
	}{
		{
			name:   "3x3 square",
			points: square(3),
			want:   Symmetry{Vertical: true, Horizontal: true, Diagonal: true, AntiDiagonal: true, Rotation180: true},
		},
		{
			name:   "scattered",
			points: core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 5}},
			want:   Symmetry{},
		},
		{
			name:   "l-shape",
			points: core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			want:   Symmetry{Diagonal: true},
		},
		{
			name:   "mirrored l-shape",
			points: core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			want:   Symmetry{AntiDiagonal: true},
		},
		{
			name:   "s-tetromino",
			points: core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
			want:   Symmetry{Rotation180: true},
		},
		{
			name:   "t-shape",
			points: core.Configuration{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}},
			want:   Symmetry{Vertical: true},
		},
		{
			name:   "offset t-shape",
			points: core.Configuration{{X: 10, Y: -4}, {X: 10, Y: -3}, {X: 10, Y: -2}, {X: 11, Y: -3}},
			want:   Symmetry{Horizontal: true},
		},
		{
			name:   "stacked cell counts once",
			points: core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 3}},
			want:   Symmetry{Vertical: true},
		},
		{
			name:   "stacked l-shape",
			points: core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 1}},
			want:   Symmetry{Diagonal: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySymmetry(tt.points)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Symmetric(), got.Symmetric())
		})
	}
}

func TestIsSymmetric(t *testing.T) {
	ok, axis := IsSymmetric(square(3))
	assert.True(t, ok)
	assert.Equal(t, AxisVertical, axis)

	ok, axis = IsSymmetric(core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 5}})
	assert.False(t, ok)
	assert.Equal(t, AxisNone, axis)
	assert.Equal(t, "none", axis.String())
}

func TestSymmetryInvariantUnderFrames(t *testing.T) {
	points := core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	for _, f := range core.AllFrames() {
		if !ClassifySymmetry(f.ApplyAll(points)).Symmetric() {
			t.Errorf("frame %+v lost the half-turn symmetry", f)
		}
	}

	scattered := core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 5}}
	for _, f := range core.AllFrames() {
		if ClassifySymmetry(f.ApplyAll(scattered)).Symmetric() {
			t.Errorf("frame %+v made a scattered set symmetric", f)
		}
	}
}
