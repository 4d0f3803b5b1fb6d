package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

func distinct(c core.Configuration) bool {
	seen := make(map[core.Point]bool, len(c))
	for _, p := range c {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := Params{Seed: 7, Robots: 12, Width: 6, Height: 5, Shape: ShapeRandom}
	s1, p1, err := Generate(p)
	require.NoError(t, err)
	s2, p2, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, p1, p2)

	p.Seed = 8
	s3, _, err := Generate(p)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s3)
}

func TestGenerateCellsInBox(t *testing.T) {
	start, pattern, err := Generate(Params{Seed: 1, Robots: 20, Width: 5, Height: 4})
	require.NoError(t, err)
	for _, c := range []core.Configuration{start, pattern} {
		require.Len(t, c, 20)
		assert.True(t, distinct(c))
		b := c.Bounds()
		assert.GreaterOrEqual(t, b.MinX, 0)
		assert.GreaterOrEqual(t, b.MinY, 0)
		assert.Less(t, b.MaxX, 5)
		assert.Less(t, b.MaxY, 4)
	}
}

func TestGenerateShapes(t *testing.T) {
	_, line, err := Generate(Params{Seed: 1, Robots: 4, Width: 4, Height: 4, Shape: ShapeLine})
	require.NoError(t, err)
	assert.Equal(t, core.Configuration{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}}, line)

	_, block, err := Generate(Params{Seed: 1, Robots: 5, Width: 4, Height: 4, Shape: ShapeBlock})
	require.NoError(t, err)
	assert.Equal(t, core.Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, block)

	_, _, err = Generate(Params{Seed: 1, Robots: 2, Width: 2, Height: 2, Shape: "star"})
	assert.Error(t, err)
}

func TestGenerateTooMany(t *testing.T) {
	_, _, err := Generate(Params{Robots: 5, Width: 2, Height: 2})
	assert.ErrorIs(t, err, errTooMany)
}
