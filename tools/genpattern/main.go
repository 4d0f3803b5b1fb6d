// Command genpattern writes a random starting configuration and target
// pattern as coordinate files. The same seed gives the same files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// Params describes one generated instance.
type Params struct {
	Seed   uint64
	Robots int
	Width  int
	Height int
	Shape  string // random, line or block
}

// Shapes accepted for the target pattern.
const (
	ShapeRandom = "random"
	ShapeLine   = "line"
	ShapeBlock  = "block"
)

var errTooMany = errors.New("more robots than cells")

// Generate draws a starting configuration of distinct random cells in the
// Width x Height box and a target pattern of the requested shape.
func Generate(p Params) (start, pattern core.Configuration, err error) {
	if p.Robots < 0 || p.Robots > p.Width*p.Height {
		return nil, nil, fmt.Errorf("%w: %d robots in %dx%d", errTooMany, p.Robots, p.Width, p.Height)
	}
	rng := rand.New(rand.NewPCG(p.Seed, 0x9e3779b97f4a7c15))

	start = randomCells(rng, p.Robots, p.Width, p.Height)
	switch p.Shape {
	case ShapeRandom, "":
		pattern = randomCells(rng, p.Robots, p.Width, p.Height)
	case ShapeLine:
		for i := range p.Robots {
			pattern = append(pattern, core.Point{X: 0, Y: i})
		}
	case ShapeBlock:
		side := 1
		for side*side < p.Robots {
			side++
		}
		for i := range p.Robots {
			pattern = append(pattern, core.Point{X: i % side, Y: i / side})
		}
	default:
		return nil, nil, fmt.Errorf("unknown shape %q", p.Shape)
	}
	return start, pattern, nil
}

func randomCells(rng *rand.Rand, n, w, h int) core.Configuration {
	cells := rng.Perm(w * h)[:n]
	out := make(core.Configuration, n)
	for i, c := range cells {
		out[i] = core.Point{X: c % w, Y: c / w}
	}
	return out
}

func main() {
	var p Params
	flag.Uint64Var(&p.Seed, "seed", 42, "random seed")
	flag.IntVar(&p.Robots, "robots", 8, "number of robots")
	flag.IntVar(&p.Width, "width", 10, "box width for random cells")
	flag.IntVar(&p.Height, "height", 10, "box height for random cells")
	flag.StringVar(&p.Shape, "shape", ShapeRandom, "target shape: random, line or block")
	outputDir := flag.String("output", "testdata", "output directory")
	flag.Parse()

	start, pattern, err := Generate(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "genpattern:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "genpattern:", err)
		os.Exit(1)
	}

	name := fmt.Sprintf("apf_%d_%s_%dx%d_%d", p.Robots, p.Shape, p.Width, p.Height, p.Seed)
	for suffix, c := range map[string]core.Configuration{"start": start, "pattern": pattern} {
		path := filepath.Join(*outputDir, name+"."+suffix+".txt")
		if err := core.SaveCoordinates(path, c); err != nil {
			fmt.Fprintln(os.Stderr, "genpattern:", err)
			os.Exit(1)
		}
		fmt.Printf("Generated: %s (%d robots)\n", path, len(c))
	}
}
