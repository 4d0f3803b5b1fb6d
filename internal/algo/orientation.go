package algo

import (
	"fmt"
	"strings"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

// Orientation is the canonical view of a point set: the frame that turns
// it into its canonical shape and the snake-order occupancy string of that
// shape. Width <= Height always holds.
type Orientation struct {
	core.Frame
	Bits   []bool
	Width  int
	Height int
}

// BitString renders Bits as '0'/'1' characters.
func (o Orientation) BitString() string {
	var sb strings.Builder
	sb.Grow(len(o.Bits))
	for _, b := range o.Bits {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (o Orientation) String() string {
	return fmt.Sprintf("%dx%d %s mirrored=%t %s", o.Width, o.Height, o.Rotation, o.Mirrored, o.BitString())
}

// Transform maps points into the canonical frame, anchored so that the
// canonical shape's bounding box starts at (0,0). shape must be the set
// the orientation was computed from (in the same outer frame as points).
func (o Orientation) Transform(shape, points core.Configuration) core.Configuration {
	anchor := o.Frame.ApplyAll(shape).Bounds().Min()
	out := o.Frame.ApplyAll(points)
	out.TranslateInPlace(anchor)
	return out
}

// RobotOrientation is an Orientation plus the observing robot's own
// position in the canonical frame. Position is never negative.
type RobotOrientation struct {
	Orientation
	Position core.Point
}

// Canonicalize picks, among the candidate frames, the one whose canonical
// shape reads as the lexicographically greatest snake-order bit string.
// Symmetric shapes tie; the first candidate in generation order wins.
// The input is not modified.
func Canonicalize(points core.Configuration) Orientation {
	if len(points) == 0 {
		return Orientation{}
	}

	work := points.Normalize()
	b := work.Bounds()
	w, h := b.Width(), b.Height()

	// Canonicalize on a tall box; a wide one is turned a quarter first.
	turned := w > h
	if turned {
		work.RotateInPlace(core.West)
		work = work.Normalize()
		w, h = h, w
	}

	grid := rasterize(work, w, h)
	frames := candidateFrames(w, h)
	bits := make([][]bool, len(frames))
	for i, f := range frames {
		bits[i] = traversalFor(f).walk(grid, w, h)
	}

	best := greatest(bits)
	o := Orientation{Frame: frames[best], Bits: bits[best], Width: w, Height: h}
	if turned {
		o.Frame = undoQuarterTurn(o.Frame)
	}
	return o
}

// undoQuarterTurn folds the WEST pre-rotation into f. Mirroring reverses
// the sense of rotation, so a mirrored frame absorbs it as WEST, a plain
// one as EAST.
func undoQuarterTurn(f core.Frame) core.Frame {
	if f.Mirrored {
		f.Rotation = f.Rotation.Compose(core.West)
	} else {
		f.Rotation = f.Rotation.Compose(core.East)
	}
	return f
}

// greatest returns the index of the lexicographically greatest bit string.
// Walking positions left to right, whenever a surviving candidate has a
// set bit every candidate with a clear bit is eliminated.
func greatest(bits [][]bool) int {
	alive := make([]int, len(bits))
	for i := range alive {
		alive[i] = i
	}
	n := len(bits[0])
	for pos := 0; pos < n && len(alive) > 1; pos++ {
		set := false
		for _, i := range alive {
			if bits[i][pos] {
				set = true
				break
			}
		}
		if !set {
			continue
		}
		next := alive[:0:0]
		for _, i := range alive {
			if bits[i][pos] {
				next = append(next, i)
			}
		}
		alive = next
	}
	return alive[0]
}

// CanonicalizeRobot canonicalizes a robot's translated view (the robot
// itself at (0,0)) and locates the robot in the canonical frame.
// A view without the origin violates the caller contract and panics with
// an error wrapping core.ErrSelfNotFound.
func CanonicalizeRobot(view core.Configuration) RobotOrientation {
	self := view.IndexOf(core.Point{})
	if self < 0 {
		panic(fmt.Errorf("canonicalize view of %d points: %w", len(view), core.ErrSelfNotFound))
	}

	o := Canonicalize(view)

	work := view.Copy()
	for i := range work {
		if i == self {
			continue
		}
		work[i] = o.Frame.Apply(work[i])
	}
	return RobotOrientation{
		Orientation: o,
		Position:    work.Bounds().Min().Neg(),
	}
}
