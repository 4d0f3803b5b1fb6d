package core

// Frame is one of the eight axis-aligned orientations of the lattice: an
// optional mirror across the Y axis followed by a counter-rotation.
//
// Apply maps points from an outer frame into this one; Invert maps back.
type Frame struct {
	Rotation Direction
	Mirrored bool
}

// IdentityFrame leaves points unchanged.
var IdentityFrame = Frame{}

// AllFrames lists the eight frames, unmirrored first, in rotation order.
func AllFrames() []Frame {
	frames := make([]Frame, 0, 8)
	for _, mirrored := range []bool{false, true} {
		for _, d := range Directions {
			frames = append(frames, Frame{Rotation: d, Mirrored: mirrored})
		}
	}
	return frames
}

// Apply mirrors p (when Mirrored) and then counter-rotates it by Rotation.
func (f Frame) Apply(p Point) Point {
	if f.Mirrored {
		p = p.MirrorY()
	}
	return p.CounterRotateByCardinal(f.Rotation)
}

// Invert undoes Apply.
func (f Frame) Invert(p Point) Point {
	p = p.RotateByCardinal(f.Rotation)
	if f.Mirrored {
		p = p.MirrorY()
	}
	return p
}

// ApplyAll returns a transformed copy of c.
func (f Frame) ApplyAll(c Configuration) Configuration {
	out := make(Configuration, len(c))
	for i, p := range c {
		out[i] = f.Apply(p)
	}
	return out
}

// InvertDirection maps a direction expressed in this frame back to the
// outer frame.
func (f Frame) InvertDirection(d Direction) Direction {
	out, _ := DirectionOf(f.Invert(d.Vector()))
	return out
}
