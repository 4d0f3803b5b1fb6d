package state

import "time"

// Delay limits for the pacing controls.
const (
	MinDelay     = time.Millisecond
	MaxDelay     = 2 * time.Second
	DefaultDelay = 100 * time.Millisecond
)

// Playback is the pacing the viewer asks of the simulation. Only the UI
// goroutine touches it.
type Playback struct {
	Delay time.Duration
}

// NewPlayback starts at DefaultDelay.
func NewPlayback() *Playback {
	return &Playback{Delay: DefaultDelay}
}

// Faster halves the delay.
func (p *Playback) Faster() time.Duration {
	p.SetDelay(p.Delay / 2)
	return p.Delay
}

// Slower doubles the delay.
func (p *Playback) Slower() time.Duration {
	p.SetDelay(p.Delay * 2)
	return p.Delay
}

// SetDelay clamps d into [MinDelay, MaxDelay].
func (p *Playback) SetDelay(d time.Duration) {
	p.Delay = min(max(d, MinDelay), MaxDelay)
}

// Rate returns activations per second at the current delay.
func (p *Playback) Rate() float64 {
	return float64(time.Second) / float64(p.Delay)
}
