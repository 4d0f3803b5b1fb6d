package core

import "testing"

func TestMoveEventRoundTrip(t *testing.T) {
	for _, d := range Directions {
		k := MoveEvent(d)
		if !k.IsMove() {
			t.Errorf("MoveEvent(%v) = %v, not a move", d, k)
		}
		got, ok := k.Direction()
		if !ok || got != d {
			t.Errorf("MoveEvent(%v).Direction() = %v, %v", d, got, ok)
		}
		if k.Phase() != PhaseMove {
			t.Errorf("MoveEvent(%v).Phase() = %v, want MOVE", d, k.Phase())
		}
	}
}

func TestEventPhase(t *testing.T) {
	tests := []struct {
		kind RobotEventKind
		want Phase
	}{
		{EventActive, PhaseActive},
		{EventLook, PhaseLook},
		{EventCompute, PhaseCompute},
		{EventStayPut, PhaseStayPut},
		{EventPatternComplete, PhasePatternComplete},
		{EventIdle, PhaseIdle},
	}

	for _, tt := range tests {
		if got := tt.kind.Phase(); got != tt.want {
			t.Errorf("%v.Phase() = %v, want %v", tt.kind, got, tt.want)
		}
		if tt.kind.IsMove() {
			t.Errorf("%v.IsMove() = true", tt.kind)
		}
	}
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		kind RobotEventKind
		want string
	}{
		{EventLook, "LOOK"},
		{EventMoveNorth, "MOVE_NORTH"},
		{EventMoveWest, "MOVE_WEST"},
		{EventStayPut, "STAY_PUT"},
		{EventIdle, "IDLE"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
