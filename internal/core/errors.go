package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCoordinates is wrapped by ParseCoordinates failures.
	ErrMalformedCoordinates = errors.New("malformed coordinates")

	// ErrSelfNotFound means a robot view lacks the observer's own (0,0)
	// point. It is a caller contract violation and is raised as a panic.
	ErrSelfNotFound = errors.New("robot view does not contain the observer at (0,0)")

	// ErrNoObservation means LOOK finished without a snapshot being handed
	// to the robot.
	ErrNoObservation = errors.New("robot has no observation to compute on")

	// ErrRobotBusy means Activate was called while a cycle was in flight.
	ErrRobotBusy = errors.New("robot is already in an activation cycle")
)

// InvalidInputError reports a configuration and target pattern of
// different sizes.
type InvalidInputError struct {
	ConfigurationLen int
	PatternLen       int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: configuration has %d robots but target pattern has %d points",
		e.ConfigurationLen, e.PatternLen)
}
