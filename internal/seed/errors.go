package seed

import "errors"

var (
	// ErrNoCompetitors is returned when a run is asked to generate nothing.
	ErrNoCompetitors = errors.New("seed: competitors must be positive")
	// ErrUnhealthy is returned when the dashboard health check fails.
	ErrUnhealthy = errors.New("seed: dashboard unhealthy")
	// ErrMismatch is returned when served views differ from the expected ones.
	ErrMismatch = errors.New("seed: views mismatch")
)
