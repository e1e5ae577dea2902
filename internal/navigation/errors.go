package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects a request before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoVisibleObjects means no catalog object qualified as a reference.
	ErrNoVisibleObjects = errors.New("no visible celestial objects")

	// ErrExhaustedReferences means objects were visible but all of them were
	// already used or excluded. It matches ErrNoVisibleObjects under errors.Is.
	ErrExhaustedReferences = fmt.Errorf("%w: all visible objects already used", ErrNoVisibleObjects)

	// ErrMaxIterationsExceeded means the run did not reach the target within
	// its iteration budget.
	ErrMaxIterationsExceeded = errors.New("maximum iterations exceeded")

	// errLegNonTermination is raised by the leg follower when its step
	// ceiling is hit. The planner treats it as an object_lost leg.
	errLegNonTermination = errors.New("leg step limit exceeded")
)
