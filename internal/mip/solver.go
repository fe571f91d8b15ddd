package mip

import (
	"context"
	"fmt"
	"time"
)

// Status is the verdict returned by a solving backend.
type Status int

const (
	StatusUnsolved Status = iota
	StatusOptimal
	StatusSuboptimal
	StatusInfeasible
	StatusTimeLimit
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUnsolved:
		return "UNSOLVED"
	case StatusOptimal:
		return "OPTIMAL"
	case StatusSuboptimal:
		return "SUBOPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeLimit:
		return "TIME_LIMIT"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Options tunes a single Solve call.
type Options struct {
	// TimeLimit bounds the wall-clock budget; zero means no limit. The
	// context passed to Solve may impose a tighter one.
	TimeLimit time.Duration
	// FindConflict asks the backend to shrink an infeasible model down to an
	// irreducible conflicting constraint subset.
	FindConflict bool
	// OnIncumbent, if set, is called with the objective value of every
	// improving incumbent. It is an observational side channel and must not
	// mutate model state.
	OnIncumbent func(objective float64)
}

// Result is the outcome of one Solve call.
type Result struct {
	Status    Status
	Values    []bool  // per variable, valid for StatusOptimal and StatusSuboptimal
	Objective float64 // valid whenever Values is
	// Conflict holds an irreducible infeasible subset of constraint ids,
	// populated on StatusInfeasible when Options.FindConflict was set.
	Conflict []ConstraintID
}

// Solver is the solving collaborator contract: it consumes a compiled model
// and returns a status plus an assignment or a conflict set. Implementations
// are treated as opaque, potentially long-running synchronous calls with
// cooperative cancellation through ctx.
type Solver interface {
	Solve(ctx context.Context, model *Model, opts Options) (Result, error)
}

// SolverError reports an opaque backend failure. It is propagated, never
// retried here; retry policy belongs to the caller.
type SolverError struct {
	Backend string
	Err     error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver backend %v failed: %v", e.Backend, e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
