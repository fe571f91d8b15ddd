package mip

import (
	"context"
	"fmt"
	"math"

	"github.com/crillab/gophersat/solver"
)

// objectiveScale converts float objective coefficients into the integer
// weights the pseudo-boolean backend requires. Weight differences below
// 1/objectiveScale are invisible to the search; the reported objective is
// always re-evaluated exactly from the float expression.
const objectiveScale = 1000

type gophersatSolver struct{}

// NewGophersatSolver returns a Solver backed by the gophersat pseudo-boolean
// engine. Optimization runs as a sequence of decision solves, each bounded by
// the best cost found so far, so incumbents can be reported along the way and
// a wall-clock budget can cut the search with a usable suboptimal solution.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (g *gophersatSolver) Solve(ctx context.Context, model *Model, opts Options) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Status: StatusError}
			err = &SolverError{Backend: "gophersat", Err: fmt.Errorf("%v", r)}
		}
	}()

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	base := compilePB(model.Constraints)
	objLits, objWeights := compileObjective(model)

	var incumbent []bool
	var bound []solver.PBConstr

	for {
		constrs := make([]solver.PBConstr, 0, len(base)+len(bound))
		constrs = append(constrs, base...)
		constrs = append(constrs, bound...)

		status, values, completed := solveOnce(ctx, constrs, model.NumVars())
		if !completed {
			if incumbent != nil {
				return Result{Status: StatusSuboptimal, Values: incumbent, Objective: model.Objective.Eval(incumbent)}, nil
			}
			return Result{Status: StatusTimeLimit}, nil
		}

		if status == solver.Unsat {
			if incumbent != nil {
				// The cost bound is what made the model unsatisfiable, so the
				// incumbent is proven optimal.
				return Result{Status: StatusOptimal, Values: incumbent, Objective: model.Objective.Eval(incumbent)}, nil
			}
			result := Result{Status: StatusInfeasible}
			if opts.FindConflict {
				result.Conflict = g.shrinkConflict(ctx, model)
			}
			return result, nil
		}

		incumbent = values
		if opts.OnIncumbent != nil {
			opts.OnIncumbent(model.Objective.Eval(incumbent))
		}

		cost := scaledCost(objLits, objWeights, values)
		if len(objLits) == 0 || cost == 0 {
			return Result{Status: StatusOptimal, Values: incumbent, Objective: model.Objective.Eval(incumbent)}, nil
		}

		lits := append([]int(nil), objLits...)
		weights := append([]int(nil), objWeights...)
		bound = []solver.PBConstr{solver.LtEq(lits, weights, cost-1)}
	}
}

// shrinkConflict reduces an infeasible model to an irreducible conflicting
// constraint subset with a deletion filter: each constraint is dropped in
// turn and kept out permanently whenever the remainder is still
// unsatisfiable. Every surviving constraint is then necessary.
func (g *gophersatSolver) shrinkConflict(ctx context.Context, model *Model) []ConstraintID {
	active := make([]Constraint, len(model.Constraints))
	copy(active, model.Constraints)

	for i := 0; i < len(active); {
		if ctx.Err() != nil {
			break
		}
		trial := make([]Constraint, 0, len(active)-1)
		trial = append(trial, active[:i]...)
		trial = append(trial, active[i+1:]...)

		status, _, completed := solveOnce(ctx, compilePB(trial), model.NumVars())
		if completed && status == solver.Unsat {
			active = trial
		} else {
			i++
		}
	}

	ids := make([]ConstraintID, 0, len(active))
	for _, constraint := range active {
		if constraint.ID != nil {
			ids = append(ids, constraint.ID)
		}
	}
	return ids
}

// solveOnce runs a single decision solve. The underlying search is not
// interruptible; when ctx expires before it finishes, the call is abandoned
// to complete in the background and completed=false is returned.
func solveOnce(ctx context.Context, constrs []solver.PBConstr, numVars int) (status solver.Status, values []bool, completed bool) {
	type outcome struct {
		status solver.Status
		values []bool
	}
	done := make(chan outcome, 1)

	go func() {
		problem := solver.ParsePBConstrs(constrs)
		s := solver.New(problem)
		status := s.Solve()
		var values []bool
		if status == solver.Sat {
			values = s.Model()
			if len(values) < numVars {
				values = append(values, make([]bool, numVars-len(values))...)
			}
		}
		done <- outcome{status: status, values: values}
	}()

	select {
	case out := <-done:
		return out.status, out.values, true
	case <-ctx.Done():
		return solver.Indet, nil, false
	}
}

func compilePB(constraints []Constraint) []solver.PBConstr {
	constrs := make([]solver.PBConstr, 0, len(constraints))
	for _, constraint := range constraints {
		constrs = append(constrs, pbFromConstraint(constraint)...)
	}
	return constrs
}

func pbFromConstraint(c Constraint) []solver.PBConstr {
	// GtEq and friends take ownership of their slices and mutate them, so
	// every call gets fresh copies.
	lits := make([]int, len(c.Terms))
	weights := make([]int, len(c.Terms))
	for i, term := range c.Terms {
		lits[i] = int(term.Var) + 1
		weights[i] = term.Coef
	}

	switch c.Sense {
	case GE:
		return []solver.PBConstr{solver.GtEq(lits, weights, c.RHS)}
	case LE:
		return []solver.PBConstr{solver.LtEq(lits, weights, c.RHS)}
	default:
		return solver.Eq(lits, weights, c.RHS)
	}
}

// compileObjective turns the float objective into pseudo-boolean cost
// literals. Maximization is normalized to minimization, and negative
// coefficients move their weight onto the negated literal, which shifts the
// cost by a constant without changing the argmin.
func compileObjective(model *Model) (lits []int, weights []int) {
	sign := 1.0
	if model.Direction == Maximize {
		sign = -1.0
	}
	for _, term := range model.Objective.Terms() {
		effective := term.Coef * sign
		weight := int(math.Round(math.Abs(effective) * objectiveScale))
		if weight == 0 {
			continue
		}
		lit := int(term.Var) + 1
		if effective < 0 {
			lit = -lit
		}
		lits = append(lits, lit)
		weights = append(weights, weight)
	}
	return lits, weights
}

func scaledCost(lits []int, weights []int, values []bool) int {
	cost := 0
	for i, lit := range lits {
		v := lit
		if v < 0 {
			v = -v
		}
		assigned := v-1 < len(values) && values[v-1]
		if lit < 0 {
			assigned = !assigned
		}
		if assigned {
			cost += weights[i]
		}
	}
	return cost
}
