package mip

// Sense is the comparison direction of a linear constraint.
type Sense int

const (
	LE Sense = iota // sum <= rhs
	GE              // sum >= rhs
	EQ              // sum == rhs
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return "?"
	}
}

// ConstraintID is a structured identifier carried by every constraint. The
// concrete types are defined by the model compiler and encode the constraint's
// family together with the entity ids involved, so that an infeasibility
// diagnoser can classify a conflict set by type-switching instead of parsing
// labels.
type ConstraintID interface {
	// Family returns a stable tag naming the constraint's domain family.
	Family() string
}

// Term is a single integer-weighted variable occurrence in a constraint.
type Term struct {
	Var  Var
	Coef int
}

// Constraint is a linear (in)equality over binary variables.
type Constraint struct {
	ID    ConstraintID
	Terms []Term
	Sense Sense
	RHS   int
}

// SumLE builds sum(vars) <= rhs.
func SumLE(id ConstraintID, vars []Var, rhs int) Constraint {
	return Constraint{ID: id, Terms: unitTerms(vars), Sense: LE, RHS: rhs}
}

// SumGE builds sum(vars) >= rhs.
func SumGE(id ConstraintID, vars []Var, rhs int) Constraint {
	return Constraint{ID: id, Terms: unitTerms(vars), Sense: GE, RHS: rhs}
}

// SumEQ builds sum(vars) == rhs.
func SumEQ(id ConstraintID, vars []Var, rhs int) Constraint {
	return Constraint{ID: id, Terms: unitTerms(vars), Sense: EQ, RHS: rhs}
}

// FixZero builds sum(vars) == 0, forcing every listed variable off.
func FixZero(id ConstraintID, vars []Var) Constraint {
	return SumEQ(id, vars, 0)
}

func unitTerms(vars []Var) []Term {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	return terms
}

// Satisfied reports whether the constraint holds under the given assignment.
func (c Constraint) Satisfied(values []bool) bool {
	sum := 0
	for _, term := range c.Terms {
		if int(term.Var) < len(values) && values[term.Var] {
			sum += term.Coef
		}
	}
	switch c.Sense {
	case LE:
		return sum <= c.RHS
	case GE:
		return sum >= c.RHS
	default:
		return sum == c.RHS
	}
}
