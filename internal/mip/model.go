package mip

// Direction is the optimization direction of the objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Model is an immutable-once-compiled description of a binary linear program:
// a finite set of binary decision variables, a finite set of linear
// constraints each with a structured identifier, and one linear objective.
type Model struct {
	numVars     int
	Constraints []Constraint
	Objective   *LinExpr
	Direction   Direction
}

func NewModel(direction Direction) *Model {
	return &Model{Objective: NewLinExpr(), Direction: direction}
}

// NewVar allocates a fresh binary variable.
func (m *Model) NewVar() Var {
	v := Var(m.numVars)
	m.numVars++
	return v
}

// NewVars allocates n consecutive binary variables and returns the first.
func (m *Model) NewVars(n int) Var {
	first := Var(m.numVars)
	m.numVars += n
	return first
}

// NumVars returns how many variables have been allocated.
func (m *Model) NumVars() int {
	return m.numVars
}

// Add appends a constraint to the model.
func (m *Model) Add(constraints ...Constraint) {
	m.Constraints = append(m.Constraints, constraints...)
}
