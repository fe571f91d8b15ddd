package schedule

import (
	"stundenplan/internal/mip"
)

// Composer assembles the weighted objective from registered soft terms and
// evaluates per-term contributions of a solution. Registration order is
// preserved in Names and Breakdown.
type Composer struct {
	names   []string
	weights map[string]float64
	exprs   map[string]*mip.LinExpr
}

func NewComposer() *Composer {
	return &Composer{
		weights: map[string]float64{},
		exprs:   map[string]*mip.LinExpr{},
	}
}

// Register adds a term under its weight. Registering the same name twice
// replaces the previous expression but keeps its position.
func (c *Composer) Register(term SoftTerm, weight float64) {
	if _, seen := c.exprs[term.Name]; !seen {
		c.names = append(c.names, term.Name)
	}
	c.weights[term.Name] = weight
	c.exprs[term.Name] = term.Expr
}

// Names returns the registered term names in registration order.
func (c *Composer) Names() []string {
	return append([]string{}, c.names...)
}

// Objective builds the weighted sum of all registered terms.
func (c *Composer) Objective() *mip.LinExpr {
	objective := mip.NewLinExpr()
	for _, name := range c.names {
		for _, term := range c.exprs[name].Terms() {
			objective.Add(term.Var, term.Coef*c.weights[name])
		}
	}
	return objective
}

// Breakdown evaluates each term's weighted contribution under a solution.
func (c *Composer) Breakdown(values []bool) map[string]float64 {
	breakdown := make(map[string]float64, len(c.names))
	for _, name := range c.names {
		breakdown[name] = c.weights[name] * c.exprs[name].Eval(values)
	}
	return breakdown
}

// Total sums the weighted contributions, matching Objective().Eval exactly.
func (c *Composer) Total(values []bool) float64 {
	total := 0.0
	for _, name := range c.names {
		total += c.weights[name] * c.exprs[name].Eval(values)
	}
	return total
}
