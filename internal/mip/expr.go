package mip

import (
	"fmt"
	"sort"
	"strings"
)

// Var is the index of a binary decision variable within a Model.
type Var int

// ObjTerm is a single weighted variable occurrence in an objective expression.
type ObjTerm struct {
	Var  Var
	Coef float64
}

// LinExpr is a linear expression over binary variables with float64
// coefficients. It is used for objective terms and for re-evaluating them
// against a solved assignment.
type LinExpr struct {
	coefs map[Var]float64
}

func NewLinExpr() *LinExpr {
	return &LinExpr{coefs: map[Var]float64{}}
}

// Add accumulates coef onto the coefficient of v.
func (e *LinExpr) Add(v Var, coef float64) {
	e.coefs[v] += coef
}

// AddExpr accumulates every term of other onto e.
func (e *LinExpr) AddExpr(other *LinExpr) {
	for v, coef := range other.coefs {
		e.coefs[v] += coef
	}
}

// Scale returns a new expression with every coefficient multiplied by f.
func (e *LinExpr) Scale(f float64) *LinExpr {
	scaled := NewLinExpr()
	for v, coef := range e.coefs {
		scaled.coefs[v] = coef * f
	}
	return scaled
}

// Terms returns the non-zero terms ordered by variable index, so that two
// structurally identical expressions compare equal.
func (e *LinExpr) Terms() []ObjTerm {
	terms := make([]ObjTerm, 0, len(e.coefs))
	for v, coef := range e.coefs {
		if coef != 0 {
			terms = append(terms, ObjTerm{Var: v, Coef: coef})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Var < terms[j].Var })
	return terms
}

// Eval computes the value of the expression under the given assignment.
func (e *LinExpr) Eval(values []bool) float64 {
	total := 0.0
	for v, coef := range e.coefs {
		if int(v) < len(values) && values[v] {
			total += coef
		}
	}
	return total
}

// Len returns the number of non-zero terms.
func (e *LinExpr) Len() int {
	n := 0
	for _, coef := range e.coefs {
		if coef != 0 {
			n++
		}
	}
	return n
}

func (e *LinExpr) String() string {
	var builder strings.Builder
	for i, term := range e.Terms() {
		if i > 0 {
			builder.WriteString(" + ")
		}
		fmt.Fprintf(&builder, "%g*x%d", term.Coef, term.Var)
	}
	return builder.String()
}
