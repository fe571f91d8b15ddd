package mip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testID struct {
	name string
}

func (id testID) Family() string { return id.name }

func TestSolveFeasible(t *testing.T) {
	// Arrange
	model := NewModel(Minimize)
	a := model.NewVar()
	b := model.NewVar()
	model.Add(SumGE(testID{"pick"}, []Var{a, b}, 1))

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	require.Len(t, result.Values, 2)
	assert.True(t, result.Values[a] || result.Values[b])
}

func TestSolveMinimizesObjective(t *testing.T) {
	// Arrange
	model := NewModel(Minimize)
	cheap := model.NewVar()
	costly := model.NewVar()
	model.Add(SumGE(testID{"pick"}, []Var{cheap, costly}, 1))
	model.Objective = NewLinExpr()
	model.Objective.Add(cheap, 1)
	model.Objective.Add(costly, 2)

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	assert.InDelta(t, 1, result.Objective, 1e-6)
	assert.True(t, result.Values[cheap])
	assert.False(t, result.Values[costly])
}

func TestSolveMaximizesKnapsack(t *testing.T) {
	// Arrange: values 5, 3, 4 with weights 2, 2, 3 under capacity 4.
	model := NewModel(Maximize)
	items := model.NewVars(3)
	first, second, third := items, items+1, items+2
	model.Add(Constraint{
		ID:    testID{"capacity"},
		Terms: []Term{{Var: first, Coef: 2}, {Var: second, Coef: 2}, {Var: third, Coef: 3}},
		Sense: LE,
		RHS:   4,
	})
	model.Objective = NewLinExpr()
	model.Objective.Add(first, 5)
	model.Objective.Add(second, 3)
	model.Objective.Add(third, 4)

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	assert.InDelta(t, 8, result.Objective, 1e-6)
	assert.True(t, result.Values[first])
	assert.True(t, result.Values[second])
	assert.False(t, result.Values[third])
}

func TestSolveReportsIncumbents(t *testing.T) {
	// Arrange
	model := NewModel(Minimize)
	a := model.NewVar()
	b := model.NewVar()
	model.Add(SumGE(testID{"pick"}, []Var{a, b}, 1))
	model.Objective = NewLinExpr()
	model.Objective.Add(a, 1)
	model.Objective.Add(b, 3)

	incumbents := []float64{}
	opts := Options{OnIncumbent: func(objective float64) {
		incumbents = append(incumbents, objective)
	}}

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, opts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	require.NotEmpty(t, incumbents)
	assert.InDelta(t, result.Objective, incumbents[len(incumbents)-1], 1e-6)
	for i := 1; i < len(incumbents); i++ {
		assert.Less(t, incumbents[i], incumbents[i-1])
	}
}

func TestSolveExpiredContextReportsTimeLimit(t *testing.T) {
	// Arrange
	model := NewModel(Minimize)
	a := model.NewVar()
	b := model.NewVar()
	model.Add(SumGE(testID{"pick"}, []Var{a, b}, 1))
	model.Objective = NewLinExpr()
	model.Objective.Add(a, 1)
	model.Objective.Add(b, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	result, err := NewGophersatSolver().Solve(ctx, model, Options{})

	// Assert: a search cut before any incumbent carries no values and must
	// not claim optimality.
	require.NoError(t, err)
	assert.Equal(t, StatusTimeLimit, result.Status)
	assert.Empty(t, result.Values)
}

func TestSolveInterruptedSearchReportsSuboptimal(t *testing.T) {
	// Arrange: every solution costs at least 1, so the search cannot prove
	// optimality in the same iteration that finds the incumbent. Cancelling
	// from the incumbent callback cuts the proof step.
	model := NewModel(Minimize)
	a := model.NewVar()
	b := model.NewVar()
	model.Add(SumGE(testID{"pick"}, []Var{a, b}, 1))
	model.Objective = NewLinExpr()
	model.Objective.Add(a, 1)
	model.Objective.Add(b, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts := Options{OnIncumbent: func(float64) { cancel() }}

	// Act
	result, err := NewGophersatSolver().Solve(ctx, model, opts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusSuboptimal, result.Status)
	require.Len(t, result.Values, 2)
	assert.True(t, result.Values[a] || result.Values[b])
	assert.GreaterOrEqual(t, result.Objective, 1.0)
}

func TestSolveInfeasibleFindsConflict(t *testing.T) {
	// Arrange: x must be both on and off; a third constraint is irrelevant.
	model := NewModel(Minimize)
	x := model.NewVar()
	y := model.NewVar()
	model.Add(SumGE(testID{"on"}, []Var{x}, 1))
	model.Add(FixZero(testID{"off"}, []Var{x}))
	model.Add(SumLE(testID{"bystander"}, []Var{y}, 1))

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, Options{FindConflict: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
	families := []string{}
	for _, id := range result.Conflict {
		families = append(families, id.Family())
	}
	assert.ElementsMatch(t, []string{"on", "off"}, families)
}

func TestSolveInfeasibleWithoutConflictSearch(t *testing.T) {
	// Arrange
	model := NewModel(Minimize)
	x := model.NewVar()
	model.Add(SumGE(testID{"on"}, []Var{x}, 1))
	model.Add(FixZero(testID{"off"}, []Var{x}))

	// Act
	result, err := NewGophersatSolver().Solve(context.Background(), model, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Empty(t, result.Conflict)
}
