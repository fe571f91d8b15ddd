package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stundenplan/internal/mip"
)

func newTestBuilder(t *testing.T) *builder {
	t.Helper()
	inst := fixtureInstance()
	require.NoError(t, inst.Validate())
	model := mip.NewModel(mip.Minimize)
	space := NewVarSpace(model, inst.Horizon.NumSlots, len(inst.Teachers), len(inst.Courses), len(inst.Rooms))
	return &builder{inst: inst, space: space, model: model, seq: map[string]int{}}
}

func allSatisfied(constraints []mip.Constraint, values []bool) bool {
	for _, c := range constraints {
		if !c.Satisfied(values) {
			return false
		}
	}
	return true
}

func TestAndLinkIsExact(t *testing.T) {
	// Arrange
	b := newTestBuilder(t)
	a := b.model.NewVar()
	c := b.model.NewVar()
	links := []mip.Constraint{}

	// Act
	z := b.andLink(TermLunchAdjacency, []mip.Var{a}, []mip.Var{c}, &links)

	// Assert: exactly one z value is feasible per (a, c), and it is a AND c.
	require.Len(t, links, 3)
	for _, aVal := range []bool{false, true} {
		for _, cVal := range []bool{false, true} {
			feasible := []bool{}
			for _, zVal := range []bool{false, true} {
				values := make([]bool, b.model.NumVars())
				values[a], values[c], values[z] = aVal, cVal, zVal
				if allSatisfied(links, values) {
					feasible = append(feasible, zVal)
				}
			}
			assert.Equal(t, []bool{aVal && cVal}, feasible)
		}
	}
}

func TestExcessSlackCountsOverflow(t *testing.T) {
	// Arrange: three load units against a limit of one.
	b := newTestBuilder(t)
	load := []mip.Var{b.model.NewVar(), b.model.NewVar(), b.model.NewVar()}
	links := []mip.Constraint{}

	// Act
	cost := b.excessSlack(TermSemesterMaxPerDay, plus(load, 1), 1, 2, &links)

	// Assert: the cheapest feasible slack sum equals max(0, active-1).
	require.Len(t, links, 1)
	require.Equal(t, 2, cost.Len())
	for active := 0; active <= len(load); active++ {
		values := make([]bool, b.model.NumVars())
		for i := 0; i < active; i++ {
			values[load[i]] = true
		}

		best := -1
		slacks := []mip.Var{}
		for _, term := range cost.Terms() {
			slacks = append(slacks, term.Var)
		}
		for mask := 0; mask < 1<<len(slacks); mask++ {
			for i, slack := range slacks {
				values[slack] = mask&(1<<i) != 0
			}
			if !allSatisfied(links, values) {
				continue
			}
			sum := int(cost.Eval(values))
			if best == -1 || sum < best {
				best = sum
			}
		}

		expected := active - 1
		if expected < 0 {
			expected = 0
		}
		assert.Equal(t, expected, best, "active=%d", active)
	}
}

func TestDirectTermShapes(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("teacher soft time covers one slot", func(t *testing.T) {
		term := b.teacherSoftTime()
		// Teacher 1 dislikes slot 1: one variable per (course, room).
		assert.Equal(t, 2*2, term.Expr.Len())
		assert.Empty(t, term.Links)
	})

	t.Run("room waste charges capacity surplus", func(t *testing.T) {
		term := b.roomWaste()
		// Three (course, room) pairs have surplus capacity, each across
		// every (slot, teacher).
		assert.Equal(t, 3*4*2, term.Expr.Len())
		for _, objTerm := range term.Expr.Terms() {
			_, _, course, room := b.space.Attributes(objTerm.Var)
			waste := b.inst.Rooms[room].Capacity - b.inst.Courses[course].ExpectedStudents
			assert.Equal(t, float64(waste), objTerm.Coef)
			assert.Positive(t, objTerm.Coef)
		}
	})

	t.Run("faculty mismatch is cross-faculty only", func(t *testing.T) {
		term := b.facultyMismatch()
		for _, objTerm := range term.Expr.Terms() {
			_, _, course, room := b.space.Attributes(objTerm.Var)
			assert.NotEqual(t, b.inst.Courses[course].Faculty, b.inst.Rooms[room].Faculty)
		}
	})

	t.Run("avoid early defaults to first slots", func(t *testing.T) {
		term := b.semesterAvoidEarly(nil, nil)
		for _, objTerm := range term.Expr.Terms() {
			slot, _, _, _ := b.space.Attributes(objTerm.Var)
			assert.Contains(t, b.inst.Horizon.FirstSlots(), slot)
		}
	})
}

func TestSingleDayLinearization(t *testing.T) {
	// Arrange: a one-semester fixture; brute-force the aux variables and
	// check the cheapest feasible cost matches the number of one-class days.
	b := newTestBuilder(t)

	// Act
	term := b.semesterSingleDay()

	// Assert over a handful of hand-picked load patterns. Slots 0..3 belong
	// to two days; the semester has courses 0 and 1.
	type pattern struct {
		name string
		on   [][3]int // (course, slot, room)
		want int
	}
	patterns := []pattern{
		{name: "empty", want: 0},
		{name: "one class one day", on: [][3]int{{0, 0, 0}}, want: 1},
		{name: "two classes same day", on: [][3]int{{0, 0, 0}, {1, 1, 1}}, want: 0},
		{name: "one class each day", on: [][3]int{{0, 0, 0}, {1, 2, 1}}, want: 2},
	}

	auxFirst := b.space.Size()
	auxCount := b.model.NumVars() - auxFirst
	require.LessOrEqual(t, auxCount, 12)

	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			values := make([]bool, b.model.NumVars())
			for _, assignment := range p.on {
				values[b.space.X(assignment[1], 0, assignment[0], assignment[2])] = true
			}

			best := -1
			for mask := 0; mask < 1<<auxCount; mask++ {
				for i := 0; i < auxCount; i++ {
					values[auxFirst+i] = mask&(1<<i) != 0
				}
				if !allSatisfied(term.Links, values) {
					continue
				}
				cost := int(term.Expr.Eval(values))
				if best == -1 || cost < best {
					best = cost
				}
			}
			assert.Equal(t, p.want, best)
		})
	}
}

func TestMaxConsecutiveWindows(t *testing.T) {
	// Arrange: limit 1 over two-slot days gives one window per day per
	// teacher.
	b := newTestBuilder(t)

	// Act
	term := b.maxConsecutive(1)

	// Assert
	assert.Len(t, term.Links, 2*2)
	assert.Equal(t, 2*2, term.Expr.Len())
	for _, link := range term.Links {
		assert.Equal(t, mip.LE, link.Sense)
		assert.Equal(t, 1, link.RHS)
	}
}

func TestBuildingChangePairs(t *testing.T) {
	// Arrange: two buildings, two teachers, one adjacent pair per day.
	b := newTestBuilder(t)

	// Act
	term := b.buildingChange()

	// Assert: teachers * days * adjacent pairs * ordered building pairs.
	assert.Equal(t, 2*2*1*2, term.Expr.Len())
	assert.Len(t, term.Links, 3*term.Expr.Len())
}

func TestCourseOrderViolatingPairs(t *testing.T) {
	// Arrange
	b := newTestBuilder(t)

	// Act: course 11 must not precede course 10.
	term := b.courseOrder([][2]int{{10, 11}})

	// Assert: one indicator per (laterSlot, earlierSlot) pair.
	assert.Equal(t, 4*3/2, term.Expr.Len())

	unknown := b.courseOrder([][2]int{{10, 99}})
	assert.Zero(t, unknown.Expr.Len())
}

func TestCourseStabilitySkipsSingleSessionCourses(t *testing.T) {
	// Arrange
	b := newTestBuilder(t)

	// Act
	term := b.courseStability()

	// Assert: only course 11 (two sessions) gets indicators; course 10 none.
	// Room indicators: 2 rooms with 1 excess slack; building indicators: 2
	// buildings with 1 excess slack.
	assert.Equal(t, 2, term.Expr.Len())
	for _, link := range term.Links {
		id, ok := link.ID.(SoftLinkID)
		require.True(t, ok)
		assert.Equal(t, TermCourseStability, id.Term)
	}
}
