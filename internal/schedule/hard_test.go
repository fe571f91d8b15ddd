package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stundenplan/internal/mip"
)

// fixtureInstance is a small but fully featured instance: two days of two
// slots, a hard-unavailable teacher slot, a room too small for one course and
// a room type only the seminar course accepts.
func fixtureInstance() *Instance {
	return &Instance{
		Teachers: []Teacher{
			{ID: 1, Name: "Maier", Faculty: FacultyBU, HardSlots: []int{0}, SoftSlots: []int{1}},
			{ID: 2, Name: "Schulz", Faculty: FacultyAU},
		},
		Courses: []Course{
			{
				ID:               10,
				Name:             "Statik",
				Faculty:          FacultyBU,
				ExpectedStudents: 20,
				Semesters:        []SemesterTag{{Program: "INF", Number: 1}},
				AllowedRoomTypes: []RoomType{Lecture},
				TimesPerWeek:     1,
				TeacherIDs:       []int{1},
			},
			{
				ID:               11,
				Name:             "Projektseminar",
				Faculty:          FacultyAU,
				ExpectedStudents: 10,
				Semesters:        []SemesterTag{{Program: "INF", Number: 1}},
				AllowedRoomTypes: []RoomType{Seminar},
				TimesPerWeek:     2,
			},
		},
		Rooms: []Room{
			{ID: 100, Name: "H1", Building: BuildingGSS, Type: Lecture, Faculty: FacultyBU, Capacity: 30},
			{ID: 101, Name: "PC2", Building: BuildingM13, Type: Computer, Faculty: FacultyAU, Capacity: 15},
		},
		Horizon: HorizonFromDaySizes(2, 2),
	}
}

func familyCounts(constraints []mip.Constraint) map[string]int {
	counts := map[string]int{}
	for _, c := range constraints {
		if c.ID != nil {
			counts[c.ID.Family()]++
		}
	}
	return counts
}

func TestHardConstraintFamilies(t *testing.T) {
	// Arrange
	inst := fixtureInstance()
	cfg := DefaultConfig()
	cfg.Enabled = map[string]bool{}

	// Act
	compiled, err := Compile(inst, cfg)
	require.NoError(t, err)

	// Assert
	counts := familyCounts(compiled.Model.Constraints)
	assert.Equal(t, 2*4, counts[FamilyRoomExclusivity])
	assert.Equal(t, 2*4, counts[FamilyTeacherExclusivity])
	assert.Equal(t, 4, counts[FamilySemesterOverlap])
	assert.Equal(t, 1, counts[FamilyTeacherUnavailable])
	assert.Equal(t, 1, counts[FamilyRoomCapacity])
	assert.Equal(t, 1, counts[FamilyRoomType])
	assert.Equal(t, 1, counts[FamilyTeacherCompatibility])
	assert.Equal(t, 2, counts[FamilyCoverage])
	assert.Zero(t, counts[FamilySoftLink])
}

func TestCompileIdempotent(t *testing.T) {
	// Arrange
	cfg := DefaultConfig()

	// Act
	first, err := Compile(fixtureInstance(), cfg)
	require.NoError(t, err)
	second, err := Compile(fixtureInstance(), cfg)
	require.NoError(t, err)

	// Assert: same variable count, same constraint families and
	// cardinalities, same objective structure.
	assert.Equal(t, first.Model.NumVars(), second.Model.NumVars())
	assert.Equal(t, familyCounts(first.Model.Constraints), familyCounts(second.Model.Constraints))
	assert.Equal(t, first.Model.Objective.Terms(), second.Model.Objective.Terms())
	assert.Equal(t, first.Composer.Names(), second.Composer.Names())
}

func TestCoverageModes(t *testing.T) {
	inst := fixtureInstance()

	t.Run("exact pins session counts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Coverage = CoverExact
		compiled, err := Compile(inst, cfg)
		require.NoError(t, err)
		for _, c := range compiled.Model.Constraints {
			if id, ok := c.ID.(CoverageID); ok {
				assert.Equal(t, mip.EQ, c.Sense)
				if id.Course == 11 {
					assert.Equal(t, 2, c.RHS)
				}
			}
		}
	})

	t.Run("at-least-once lower-bounds", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Coverage = CoverAtLeastOnce
		compiled, err := Compile(inst, cfg)
		require.NoError(t, err)
		for _, c := range compiled.Model.Constraints {
			if _, ok := c.ID.(CoverageID); ok {
				assert.Equal(t, mip.GE, c.Sense)
				assert.Equal(t, 1, c.RHS)
			}
		}
	})

	t.Run("soft allocates drop indicators", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Coverage = CoverSoft
		compiled, err := Compile(inst, cfg)
		require.NoError(t, err)
		assert.Len(t, compiled.DropVars, 2)
		counts := familyCounts(compiled.Model.Constraints)
		assert.Zero(t, counts[FamilyCoverage])
		assert.Equal(t, 2, counts[FamilyCoverageChoice])
		assert.Contains(t, compiled.Composer.Names(), TermCourseDrop)
	})
}

func TestCompileRejectsBrokenInstances(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("no rooms", func(t *testing.T) {
		inst := fixtureInstance()
		inst.Rooms = nil
		_, err := Compile(inst, cfg)
		var construction *ModelConstructionError
		assert.ErrorAs(t, err, &construction)
	})

	t.Run("dangling teacher reference", func(t *testing.T) {
		inst := fixtureInstance()
		inst.Courses[0].TeacherIDs = []int{99}
		_, err := Compile(inst, cfg)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}
