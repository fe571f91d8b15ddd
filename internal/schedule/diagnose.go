package schedule

import (
	"context"
	"sort"

	"stundenplan/internal/mip"

	"github.com/samber/lo"
)

// Diagnosis distills an irreducible conflict set into entity terms. The
// fields are filled per classification priority: a teacher pinned by
// unavailability beats a bare coverage verdict, which beats a room-type
// shortage; slots and types are only reported when the conflict names them.
type Diagnosis struct {
	// UnschedulableCourses lists course IDs whose coverage participates in
	// the conflict.
	UnschedulableCourses []int
	// TeacherBlockedSlots maps teacher ID to the hard-unavailable slots of
	// that teacher participating in the conflict.
	TeacherBlockedSlots map[int][]int
	// MissingRoomTypes maps course ID to the room types the conflict shows
	// no acceptable room for.
	MissingRoomTypes map[int][]RoomType
	// CongestedSemesters lists semesters whose non-overlap constraints
	// participate.
	CongestedSemesters []Semester
	// Conflict is the raw irreducible set for callers that want it all.
	Conflict []mip.ConstraintID
}

// Empty reports whether the solver returned no conflict to classify, e.g.
// when conflict search was disabled.
func (d Diagnosis) Empty() bool {
	return len(d.Conflict) == 0
}

// Diagnose classifies an irreducible conflict set by constraint family.
func Diagnose(conflict []mip.ConstraintID) Diagnosis {
	d := Diagnosis{
		TeacherBlockedSlots: map[int][]int{},
		MissingRoomTypes:    map[int][]RoomType{},
		Conflict:            conflict,
	}
	for _, id := range conflict {
		switch c := id.(type) {
		case CoverageID:
			d.UnschedulableCourses = append(d.UnschedulableCourses, c.Course)
		case CoverageChoiceID:
			d.UnschedulableCourses = append(d.UnschedulableCourses, c.Course)
		case TeacherUnavailableID:
			d.TeacherBlockedSlots[c.Teacher] = append(d.TeacherBlockedSlots[c.Teacher], c.Slot)
		case RoomTypeID:
			d.MissingRoomTypes[c.Course] = lo.Uniq(append(d.MissingRoomTypes[c.Course], c.Needed...))
		case SemesterOverlapID:
			if !lo.Contains(d.CongestedSemesters, c.Semester) {
				d.CongestedSemesters = append(d.CongestedSemesters, c.Semester)
			}
		}
	}
	d.UnschedulableCourses = lo.Uniq(d.UnschedulableCourses)
	sort.Ints(d.UnschedulableCourses)
	for teacher, slots := range d.TeacherBlockedSlots {
		slots = lo.Uniq(slots)
		sort.Ints(slots)
		d.TeacherBlockedSlots[teacher] = slots
	}
	return d
}

// Outcome is the end-to-end result of a solve: verdict, schedule and
// objective breakdown on success, diagnosis on proven infeasibility.
type Outcome struct {
	Status    mip.Status
	Schedule  Schedule
	Objective float64
	Breakdown map[string]float64
	Diagnosis Diagnosis
}

// Solve runs a compiled model through a solver and interprets the result.
// On SAT outcomes the schedule and the per-term breakdown are extracted; on
// proven infeasibility the conflict set is classified. Solver failures pass
// through as errors.
func Solve(ctx context.Context, compiled *CompiledModel, solver mip.Solver, opts mip.Options) (Outcome, error) {
	result, err := solver.Solve(ctx, compiled.Model, opts)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Status: result.Status}
	switch result.Status {
	case mip.StatusOptimal, mip.StatusSuboptimal, mip.StatusTimeLimit:
		if len(result.Values) == 0 {
			break
		}
		outcome.Schedule = ExtractSchedule(compiled, result.Values)
		outcome.Breakdown = compiled.Composer.Breakdown(result.Values)
		outcome.Objective = compiled.Composer.Total(result.Values)
	case mip.StatusInfeasible:
		outcome.Diagnosis = Diagnose(result.Conflict)
	}
	return outcome, nil
}
