package schedule

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment is one scheduled session, reported with entity IDs.
type Assignment struct {
	Slot      int
	TeacherID int
	CourseID  int
	RoomID    int
}

// Schedule is the readable form of a solution: the active assignments,
// ordered by slot then course, plus the IDs of any courses the soft coverage
// mode dropped.
type Schedule struct {
	Assignments []Assignment
	Dropped     []int
}

// ExtractSchedule reads the assignment variables of a solution back into
// entity terms.
func ExtractSchedule(compiled *CompiledModel, values []bool) Schedule {
	inst := compiled.Instance
	assignments := []Assignment{}
	for _, v := range compiled.Space.All() {
		if !values[v] {
			continue
		}
		slot, teacher, course, room := compiled.Space.Attributes(v)
		assignments = append(assignments, Assignment{
			Slot:      slot,
			TeacherID: inst.Teachers[teacher].ID,
			CourseID:  inst.Courses[course].ID,
			RoomID:    inst.Rooms[room].ID,
		})
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].Slot != assignments[j].Slot {
			return assignments[i].Slot < assignments[j].Slot
		}
		return assignments[i].CourseID < assignments[j].CourseID
	})

	dropped := []int{}
	for course, drop := range compiled.DropVars {
		if values[drop] {
			dropped = append(dropped, inst.Courses[course].ID)
		}
	}
	sort.Ints(dropped)

	return Schedule{Assignments: assignments, Dropped: dropped}
}

// BySemester groups assignments by the semesters attending their course.
// A course shared by two semesters appears under both.
func (s Schedule) BySemester(inst *Instance) map[Semester][]Assignment {
	bySem := map[Semester][]Assignment{}
	courseSemesters := map[int][]Semester{}
	for _, course := range inst.Courses {
		courseSemesters[course.ID] = course.SemesterSet()
	}
	for _, a := range s.Assignments {
		for _, sem := range courseSemesters[a.CourseID] {
			bySem[sem] = append(bySem[sem], a)
		}
	}
	return bySem
}

// SemesterViews keys the per-semester grouping by "PROGRAM-NUMBER" tags, the
// same encoding the CSV semester cells use, so it serializes cleanly.
func (s Schedule) SemesterViews(inst *Instance) map[string][]Assignment {
	views := map[string][]Assignment{}
	for sem, assignments := range s.BySemester(inst) {
		views[fmt.Sprintf("%s-%d", sem.Program, sem.Number)] = assignments
	}
	return views
}

// SessionCounts tallies scheduled sessions per course ID.
func (s Schedule) SessionCounts() map[int]int {
	counts := map[int]int{}
	for _, a := range s.Assignments {
		counts[a.CourseID]++
	}
	return counts
}

// Render writes the schedule as a day-by-day table keyed on the horizon.
func (s Schedule) Render(inst *Instance) string {
	var sb strings.Builder
	for day, bounds := range inst.Horizon.Days {
		fmt.Fprintf(&sb, "day %d\n", day)
		for _, slot := range bounds.Slots() {
			for _, a := range s.Assignments {
				if a.Slot != slot {
					continue
				}
				fmt.Fprintf(&sb, "  slot %d: course %d, teacher %d, room %d\n",
					a.Slot, a.CourseID, a.TeacherID, a.RoomID)
			}
		}
	}
	if len(s.Dropped) > 0 {
		fmt.Fprintf(&sb, "dropped courses: %v\n", s.Dropped)
	}
	return sb.String()
}
