package schedule

import "stundenplan/internal/mip"

// Hard constraint families. Each method is a total function from the instance
// and the variable table to a set of constraints; the families are idempotent
// and commute, so the order they are applied in carries no meaning.
//
// Impossible quadruples (wrong room type, room too small, teacher
// unavailable) are forbidden by fixing their variables to zero under a named
// identifier rather than by omitting them from the space. The model gets
// bigger, but an infeasibility verdict can then name the family and entities
// responsible.

// roomExclusivity: at most one active assignment per (room, slot).
func (b *builder) roomExclusivity() []mip.Constraint {
	constraints := make([]mip.Constraint, 0, len(b.inst.Rooms)*b.inst.Horizon.NumSlots)
	for room, roomEntity := range b.inst.Rooms {
		for slot := 0; slot < b.inst.Horizon.NumSlots; slot++ {
			id := RoomExclusivityID{Room: roomEntity.ID, Slot: slot}
			constraints = append(constraints, mip.SumLE(id, b.space.ForRoomSlot(room, slot), 1))
		}
	}
	return constraints
}

// teacherExclusivity: at most one active assignment per (teacher, slot).
func (b *builder) teacherExclusivity() []mip.Constraint {
	constraints := make([]mip.Constraint, 0, len(b.inst.Teachers)*b.inst.Horizon.NumSlots)
	for teacher, teacherEntity := range b.inst.Teachers {
		for slot := 0; slot < b.inst.Horizon.NumSlots; slot++ {
			id := TeacherExclusivityID{Teacher: teacherEntity.ID, Slot: slot}
			constraints = append(constraints, mip.SumLE(id, b.space.ForTeacherSlot(teacher, slot), 1))
		}
	}
	return constraints
}

// semesterNonOverlap: students of one semester cannot attend two courses at
// once, so the semester's courses share at most one assignment per slot.
func (b *builder) semesterNonOverlap() []mip.Constraint {
	constraints := []mip.Constraint{}
	for _, semester := range b.inst.Semesters() {
		courses := b.inst.SemesterCourses(semester)
		for slot := 0; slot < b.inst.Horizon.NumSlots; slot++ {
			vars := []mip.Var{}
			for _, course := range courses {
				vars = append(vars, b.space.ForCourseSlot(course, slot)...)
			}
			id := SemesterOverlapID{Semester: semester, Slot: slot}
			constraints = append(constraints, mip.SumLE(id, vars, 1))
		}
	}
	return constraints
}

// teacherUnavailability: hard-unavailable slots are forced off for every
// course and room.
func (b *builder) teacherUnavailability() []mip.Constraint {
	constraints := []mip.Constraint{}
	for teacher, teacherEntity := range b.inst.Teachers {
		for _, slot := range teacherEntity.HardSlots {
			id := TeacherUnavailableID{Teacher: teacherEntity.ID, Slot: slot}
			constraints = append(constraints, mip.FixZero(id, b.space.ForTeacherSlot(teacher, slot)))
		}
	}
	return constraints
}

// courseUnavailability: a course's own hard time preferences.
func (b *builder) courseUnavailability() []mip.Constraint {
	constraints := []mip.Constraint{}
	for course, courseEntity := range b.inst.Courses {
		for _, slot := range courseEntity.HardSlots {
			id := CourseUnavailableID{Course: courseEntity.ID, Slot: slot}
			constraints = append(constraints, mip.FixZero(id, b.space.ForCourseSlot(course, slot)))
		}
	}
	return constraints
}

// roomCapacity: a course with more expected students than the room holds is
// forced out of that room everywhere.
func (b *builder) roomCapacity() []mip.Constraint {
	constraints := []mip.Constraint{}
	for course, courseEntity := range b.inst.Courses {
		for room, roomEntity := range b.inst.Rooms {
			if courseEntity.ExpectedStudents > roomEntity.Capacity {
				id := RoomCapacityID{Course: courseEntity.ID, Room: roomEntity.ID}
				constraints = append(constraints, mip.FixZero(id, b.space.ForCourseRoom(course, room)))
			}
		}
	}
	return constraints
}

// roomType: rooms outside the course's allowed-type closure are forced off.
func (b *builder) roomType() []mip.Constraint {
	constraints := []mip.Constraint{}
	for course, courseEntity := range b.inst.Courses {
		for room, roomEntity := range b.inst.Rooms {
			if !courseEntity.AcceptsRoomType(roomEntity.Type) {
				id := RoomTypeID{Course: courseEntity.ID, Room: roomEntity.ID, Needed: courseEntity.AllowedRoomTypes}
				constraints = append(constraints, mip.FixZero(id, b.space.ForCourseRoom(course, room)))
			}
		}
	}
	return constraints
}

// teacherCompatibility: a course with a resolvable teacher list forces every
// other teacher off. An empty list allows any teacher.
func (b *builder) teacherCompatibility() []mip.Constraint {
	constraints := []mip.Constraint{}
	for course, courseEntity := range b.inst.Courses {
		if len(courseEntity.TeacherIDs) == 0 {
			continue
		}
		allowed := map[int]bool{}
		for _, teacherID := range courseEntity.TeacherIDs {
			allowed[teacherID] = true
		}
		for teacher, teacherEntity := range b.inst.Teachers {
			if allowed[teacherEntity.ID] {
				continue
			}
			id := TeacherCompatibilityID{Course: courseEntity.ID, Teacher: teacherEntity.ID}
			constraints = append(constraints, mip.FixZero(id, b.space.ForTeacherCourse(teacher, course)))
		}
	}
	return constraints
}

// coverage emits the hard coverage variants. Soft coverage is handled by the
// compiler, which owns the drop indicators.
func (b *builder) coverage(exact bool) []mip.Constraint {
	constraints := []mip.Constraint{}
	for course, courseEntity := range b.inst.Courses {
		sessions := courseEntity.Sessions()
		if sessions == 0 {
			continue
		}
		id := CoverageID{Course: courseEntity.ID}
		if exact {
			constraints = append(constraints, mip.SumEQ(id, b.space.ForCourse(course), sessions))
		} else {
			constraints = append(constraints, mip.SumGE(id, b.space.ForCourse(course), 1))
		}
	}
	return constraints
}
