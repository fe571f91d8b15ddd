package schedule

import "stundenplan/internal/mip"

// VarSpace is the dense decision-variable table: one boolean per
// (slot, teacher, course, room) quadruple, addressed by a mixed-radix index
// for O(1) lookup. The space is deliberately not pruned; impossible
// quadruples are instead fixed to zero by named hard constraints so the
// diagnoser can later tell why a quadruple is off.
type VarSpace struct {
	slots    int
	teachers int
	courses  int
	rooms    int
	base     mip.Var
}

// NewVarSpace allocates the full variable table on the model.
func NewVarSpace(model *mip.Model, slots, teachers, courses, rooms int) *VarSpace {
	space := &VarSpace{
		slots:    slots,
		teachers: teachers,
		courses:  courses,
		rooms:    rooms,
	}
	space.base = model.NewVars(space.Size())
	return space
}

// Size returns the number of decision variables in the space.
func (sp *VarSpace) Size() int {
	return sp.slots * sp.teachers * sp.courses * sp.rooms
}

// X returns the variable for (slot, teacher, course, room).
func (sp *VarSpace) X(slot, teacher, course, room int) mip.Var {
	return sp.base + mip.Var(slot+sp.slots*(teacher+sp.teachers*(course+sp.courses*room)))
}

// Attributes recovers the quadruple a variable stands for.
func (sp *VarSpace) Attributes(v mip.Var) (slot, teacher, course, room int) {
	index := int(v - sp.base)

	slot = index % sp.slots
	index /= sp.slots

	teacher = index % sp.teachers
	index /= sp.teachers

	course = index % sp.courses
	index /= sp.courses

	room = index

	return slot, teacher, course, room
}

// All enumerates every decision variable of the space.
func (sp *VarSpace) All() []mip.Var {
	vars := make([]mip.Var, sp.Size())
	for i := range vars {
		vars[i] = sp.base + mip.Var(i)
	}
	return vars
}

// ForRoomSlot enumerates all variables of (room, slot) across teachers and
// courses.
func (sp *VarSpace) ForRoomSlot(room, slot int) []mip.Var {
	vars := make([]mip.Var, 0, sp.teachers*sp.courses)
	for teacher := 0; teacher < sp.teachers; teacher++ {
		for course := 0; course < sp.courses; course++ {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}

// ForTeacherSlot enumerates all variables of (teacher, slot) across courses
// and rooms.
func (sp *VarSpace) ForTeacherSlot(teacher, slot int) []mip.Var {
	vars := make([]mip.Var, 0, sp.courses*sp.rooms)
	for course := 0; course < sp.courses; course++ {
		for room := 0; room < sp.rooms; room++ {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}

// ForCourse enumerates all variables of a course across slots, teachers and
// rooms.
func (sp *VarSpace) ForCourse(course int) []mip.Var {
	vars := make([]mip.Var, 0, sp.slots*sp.teachers*sp.rooms)
	for slot := 0; slot < sp.slots; slot++ {
		for teacher := 0; teacher < sp.teachers; teacher++ {
			for room := 0; room < sp.rooms; room++ {
				vars = append(vars, sp.X(slot, teacher, course, room))
			}
		}
	}
	return vars
}

// ForCourseSlot enumerates all variables of (course, slot) across teachers
// and rooms.
func (sp *VarSpace) ForCourseSlot(course, slot int) []mip.Var {
	vars := make([]mip.Var, 0, sp.teachers*sp.rooms)
	for teacher := 0; teacher < sp.teachers; teacher++ {
		for room := 0; room < sp.rooms; room++ {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}

// ForCourseRoom enumerates all variables of (course, room) across slots and
// teachers.
func (sp *VarSpace) ForCourseRoom(course, room int) []mip.Var {
	vars := make([]mip.Var, 0, sp.slots*sp.teachers)
	for slot := 0; slot < sp.slots; slot++ {
		for teacher := 0; teacher < sp.teachers; teacher++ {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}

// ForTeacherCourse enumerates all variables of (teacher, course) across slots
// and rooms.
func (sp *VarSpace) ForTeacherCourse(teacher, course int) []mip.Var {
	vars := make([]mip.Var, 0, sp.slots*sp.rooms)
	for slot := 0; slot < sp.slots; slot++ {
		for room := 0; room < sp.rooms; room++ {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}

// ForTeacherSlotRooms enumerates the variables of (teacher, slot) restricted
// to the given rooms, across courses.
func (sp *VarSpace) ForTeacherSlotRooms(teacher, slot int, rooms []int) []mip.Var {
	vars := make([]mip.Var, 0, sp.courses*len(rooms))
	for course := 0; course < sp.courses; course++ {
		for _, room := range rooms {
			vars = append(vars, sp.X(slot, teacher, course, room))
		}
	}
	return vars
}
