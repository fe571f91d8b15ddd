package schedule

// Constraint identifier variants. Every hard constraint family carries one of
// these as its structured identifier; the infeasibility diagnoser classifies
// a conflict set by type-switching on them, so entity ids never travel
// through strings.

const (
	FamilyRoomExclusivity      = "room_exclusivity"
	FamilyTeacherExclusivity   = "teacher_exclusivity"
	FamilySemesterOverlap      = "semester_overlap"
	FamilyTeacherUnavailable   = "teacher_unavailable"
	FamilyCourseUnavailable    = "course_unavailable"
	FamilyRoomCapacity         = "room_capacity"
	FamilyRoomType             = "room_type"
	FamilyCoverage             = "course_coverage"
	FamilyCoverageChoice       = "course_coverage_choice"
	FamilyTeacherCompatibility = "course_teacher_compatibility"
	FamilySoftLink             = "soft_link"
)

// RoomExclusivityID: at most one assignment per (room, slot).
type RoomExclusivityID struct {
	Room int
	Slot int
}

func (RoomExclusivityID) Family() string { return FamilyRoomExclusivity }

// TeacherExclusivityID: at most one assignment per (teacher, slot).
type TeacherExclusivityID struct {
	Teacher int
	Slot    int
}

func (TeacherExclusivityID) Family() string { return FamilyTeacherExclusivity }

// SemesterOverlapID: at most one assignment per (semester, slot).
type SemesterOverlapID struct {
	Semester Semester
	Slot     int
}

func (SemesterOverlapID) Family() string { return FamilySemesterOverlap }

// TeacherUnavailableID: teacher forced off a hard-unavailable slot.
type TeacherUnavailableID struct {
	Teacher int
	Slot    int
}

func (TeacherUnavailableID) Family() string { return FamilyTeacherUnavailable }

// CourseUnavailableID: course forced off a hard-unavailable slot.
type CourseUnavailableID struct {
	Course int
	Slot   int
}

func (CourseUnavailableID) Family() string { return FamilyCourseUnavailable }

// RoomCapacityID: course cannot fit into the room.
type RoomCapacityID struct {
	Course int
	Room   int
}

func (RoomCapacityID) Family() string { return FamilyRoomCapacity }

// RoomTypeID: room type not acceptable for the course. Needed carries the
// course's requirement so the diagnoser can report which types were
// unsatisfiable.
type RoomTypeID struct {
	Course int
	Room   int
	Needed []RoomType
}

func (RoomTypeID) Family() string { return FamilyRoomType }

// CoverageID: the course must be scheduled.
type CoverageID struct {
	Course int
}

func (CoverageID) Family() string { return FamilyCoverage }

// CoverageChoiceID: soft-coverage equality trading the course against its
// drop indicator.
type CoverageChoiceID struct {
	Course int
}

func (CoverageChoiceID) Family() string { return FamilyCoverageChoice }

// TeacherCompatibilityID: the teacher is not among the course's allowed
// teachers.
type TeacherCompatibilityID struct {
	Course  int
	Teacher int
}

func (TeacherCompatibilityID) Family() string { return FamilyTeacherCompatibility }

// SoftLinkID: auxiliary-variable linking constraint owned by a soft term.
// Always individually satisfiable, so it can never be part of an irreducible
// conflict.
type SoftLinkID struct {
	Term string
	Seq  int
}

func (SoftLinkID) Family() string { return FamilySoftLink }
