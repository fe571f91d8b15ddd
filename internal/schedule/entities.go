package schedule

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Faculty is the affiliation of teachers, courses and rooms.
type Faculty int

const (
	FacultyBU Faculty = iota
	FacultyAU
	FacultyKG
	FacultyM
)

var facultyNames = map[Faculty]string{
	FacultyBU: "BU",
	FacultyAU: "AU",
	FacultyKG: "KG",
	FacultyM:  "M",
}

func (f Faculty) String() string {
	if name, ok := facultyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Faculty(%d)", int(f))
}

// ParseFaculty strictly parses a faculty code.
func ParseFaculty(code string) (Faculty, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for faculty, name := range facultyNames {
		if name == normalized {
			return faculty, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "faculty", Code: code}
}

// RoomType classifies what a room is equipped for.
type RoomType int

const (
	Lecture RoomType = iota
	Lab
	Computer
	Seminar
)

var roomTypeNames = map[RoomType]string{
	Lecture:  "LECTURE",
	Lab:      "LAB",
	Computer: "COMPUTER",
	Seminar:  "SEMINAR",
}

// roomTypeSynonyms is the single place where tolerated legacy spellings are
// declared. "LAB" stays a type of its own and is deliberately not mapped to
// COMPUTER, diverging from one historical data loader.
var roomTypeSynonyms = map[string]string{
	"PC":       "COMPUTER",
	"PCPOOL":   "COMPUTER",
	"POOL":     "COMPUTER",
	"HOERSAAL": "LECTURE",
	"HÖRSAAL":  "LECTURE",
}

func (r RoomType) String() string {
	if name, ok := roomTypeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RoomType(%d)", int(r))
}

// ParseRoomType strictly parses a room-type code, tolerating only the
// declared synonyms.
func ParseRoomType(code string) (RoomType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := roomTypeSynonyms[normalized]; ok {
		normalized = canonical
	}
	for roomType, name := range roomTypeNames {
		if name == normalized {
			return roomType, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "room type", Code: code}
}

// Building is the physical location of a room.
type Building int

const (
	BuildingGSS Building = iota
	BuildingM13
	BuildingC11
)

var buildingNames = map[Building]string{
	BuildingGSS: "GSS",
	BuildingM13: "M13",
	BuildingC11: "C11",
}

func (b Building) String() string {
	if name, ok := buildingNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Building(%d)", int(b))
}

// ParseBuilding strictly parses a building code.
func ParseBuilding(code string) (Building, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for building, name := range buildingNames {
		if name == normalized {
			return building, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "building", Code: code}
}

// SemesterTag marks a course as part of a study program's semester. A course
// may carry several tags at once.
type SemesterTag struct {
	Program string
	Number  int
	Type    string // course type within the program, e.g. "lecture" or "tutorial"
}

// Semester identifies the cohort of students that cannot attend two courses
// simultaneously.
type Semester struct {
	Program string
	Number  int
}

func (s Semester) String() string {
	return fmt.Sprintf("%v sem %v", s.Program, s.Number)
}

func (t SemesterTag) Semester() Semester {
	return Semester{Program: t.Program, Number: t.Number}
}

// Teacher is an immutable value object describing one lecturer.
type Teacher struct {
	ID        int
	Name      string
	Faculty   Faculty
	CourseIDs []int // courses this teacher can teach
	HardSlots []int // absolutely unavailable slots
	SoftSlots []int // undesired but usable slots
}

func (t Teacher) Validate(horizon Horizon) error {
	if err := validateSlots("teacher", t.ID, "hard_slots", t.HardSlots, horizon); err != nil {
		return err
	}
	return validateSlots("teacher", t.ID, "soft_slots", t.SoftSlots, horizon)
}

// Course is an immutable value object describing one teaching unit.
type Course struct {
	ID               int
	Name             string
	Faculty          Faculty
	ExpectedStudents int
	Semesters        []SemesterTag
	AllowedRoomTypes []RoomType
	TimesPerWeek     float64
	TeacherIDs       []int // teachers allowed to hold it; empty means anyone
	HardSlots        []int
	SoftSlots        []int
}

func (c Course) Validate(horizon Horizon) error {
	if c.ExpectedStudents < 0 {
		return &ValidationError{Entity: "course", ID: c.ID, Field: "expected_students", Reason: "must be non-negative"}
	}
	if len(c.AllowedRoomTypes) == 0 {
		return &ValidationError{Entity: "course", ID: c.ID, Field: "allowed_room_types", Reason: "must not be empty"}
	}
	if c.TimesPerWeek < 0 {
		return &ValidationError{Entity: "course", ID: c.ID, Field: "times_per_week", Reason: "must be non-negative"}
	}
	if err := validateSlots("course", c.ID, "hard_slots", c.HardSlots, horizon); err != nil {
		return err
	}
	return validateSlots("course", c.ID, "soft_slots", c.SoftSlots, horizon)
}

// Sessions is how many sessions the course needs on the planning horizon.
// Fractional frequencies (biweekly courses) still reserve a weekly slot.
func (c Course) Sessions() int {
	return int(math.Ceil(c.TimesPerWeek))
}

// AcceptsRoomType applies the room-type closure: a seminar-sized course can
// use any larger-capability room, while every other requirement is literal.
func (c Course) AcceptsRoomType(roomType RoomType) bool {
	if lo.Contains(c.AllowedRoomTypes, Seminar) {
		return true
	}
	return lo.Contains(c.AllowedRoomTypes, roomType)
}

// SemesterSet returns the deduplicated semesters this course belongs to.
func (c Course) SemesterSet() []Semester {
	return lo.Uniq(lo.Map(c.Semesters, func(tag SemesterTag, _ int) Semester { return tag.Semester() }))
}

// Room is an immutable value object describing one teaching room.
type Room struct {
	ID       int
	Name     string
	Building Building
	Type     RoomType
	Faculty  Faculty
	Capacity int
}

func (r Room) Validate() error {
	if r.Capacity < 0 {
		return &ValidationError{Entity: "room", ID: r.ID, Field: "capacity", Reason: "must be non-negative"}
	}
	return nil
}

func validateSlots(entity string, id int, field string, slots []int, horizon Horizon) error {
	for _, slot := range slots {
		if slot < 0 || slot >= horizon.NumSlots {
			return &ValidationError{
				Entity: entity,
				ID:     id,
				Field:  field,
				Reason: fmt.Sprintf("slot %v outside horizon [0, %v)", slot, horizon.NumSlots),
			}
		}
	}
	return nil
}

// Instance bundles the validated entities handed over by ingestion.
type Instance struct {
	Teachers []Teacher
	Courses  []Course
	Rooms    []Room
	Horizon  Horizon
}

// Validate checks every entity and the structural assumptions constraint
// generation relies on: each teacher reference must resolve.
func (inst *Instance) Validate() error {
	if err := inst.Horizon.Validate(); err != nil {
		return err
	}

	teacherIDs := lo.SliceToMap(inst.Teachers, func(t Teacher) (int, struct{}) { return t.ID, struct{}{} })

	for _, teacher := range inst.Teachers {
		if err := teacher.Validate(inst.Horizon); err != nil {
			return err
		}
	}
	for _, course := range inst.Courses {
		if err := course.Validate(inst.Horizon); err != nil {
			return err
		}
		for _, teacherID := range course.TeacherIDs {
			if _, ok := teacherIDs[teacherID]; !ok {
				return &ValidationError{
					Entity: "course",
					ID:     course.ID,
					Field:  "teacher_ids",
					Reason: fmt.Sprintf("teacher %v does not exist", teacherID),
				}
			}
		}
	}
	for _, room := range inst.Rooms {
		if err := room.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Semesters returns every semester appearing in the instance, in first-seen
// course order so compilation stays deterministic.
func (inst *Instance) Semesters() []Semester {
	semesters := []Semester{}
	for _, course := range inst.Courses {
		for _, semester := range course.SemesterSet() {
			if !lo.Contains(semesters, semester) {
				semesters = append(semesters, semester)
			}
		}
	}
	return semesters
}

// SemesterCourses returns the indices of the courses sharing the semester.
func (inst *Instance) SemesterCourses(semester Semester) []int {
	indices := []int{}
	for i, course := range inst.Courses {
		if lo.Contains(course.SemesterSet(), semester) {
			indices = append(indices, i)
		}
	}
	return indices
}
