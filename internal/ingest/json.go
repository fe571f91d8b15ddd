// Package ingest loads scheduling instances from JSON and CSV files into the
// validated entity model.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"stundenplan/internal/schedule"
)

type teacherRecord struct {
	ID        int    `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Faculty   string `mapstructure:"faculty"`
	Courses   []int  `mapstructure:"courses"`
	HardSlots []int  `mapstructure:"hardSlots"`
	SoftSlots []int  `mapstructure:"softSlots"`
}

type semesterRecord struct {
	Program string `mapstructure:"program"`
	Number  int    `mapstructure:"number"`
	Type    string `mapstructure:"type"`
}

type courseRecord struct {
	ID               int              `mapstructure:"id"`
	Name             string           `mapstructure:"name"`
	Faculty          string           `mapstructure:"faculty"`
	ExpectedStudents int              `mapstructure:"expectedStudents"`
	Semesters        []semesterRecord `mapstructure:"semesters"`
	RoomTypes        []string         `mapstructure:"roomTypes"`
	TimesPerWeek     float64          `mapstructure:"timesPerWeek"`
	Teachers         []int            `mapstructure:"teachers"`
	HardSlots        []int            `mapstructure:"hardSlots"`
	SoftSlots        []int            `mapstructure:"softSlots"`
}

type roomRecord struct {
	ID       int    `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Building string `mapstructure:"building"`
	Type     string `mapstructure:"type"`
	Faculty  string `mapstructure:"faculty"`
	Capacity int    `mapstructure:"capacity"`
}

type instanceDocument struct {
	Teachers []teacherRecord `mapstructure:"teachers"`
	Courses  []courseRecord  `mapstructure:"courses"`
	Rooms    []roomRecord    `mapstructure:"rooms"`
	DaySizes []int           `mapstructure:"daySizes"`
}

// InstanceFromJSON reads an instance document from a JSON file and resolves
// all coded fields against the entity vocabulary.
func InstanceFromJSON(file string) (*schedule.Instance, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("cannot parse input file: %w", err)
	}
	var doc instanceDocument
	if err := mapstructure.Decode(generic, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode input document: %w", err)
	}
	return buildInstance(doc)
}

func buildInstance(doc instanceDocument) (*schedule.Instance, error) {
	inst := &schedule.Instance{
		Horizon: schedule.HorizonFromDaySizes(doc.DaySizes...),
	}

	for _, record := range doc.Teachers {
		faculty, err := schedule.ParseFaculty(record.Faculty)
		if err != nil {
			return nil, err
		}
		inst.Teachers = append(inst.Teachers, schedule.Teacher{
			ID:        record.ID,
			Name:      record.Name,
			Faculty:   faculty,
			CourseIDs: record.Courses,
			HardSlots: record.HardSlots,
			SoftSlots: record.SoftSlots,
		})
	}

	for _, record := range doc.Courses {
		course, err := buildCourse(record)
		if err != nil {
			return nil, err
		}
		inst.Courses = append(inst.Courses, course)
	}

	for _, record := range doc.Rooms {
		room, err := buildRoom(record)
		if err != nil {
			return nil, err
		}
		inst.Rooms = append(inst.Rooms, room)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func buildCourse(record courseRecord) (schedule.Course, error) {
	faculty, err := schedule.ParseFaculty(record.Faculty)
	if err != nil {
		return schedule.Course{}, err
	}
	roomTypes := make([]schedule.RoomType, 0, len(record.RoomTypes))
	for _, code := range record.RoomTypes {
		roomType, err := schedule.ParseRoomType(code)
		if err != nil {
			return schedule.Course{}, err
		}
		roomTypes = append(roomTypes, roomType)
	}
	semesters := make([]schedule.SemesterTag, 0, len(record.Semesters))
	for _, sem := range record.Semesters {
		semesters = append(semesters, schedule.SemesterTag{Program: sem.Program, Number: sem.Number, Type: sem.Type})
	}
	return schedule.Course{
		ID:               record.ID,
		Name:             record.Name,
		Faculty:          faculty,
		ExpectedStudents: record.ExpectedStudents,
		Semesters:        semesters,
		AllowedRoomTypes: roomTypes,
		TimesPerWeek:     record.TimesPerWeek,
		TeacherIDs:       record.Teachers,
		HardSlots:        record.HardSlots,
		SoftSlots:        record.SoftSlots,
	}, nil
}

func buildRoom(record roomRecord) (schedule.Room, error) {
	building, err := schedule.ParseBuilding(record.Building)
	if err != nil {
		return schedule.Room{}, err
	}
	roomType, err := schedule.ParseRoomType(record.Type)
	if err != nil {
		return schedule.Room{}, err
	}
	faculty, err := schedule.ParseFaculty(record.Faculty)
	if err != nil {
		return schedule.Room{}, err
	}
	return schedule.Room{
		ID:       record.ID,
		Name:     record.Name,
		Building: building,
		Type:     roomType,
		Faculty:  faculty,
		Capacity: record.Capacity,
	}, nil
}
