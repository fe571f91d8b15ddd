package ingest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"stundenplan/internal/schedule"
)

// List cells inside the CSV files use a pipe separator, e.g. "3|7|12" for
// slot lists and "INF-1|MED-3" for semester tags.
const listSeparator = "|"

type teacherRow struct {
	ID        int    `csv:"id"`
	Name      string `csv:"name"`
	Faculty   string `csv:"faculty"`
	Courses   string `csv:"courses"`
	HardSlots string `csv:"hard_slots"`
	SoftSlots string `csv:"soft_slots"`
}

type courseRow struct {
	ID               int     `csv:"id"`
	Name             string  `csv:"name"`
	Faculty          string  `csv:"faculty"`
	ExpectedStudents int     `csv:"expected_students"`
	Semesters        string  `csv:"semesters"`
	RoomTypes        string  `csv:"room_types"`
	TimesPerWeek     float64 `csv:"times_per_week"`
	Teachers         string  `csv:"teachers"`
	HardSlots        string  `csv:"hard_slots"`
	SoftSlots        string  `csv:"soft_slots"`
}

type roomRow struct {
	ID       int    `csv:"id"`
	Name     string `csv:"name"`
	Building string `csv:"building"`
	Type     string `csv:"type"`
	Faculty  string `csv:"faculty"`
	Capacity int    `csv:"capacity"`
}

// InstanceFromCSV reads an instance from three CSV files plus the day layout.
func InstanceFromCSV(teachersFile, coursesFile, roomsFile string, daySizes []int) (*schedule.Instance, error) {
	var teacherRows []teacherRow
	if err := readCSV(teachersFile, &teacherRows); err != nil {
		return nil, err
	}
	var courseRows []courseRow
	if err := readCSV(coursesFile, &courseRows); err != nil {
		return nil, err
	}
	var roomRows []roomRow
	if err := readCSV(roomsFile, &roomRows); err != nil {
		return nil, err
	}

	doc := instanceDocument{DaySizes: daySizes}
	for _, row := range teacherRows {
		courses, err := intList(row.Courses)
		if err != nil {
			return nil, fmt.Errorf("teacher %v: %w", row.ID, err)
		}
		hard, err := intList(row.HardSlots)
		if err != nil {
			return nil, fmt.Errorf("teacher %v: %w", row.ID, err)
		}
		soft, err := intList(row.SoftSlots)
		if err != nil {
			return nil, fmt.Errorf("teacher %v: %w", row.ID, err)
		}
		doc.Teachers = append(doc.Teachers, teacherRecord{
			ID:        row.ID,
			Name:      row.Name,
			Faculty:   row.Faculty,
			Courses:   courses,
			HardSlots: hard,
			SoftSlots: soft,
		})
	}
	for _, row := range courseRows {
		record, err := courseRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		doc.Courses = append(doc.Courses, record)
	}
	for _, row := range roomRows {
		doc.Rooms = append(doc.Rooms, roomRecord{
			ID:       row.ID,
			Name:     row.Name,
			Building: row.Building,
			Type:     row.Type,
			Faculty:  row.Faculty,
			Capacity: row.Capacity,
		})
	}
	return buildInstance(doc)
}

func courseRecordFromRow(row courseRow) (courseRecord, error) {
	teachers, err := intList(row.Teachers)
	if err != nil {
		return courseRecord{}, fmt.Errorf("course %v: %w", row.ID, err)
	}
	hard, err := intList(row.HardSlots)
	if err != nil {
		return courseRecord{}, fmt.Errorf("course %v: %w", row.ID, err)
	}
	soft, err := intList(row.SoftSlots)
	if err != nil {
		return courseRecord{}, fmt.Errorf("course %v: %w", row.ID, err)
	}
	semesters, err := semesterList(row.Semesters)
	if err != nil {
		return courseRecord{}, fmt.Errorf("course %v: %w", row.ID, err)
	}
	return courseRecord{
		ID:               row.ID,
		Name:             row.Name,
		Faculty:          row.Faculty,
		ExpectedStudents: row.ExpectedStudents,
		Semesters:        semesters,
		RoomTypes:        stringList(row.RoomTypes),
		TimesPerWeek:     row.TimesPerWeek,
		Teachers:         teachers,
		HardSlots:        hard,
		SoftSlots:        soft,
	}, nil
}

func readCSV(file string, out any) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("cannot parse %v: %w", file, err)
	}
	return nil
}

func stringList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, listSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func intList(cell string) ([]int, error) {
	parts := stringList(cell)
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		values = append(values, value)
	}
	return values, nil
}

// semesterList parses "INF-1|MED-3:tutorial" style tags: the program and an
// ordinal joined by the last dash, followed by an optional course type after
// a colon.
func semesterList(cell string) ([]semesterRecord, error) {
	parts := stringList(cell)
	semesters := make([]semesterRecord, 0, len(parts))
	for _, part := range parts {
		tag, courseType, _ := strings.Cut(part, ":")
		cut := strings.LastIndex(tag, "-")
		if cut <= 0 || cut == len(tag)-1 {
			return nil, fmt.Errorf("invalid semester tag %q", part)
		}
		number, err := strconv.Atoi(tag[cut+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid semester tag %q", part)
		}
		semesters = append(semesters, semesterRecord{Program: tag[:cut], Number: number, Type: courseType})
	}
	return semesters, nil
}
