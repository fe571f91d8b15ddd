package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stundenplan/internal/schedule"
)

func TestInstanceFromCSV(t *testing.T) {
	// Arrange
	teachers := writeFile(t, "teachers.csv",
		"id,name,faculty,courses,hard_slots,soft_slots\n"+
			"1,Maier,BU,10,0,1\n"+
			"2,Schulz,AU,,,\n")
	courses := writeFile(t, "courses.csv",
		"id,name,faculty,expected_students,semesters,room_types,times_per_week,teachers,hard_slots,soft_slots\n"+
			"10,Statik,BU,20,INF-1|MED-3:tutorial,LECTURE,1,1,,\n"+
			"11,Praktikum,AU,12,INF-1,PC|LAB,2,1|2,,3\n")
	rooms := writeFile(t, "rooms.csv",
		"id,name,building,type,faculty,capacity\n"+
			"100,H1,GSS,LECTURE,BU,30\n"+
			"101,PC2,M13,PC,AU,16\n")

	// Act
	inst, err := InstanceFromCSV(teachers, courses, rooms, []int{2, 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, inst.Horizon.NumSlots)
	require.Len(t, inst.Teachers, 2)
	assert.Equal(t, []int{10}, inst.Teachers[0].CourseIDs)
	assert.Empty(t, inst.Teachers[1].CourseIDs)

	require.Len(t, inst.Courses, 2)
	assert.Equal(t, []schedule.SemesterTag{
		{Program: "INF", Number: 1},
		{Program: "MED", Number: 3, Type: "tutorial"},
	}, inst.Courses[0].Semesters)
	assert.Equal(t, []schedule.Semester{
		{Program: "INF", Number: 1},
		{Program: "MED", Number: 3},
	}, inst.Courses[0].SemesterSet())
	assert.Equal(t, []schedule.RoomType{schedule.Computer, schedule.Lab}, inst.Courses[1].AllowedRoomTypes)
	assert.Equal(t, []int{1, 2}, inst.Courses[1].TeacherIDs)
	assert.Equal(t, []int{3}, inst.Courses[1].SoftSlots)

	require.Len(t, inst.Rooms, 2)
	assert.Equal(t, schedule.Computer, inst.Rooms[1].Type)
}

func TestInstanceFromCSVBadCells(t *testing.T) {
	rooms := writeFile(t, "rooms.csv",
		"id,name,building,type,faculty,capacity\n100,H1,GSS,LECTURE,BU,30\n")

	t.Run("invalid slot list", func(t *testing.T) {
		teachers := writeFile(t, "teachers.csv",
			"id,name,faculty,courses,hard_slots,soft_slots\n1,Maier,BU,,x,\n")
		courses := writeFile(t, "courses.csv",
			"id,name,faculty,expected_students,semesters,room_types,times_per_week,teachers,hard_slots,soft_slots\n")
		_, err := InstanceFromCSV(teachers, courses, rooms, []int{2})
		assert.ErrorContains(t, err, "teacher 1")
	})

	t.Run("invalid semester tag", func(t *testing.T) {
		teachers := writeFile(t, "teachers.csv",
			"id,name,faculty,courses,hard_slots,soft_slots\n1,Maier,BU,,,\n")
		courses := writeFile(t, "courses.csv",
			"id,name,faculty,expected_students,semesters,room_types,times_per_week,teachers,hard_slots,soft_slots\n"+
				"10,Statik,BU,20,INF,LECTURE,1,,,\n")
		_, err := InstanceFromCSV(teachers, courses, rooms, []int{2})
		assert.ErrorContains(t, err, "invalid semester tag")
	})
}
