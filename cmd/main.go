// Development driver: solves a built-in sample instance and prints the
// rendered week. The real entrypoint is cmd/cli.
package main

import (
	"context"
	"fmt"
	"log"

	"stundenplan/internal/mip"
	"stundenplan/internal/schedule"
)

func main() {
	inst := sampleInstance()
	cfg := schedule.DefaultConfig()
	cfg.Coverage = schedule.CoverSoft

	compiled, err := schedule.Compile(inst, cfg)
	if err != nil {
		log.Fatalf("cannot compile model: %v", err)
	}

	outcome, err := schedule.Solve(context.Background(), compiled, mip.NewGophersatSolver(), mip.Options{FindConflict: true})
	if err != nil {
		log.Fatal(err)
	}

	switch outcome.Status {
	case mip.StatusOptimal, mip.StatusSuboptimal:
		fmt.Printf("status: %v, objective: %.3f\n", outcome.Status, outcome.Objective)
		fmt.Print(outcome.Schedule.Render(inst))
		for name, contribution := range outcome.Breakdown {
			if contribution != 0 {
				fmt.Printf("  %v: %.3f\n", name, contribution)
			}
		}
	case mip.StatusInfeasible:
		fmt.Printf("infeasible, conflict of %v constraints\n", len(outcome.Diagnosis.Conflict))
	default:
		fmt.Printf("no verdict: %v\n", outcome.Status)
	}
}

func sampleInstance() *schedule.Instance {
	return &schedule.Instance{
		Teachers: []schedule.Teacher{
			{ID: 1, Name: "Maier", Faculty: schedule.FacultyBU, SoftSlots: []int{0, 5}},
			{ID: 2, Name: "Schulz", Faculty: schedule.FacultyAU, HardSlots: []int{4}},
			{ID: 3, Name: "Weber", Faculty: schedule.FacultyM},
		},
		Courses: []schedule.Course{
			{
				ID:               10,
				Name:             "Statik I",
				Faculty:          schedule.FacultyBU,
				ExpectedStudents: 60,
				Semesters:        []schedule.SemesterTag{{Program: "BAU", Number: 1}},
				AllowedRoomTypes: []schedule.RoomType{schedule.Lecture},
				TimesPerWeek:     2,
				TeacherIDs:       []int{1},
			},
			{
				ID:               11,
				Name:             "CAD Praktikum",
				Faculty:          schedule.FacultyAU,
				ExpectedStudents: 24,
				Semesters:        []schedule.SemesterTag{{Program: "BAU", Number: 1}},
				AllowedRoomTypes: []schedule.RoomType{schedule.Computer},
				TimesPerWeek:     1,
				TeacherIDs:       []int{2},
			},
			{
				ID:               12,
				Name:             "Projektseminar",
				Faculty:          schedule.FacultyM,
				ExpectedStudents: 15,
				Semesters:        []schedule.SemesterTag{{Program: "BAU", Number: 3}},
				AllowedRoomTypes: []schedule.RoomType{schedule.Seminar},
				TimesPerWeek:     1,
			},
		},
		Rooms: []schedule.Room{
			{ID: 100, Name: "H1", Building: schedule.BuildingGSS, Type: schedule.Lecture, Faculty: schedule.FacultyBU, Capacity: 120},
			{ID: 101, Name: "PC2", Building: schedule.BuildingM13, Type: schedule.Computer, Faculty: schedule.FacultyAU, Capacity: 30},
			{ID: 102, Name: "S11", Building: schedule.BuildingC11, Type: schedule.Seminar, Faculty: schedule.FacultyM, Capacity: 20},
		},
		Horizon: schedule.HorizonFromDaySizes(3, 3),
	}
}
