// Benchmark driver: scales synthetic instances up and records solve times
// and model sizes as CSV, one row per (size, coverage mode) round.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"

	"stundenplan/internal/mip"
	"stundenplan/internal/schedule"
)

const (
	rounds    = 3
	timeLimit = 2 * time.Minute
)

type cell struct {
	teachers int
	courses  int
	rooms    int
	days     int
	slots    int
}

var cells = []cell{
	{teachers: 4, courses: 6, rooms: 3, days: 5, slots: 4},
	{teachers: 8, courses: 12, rooms: 5, days: 5, slots: 4},
	{teachers: 12, courses: 20, rooms: 8, days: 5, slots: 5},
	{teachers: 20, courses: 32, rooms: 12, days: 5, slots: 6},
}

func main() {
	writer := csv.NewWriter(os.Stdout)
	header := []string{"teachers", "courses", "rooms", "slots", "coverage", "variables", "constraints", "status", "objective", "millis"}
	if err := writer.Write(header); err != nil {
		log.Fatalf("cannot write csv: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for _, c := range cells {
		for _, coverage := range []schedule.CoverageMode{schedule.CoverExact, schedule.CoverSoft} {
			for round := 0; round < rounds; round++ {
				row, err := run(rng, c, coverage)
				if err != nil {
					log.Fatalf("benchmark cell failed: %v", err)
				}
				if err := writer.Write(row); err != nil {
					log.Fatalf("cannot write csv: %v", err)
				}
				writer.Flush()
			}
		}
	}
}

func run(rng *rand.Rand, c cell, coverage schedule.CoverageMode) ([]string, error) {
	inst := synthesize(rng, c)
	cfg := schedule.DefaultConfig()
	cfg.Coverage = coverage

	compiled, err := schedule.Compile(inst, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outcome, err := schedule.Solve(context.Background(), compiled, mip.NewGophersatSolver(), mip.Options{TimeLimit: timeLimit})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return []string{
		fmt.Sprint(c.teachers),
		fmt.Sprint(c.courses),
		fmt.Sprint(c.rooms),
		fmt.Sprint(inst.Horizon.NumSlots),
		coverageName(coverage),
		fmt.Sprint(compiled.Model.NumVars()),
		fmt.Sprint(len(compiled.Model.Constraints)),
		outcome.Status.String(),
		fmt.Sprintf("%.3f", outcome.Objective),
		fmt.Sprint(elapsed.Milliseconds()),
	}, nil
}

func coverageName(mode schedule.CoverageMode) string {
	switch mode {
	case schedule.CoverSoft:
		return "soft"
	case schedule.CoverAtLeastOnce:
		return "once"
	default:
		return "exact"
	}
}

// synthesize builds a random but plausible instance: every course gets a
// teacher able to hold it and a room type that actually exists.
func synthesize(rng *rand.Rand, c cell) *schedule.Instance {
	faculties := []schedule.Faculty{schedule.FacultyBU, schedule.FacultyAU, schedule.FacultyKG, schedule.FacultyM}
	buildings := []schedule.Building{schedule.BuildingGSS, schedule.BuildingM13, schedule.BuildingC11}
	roomTypes := []schedule.RoomType{schedule.Lecture, schedule.Lab, schedule.Computer, schedule.Seminar}

	daySizes := lo.Times(c.days, func(int) int { return c.slots })
	inst := &schedule.Instance{Horizon: schedule.HorizonFromDaySizes(daySizes...)}

	for i := 0; i < c.rooms; i++ {
		inst.Rooms = append(inst.Rooms, schedule.Room{
			ID:       100 + i,
			Building: buildings[rng.Intn(len(buildings))],
			Type:     roomTypes[i%len(roomTypes)],
			Faculty:  faculties[rng.Intn(len(faculties))],
			Capacity: 20 + rng.Intn(80),
		})
	}
	for i := 0; i < c.teachers; i++ {
		teacher := schedule.Teacher{ID: i + 1, Faculty: faculties[rng.Intn(len(faculties))]}
		if rng.Intn(3) == 0 {
			teacher.HardSlots = []int{rng.Intn(inst.Horizon.NumSlots)}
		}
		if rng.Intn(2) == 0 {
			teacher.SoftSlots = []int{rng.Intn(inst.Horizon.NumSlots)}
		}
		inst.Teachers = append(inst.Teachers, teacher)
	}
	for i := 0; i < c.courses; i++ {
		roomType := inst.Rooms[rng.Intn(len(inst.Rooms))].Type
		inst.Courses = append(inst.Courses, schedule.Course{
			ID:               1000 + i,
			Faculty:          faculties[rng.Intn(len(faculties))],
			ExpectedStudents: 10 + rng.Intn(40),
			Semesters: []schedule.SemesterTag{{
				Program: "INF",
				Number:  rng.Intn(6) + 1,
			}},
			AllowedRoomTypes: []schedule.RoomType{roomType},
			TimesPerWeek:     float64(rng.Intn(2) + 1),
			TeacherIDs:       []int{rng.Intn(c.teachers) + 1},
		})
	}
	return inst
}
