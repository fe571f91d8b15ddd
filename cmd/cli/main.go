package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"stundenplan/internal/ingest"
	"stundenplan/internal/mip"
	"stundenplan/internal/schedule"
	"stundenplan/pkg/config"
	"stundenplan/pkg/logger"
)

// Exit codes follow the SAT competition convention: 10 for a solved
// instance, 20 for proven infeasibility.
const (
	exitSolved     = 10
	exitUnverified = 15
	exitInfeasible = 20
)

func main() {
	filePtr := flag.String("file", "", "Path to the JSON input file")
	teachersPtr := flag.String("teachers", "", "Path to the teachers CSV file (alternative to -file)")
	coursesPtr := flag.String("courses", "", "Path to the courses CSV file")
	roomsPtr := flag.String("rooms", "", "Path to the rooms CSV file")
	daysPtr := flag.String("days", "", `Slots per day for CSV input, e.g. "4|4|4|4|4"`)
	outPtr := flag.String("out", "", "Path to the output file; if empty, the result is written to the standard output")
	weightsPtr := flag.String("weights", "", `Soft-term weight overrides, e.g. "ROOM_WASTE=10,SEM_SINGLE_DAY=0"`)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	if err := cfg.ApplyWeights(*weightsPtr); err != nil {
		log.Fatalf("cannot apply weight overrides: %v", err)
	}
	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer zlog.Sync()

	inst := loadInstance(zlog, *filePtr, *teachersPtr, *coursesPtr, *roomsPtr, *daysPtr)
	zlog.Info("instance loaded",
		zap.Int("teachers", len(inst.Teachers)),
		zap.Int("courses", len(inst.Courses)),
		zap.Int("rooms", len(inst.Rooms)),
		zap.Int("slots", inst.Horizon.NumSlots))

	compiled, err := schedule.Compile(inst, cfg.Schedule)
	if err != nil {
		zlog.Fatal("cannot compile model", zap.Error(err))
	}
	zlog.Info("model compiled",
		zap.Int("variables", compiled.Model.NumVars()),
		zap.Int("constraints", len(compiled.Model.Constraints)))

	opts := mip.Options{
		TimeLimit:    cfg.Solver.TimeLimit,
		FindConflict: cfg.Solver.FindConflict,
		OnIncumbent: func(objective float64) {
			zlog.Info("incumbent found", zap.Float64("objective", objective))
		},
	}
	outcome, err := schedule.Solve(context.Background(), compiled, mip.NewGophersatSolver(), opts)
	if err != nil {
		zlog.Fatal("solver failed", zap.Error(err))
	}

	switch outcome.Status {
	case mip.StatusOptimal, mip.StatusSuboptimal, mip.StatusTimeLimit:
		zlog.Info("schedule found",
			zap.String("status", outcome.Status.String()),
			zap.Float64("objective", outcome.Objective),
			zap.Int("assignments", len(outcome.Schedule.Assignments)),
			zap.Ints("dropped", outcome.Schedule.Dropped))
		writeResult(zlog, *outPtr, inst, outcome)
		os.Exit(exitSolved)
	case mip.StatusInfeasible:
		reportInfeasibility(zlog, outcome.Diagnosis)
		os.Exit(exitInfeasible)
	default:
		zlog.Error("no verdict", zap.String("status", outcome.Status.String()))
		os.Exit(exitUnverified)
	}
}

func loadInstance(zlog *zap.Logger, file, teachers, courses, rooms, days string) *schedule.Instance {
	if file != "" {
		inst, err := ingest.InstanceFromJSON(file)
		if err != nil {
			zlog.Fatal("cannot parse input file", zap.Error(err))
		}
		return inst
	}
	if teachers == "" || courses == "" || rooms == "" {
		zlog.Fatal("an input must be specified: either -file or -teachers/-courses/-rooms")
	}
	daySizes := lo.Map(strings.Split(days, "|"), func(part string, _ int) int {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || size <= 0 {
			zlog.Fatal("invalid -days layout", zap.String("days", days))
		}
		return size
	})
	inst, err := ingest.InstanceFromCSV(teachers, courses, rooms, daySizes)
	if err != nil {
		zlog.Fatal("cannot parse CSV input", zap.Error(err))
	}
	return inst
}

type resultDocument struct {
	Status      string                           `json:"status"`
	Objective   float64                          `json:"objective"`
	Breakdown   map[string]float64               `json:"breakdown"`
	Assignments []schedule.Assignment            `json:"assignments"`
	Semesters   map[string][]schedule.Assignment `json:"semesters,omitempty"`
	Dropped     []int                            `json:"dropped,omitempty"`
}

func writeResult(zlog *zap.Logger, outFile string, inst *schedule.Instance, outcome schedule.Outcome) {
	doc := resultDocument{
		Status:      outcome.Status.String(),
		Objective:   outcome.Objective,
		Breakdown:   outcome.Breakdown,
		Assignments: outcome.Schedule.Assignments,
		Semesters:   outcome.Schedule.SemesterViews(inst),
		Dropped:     outcome.Schedule.Dropped,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		zlog.Fatal("cannot marshal result", zap.Error(err))
	}
	if outFile == "" {
		fmt.Println(string(raw))
		return
	}
	if err := os.WriteFile(outFile, raw, 0666); err != nil {
		zlog.Fatal("cannot write output file", zap.Error(err))
	}
}

func reportInfeasibility(zlog *zap.Logger, d schedule.Diagnosis) {
	fields := []zap.Field{}
	if len(d.UnschedulableCourses) > 0 {
		fields = append(fields, zap.Ints("unschedulable_courses", d.UnschedulableCourses))
	}
	for teacher, slots := range d.TeacherBlockedSlots {
		fields = append(fields, zap.Ints(fmt.Sprintf("teacher_%d_blocked_slots", teacher), slots))
	}
	for course, types := range d.MissingRoomTypes {
		names := lo.Map(types, func(t schedule.RoomType, _ int) string { return t.String() })
		fields = append(fields, zap.Strings(fmt.Sprintf("course_%d_missing_room_types", course), names))
	}
	if len(d.CongestedSemesters) > 0 {
		names := lo.Map(d.CongestedSemesters, func(s schedule.Semester, _ int) string { return s.String() })
		fields = append(fields, zap.Strings("congested_semesters", names))
	}
	fields = append(fields, zap.Int("conflict_size", len(d.Conflict)))
	zlog.Error("instance is infeasible", fields...)
}
