package schedule

import (
	"stundenplan/internal/mip"
)

// CoverageMode selects how course session counts are enforced.
type CoverageMode int

const (
	// CoverAtLeastOnce requires one session per course and leaves the rest
	// to the objective.
	CoverAtLeastOnce CoverageMode = iota
	// CoverExact pins every course to exactly its session count.
	CoverExact
	// CoverSoft lets the solver drop a course entirely against a large
	// penalty instead of reporting infeasibility.
	CoverSoft
)

// TermParams carries the structural knobs of the soft terms.
type TermParams struct {
	MaxConsecutive   int
	MinFreeDays      int
	EarlySlots       []int
	EarlyTargets     []Semester
	LateSlotsPerDay  int
	MaxClassesPerDay int
	RemoteBuildings  []Building
	LunchSlotPairs   [][2]int
	OrderedPairs     [][2]int
}

// Config drives compilation: coverage handling, which soft terms are active
// and at which weight, and the term parameters.
type Config struct {
	Coverage    CoverageMode
	DropPenalty float64
	Weights     map[string]float64
	Enabled     map[string]bool
	Params      TermParams
}

// DefaultConfig enables every term at its production weight.
func DefaultConfig() Config {
	weights := map[string]float64{
		TermTeacherSoftTime:    100,
		TermCourseSoftTime:     100,
		TermRoomWaste:          70,
		TermFacultyMismatch:    50,
		TermMaxConsecutive:     20,
		TermMinFreeDays:        5,
		TermSemesterMaxPerDay:  5,
		TermSemesterAvoidEarly: 3,
		TermSemesterSingleDay:  2,
		TermSemesterLateSlots:  2,
		TermLunchAdjacency:     3,
		TermCourseStability:    0.2,
		TermBuildingChange:     1.0,
		TermCourseOrder:        5,
	}
	enabled := make(map[string]bool, len(weights))
	for name := range weights {
		enabled[name] = true
	}
	return Config{
		Coverage:    CoverExact,
		DropPenalty: 1e6,
		Weights:     weights,
		Enabled:     enabled,
		Params: TermParams{
			MaxConsecutive:   3,
			MinFreeDays:      1,
			LateSlotsPerDay:  1,
			MaxClassesPerDay: 3,
		},
	}
}

func (c Config) weight(name string) float64 {
	return c.Weights[name]
}

func (c Config) enabled(name string) bool {
	if c.Weights[name] == 0 {
		return false
	}
	return c.Enabled[name]
}

// CompiledModel bundles the solver-ready model with everything needed to read
// a solution back: the variable space, the objective composer and, under soft
// coverage, the per-course drop indicators.
type CompiledModel struct {
	Model    *mip.Model
	Space    *VarSpace
	Composer *Composer
	Instance *Instance
	Config   Config
	DropVars map[int]mip.Var
}

// builder holds the shared state of one compilation pass.
type builder struct {
	inst  *Instance
	space *VarSpace
	model *mip.Model
	seq   map[string]int
}

// Compile validates the instance and lowers it into a pseudo-boolean model:
// the dense assignment variables, the hard constraint families, and the
// enabled soft terms with their auxiliary variables and links.
func Compile(inst *Instance, cfg Config) (*CompiledModel, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if len(inst.Rooms) == 0 || inst.Horizon.NumSlots == 0 {
		return nil, &ModelConstructionError{Reason: "instance has no rooms or no slots"}
	}
	if len(inst.Teachers) == 0 && len(inst.Courses) > 0 {
		return nil, &ModelConstructionError{Reason: "courses given but no teachers"}
	}

	model := mip.NewModel(mip.Minimize)
	space := NewVarSpace(model, inst.Horizon.NumSlots, len(inst.Teachers), len(inst.Courses), len(inst.Rooms))
	b := &builder{inst: inst, space: space, model: model, seq: map[string]int{}}

	for _, emit := range []func() []mip.Constraint{
		b.roomExclusivity,
		b.teacherExclusivity,
		b.semesterNonOverlap,
		b.teacherUnavailability,
		b.courseUnavailability,
		b.roomCapacity,
		b.roomType,
		b.teacherCompatibility,
	} {
		model.Add(emit()...)
	}

	composer := NewComposer()
	dropVars := map[int]mip.Var{}
	switch cfg.Coverage {
	case CoverExact:
		model.Add(b.coverage(true)...)
	case CoverAtLeastOnce:
		model.Add(b.coverage(false)...)
	case CoverSoft:
		dropVars = b.softCoverage(composer, cfg.DropPenalty)
	}

	for _, term := range b.softTerms(cfg) {
		composer.Register(term, cfg.weight(term.Name))
		model.Add(term.Links...)
	}
	model.Objective = composer.Objective()

	return &CompiledModel{
		Model:    model,
		Space:    space,
		Composer: composer,
		Instance: inst,
		Config:   cfg,
		DropVars: dropVars,
	}, nil
}

// softCoverage replaces exact coverage with sum(x) + sessions*drop == sessions
// per course and charges the drop penalty for every abandoned course.
func (b *builder) softCoverage(composer *Composer, penalty float64) map[int]mip.Var {
	dropVars := map[int]mip.Var{}
	expr := mip.NewLinExpr()
	for course, courseEntity := range b.inst.Courses {
		sessions := courseEntity.Sessions()
		if sessions == 0 {
			continue
		}
		drop := b.model.NewVar()
		dropVars[course] = drop
		terms := append(plus(b.space.ForCourse(course), 1), mip.Term{Var: drop, Coef: sessions})
		b.model.Add(mip.Constraint{
			ID:    CoverageChoiceID{Course: courseEntity.ID},
			Terms: terms,
			Sense: mip.EQ,
			RHS:   sessions,
		})
		expr.Add(drop, 1)
	}
	composer.Register(SoftTerm{Name: TermCourseDrop, Expr: expr}, penalty)
	return dropVars
}

func (b *builder) softTerms(cfg Config) []SoftTerm {
	terms := []SoftTerm{}
	add := func(name string, build func() SoftTerm) {
		if cfg.enabled(name) {
			terms = append(terms, build())
		}
	}
	p := cfg.Params

	add(TermTeacherSoftTime, b.teacherSoftTime)
	add(TermCourseSoftTime, b.courseSoftTime)
	add(TermRoomWaste, b.roomWaste)
	add(TermFacultyMismatch, b.facultyMismatch)
	add(TermSemesterAvoidEarly, func() SoftTerm { return b.semesterAvoidEarly(p.EarlySlots, p.EarlyTargets) })
	add(TermSemesterLateSlots, func() SoftTerm { return b.semesterLateSlots(p.LateSlotsPerDay) })
	add(TermLunchAdjacency, func() SoftTerm { return b.lunchAdjacency(p.LunchSlotPairs, p.RemoteBuildings) })
	add(TermMaxConsecutive, func() SoftTerm { return b.maxConsecutive(p.MaxConsecutive) })
	add(TermMinFreeDays, func() SoftTerm { return b.teacherFreeDays(p.MinFreeDays) })
	add(TermSemesterMaxPerDay, func() SoftTerm { return b.semesterMaxPerDay(p.MaxClassesPerDay) })
	add(TermSemesterSingleDay, b.semesterSingleDay)
	add(TermCourseStability, b.courseStability)
	add(TermBuildingChange, b.buildingChange)
	add(TermCourseOrder, func() SoftTerm { return b.courseOrder(p.OrderedPairs) })

	return terms
}
