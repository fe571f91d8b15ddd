package schedule

import (
	"stundenplan/internal/mip"

	"github.com/samber/lo"
)

// Soft term names. Weights and toggles are keyed by these.
const (
	TermTeacherSoftTime    = "TEACHER_SOFT_TIME"
	TermCourseSoftTime     = "COURSE_SOFT_TIME"
	TermRoomWaste          = "ROOM_WASTE"
	TermFacultyMismatch    = "FACULTY_MISMATCH"
	TermLunchAdjacency     = "LUNCH_ADJACENCY"
	TermMaxConsecutive     = "T_MAX_CONSEC"
	TermMinFreeDays        = "T_MIN_FREE_DAYS"
	TermSemesterMaxPerDay  = "SEM_MAX_PER_DAY"
	TermSemesterAvoidEarly = "SEM_AVOID_EARLY"
	TermSemesterSingleDay  = "SEM_SINGLE_DAY"
	TermSemesterLateSlots  = "SEM_LATE_SLOTS"
	TermCourseStability    = "COURSE_STABILITY"
	TermBuildingChange     = "T_B2B_BUILDING_CHANGE"
	TermCourseOrder        = "COURSE_ORDER"
	TermCourseDrop         = "COURSE_DROP"
)

// SoftTerm is the output of one soft-term builder: an unweighted cost
// expression plus the linking constraints of any auxiliary variables the
// term created. Builders never touch existing hard constraints; the composer
// alone assembles the objective.
type SoftTerm struct {
	Name  string
	Expr  *mip.LinExpr
	Links []mip.Constraint
}

func (b *builder) linkID(term string) SoftLinkID {
	b.seq[term]++
	return SoftLinkID{Term: term, Seq: b.seq[term]}
}

// andLink allocates a fresh binary z with z = (sum(avars) AND sum(bvars)),
// exact for sums that the hard constraints already cap at one:
// z <= a, z <= b, z >= a + b - 1.
func (b *builder) andLink(term string, avars, bvars []mip.Var, links *[]mip.Constraint) mip.Var {
	z := b.model.NewVar()

	upperA := append(plus(avars, 1), mip.Term{Var: z, Coef: -1})
	*links = append(*links, mip.Constraint{ID: b.linkID(term), Terms: upperA, Sense: mip.GE, RHS: 0})

	upperB := append(plus(bvars, 1), mip.Term{Var: z, Coef: -1})
	*links = append(*links, mip.Constraint{ID: b.linkID(term), Terms: upperB, Sense: mip.GE, RHS: 0})

	lower := []mip.Term{{Var: z, Coef: 1}}
	lower = append(lower, plus(avars, -1)...)
	lower = append(lower, plus(bvars, -1)...)
	*links = append(*links, mip.Constraint{ID: b.linkID(term), Terms: lower, Sense: mip.GE, RHS: -1})

	return z
}

// excessSlack allocates count-limit counting slacks e_1..e_n and links them
// with sum(load) - sum(e) <= limit, so any unit of load beyond the limit
// turns one slack on. The returned expression sums the slacks.
func (b *builder) excessSlack(term string, load []mip.Term, limit, maxExcess int, links *[]mip.Constraint) *mip.LinExpr {
	cost := mip.NewLinExpr()
	if maxExcess <= 0 {
		return cost
	}
	terms := append([]mip.Term{}, load...)
	for k := 0; k < maxExcess; k++ {
		slack := b.model.NewVar()
		cost.Add(slack, 1)
		terms = append(terms, mip.Term{Var: slack, Coef: -1})
	}
	*links = append(*links, mip.Constraint{ID: b.linkID(term), Terms: terms, Sense: mip.LE, RHS: limit})
	return cost
}

func plus(vars []mip.Var, coef int) []mip.Term {
	terms := make([]mip.Term, len(vars))
	for i, v := range vars {
		terms[i] = mip.Term{Var: v, Coef: coef}
	}
	return terms
}

// teacherSoftTime penalizes every assignment that lands a teacher in one of
// their undesired slots. Teacher exclusivity already caps the inner sum at
// one per slot.
func (b *builder) teacherSoftTime() SoftTerm {
	expr := mip.NewLinExpr()
	for teacher, teacherEntity := range b.inst.Teachers {
		for _, slot := range teacherEntity.SoftSlots {
			for _, v := range b.space.ForTeacherSlot(teacher, slot) {
				expr.Add(v, 1)
			}
		}
	}
	return SoftTerm{Name: TermTeacherSoftTime, Expr: expr}
}

// courseSoftTime penalizes assignments on a course's undesired slots.
func (b *builder) courseSoftTime() SoftTerm {
	expr := mip.NewLinExpr()
	for course, courseEntity := range b.inst.Courses {
		for _, slot := range courseEntity.SoftSlots {
			for _, v := range b.space.ForCourseSlot(course, slot) {
				expr.Add(v, 1)
			}
		}
	}
	return SoftTerm{Name: TermCourseSoftTime, Expr: expr}
}

// roomWaste charges (capacity - expected) for every assignment into a room
// bigger than the course needs.
func (b *builder) roomWaste() SoftTerm {
	expr := mip.NewLinExpr()
	for course, courseEntity := range b.inst.Courses {
		for room, roomEntity := range b.inst.Rooms {
			waste := roomEntity.Capacity - courseEntity.ExpectedStudents
			if waste <= 0 {
				continue
			}
			for _, v := range b.space.ForCourseRoom(course, room) {
				expr.Add(v, float64(waste))
			}
		}
	}
	return SoftTerm{Name: TermRoomWaste, Expr: expr}
}

// facultyMismatch charges one per assignment whose course and room belong to
// different faculties.
func (b *builder) facultyMismatch() SoftTerm {
	expr := mip.NewLinExpr()
	for course, courseEntity := range b.inst.Courses {
		for room, roomEntity := range b.inst.Rooms {
			if courseEntity.Faculty == roomEntity.Faculty {
				continue
			}
			for _, v := range b.space.ForCourseRoom(course, room) {
				expr.Add(v, 1)
			}
		}
	}
	return SoftTerm{Name: TermFacultyMismatch, Expr: expr}
}

// semesterAvoidEarly charges one per assignment of a semester's course on an
// early slot. An empty slot list defaults to the first slot of every day; an
// empty target list covers all semesters.
func (b *builder) semesterAvoidEarly(earlySlots []int, targets []Semester) SoftTerm {
	if len(earlySlots) == 0 {
		earlySlots = b.inst.Horizon.FirstSlots()
	}
	expr := mip.NewLinExpr()
	for _, semester := range b.inst.Semesters() {
		if len(targets) > 0 && !lo.Contains(targets, semester) {
			continue
		}
		for _, course := range b.inst.SemesterCourses(semester) {
			for _, slot := range earlySlots {
				for _, v := range b.space.ForCourseSlot(course, slot) {
					expr.Add(v, 1)
				}
			}
		}
	}
	return SoftTerm{Name: TermSemesterAvoidEarly, Expr: expr}
}

// semesterLateSlots charges the final n slots of each day, per semester.
func (b *builder) semesterLateSlots(lastSlotsPerDay int) SoftTerm {
	expr := mip.NewLinExpr()
	lateSlots := b.inst.Horizon.LastSlots(lastSlotsPerDay)
	for _, semester := range b.inst.Semesters() {
		for _, course := range b.inst.SemesterCourses(semester) {
			for _, slot := range lateSlots {
				for _, v := range b.space.ForCourseSlot(course, slot) {
					expr.Add(v, 1)
				}
			}
		}
	}
	return SoftTerm{Name: TermSemesterLateSlots, Expr: expr}
}

// lunchAdjacency penalizes a teacher occupying both slots of a designated
// lunch-adjacent pair while sitting in a remote building, via
// AND-linearization over the pair.
func (b *builder) lunchAdjacency(slotPairs [][2]int, remote []Building) SoftTerm {
	remoteRooms := b.roomsInBuildings(remote)
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	if len(remoteRooms) > 0 {
		for teacher := range b.inst.Teachers {
			for _, pair := range slotPairs {
				avars := b.space.ForTeacherSlotRooms(teacher, pair[0], remoteRooms)
				bvars := b.space.ForTeacherSlotRooms(teacher, pair[1], remoteRooms)
				z := b.andLink(TermLunchAdjacency, avars, bvars, &links)
				expr.Add(z, 1)
			}
		}
	}
	return SoftTerm{Name: TermLunchAdjacency, Expr: expr, Links: links}
}

// maxConsecutive penalizes every teaching slot beyond limit consecutive ones,
// with one excess binary per sliding window of limit+1 slots inside a day.
func (b *builder) maxConsecutive(limit int) SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	for teacher := range b.inst.Teachers {
		for _, day := range b.inst.Horizon.Days {
			slots := day.Slots()
			for start := 0; start+limit < len(slots); start++ {
				window := []mip.Term{}
				for _, slot := range slots[start : start+limit+1] {
					window = append(window, plus(b.space.ForTeacherSlot(teacher, slot), 1)...)
				}
				excess := b.model.NewVar()
				window = append(window, mip.Term{Var: excess, Coef: -1})
				links = append(links, mip.Constraint{ID: b.linkID(TermMaxConsecutive), Terms: window, Sense: mip.LE, RHS: limit})
				expr.Add(excess, 1)
			}
		}
	}
	return SoftTerm{Name: TermMaxConsecutive, Expr: expr, Links: links}
}

// teacherFreeDays penalizes teachers spread over more than days-minFree
// distinct teaching days. A day-on indicator is forced up by every occupied
// slot of the day, and counting slacks absorb days beyond the limit.
func (b *builder) teacherFreeDays(minFree int) SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	totalDays := len(b.inst.Horizon.Days)
	limit := totalDays - minFree
	for teacher := range b.inst.Teachers {
		dayOn := []mip.Term{}
		for _, day := range b.inst.Horizon.Days {
			on := b.model.NewVar()
			dayOn = append(dayOn, mip.Term{Var: on, Coef: 1})
			for _, slot := range day.Slots() {
				occupied := append(plus(b.space.ForTeacherSlot(teacher, slot), 1), mip.Term{Var: on, Coef: -1})
				links = append(links, mip.Constraint{ID: b.linkID(TermMinFreeDays), Terms: occupied, Sense: mip.LE, RHS: 0})
			}
		}
		expr.AddExpr(b.excessSlack(TermMinFreeDays, dayOn, limit, totalDays-limit, &links))
	}
	return SoftTerm{Name: TermMinFreeDays, Expr: expr, Links: links}
}

// semesterMaxPerDay penalizes each class beyond maxPerDay a semester's
// students sit through on one day.
func (b *builder) semesterMaxPerDay(maxPerDay int) SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	for _, semester := range b.inst.Semesters() {
		courses := b.inst.SemesterCourses(semester)
		for _, day := range b.inst.Horizon.Days {
			load := []mip.Term{}
			for _, slot := range day.Slots() {
				for _, course := range courses {
					load = append(load, plus(b.space.ForCourseSlot(course, slot), 1)...)
				}
			}
			// Semester non-overlap caps the day load at the day's slot count.
			maxExcess := len(day.Slots()) - maxPerDay
			expr.AddExpr(b.excessSlack(TermSemesterMaxPerDay, load, maxPerDay, maxExcess, &links))
		}
	}
	return SoftTerm{Name: TermSemesterMaxPerDay, Expr: expr, Links: links}
}

// semesterSingleDay penalizes days on which a semester has exactly one class:
// single >= 2*day_on - load, with day_on tied to the day's load from both
// sides.
func (b *builder) semesterSingleDay() SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	for _, semester := range b.inst.Semesters() {
		courses := b.inst.SemesterCourses(semester)
		for _, day := range b.inst.Horizon.Days {
			load := []mip.Term{}
			on := b.model.NewVar()
			for _, slot := range day.Slots() {
				slotLoad := []mip.Term{}
				for _, course := range courses {
					slotLoad = append(slotLoad, plus(b.space.ForCourseSlot(course, slot), 1)...)
				}
				load = append(load, slotLoad...)
				occupied := append(append([]mip.Term{}, slotLoad...), mip.Term{Var: on, Coef: -1})
				links = append(links, mip.Constraint{ID: b.linkID(TermSemesterSingleDay), Terms: occupied, Sense: mip.LE, RHS: 0})
			}
			// day_on <= load keeps the indicator exact on empty days.
			upper := append([]mip.Term{{Var: on, Coef: 1}}, negate(load)...)
			links = append(links, mip.Constraint{ID: b.linkID(TermSemesterSingleDay), Terms: upper, Sense: mip.LE, RHS: 0})

			single := b.model.NewVar()
			lower := append([]mip.Term{{Var: single, Coef: 1}, {Var: on, Coef: -2}}, load...)
			links = append(links, mip.Constraint{ID: b.linkID(TermSemesterSingleDay), Terms: lower, Sense: mip.GE, RHS: 0})
			expr.Add(single, 1)
		}
	}
	return SoftTerm{Name: TermSemesterSingleDay, Expr: expr, Links: links}
}

// courseStability penalizes every distinct room and building beyond the first
// used by a multi-session course.
func (b *builder) courseStability() SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	sessionsCap := b.inst.Horizon.NumSlots * len(b.inst.Teachers)
	for course, courseEntity := range b.inst.Courses {
		if courseEntity.Sessions() < 2 {
			continue
		}

		used := []mip.Term{}
		for room := range b.inst.Rooms {
			indicator := b.model.NewVar()
			used = append(used, mip.Term{Var: indicator, Coef: 1})
			// sum(x over the room) <= cap * used forces the indicator on.
			terms := append(plus(b.space.ForCourseRoom(course, room), 1), mip.Term{Var: indicator, Coef: -sessionsCap})
			links = append(links, mip.Constraint{ID: b.linkID(TermCourseStability), Terms: terms, Sense: mip.LE, RHS: 0})
		}
		expr.AddExpr(b.excessSlack(TermCourseStability, used, 1, len(b.inst.Rooms)-1, &links))

		usedBuildings := []mip.Term{}
		for _, building := range b.buildings() {
			rooms := b.roomsInBuildings([]Building{building})
			indicator := b.model.NewVar()
			usedBuildings = append(usedBuildings, mip.Term{Var: indicator, Coef: 1})
			terms := []mip.Term{}
			for _, room := range rooms {
				terms = append(terms, plus(b.space.ForCourseRoom(course, room), 1)...)
			}
			terms = append(terms, mip.Term{Var: indicator, Coef: -sessionsCap * len(rooms)})
			links = append(links, mip.Constraint{ID: b.linkID(TermCourseStability), Terms: terms, Sense: mip.LE, RHS: 0})
		}
		expr.AddExpr(b.excessSlack(TermCourseStability, usedBuildings, 1, len(usedBuildings)-1, &links))
	}
	return SoftTerm{Name: TermCourseStability, Expr: expr, Links: links}
}

// buildingChange penalizes a teacher holding back-to-back classes in two
// different buildings, via AND-linearization across adjacent slots.
func (b *builder) buildingChange() SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	buildings := b.buildings()
	for teacher := range b.inst.Teachers {
		for _, day := range b.inst.Horizon.Days {
			slots := day.Slots()
			for i := 0; i+1 < len(slots); i++ {
				for _, from := range buildings {
					for _, to := range buildings {
						if from == to {
							continue
						}
						avars := b.space.ForTeacherSlotRooms(teacher, slots[i], b.roomsInBuildings([]Building{from}))
						bvars := b.space.ForTeacherSlotRooms(teacher, slots[i+1], b.roomsInBuildings([]Building{to}))
						z := b.andLink(TermBuildingChange, avars, bvars, &links)
						expr.Add(z, 1)
					}
				}
			}
		}
	}
	return SoftTerm{Name: TermBuildingChange, Expr: expr, Links: links}
}

// courseOrder penalizes the second course of each designated pair landing on
// an earlier slot than the first, one AND-linearized violation per offending
// slot pair.
func (b *builder) courseOrder(pairs [][2]int) SoftTerm {
	expr := mip.NewLinExpr()
	links := []mip.Constraint{}
	courseIndex := map[int]int{}
	for i, course := range b.inst.Courses {
		courseIndex[course.ID] = i
	}
	for _, pair := range pairs {
		before, okBefore := courseIndex[pair[0]]
		after, okAfter := courseIndex[pair[1]]
		if !okBefore || !okAfter {
			continue
		}
		for beforeSlot := 0; beforeSlot < b.inst.Horizon.NumSlots; beforeSlot++ {
			for afterSlot := 0; afterSlot < beforeSlot; afterSlot++ {
				avars := b.space.ForCourseSlot(before, beforeSlot)
				bvars := b.space.ForCourseSlot(after, afterSlot)
				z := b.andLink(TermCourseOrder, avars, bvars, &links)
				expr.Add(z, 1)
			}
		}
	}
	return SoftTerm{Name: TermCourseOrder, Expr: expr, Links: links}
}

func (b *builder) buildings() []Building {
	return lo.Uniq(lo.Map(b.inst.Rooms, func(room Room, _ int) Building { return room.Building }))
}

func (b *builder) roomsInBuildings(buildings []Building) []int {
	rooms := []int{}
	for i, room := range b.inst.Rooms {
		if lo.Contains(buildings, room.Building) {
			rooms = append(rooms, i)
		}
	}
	return rooms
}

func negate(terms []mip.Term) []mip.Term {
	negated := make([]mip.Term, len(terms))
	for i, term := range terms {
		negated[i] = mip.Term{Var: term.Var, Coef: -term.Coef}
	}
	return negated
}
