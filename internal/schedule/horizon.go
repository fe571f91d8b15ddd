package schedule

import "fmt"

// Day is a contiguous half-open slot range [Start, End) within the horizon.
type Day struct {
	Start int
	End   int
}

// Slots returns the slot indices of the day in order.
func (d Day) Slots() []int {
	slots := make([]int, 0, d.End-d.Start)
	for slot := d.Start; slot < d.End; slot++ {
		slots = append(slots, slot)
	}
	return slots
}

// Horizon is the fixed planning horizon: NumSlots atomic slots partitioned
// into ordered days.
type Horizon struct {
	NumSlots int
	Days     []Day
}

// HorizonFromDaySizes builds a horizon from consecutive day lengths.
func HorizonFromDaySizes(sizes ...int) Horizon {
	horizon := Horizon{}
	for _, size := range sizes {
		horizon.Days = append(horizon.Days, Day{Start: horizon.NumSlots, End: horizon.NumSlots + size})
		horizon.NumSlots += size
	}
	return horizon
}

// Validate checks that the days form an ordered contiguous partition of the
// slot range.
func (h Horizon) Validate() error {
	if h.NumSlots <= 0 {
		return &ValidationError{Entity: "horizon", Field: "num_slots", Reason: "must be positive"}
	}
	next := 0
	for i, day := range h.Days {
		if day.Start != next || day.End <= day.Start {
			return &ValidationError{
				Entity: "horizon",
				Field:  "days",
				Reason: fmt.Sprintf("day %v range [%v, %v) does not continue the partition at slot %v", i, day.Start, day.End, next),
			}
		}
		next = day.End
	}
	if next != h.NumSlots {
		return &ValidationError{
			Entity: "horizon",
			Field:  "days",
			Reason: fmt.Sprintf("days cover %v of %v slots", next, h.NumSlots),
		}
	}
	return nil
}

// DayOf returns the index of the day containing the slot, or -1.
func (h Horizon) DayOf(slot int) int {
	for i, day := range h.Days {
		if slot >= day.Start && slot < day.End {
			return i
		}
	}
	return -1
}

// FirstSlots returns the first slot of every day. These are the default
// "early" slots.
func (h Horizon) FirstSlots() []int {
	slots := make([]int, len(h.Days))
	for i, day := range h.Days {
		slots[i] = day.Start
	}
	return slots
}

// LastSlots returns the final n slots of every day.
func (h Horizon) LastSlots(n int) []int {
	slots := []int{}
	for _, day := range h.Days {
		start := day.End - n
		if start < day.Start {
			start = day.Start
		}
		for slot := start; slot < day.End; slot++ {
			slots = append(slots, slot)
		}
	}
	return slots
}
