package schedule

import "fmt"

// ValidationError reports a malformed entity. It is raised at the ingestion
// boundary and is fatal to that instance only.
type ValidationError struct {
	Entity string
	ID     int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v %v: %v: %v", e.Entity, e.ID, e.Field, e.Reason)
}

// ModelConstructionError reports an instance the compiler cannot turn into a
// model, e.g. a course whose room-type list is empty or a dangling teacher
// reference.
type ModelConstructionError struct {
	Reason string
}

func (e *ModelConstructionError) Error() string {
	return fmt.Sprintf("cannot construct model: %v", e.Reason)
}

// UnknownCodeError reports an enum code that failed strict parsing.
type UnknownCodeError struct {
	Kind string
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %v code %q", e.Kind, e.Code)
}
