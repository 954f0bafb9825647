package scenario

import "fmt"

type Kind int

const (
	KindBoardSize Kind = iota + 1
	KindInsectCount
	KindFoodCount
	KindInsectColor
	KindInsectType
	KindEntityPosition
	KindDuplicateInsect
	KindSamePosition
	KindMalformed
)

var kindMessages = map[Kind]string{
	KindBoardSize:       "Invalid board size",
	KindInsectCount:     "Invalid number of insects",
	KindFoodCount:       "Invalid number of food points",
	KindInsectColor:     "Invalid insect color",
	KindInsectType:      "Invalid insect type",
	KindEntityPosition:  "Invalid entity position",
	KindDuplicateInsect: "Duplicate insects",
	KindSamePosition:    "Two entities in the same position",
	KindMalformed:       "Invalid input format",
}

// Message is the fixed report text for k.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return fmt.Sprintf("Invalid input (%d)", int(k))
}

// ValidationError rejects a whole scenario. Error() is the report message;
// Line (1-based, 0 when unknown) and Err carry detail for logs.
type ValidationError struct {
	Kind Kind
	Line int
	Err  error
}

func (e *ValidationError) Error() string { return e.Kind.Message() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Detail is a log-friendly description including the line and cause.
func (e *ValidationError) Detail() string {
	s := e.Kind.Message()
	if e.Line > 0 {
		s = fmt.Sprintf("line %d: %s", e.Line, s)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func invalid(k Kind, line int, err error) *ValidationError {
	return &ValidationError{Kind: k, Line: line, Err: err}
}
