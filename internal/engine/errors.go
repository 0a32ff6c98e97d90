package engine

import "fmt"

// NotFoundError is returned when an operation names a quest id that does not
// exist in the collection.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("quest %d not found", e.ID)
}

// EmptyPenaltyInputError is returned when penalty generation is invoked with
// no missed daily quests. Callers are expected to check for an unfinished set
// first; this makes the precondition explicit instead of guessing a default.
type EmptyPenaltyInputError struct{}

func (EmptyPenaltyInputError) Error() string {
	return "penalty generation requires at least one missed daily quest"
}
