package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned when no user is logged in.
	ErrNoSession = errors.New("no active session; run 'lq login' first")
	// ErrInvalidAmount is returned for negative XP or point inputs.
	ErrInvalidAmount = errors.New("amount must be non-negative")
	// ErrInsufficientPoints is returned when a deduction exceeds the balance.
	ErrInsufficientPoints = errors.New("not enough points")
	// ErrDuplicateQuest is returned when adding a quest whose id already exists.
	ErrDuplicateQuest = errors.New("quest already exists")
	// ErrQuestNotFound is returned when a quest id is unknown.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrItemNotFound is returned when an item id is unknown or not owned.
	ErrItemNotFound = errors.New("item not found")
	// ErrPersistence wraps storage failures. The in-memory record stays on
	// the last successfully persisted state, so callers may retry.
	ErrPersistence = errors.New("persistence failure")
)

// TaskDoneError indicates a daily task was already completed today.
type TaskDoneError struct {
	TaskID string
	Name   string
}

func (e TaskDoneError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task %q is already done today", e.Name)
	}
	return fmt.Sprintf("task %s is already done today", e.TaskID)
}

func persistErr(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
