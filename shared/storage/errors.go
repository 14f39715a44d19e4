package storage

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrNotFound        = errors.New("record not found")
)

// DuplicateRecordError is returned when adding a record whose ID is already stored.
type DuplicateRecordError struct {
	ID    string
	Niche string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("video %s is already stored under niche %q", e.ID, e.Niche)
}

func (e *DuplicateRecordError) Is(target error) bool {
	return target == ErrDuplicateRecord
}

// NotFoundError is returned when no record has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no stored video with id %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
