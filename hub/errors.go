package hub

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingData is matched by every MissingDataError.
	ErrMissingData = errors.New("missing data")
	// ErrInternal is matched by every InternalError.
	ErrInternal = errors.New("internal error")
)

// MissingDataError reports a required field that no source could supply.
type MissingDataError struct {
	Field  string
	Reason string
}

func (e *MissingDataError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing data: unable to determine %s", e.Field)
	}
	return fmt.Sprintf("missing data: unable to determine %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrMissingData.
func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

// InternalError reports a violated assumption about data the program
// controls or expects in a fixed shape.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("internal error in %s", e.Op)
	}
	return fmt.Sprintf("internal error in %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
