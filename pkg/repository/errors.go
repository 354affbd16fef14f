package repository

import (
	"github.com/pkg/errors"
)

// StoreError is a failure of the backing storage, as opposed to bad input or a missing record.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "repository: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(err error, op string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: errors.WithStack(err)}
}
