package app

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField = errors.New("unknown event field")
	ErrMissingValue = errors.New("value is missing")
)

// ParseError reports user input that could not be turned into a field value.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a parsed event that breaks its field rules.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError reports a failed storage operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s event: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
