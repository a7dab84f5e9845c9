package polynorm

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnboundVariable is returned by Evaluate when the environment lacks a variable.
	ErrUnboundVariable = errors.New("unbound variable")

	// ErrInvalidExpression indicates a serialized expression could not be decoded.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrTooDeep indicates a serialized expression exceeds the decoder's depth limit.
	ErrTooDeep = errors.New("expression too deep")

	// ErrTooManyTerms indicates a bounded normalization outgrew its term budget.
	ErrTooManyTerms = errors.New("too many terms")
)

// UnboundVariableError names the variable that had no binding.
type UnboundVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnboundVariableError) Unwrap() error {
	return ErrUnboundVariable
}

// DecodeError locates a decoding failure inside a serialized tree.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

// Unwrap returns ErrTooDeep for depth overflows and ErrInvalidExpression otherwise.
func (e *DecodeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidExpression
}
