package dfamin

import (
	"errors"
	"fmt"
)

// ErrInvalidAutomaton is matched by every structural validation failure.
// Use errors.Is(err, ErrInvalidAutomaton) to test for it.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// ErrorCode categorizes an InvalidAutomatonError.
type ErrorCode string

const (
	// ErrCodeUnknownStart indicates the start state is not a member of the state set.
	ErrCodeUnknownStart ErrorCode = "UNKNOWN_START"

	// ErrCodeUnknownState indicates a transition endpoint is not a member of the state set.
	ErrCodeUnknownState ErrorCode = "UNKNOWN_STATE"

	// ErrCodeUnknownAccepting indicates an accepting state is not a member of the state set.
	ErrCodeUnknownAccepting ErrorCode = "UNKNOWN_ACCEPTING"

	// ErrCodeUnknownSymbol indicates a transition label is not part of the alphabet.
	ErrCodeUnknownSymbol ErrorCode = "UNKNOWN_SYMBOL"

	// ErrCodeNondeterministic indicates two transitions share a source and label
	// but lead to different destinations.
	ErrCodeNondeterministic ErrorCode = "NONDETERMINISTIC"

	// ErrCodeDuplicateState indicates a state that must be new already exists.
	ErrCodeDuplicateState ErrorCode = "DUPLICATE_STATE"
)

// InvalidAutomatonError reports malformed automaton input. It is never transient.
type InvalidAutomatonError struct {
	Code    ErrorCode
	Message string

	// State is the offending state identifier, if any.
	State string

	// Symbol is the offending label, if any.
	Symbol string
}

func (e *InvalidAutomatonError) Error() string {
	switch {
	case e.State != "" && e.Symbol != "":
		return fmt.Sprintf("%s: %s (state=%q, symbol=%q)", e.Code, e.Message, e.State, e.Symbol)
	case e.State != "":
		return fmt.Sprintf("%s: %s (state=%q)", e.Code, e.Message, e.State)
	case e.Symbol != "":
		return fmt.Sprintf("%s: %s (symbol=%q)", e.Code, e.Message, e.Symbol)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is ErrInvalidAutomaton.
func (e *InvalidAutomatonError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}

// IsInvalidAutomaton returns true if err is, or wraps, an InvalidAutomatonError.
func IsInvalidAutomaton(err error) bool {
	var ie *InvalidAutomatonError
	return errors.As(err, &ie)
}

// ErrorCodeOf returns the code of the InvalidAutomatonError wrapped by err, or "".
func ErrorCodeOf(err error) ErrorCode {
	var ie *InvalidAutomatonError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

func invalid(code ErrorCode, message, state, symbol string) error {
	return &InvalidAutomatonError{Code: code, Message: message, State: state, Symbol: symbol}
}
