package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags a navigation failure
type ErrorKind string

// Item-level kinds
const (
	ErrorKindInvalidContentType ErrorKind = "InvalidContentType"
	ErrorKindRouterError        ErrorKind = "RouterError"
	ErrorKindNoNextItem         ErrorKind = "NoNextItem"
	ErrorKindNoPreviousItem     ErrorKind = "NoPreviousItem"
)

// Sub-quiz-level kinds
const (
	ErrorKindNoNextSubQuiz        ErrorKind = "NoNextSubQuiz"
	ErrorKindNoPreviousSubQuiz    ErrorKind = "NoPreviousSubQuiz"
	ErrorKindInvalidQuestionType  ErrorKind = "InvalidQuestionType"
	ErrorKindNoAdjacentSubQuiz    ErrorKind = "NoAdjacentSubQuiz"
	ErrorKindNavigationNotAllowed ErrorKind = "NavigationNotAllowed"
)

// Kinds shared by both levels
const (
	ErrorKindCompletionRequired ErrorKind = "CompletionRequired"
	ErrorKindFetchError         ErrorKind = "FetchError"
	ErrorKindValidationFailed   ErrorKind = "ValidationFailed"
	ErrorKindNoStrategyFound    ErrorKind = "NoStrategyFound"
	ErrorKindUnknownError       ErrorKind = "UnknownError"
)

// NavigationError is the typed failure returned by navigation operations.
//
// Two NavigationError values match with errors.Is when their kinds are equal,
// so the Err* sentinels below can be used to test for a kind.
type NavigationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *NavigationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Is matches any NavigationError of the same kind
func (e *NavigationError) Is(target error) bool {
	var t *NavigationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewNavigationError creates a navigation error of the given kind
func NewNavigationError(kind ErrorKind, message string) *NavigationError {
	return &NavigationError{Kind: kind, Message: message}
}

// WrapNavigationError creates a navigation error of the given kind caused by err
func WrapNavigationError(kind ErrorKind, message string, err error) *NavigationError {
	return &NavigationError{Kind: kind, Message: message, Err: err}
}

// AsNavigationError returns err as a NavigationError.
// Errors of any other type are reported as UnknownError.
func AsNavigationError(err error) *NavigationError {
	if err == nil {
		return nil
	}
	var navErr *NavigationError
	if errors.As(err, &navErr) {
		return navErr
	}
	return WrapNavigationError(ErrorKindUnknownError, "unexpected navigation failure", err)
}

var (
	ErrInvalidContentType   = NewNavigationError(ErrorKindInvalidContentType, "invalid content type")
	ErrRouterError          = NewNavigationError(ErrorKindRouterError, "router error")
	ErrNoNextItem           = NewNavigationError(ErrorKindNoNextItem, "no next item")
	ErrNoPreviousItem       = NewNavigationError(ErrorKindNoPreviousItem, "no previous item")
	ErrNoNextSubQuiz        = NewNavigationError(ErrorKindNoNextSubQuiz, "no next sub-quiz")
	ErrNoPreviousSubQuiz    = NewNavigationError(ErrorKindNoPreviousSubQuiz, "no previous sub-quiz")
	ErrInvalidQuestionType  = NewNavigationError(ErrorKindInvalidQuestionType, "invalid question type")
	ErrNoAdjacentSubQuiz    = NewNavigationError(ErrorKindNoAdjacentSubQuiz, "no adjacent sub-quiz")
	ErrNavigationNotAllowed = NewNavigationError(ErrorKindNavigationNotAllowed, "navigation not allowed")
	ErrCompletionRequired   = NewNavigationError(ErrorKindCompletionRequired, "completion required")
	ErrFetchError           = NewNavigationError(ErrorKindFetchError, "fetch error")
	ErrValidationFailed     = NewNavigationError(ErrorKindValidationFailed, "validation failed")
	ErrNoStrategyFound      = NewNavigationError(ErrorKindNoStrategyFound, "no strategy found")
	ErrUnknownError         = NewNavigationError(ErrorKindUnknownError, "unknown error")
)
