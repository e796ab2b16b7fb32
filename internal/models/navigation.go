package models

import "time"

// Direction represents the direction of a navigation attempt
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// NavigationState is the transient state of an in-flight navigation.
// The zero value is the idle state.
type NavigationState struct {
	IsNavigating    bool      `json:"isNavigating"`
	Direction       Direction `json:"direction,omitempty"`
	PreviousPointer string    `json:"previousPointer,omitempty"`
}

// IdleNavigationState returns the idle navigation state
func IdleNavigationState() NavigationState {
	return NavigationState{}
}

// NavigationLevel represents the granularity a navigation happened at
type NavigationLevel string

const (
	NavigationLevelItem    NavigationLevel = "item"
	NavigationLevelSubQuiz NavigationLevel = "sub_quiz"
)

// NavigationAction represents the command that triggered a navigation event
type NavigationAction string

const (
	NavigationActionNext     NavigationAction = "next"
	NavigationActionPrevious NavigationAction = "previous"
	NavigationActionFirst    NavigationAction = "first"
	NavigationActionLast     NavigationAction = "last"
	NavigationActionSelect   NavigationAction = "select"
)

// NavigationOutcome represents the result of a navigation attempt
type NavigationOutcome string

const (
	NavigationOutcomeSucceeded NavigationOutcome = "succeeded"
	NavigationOutcomeFailed    NavigationOutcome = "failed"
)

// NavigationEvent is a record of one navigation attempt
type NavigationEvent struct {
	ID         int               `json:"id,omitempty"`
	SessionID  string            `json:"sessionId"`
	CategoryID string            `json:"categoryId"`
	Level      NavigationLevel   `json:"level"`
	Action     NavigationAction  `json:"action"`
	FromID     string            `json:"fromId,omitempty"`
	ToID       string            `json:"toId,omitempty"`
	Outcome    NavigationOutcome `json:"outcome"`
	ErrorKind  ErrorKind         `json:"errorKind,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// QuizStep represents which screen of a quiz item should be displayed
type QuizStep string

const (
	QuizStepWelcome    QuizStep = "welcome"
	QuizStepSubQuiz    QuizStep = "sub_quiz"
	QuizStepStatistics QuizStep = "statistics"
)

// Availability describes which navigation commands are currently allowed
type Availability struct {
	CanNavigateNext            bool `json:"canNavigateNext"`
	CanNavigatePrevious        bool `json:"canNavigatePrevious"`
	CanNavigateNextSubQuiz     bool `json:"canNavigateNextSubQuiz"`
	CanNavigatePreviousSubQuiz bool `json:"canNavigatePreviousSubQuiz"`
}
