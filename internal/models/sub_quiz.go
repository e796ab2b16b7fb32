package models

import (
	"encoding/json"
	"fmt"
)

// QuestionType represents the type of a sub-quiz question
type QuestionType string

const (
	QuestionTypeChoiceQuestions QuestionType = "choiceQuestions"
	QuestionTypeSequenceOrders  QuestionType = "sequenceOrders"
)

// SubQuizStatus represents the progress status of a sub-quiz
type SubQuizStatus string

const (
	SubQuizStatusNotStarted SubQuizStatus = "not_started"
	SubQuizStatusCompleted  SubQuizStatus = "completed"
)

// SubQuizProgress is the progress record of a single sub-quiz
type SubQuizProgress struct {
	Status SubQuizStatus `json:"status"`
}

// ChoiceOption is one answer option of a choice question
type ChoiceOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ChoiceQuestionContent represents the content of a choice question
type ChoiceQuestionContent struct {
	Question        string         `json:"question"`
	Options         []ChoiceOption `json:"options"`
	MultipleAnswers bool           `json:"multipleAnswers"`
}

// SequenceStep is one element of a sequence order question
type SequenceStep struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SequenceOrderContent represents the content of a sequence order question
type SequenceOrderContent struct {
	Prompt string         `json:"prompt"`
	Steps  []SequenceStep `json:"steps"`
}

// SubQuiz is a node in the ordered chain of questions within a quiz
type SubQuiz struct {
	SubQuizID       string
	QuizID          string
	QuestionID      string
	Index           int
	PreviousSubQuiz *string
	NextSubQuiz     *string
	QuestionType    QuestionType

	ChoiceQuestion         *ChoiceQuestionContent
	SequenceOrder          *SequenceOrderContent
	CompletedQuestion      *SubQuizProgress
	CompletedSequenceOrder *SubQuizProgress
}

type subQuizJSON struct {
	SubQuizID              string           `json:"subQuizId"`
	QuizID                 string           `json:"quizId"`
	QuestionID             string           `json:"questionId"`
	Index                  int              `json:"index"`
	PreviousSubQuiz        *string          `json:"previousSubQuiz"`
	NextSubQuiz            *string          `json:"nextSubQuiz"`
	QuestionType           QuestionType     `json:"questionType"`
	Content                json.RawMessage  `json:"content,omitempty"`
	CompletedQuestion      *SubQuizProgress `json:"completedQuestion,omitempty"`
	CompletedSequenceOrder *SubQuizProgress `json:"completedSequenceOrder,omitempty"`
}

// UnmarshalJSON decodes content according to questionType
func (s *SubQuiz) UnmarshalJSON(data []byte) error {
	var raw subQuizJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = SubQuiz{
		SubQuizID:              raw.SubQuizID,
		QuizID:                 raw.QuizID,
		QuestionID:             raw.QuestionID,
		Index:                  raw.Index,
		PreviousSubQuiz:        raw.PreviousSubQuiz,
		NextSubQuiz:            raw.NextSubQuiz,
		QuestionType:           raw.QuestionType,
		CompletedQuestion:      raw.CompletedQuestion,
		CompletedSequenceOrder: raw.CompletedSequenceOrder,
	}

	if !isPresent(raw.Content) {
		return nil
	}

	switch raw.QuestionType {
	case QuestionTypeChoiceQuestions:
		s.ChoiceQuestion = &ChoiceQuestionContent{}
		if err := json.Unmarshal(raw.Content, s.ChoiceQuestion); err != nil {
			return fmt.Errorf("invalid choice question content: %w", err)
		}
	case QuestionTypeSequenceOrders:
		s.SequenceOrder = &SequenceOrderContent{}
		if err := json.Unmarshal(raw.Content, s.SequenceOrder); err != nil {
			return fmt.Errorf("invalid sequence order content: %w", err)
		}
	}

	return nil
}

// MarshalJSON encodes the sub-quiz back to its wire shape
func (s SubQuiz) MarshalJSON() ([]byte, error) {
	raw := subQuizJSON{
		SubQuizID:              s.SubQuizID,
		QuizID:                 s.QuizID,
		QuestionID:             s.QuestionID,
		Index:                  s.Index,
		PreviousSubQuiz:        s.PreviousSubQuiz,
		NextSubQuiz:            s.NextSubQuiz,
		QuestionType:           s.QuestionType,
		CompletedQuestion:      s.CompletedQuestion,
		CompletedSequenceOrder: s.CompletedSequenceOrder,
	}

	var content any
	switch {
	case s.QuestionType == QuestionTypeChoiceQuestions && s.ChoiceQuestion != nil:
		content = s.ChoiceQuestion
	case s.QuestionType == QuestionTypeSequenceOrders && s.SequenceOrder != nil:
		content = s.SequenceOrder
	}
	if content != nil {
		var err error
		if raw.Content, err = json.Marshal(content); err != nil {
			return nil, err
		}
	}

	return json.Marshal(raw)
}

// Progress returns the progress record matching the sub-quiz's own question type
func (s *SubQuiz) Progress() *SubQuizProgress {
	switch s.QuestionType {
	case QuestionTypeChoiceQuestions:
		return s.CompletedQuestion
	case QuestionTypeSequenceOrders:
		return s.CompletedSequenceOrder
	default:
		return nil
	}
}

// MarkStarted gives the sub-quiz an open progress record if it has none
func (s *SubQuiz) MarkStarted() {
	if s.Progress() != nil {
		return
	}
	switch s.QuestionType {
	case QuestionTypeChoiceQuestions:
		s.CompletedQuestion = &SubQuizProgress{Status: SubQuizStatusNotStarted}
	case QuestionTypeSequenceOrders:
		s.CompletedSequenceOrder = &SubQuizProgress{Status: SubQuizStatusNotStarted}
	}
}

// IsCompleted reports whether the sub-quiz's own progress record is completed
func (s *SubQuiz) IsCompleted() bool {
	p := s.Progress()
	return p != nil && p.Status == SubQuizStatusCompleted
}

// FindSubQuiz returns the sub-quiz with the given ID or nil
func FindSubQuiz(subQuizzes []SubQuiz, subQuizID *string) *SubQuiz {
	if subQuizID == nil {
		return nil
	}
	for idx := range subQuizzes {
		if subQuizzes[idx].SubQuizID == *subQuizID {
			return &subQuizzes[idx]
		}
	}
	return nil
}

// FirstSubQuiz returns the chain head or nil if the chain is empty
func FirstSubQuiz(subQuizzes []SubQuiz) *SubQuiz {
	for idx := range subQuizzes {
		if subQuizzes[idx].PreviousSubQuiz == nil {
			return &subQuizzes[idx]
		}
	}
	return nil
}

// LastSubQuiz returns the chain tail or nil if the chain is empty
func LastSubQuiz(subQuizzes []SubQuiz) *SubQuiz {
	for idx := range subQuizzes {
		if subQuizzes[idx].NextSubQuiz == nil {
			return &subQuizzes[idx]
		}
	}
	return nil
}
