package models

import "time"

// CreateSessionRequest represents a request to open a navigation session
type CreateSessionRequest struct {
	CategoryID     string `json:"categoryId"`
	CategoryItemID string `json:"categoryItemId,omitempty"`
}

// SelectItemRequest represents a request to select a content item directly
type SelectItemRequest struct {
	CategoryItemID string `json:"categoryItemId"`
}

// SessionResponse represents a navigation session together with the derived view state
type SessionResponse struct {
	ID              string               `json:"id"`
	CategoryID      string               `json:"categoryId"`
	SelectedItem    *CategoryContentItem `json:"selectedItem,omitempty"`
	SelectedSubQuiz *SubQuiz             `json:"selectedSubQuiz,omitempty"`
	NavigationState NavigationState      `json:"navigationState"`
	Availability    Availability         `json:"availability"`
	QuizStep        QuizStep             `json:"quizStep,omitempty"`
	ProgressPercent int                  `json:"progressPercent"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}
