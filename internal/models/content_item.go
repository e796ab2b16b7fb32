package models

import (
	"encoding/json"
	"fmt"
)

// ContentType represents the type of a category content item
type ContentType string

const (
	ContentTypeSkills  ContentType = "skills"
	ContentTypeQuizzes ContentType = "quizzes"
)

// QuizStatus represents the progress status of a quiz item
type QuizStatus string

const (
	QuizStatusNotStarted QuizStatus = "not_started"
	QuizStatusInProgress QuizStatus = "in_progress"
	QuizStatusCompleted  QuizStatus = "completed"
)

// SkillContent represents the content payload of a skill item
type SkillContent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// QuizContent represents the content payload of a quiz item
type QuizContent struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	QuestionsCount int    `json:"questionsCount"`
}

// SkillProgress represents the learner progress of a started skill
type SkillProgress struct {
	IsCompleted bool `json:"isCompleted"`
	Score       int  `json:"score"`
}

// QuizProgress represents the learner progress of a started quiz
type QuizProgress struct {
	Status             QuizStatus `json:"status"`
	CompletedQuestions int        `json:"completedQuestions"`
}

// CategoryContentItem is a node in the ordered chain of learning units of a category.
//
// Content and progress are decoded into the fields matching ContentType.
// A nil progress means the item has not been started on the backend yet.
type CategoryContentItem struct {
	CategoryItemID       string
	ItemID               string
	CategoryID           string
	PreviousCategoryItem *string
	NextCategoryItem     *string
	ContentType          ContentType

	Skill         *SkillContent
	Quiz          *QuizContent
	SkillProgress *SkillProgress
	QuizProgress  *QuizProgress
}

// categoryContentItemJSON is the wire shape of CategoryContentItem
type categoryContentItemJSON struct {
	CategoryItemID       string          `json:"categoryItemId"`
	ItemID               string          `json:"itemId"`
	CategoryID           string          `json:"categoryId"`
	PreviousCategoryItem *string         `json:"previousCategoryItem"`
	NextCategoryItem     *string         `json:"nextCategoryItem"`
	ContentType          ContentType     `json:"contentType"`
	Content              json.RawMessage `json:"content,omitempty"`
	ItemProgress         json.RawMessage `json:"itemProgress,omitempty"`
}

// UnmarshalJSON decodes content and itemProgress according to contentType
func (i *CategoryContentItem) UnmarshalJSON(data []byte) error {
	var raw categoryContentItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = CategoryContentItem{
		CategoryItemID:       raw.CategoryItemID,
		ItemID:               raw.ItemID,
		CategoryID:           raw.CategoryID,
		PreviousCategoryItem: raw.PreviousCategoryItem,
		NextCategoryItem:     raw.NextCategoryItem,
		ContentType:          raw.ContentType,
	}

	switch raw.ContentType {
	case ContentTypeSkills:
		if isPresent(raw.Content) {
			i.Skill = &SkillContent{}
			if err := json.Unmarshal(raw.Content, i.Skill); err != nil {
				return fmt.Errorf("invalid skill content: %w", err)
			}
		}
		if isPresent(raw.ItemProgress) {
			i.SkillProgress = &SkillProgress{}
			if err := json.Unmarshal(raw.ItemProgress, i.SkillProgress); err != nil {
				return fmt.Errorf("invalid skill progress: %w", err)
			}
		}
	case ContentTypeQuizzes:
		if isPresent(raw.Content) {
			i.Quiz = &QuizContent{}
			if err := json.Unmarshal(raw.Content, i.Quiz); err != nil {
				return fmt.Errorf("invalid quiz content: %w", err)
			}
		}
		if isPresent(raw.ItemProgress) {
			i.QuizProgress = &QuizProgress{}
			if err := json.Unmarshal(raw.ItemProgress, i.QuizProgress); err != nil {
				return fmt.Errorf("invalid quiz progress: %w", err)
			}
		}
	}

	return nil
}

// MarshalJSON encodes the item back to its wire shape
func (i CategoryContentItem) MarshalJSON() ([]byte, error) {
	raw := categoryContentItemJSON{
		CategoryItemID:       i.CategoryItemID,
		ItemID:               i.ItemID,
		CategoryID:           i.CategoryID,
		PreviousCategoryItem: i.PreviousCategoryItem,
		NextCategoryItem:     i.NextCategoryItem,
		ContentType:          i.ContentType,
	}

	var content, progress any
	switch i.ContentType {
	case ContentTypeSkills:
		if i.Skill != nil {
			content = i.Skill
		}
		if i.SkillProgress != nil {
			progress = i.SkillProgress
		}
	case ContentTypeQuizzes:
		if i.Quiz != nil {
			content = i.Quiz
		}
		if i.QuizProgress != nil {
			progress = i.QuizProgress
		}
	}

	var err error
	if content != nil {
		if raw.Content, err = json.Marshal(content); err != nil {
			return nil, err
		}
	}
	if progress != nil {
		if raw.ItemProgress, err = json.Marshal(progress); err != nil {
			return nil, err
		}
	}

	return json.Marshal(raw)
}

// HasProgress reports whether the item has been started on the backend
func (i *CategoryContentItem) HasProgress() bool {
	switch i.ContentType {
	case ContentTypeSkills:
		return i.SkillProgress != nil
	case ContentTypeQuizzes:
		return i.QuizProgress != nil
	default:
		return false
	}
}

// MarkStarted gives the item an empty progress record if it has none,
// matching the backend state after a successful start call
func (i *CategoryContentItem) MarkStarted() {
	if i.HasProgress() {
		return
	}
	switch i.ContentType {
	case ContentTypeSkills:
		i.SkillProgress = &SkillProgress{}
	case ContentTypeQuizzes:
		i.QuizProgress = &QuizProgress{Status: QuizStatusInProgress}
	}
}

// IsCompleted reports whether the item progress marks it as completed
func (i *CategoryContentItem) IsCompleted() bool {
	switch i.ContentType {
	case ContentTypeSkills:
		return i.SkillProgress != nil && i.SkillProgress.IsCompleted
	case ContentTypeQuizzes:
		return i.QuizProgress != nil && i.QuizProgress.Status == QuizStatusCompleted
	default:
		return false
	}
}

// IsHead reports whether the item is the first one in its category chain
func (i *CategoryContentItem) IsHead() bool {
	return i.PreviousCategoryItem == nil
}

// IsLocked reports whether the item cannot be opened yet.
// Only the chain head is reachable without a progress record.
func (i *CategoryContentItem) IsLocked() bool {
	return !i.HasProgress() && !i.IsHead()
}

// Title returns the display title of the item content
func (i *CategoryContentItem) Title() string {
	switch {
	case i.Skill != nil:
		return i.Skill.Title
	case i.Quiz != nil:
		return i.Quiz.Title
	default:
		return ""
	}
}

// ProgressPercent returns the progress bar value of the item in range 0..100
func (i *CategoryContentItem) ProgressPercent() int {
	switch i.ContentType {
	case ContentTypeSkills:
		if i.SkillProgress == nil {
			return 0
		}
		return clampPercent(i.SkillProgress.Score)
	case ContentTypeQuizzes:
		if i.QuizProgress == nil {
			return 0
		}
		if i.QuizProgress.Status == QuizStatusCompleted {
			return 100
		}
		if i.Quiz == nil || i.Quiz.QuestionsCount <= 0 {
			return 0
		}
		return clampPercent(i.QuizProgress.CompletedQuestions * 100 / i.Quiz.QuestionsCount)
	default:
		return 0
	}
}

// FindCategoryItem returns the item with the given category item ID or nil
func FindCategoryItem(items []CategoryContentItem, categoryItemID *string) *CategoryContentItem {
	if categoryItemID == nil {
		return nil
	}
	for idx := range items {
		if items[idx].CategoryItemID == *categoryItemID {
			return &items[idx]
		}
	}
	return nil
}

// FirstCategoryItem returns the chain head of the category or nil
func FirstCategoryItem(items []CategoryContentItem) *CategoryContentItem {
	for idx := range items {
		if items[idx].IsHead() {
			return &items[idx]
		}
	}
	return nil
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
