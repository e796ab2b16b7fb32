package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestCategoryContentItem_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		expectedError bool
		check         func(t *testing.T, item CategoryContentItem)
	}{
		{
			name: "skill with progress",
			payload: `{"categoryItemId":"ci-1","itemId":"s-1","categoryId":"c-1","previousCategoryItem":null,"nextCategoryItem":"ci-2",
				"contentType":"skills","content":{"id":"s-1","title":"Greetings"},"itemProgress":{"isCompleted":false,"score":40}}`,
			check: func(t *testing.T, item CategoryContentItem) {
				assert.Equal(t, ContentTypeSkills, item.ContentType)
				require.NotNil(t, item.Skill)
				assert.Equal(t, "Greetings", item.Skill.Title)
				require.NotNil(t, item.SkillProgress)
				assert.Equal(t, 40, item.SkillProgress.Score)
				assert.Nil(t, item.QuizProgress)
				assert.Nil(t, item.PreviousCategoryItem)
				require.NotNil(t, item.NextCategoryItem)
				assert.Equal(t, "ci-2", *item.NextCategoryItem)
			},
		},
		{
			name: "quiz without progress",
			payload: `{"categoryItemId":"ci-2","itemId":"q-1","categoryId":"c-1","previousCategoryItem":"ci-1","nextCategoryItem":null,
				"contentType":"quizzes","content":{"id":"q-1","title":"Check","questionsCount":4}}`,
			check: func(t *testing.T, item CategoryContentItem) {
				assert.Equal(t, ContentTypeQuizzes, item.ContentType)
				require.NotNil(t, item.Quiz)
				assert.Equal(t, 4, item.Quiz.QuestionsCount)
				assert.Nil(t, item.QuizProgress)
				assert.False(t, item.HasProgress())
				assert.True(t, item.IsLocked())
			},
		},
		{
			name: "quiz with null progress",
			payload: `{"categoryItemId":"ci-2","itemId":"q-1","categoryId":"c-1","contentType":"quizzes","itemProgress":null}`,
			check: func(t *testing.T, item CategoryContentItem) {
				assert.Nil(t, item.QuizProgress)
			},
		},
		{
			name:    "unknown content type keeps payload empty",
			payload: `{"categoryItemId":"ci-3","contentType":"videos","content":{"url":"x"},"itemProgress":{"watched":true}}`,
			check: func(t *testing.T, item CategoryContentItem) {
				assert.Equal(t, ContentType("videos"), item.ContentType)
				assert.Nil(t, item.Skill)
				assert.Nil(t, item.Quiz)
				assert.False(t, item.HasProgress())
			},
		},
		{
			name:          "malformed progress",
			payload:       `{"categoryItemId":"ci-1","contentType":"skills","itemProgress":{"isCompleted":"yes"}}`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item CategoryContentItem
			err := json.Unmarshal([]byte(tt.payload), &item)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, item)
		})
	}
}

func TestCategoryContentItem_MarshalJSON(t *testing.T) {
	item := CategoryContentItem{
		CategoryItemID: "ci-1",
		ItemID:         "q-1",
		CategoryID:     "c-1",
		ContentType:    ContentTypeQuizzes,
		Quiz:           &QuizContent{ID: "q-1", Title: "Check", QuestionsCount: 3},
		QuizProgress:   &QuizProgress{Status: QuizStatusInProgress, CompletedQuestions: 1},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "quizzes", decoded["contentType"])
	progress, ok := decoded["itemProgress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "in_progress", progress["status"])
	assert.Nil(t, decoded["previousCategoryItem"])
}

func TestCategoryContentItem_Predicates(t *testing.T) {
	tests := []struct {
		name              string
		item              CategoryContentItem
		expectedProgress  bool
		expectedCompleted bool
		expectedLocked    bool
		expectedPercent   int
	}{
		{
			name:           "head skill without progress is not locked",
			item:           CategoryContentItem{ContentType: ContentTypeSkills},
			expectedLocked: false,
		},
		{
			name:           "skill without progress after head is locked",
			item:           CategoryContentItem{ContentType: ContentTypeSkills, PreviousCategoryItem: strPtr("ci-0")},
			expectedLocked: true,
		},
		{
			name: "skill in progress with score",
			item: CategoryContentItem{
				ContentType:          ContentTypeSkills,
				PreviousCategoryItem: strPtr("ci-0"),
				SkillProgress:        &SkillProgress{IsCompleted: false, Score: 40},
			},
			expectedProgress: true,
			expectedPercent:  40,
		},
		{
			name: "completed skill",
			item: CategoryContentItem{
				ContentType:   ContentTypeSkills,
				SkillProgress: &SkillProgress{IsCompleted: true, Score: 130},
			},
			expectedProgress:  true,
			expectedCompleted: true,
			expectedPercent:   100,
		},
		{
			name: "quiz in progress",
			item: CategoryContentItem{
				ContentType:  ContentTypeQuizzes,
				Quiz:         &QuizContent{QuestionsCount: 4},
				QuizProgress: &QuizProgress{Status: QuizStatusInProgress, CompletedQuestions: 1},
			},
			expectedProgress: true,
			expectedPercent:  25,
		},
		{
			name: "completed quiz",
			item: CategoryContentItem{
				ContentType:  ContentTypeQuizzes,
				QuizProgress: &QuizProgress{Status: QuizStatusCompleted},
			},
			expectedProgress:  true,
			expectedCompleted: true,
			expectedPercent:   100,
		},
		{
			name: "skill progress on quiz item is ignored",
			item: CategoryContentItem{
				ContentType:          ContentTypeQuizzes,
				PreviousCategoryItem: strPtr("ci-0"),
				SkillProgress:        &SkillProgress{IsCompleted: true},
			},
			expectedLocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedProgress, tt.item.HasProgress())
			assert.Equal(t, tt.expectedCompleted, tt.item.IsCompleted())
			assert.Equal(t, tt.expectedLocked, tt.item.IsLocked())
			assert.Equal(t, tt.expectedPercent, tt.item.ProgressPercent())
		})
	}
}

func TestFindCategoryItem(t *testing.T) {
	items := []CategoryContentItem{
		{CategoryItemID: "ci-1", NextCategoryItem: strPtr("ci-2")},
		{CategoryItemID: "ci-2", PreviousCategoryItem: strPtr("ci-1")},
	}

	found := FindCategoryItem(items, strPtr("ci-2"))
	require.NotNil(t, found)
	assert.Equal(t, "ci-2", found.CategoryItemID)

	assert.Nil(t, FindCategoryItem(items, nil))
	assert.Nil(t, FindCategoryItem(items, strPtr("missing")))

	head := FirstCategoryItem(items)
	require.NotNil(t, head)
	assert.Equal(t, "ci-1", head.CategoryItemID)
	assert.Nil(t, FirstCategoryItem(nil))
}

func TestNavigationError_Is(t *testing.T) {
	err := WrapNavigationError(ErrorKindFetchError, "failed to start quiz", errors.New("boom"))

	assert.ErrorIs(t, err, ErrFetchError)
	assert.NotErrorIs(t, err, ErrCompletionRequired)
	assert.Contains(t, err.Error(), "FetchError")
	assert.Contains(t, err.Error(), "boom")

	unknown := AsNavigationError(errors.New("panic value"))
	assert.Equal(t, ErrorKindUnknownError, unknown.Kind)
	assert.Same(t, err, AsNavigationError(err))
	assert.Nil(t, AsNavigationError(nil))
}

func TestCategoryContentItem_MarkStarted(t *testing.T) {
	tests := []struct {
		name             string
		item             CategoryContentItem
		expectedSkill    *SkillProgress
		expectedQuiz     *QuizProgress
		expectedProgress bool
	}{
		{
			name:             "skill without progress",
			item:             CategoryContentItem{ContentType: ContentTypeSkills},
			expectedSkill:    &SkillProgress{},
			expectedProgress: true,
		},
		{
			name:             "quiz without progress",
			item:             CategoryContentItem{ContentType: ContentTypeQuizzes},
			expectedQuiz:     &QuizProgress{Status: QuizStatusInProgress},
			expectedProgress: true,
		},
		{
			name:             "existing progress is kept",
			item:             CategoryContentItem{ContentType: ContentTypeSkills, SkillProgress: &SkillProgress{IsCompleted: true, Score: 80}},
			expectedSkill:    &SkillProgress{IsCompleted: true, Score: 80},
			expectedProgress: true,
		},
		{
			name: "unknown content type",
			item: CategoryContentItem{ContentType: "videos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item

			item.MarkStarted()

			assert.Equal(t, tt.expectedSkill, item.SkillProgress)
			assert.Equal(t, tt.expectedQuiz, item.QuizProgress)
			assert.Equal(t, tt.expectedProgress, item.HasProgress())
		})
	}
}
