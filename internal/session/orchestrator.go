package session

import (
	"context"
	"fmt"
	"time"

	"github.com/japanesestudent/learn-navigator/internal/metrics"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"github.com/japanesestudent/learn-navigator/internal/navigation"
	"github.com/japanesestudent/learn-navigator/internal/subquiz"
	"go.uber.org/zap"
)

// ContentRepository is the interface that wraps read access to category content
type ContentRepository interface {
	// ListCategoryItems returns every content item of the category with the learner's progress.
	ListCategoryItems(ctx context.Context, categoryID string) ([]models.CategoryContentItem, error)
	// ListSubQuizzes returns every sub-quiz of the quiz with the learner's progress.
	ListSubQuizzes(ctx context.Context, categoryID, quizID string) ([]models.SubQuiz, error)
}

// ItemNavigator is the interface that wraps item level navigation rules
type ItemNavigator interface {
	NavigateToNext(nctx navigation.NavigationContext) (*models.CategoryContentItem, error)
	NavigateToPrevious(nctx navigation.NavigationContext) (*models.CategoryContentItem, error)
	CanNavigateNext(nctx navigation.NavigationContext) bool
	CanNavigatePrevious(nctx navigation.NavigationContext) bool
	CompletionService(contentType models.ContentType) (navigation.CompletionService, error)
}

// SubQuizNavigator is the interface that wraps sub-quiz level navigation rules
type SubQuizNavigator interface {
	CanNavigateNext(nctx subquiz.NavigationContext) bool
	NavigateNext(ctx context.Context, nctx subquiz.NavigationContext) (*models.SubQuiz, error)
	CanNavigatePrevious(nctx subquiz.NavigationContext) bool
	NavigatePrevious(nctx subquiz.NavigationContext) (*models.SubQuiz, error)
}

// EventRecorder is the interface that wraps delivery of navigation events
type EventRecorder interface {
	// Record delivers the event. Failures are logged by the orchestrator and never
	// change the navigation result.
	Record(ctx context.Context, event models.NavigationEvent) error
}

// Orchestrator runs navigation attempts against a session.
//
// The caller must serialise calls for the same session.
type Orchestrator struct {
	content    ContentRepository
	items      ItemNavigator
	subQuizzes SubQuizNavigator
	recorder   EventRecorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewOrchestrator creates a navigation orchestrator. recorder may be nil.
func NewOrchestrator(
	content ContentRepository,
	items ItemNavigator,
	subQuizzes SubQuizNavigator,
	recorder EventRecorder,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		content:    content,
		items:      items,
		subQuizzes: subQuizzes,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// attempt describes one navigation attempt for state tracking and event reporting
type attempt struct {
	level     models.NavigationLevel
	action    models.NavigationAction
	direction models.Direction
	fromID    string
}

// run marks the session as navigating, executes fn and always returns the session
// to the idle state. Panics raised by fn are reported as UnknownError.
func (o *Orchestrator) run(ctx context.Context, s *Session, a attempt, fn func() (string, error)) (err error) {
	s.NavigationState = models.NavigationState{
		IsNavigating:    true,
		Direction:       a.direction,
		PreviousPointer: a.fromID,
	}

	var toID string
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("navigation panicked",
				zap.String("session_id", s.ID),
				zap.Any("panic", r),
			)
			err = models.NewNavigationError(models.ErrorKindUnknownError, fmt.Sprintf("navigation failed: %v", r))
		}
		s.NavigationState = models.IdleNavigationState()
		if err == nil {
			s.UpdatedAt = o.now().UTC()
		}
		o.record(ctx, s, a, toID, err)
	}()

	toID, err = fn()
	return err
}

func (o *Orchestrator) record(ctx context.Context, s *Session, a attempt, toID string, err error) {
	event := models.NavigationEvent{
		SessionID:  s.ID,
		CategoryID: s.CategoryID,
		Level:      a.level,
		Action:     a.action,
		FromID:     a.fromID,
		ToID:       toID,
		Outcome:    models.NavigationOutcomeSucceeded,
		OccurredAt: o.now().UTC(),
	}
	if err != nil {
		event.Outcome = models.NavigationOutcomeFailed
		event.ErrorKind = models.AsNavigationError(err).Kind
		event.ToID = ""
	}
	metrics.RecordNavigation(string(event.Level), string(event.Action), string(event.Outcome))

	if o.recorder == nil {
		return
	}
	if recErr := o.recorder.Record(ctx, event); recErr != nil {
		o.logger.Warn("failed to record navigation event",
			zap.String("session_id", s.ID),
			zap.Error(recErr),
		)
	}
}

// NavigateItem moves the session to the next or previous content item.
//
// Moving forward requires the current item to be completed. When the target has
// no progress yet it is started remotely before the selection changes.
// On success the sub-quiz selection is cleared. On failure the selection is kept.
func (o *Orchestrator) NavigateItem(ctx context.Context, s *Session, direction models.Direction) (*models.CategoryContentItem, error) {
	a := attempt{
		level:     models.NavigationLevelItem,
		action:    actionFor(direction),
		direction: direction,
		fromID:    idOrEmpty(s.SelectedItemID()),
	}

	var target *models.CategoryContentItem
	err := o.run(ctx, s, a, func() (string, error) {
		items, err := o.listItems(ctx, s.CategoryID)
		if err != nil {
			return "", err
		}
		nctx := itemContext(s, items, direction)

		switch direction {
		case models.DirectionNext:
			target, err = o.navigateToNext(ctx, nctx)
		case models.DirectionPrevious:
			target, err = o.items.NavigateToPrevious(nctx)
		default:
			err = models.NewNavigationError(models.ErrorKindRouterError, fmt.Sprintf("unsupported direction %q", direction))
		}
		if err != nil {
			return "", err
		}

		s.SelectedItem = target
		s.SelectedSubQuiz = nil
		return target.CategoryItemID, nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

func (o *Orchestrator) navigateToNext(ctx context.Context, nctx navigation.NavigationContext) (*models.CategoryContentItem, error) {
	if !o.items.CanNavigateNext(nctx) {
		if _, err := o.items.NavigateToNext(nctx); err != nil {
			return nil, err
		}
		return nil, models.NewNavigationError(models.ErrorKindNavigationNotAllowed, "navigation to the next item is not allowed")
	}

	target := nctx.AdjacentItem
	if nctx.CurrentItem.IsCompleted() && target.HasProgress() {
		o.logger.Debug("next item already has progress, skipping start",
			zap.String("category_item_id", target.CategoryItemID),
		)
		return o.items.NavigateToNext(nctx)
	}

	completion, err := o.items.CompletionService(target.ContentType)
	if err != nil {
		return nil, err
	}
	started, err := completion.ValidateAndStartItem(ctx, target)
	if err != nil {
		return nil, err
	}
	if !started {
		return nil, models.NewNavigationError(models.ErrorKindValidationFailed,
			fmt.Sprintf("item %s can not be started", target.CategoryItemID))
	}

	next, err := o.items.NavigateToNext(nctx)
	if err != nil {
		return nil, err
	}
	return o.reloadItem(ctx, nctx.CategoryID, next), nil
}

// reloadItem re-fetches an item after its start call so the selection carries the
// new progress. If the reload fails the cached item is patched as started.
func (o *Orchestrator) reloadItem(ctx context.Context, categoryID string, item *models.CategoryContentItem) *models.CategoryContentItem {
	items, err := o.listItems(ctx, categoryID)
	if err == nil {
		if fresh := models.FindCategoryItem(items, &item.CategoryItemID); fresh != nil && fresh.HasProgress() {
			return fresh
		}
	}

	patched := *item
	patched.MarkStarted()
	return &patched
}

// reloadSubQuiz re-fetches a sub-quiz after its start call. If the reload fails
// the cached sub-quiz is patched as started.
func (o *Orchestrator) reloadSubQuiz(ctx context.Context, s *Session, sq *models.SubQuiz) *models.SubQuiz {
	subQuizzes, err := o.listSubQuizzes(ctx, s)
	if err == nil {
		if fresh := models.FindSubQuiz(subQuizzes, &sq.SubQuizID); fresh != nil && fresh.Progress() != nil {
			return fresh
		}
	}

	patched := *sq
	patched.MarkStarted()
	return &patched
}

// SelectItem selects a content item of the category directly.
//
// An empty categoryItemID selects the chain head. Locked items and unknown IDs
// fail with ValidationFailed. No remote call is issued.
func (o *Orchestrator) SelectItem(ctx context.Context, s *Session, categoryItemID string) (*models.CategoryContentItem, error) {
	a := attempt{
		level:  models.NavigationLevelItem,
		action: models.NavigationActionSelect,
		fromID: idOrEmpty(s.SelectedItemID()),
	}

	var target *models.CategoryContentItem
	err := o.run(ctx, s, a, func() (string, error) {
		items, err := o.listItems(ctx, s.CategoryID)
		if err != nil {
			return "", err
		}

		if categoryItemID == "" {
			target = models.FirstCategoryItem(items)
			if target == nil {
				return "", models.NewNavigationError(models.ErrorKindNoNextItem,
					fmt.Sprintf("category %s has no items", s.CategoryID))
			}
		} else {
			target = models.FindCategoryItem(items, &categoryItemID)
			if target == nil {
				return "", models.NewNavigationError(models.ErrorKindValidationFailed,
					fmt.Sprintf("item %s does not belong to category %s", categoryItemID, s.CategoryID))
			}
		}
		if target.IsLocked() {
			return "", models.NewNavigationError(models.ErrorKindValidationFailed,
				fmt.Sprintf("item %s is locked", target.CategoryItemID))
		}

		if s.SelectedItem == nil || s.SelectedItem.CategoryItemID != target.CategoryItemID {
			s.SelectedSubQuiz = nil
		}
		s.SelectedItem = target
		return target.CategoryItemID, nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// NavigateSubQuiz moves the session to the next or previous sub-quiz of the selected quiz
func (o *Orchestrator) NavigateSubQuiz(ctx context.Context, s *Session, direction models.Direction) (*models.SubQuiz, error) {
	a := attempt{
		level:     models.NavigationLevelSubQuiz,
		action:    actionFor(direction),
		direction: direction,
		fromID:    idOrEmpty(s.SelectedSubQuizID()),
	}

	var target *models.SubQuiz
	err := o.run(ctx, s, a, func() (string, error) {
		subQuizzes, err := o.listSubQuizzes(ctx, s)
		if err != nil {
			return "", err
		}
		nctx := subQuizContext(s, subQuizzes, direction)

		switch direction {
		case models.DirectionNext:
			target, err = o.subQuizzes.NavigateNext(ctx, nctx)
			if err == nil {
				target = o.reloadSubQuiz(ctx, s, target)
			}
		case models.DirectionPrevious:
			target, err = o.subQuizzes.NavigatePrevious(nctx)
		default:
			err = models.NewNavigationError(models.ErrorKindRouterError, fmt.Sprintf("unsupported direction %q", direction))
		}
		if err != nil {
			return "", err
		}

		s.SelectedSubQuiz = target
		return target.SubQuizID, nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// JumpToFirstSubQuiz selects the head of the sub-quiz chain of the selected quiz.
// It bypasses the transition rules and issues no remote call.
func (o *Orchestrator) JumpToFirstSubQuiz(ctx context.Context, s *Session) (*models.SubQuiz, error) {
	return o.jump(ctx, s, models.NavigationActionFirst, models.DirectionNext, func(subQuizzes []models.SubQuiz) (*models.SubQuiz, error) {
		first := models.FirstSubQuiz(subQuizzes)
		if first == nil {
			return nil, models.NewNavigationError(models.ErrorKindNoNextSubQuiz, "quiz has no sub-quizzes")
		}
		return first, nil
	})
}

// JumpToLastSubQuiz selects the tail of the sub-quiz chain of the selected quiz.
// It bypasses the transition rules and issues no remote call.
func (o *Orchestrator) JumpToLastSubQuiz(ctx context.Context, s *Session) (*models.SubQuiz, error) {
	return o.jump(ctx, s, models.NavigationActionLast, models.DirectionPrevious, func(subQuizzes []models.SubQuiz) (*models.SubQuiz, error) {
		last := models.LastSubQuiz(subQuizzes)
		if last == nil {
			return nil, models.NewNavigationError(models.ErrorKindNoPreviousSubQuiz, "quiz has no sub-quizzes")
		}
		return last, nil
	})
}

func (o *Orchestrator) jump(
	ctx context.Context,
	s *Session,
	action models.NavigationAction,
	direction models.Direction,
	pick func([]models.SubQuiz) (*models.SubQuiz, error),
) (*models.SubQuiz, error) {
	a := attempt{
		level:     models.NavigationLevelSubQuiz,
		action:    action,
		direction: direction,
		fromID:    idOrEmpty(s.SelectedSubQuizID()),
	}

	var target *models.SubQuiz
	err := o.run(ctx, s, a, func() (string, error) {
		subQuizzes, err := o.listSubQuizzes(ctx, s)
		if err != nil {
			return "", err
		}
		picked, err := pick(subQuizzes)
		if err != nil {
			return "", err
		}

		target = picked
		s.SelectedSubQuiz = target
		return target.SubQuizID, nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// Refresh reloads the selected item and sub-quiz so their progress is current.
// Selections that no longer exist are cleared.
func (o *Orchestrator) Refresh(ctx context.Context, s *Session) error {
	items, err := o.listItems(ctx, s.CategoryID)
	if err != nil {
		return err
	}
	s.SelectedItem = models.FindCategoryItem(items, s.SelectedItemID())

	if s.SelectedSubQuiz == nil {
		return nil
	}
	if s.SelectedItem == nil || s.SelectedItem.ContentType != models.ContentTypeQuizzes {
		s.SelectedSubQuiz = nil
		return nil
	}
	subQuizzes, err := o.listSubQuizzes(ctx, s)
	if err != nil {
		return err
	}
	s.SelectedSubQuiz = models.FindSubQuiz(subQuizzes, s.SelectedSubQuizID())

	return nil
}

// Availability evaluates every navigation probe for the current selection.
// Load failures are logged and reported as unavailable navigation.
func (o *Orchestrator) Availability(ctx context.Context, s *Session) models.Availability {
	var availability models.Availability

	items, err := o.listItems(ctx, s.CategoryID)
	if err != nil {
		o.logger.Warn("failed to evaluate item navigation", zap.String("session_id", s.ID), zap.Error(err))
		return availability
	}
	availability.CanNavigateNext = o.items.CanNavigateNext(itemContext(s, items, models.DirectionNext))
	availability.CanNavigatePrevious = o.items.CanNavigatePrevious(itemContext(s, items, models.DirectionPrevious))

	if s.SelectedSubQuiz == nil {
		return availability
	}
	subQuizzes, err := o.listSubQuizzes(ctx, s)
	if err != nil {
		o.logger.Warn("failed to evaluate sub-quiz navigation", zap.String("session_id", s.ID), zap.Error(err))
		return availability
	}
	availability.CanNavigateNextSubQuiz = o.subQuizzes.CanNavigateNext(subQuizContext(s, subQuizzes, models.DirectionNext))
	availability.CanNavigatePreviousSubQuiz = o.subQuizzes.CanNavigatePrevious(subQuizContext(s, subQuizzes, models.DirectionPrevious))

	return availability
}

// QuizEntryStep returns the screen a quiz item opens on.
//
// Completed quizzes open on statistics. Quizzes without answered questions open
// on the welcome screen, all others resume at the sub-quiz screen.
func QuizEntryStep(item *models.CategoryContentItem) (models.QuizStep, error) {
	if item == nil || item.ContentType != models.ContentTypeQuizzes {
		return "", models.NewNavigationError(models.ErrorKindInvalidContentType, "quiz entry step requires a quiz item")
	}

	progress := item.QuizProgress
	switch {
	case progress == nil:
		return models.QuizStepWelcome, nil
	case progress.Status == models.QuizStatusCompleted:
		return models.QuizStepStatistics, nil
	case progress.Status == models.QuizStatusNotStarted:
		return models.QuizStepWelcome, nil
	case progress.Status == models.QuizStatusInProgress && progress.CompletedQuestions == 0:
		return models.QuizStepWelcome, nil
	default:
		return models.QuizStepSubQuiz, nil
	}
}

// itemContext locates the selected item and its neighbour in the given direction
func itemContext(s *Session, items []models.CategoryContentItem, direction models.Direction) navigation.NavigationContext {
	current := models.FindCategoryItem(items, s.SelectedItemID())
	nctx := navigation.NavigationContext{
		CurrentItem: current,
		CategoryID:  s.CategoryID,
	}
	if current != nil {
		switch direction {
		case models.DirectionNext:
			nctx.AdjacentItem = models.FindCategoryItem(items, current.NextCategoryItem)
		case models.DirectionPrevious:
			nctx.AdjacentItem = models.FindCategoryItem(items, current.PreviousCategoryItem)
		}
	}
	return nctx
}

func subQuizContext(s *Session, subQuizzes []models.SubQuiz, direction models.Direction) subquiz.NavigationContext {
	current := models.FindSubQuiz(subQuizzes, s.SelectedSubQuizID())
	nctx := subquiz.NavigationContext{
		CurrentSubQuiz: current,
		CategoryID:     s.CategoryID,
	}
	if current != nil {
		switch direction {
		case models.DirectionNext:
			nctx.AdjacentSubQuiz = models.FindSubQuiz(subQuizzes, current.NextSubQuiz)
		case models.DirectionPrevious:
			nctx.AdjacentSubQuiz = models.FindSubQuiz(subQuizzes, current.PreviousSubQuiz)
		}
	}
	return nctx
}

func (o *Orchestrator) listItems(ctx context.Context, categoryID string) ([]models.CategoryContentItem, error) {
	items, err := o.content.ListCategoryItems(ctx, categoryID)
	if err != nil {
		o.logger.Error("failed to list category items", zap.String("category_id", categoryID), zap.Error(err))
		return nil, models.WrapNavigationError(models.ErrorKindFetchError, "failed to load category items", err)
	}
	return items, nil
}

// listSubQuizzes loads the sub-quiz chain of the selected quiz item
func (o *Orchestrator) listSubQuizzes(ctx context.Context, s *Session) ([]models.SubQuiz, error) {
	if s.SelectedItem == nil || s.SelectedItem.ContentType != models.ContentTypeQuizzes {
		return nil, models.NewNavigationError(models.ErrorKindInvalidContentType, "selected item is not a quiz")
	}

	subQuizzes, err := o.content.ListSubQuizzes(ctx, s.CategoryID, s.SelectedItem.ItemID)
	if err != nil {
		o.logger.Error("failed to list sub-quizzes",
			zap.String("category_id", s.CategoryID),
			zap.String("quiz_id", s.SelectedItem.ItemID),
			zap.Error(err),
		)
		return nil, models.WrapNavigationError(models.ErrorKindFetchError, "failed to load sub-quizzes", err)
	}
	return subQuizzes, nil
}

func actionFor(direction models.Direction) models.NavigationAction {
	if direction == models.DirectionPrevious {
		return models.NavigationActionPrevious
	}
	return models.NavigationActionNext
}

func idOrEmpty(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
