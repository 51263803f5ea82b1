package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/notify"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// ObjectiveService handles objective-related business logic: CRUD,
// on-demand progress summaries and the alert evaluation that drives
// notifications.
type ObjectiveService struct {
	objectiveRepo *repository.ObjectiveRepository
	userRepo      *repository.UserRepository
	valueSource   ValueSource
	notifier      notify.Notifier
}

// NewObjectiveService creates a new ObjectiveService with the provided dependencies.
func NewObjectiveService(
	objectiveRepo *repository.ObjectiveRepository,
	userRepo *repository.UserRepository,
	valueSource ValueSource,
	notifier notify.Notifier,
) *ObjectiveService {
	return &ObjectiveService{
		objectiveRepo: objectiveRepo,
		userRepo:      userRepo,
		valueSource:   valueSource,
		notifier:      notifier,
	}
}

// GetObjectives retrieves all objectives for a user.
func (s *ObjectiveService) GetObjectives(userID string) ([]model.Objective, error) {
	return s.objectiveRepo.GetObjectives(userID, false)
}

// GetObjective retrieves a single objective by ID. An objective owned
// by another user is reported as not found so existence is not leaked.
func (s *ObjectiveService) GetObjective(userID, objectiveID string) (model.Objective, error) {
	objective, err := s.objectiveRepo.GetObjective(objectiveID)
	if err != nil {
		return model.Objective{}, err
	}
	if objective.UserID != userID {
		return model.Objective{}, apperrors.ErrObjectiveNotFound
	}
	return objective, nil
}

// CreateObjective stores a new objective for the user. The period
// defaults to the current month when the request omits it.
func (s *ObjectiveService) CreateObjective(ctx context.Context, userID string, req request.CreateObjectiveRequest) (*model.Objective, error) {
	period := req.Period
	if period == "" {
		period = time.Now().UTC().Format("2006-01")
	}

	objective := &model.Objective{
		ID:                 uuid.New().String(),
		UserID:             userID,
		CategoryID:         req.CategoryID,
		Description:        req.Description,
		TargetAmount:       req.TargetAmount,
		Kind:               model.ObjectiveKind(req.Kind),
		Period:             period,
		IsActive:           true,
		LastNotifiedLevel:  model.AlertLevelNone,
		LastNotifiedPeriod: period,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.objectiveRepo.InsertObjective(ctx, objective); err != nil {
		return nil, fmt.Errorf("failed to create objective: %w", err)
	}

	return objective, nil
}

// UpdateObjective updates an objective's mutable fields.
func (s *ObjectiveService) UpdateObjective(ctx context.Context, userID, objectiveID string, req request.UpdateObjectiveRequest) (*model.Objective, error) {
	objective, err := s.GetObjective(userID, objectiveID)
	if err != nil {
		return nil, err
	}

	objective.CategoryID = req.CategoryID
	objective.Description = req.Description
	objective.TargetAmount = req.TargetAmount
	objective.Kind = model.ObjectiveKind(req.Kind)
	objective.Period = req.Period
	if req.IsActive != nil {
		objective.IsActive = *req.IsActive
	}

	if err := s.objectiveRepo.UpdateObjective(ctx, &objective); err != nil {
		return nil, fmt.Errorf("failed to update objective: %w", err)
	}

	return &objective, nil
}

// DeleteObjective removes an objective owned by the user.
func (s *ObjectiveService) DeleteObjective(ctx context.Context, userID, objectiveID string) error {
	if _, err := s.GetObjective(userID, objectiveID); err != nil {
		return err
	}
	return s.objectiveRepo.DeleteObjective(ctx, objectiveID)
}

// GetProgress computes the read-only progress summary for an objective.
// The alert status shown here is derived transiently for display;
// notifications are driven exclusively by EvaluateObjective and the
// persisted level, so rendering a summary can never cause a re-notify.
func (s *ObjectiveService) GetProgress(objective model.Objective) (model.ObjectiveProgressResponse, error) {
	current, err := s.valueSource.CurrentAmount(objective)
	if err != nil {
		return model.ObjectiveProgressResponse{}, err
	}

	progress, err := CalculateProgress(objective.TargetAmount, current)
	if err != nil {
		return model.ObjectiveProgressResponse{}, err
	}

	level, err := AlertLevelFor(objective.Kind, progress.PercentAchieved)
	if err != nil {
		return model.ObjectiveProgressResponse{}, err
	}

	return model.ObjectiveProgressResponse{
		ObjectiveID:     objective.ID,
		Description:     objective.Description,
		Kind:            objective.Kind,
		Period:          objective.Period,
		TargetAmount:    objective.TargetAmount,
		CurrentAmount:   current,
		PercentAchieved: progress.PercentAchieved,
		Remaining:       progress.Remaining,
		AlertStatus:     level,
	}, nil
}

// GetProgressByID loads a user's objective and computes its progress summary.
func (s *ObjectiveService) GetProgressByID(userID, objectiveID string) (model.ObjectiveProgressResponse, error) {
	objective, err := s.GetObjective(userID, objectiveID)
	if err != nil {
		return model.ObjectiveProgressResponse{}, err
	}
	return s.GetProgress(objective)
}

// EvaluateObjective runs one alert evaluation for an objective and
// returns whether a notification was dispatched.
//
// The previously notified level only counts if it was recorded for the
// objective's current period; a period roll resets it to NONE. An event
// fires only on a strict level increase. Dispatch happens before the
// new level is persisted: if persistence then fails the next evaluation
// may send the alert again (at-least-once delivery), but the level can
// never advance without a confirmed write (at-most-once advancement).
func (s *ObjectiveService) EvaluateObjective(ctx context.Context, objective model.Objective) (bool, error) {
	current, err := s.valueSource.CurrentAmount(objective)
	if err != nil {
		return false, err
	}

	progress, err := CalculateProgress(objective.TargetAmount, current)
	if err != nil {
		return false, err
	}

	level, err := AlertLevelFor(objective.Kind, progress.PercentAchieved)
	if err != nil {
		return false, err
	}

	previous := objective.LastNotifiedLevel
	if objective.LastNotifiedPeriod != objective.Period {
		previous = model.AlertLevelNone
	}

	event, fired := EvaluateTransition(previous, level)
	if !fired {
		return false, nil
	}

	recipient, err := s.userRepo.GetUser(objective.UserID)
	if err != nil {
		return false, err
	}

	if err := s.dispatch(ctx, event, objective, recipient); err != nil {
		return false, err
	}

	if err := s.objectiveRepo.UpdateNotifiedLevel(ctx, objective.ID, event.Level, objective.Period); err != nil {
		return true, fmt.Errorf("alert sent but level not recorded: %w", err)
	}

	return true, nil
}

// dispatch routes an alert event to the notification port. The switch is
// exhaustive over notifiable levels.
func (s *ObjectiveService) dispatch(ctx context.Context, event model.AlertEvent, objective model.Objective, recipient model.User) error {
	switch event.Level {
	case model.AlertLevelYellow:
		return s.notifier.SendYellowAlert(ctx, objective, recipient)
	case model.AlertLevelRed:
		return s.notifier.SendRedAlert(ctx, objective, recipient)
	case model.AlertLevelAchieved:
		return s.notifier.SendGoalAchieved(ctx, objective, recipient)
	default:
		return fmt.Errorf("no notification variant for level %q", event.Level)
	}
}

// EvaluationSummary reports the outcome of an evaluation batch.
type EvaluationSummary struct {
	Evaluated int                 `json:"evaluated"`
	Notified  int                 `json:"notified"`
	Failures  []EvaluationFailure `json:"failures,omitempty"`
}

// EvaluationFailure records a single objective whose evaluation failed.
type EvaluationFailure struct {
	ObjectiveID string `json:"objectiveId"`
	Error       string `json:"error"`
}

// EvaluateAll evaluates every active objective. A single objective's
// failure (for example its value source being unavailable) is recorded
// and does not stop the rest of the batch.
func (s *ObjectiveService) EvaluateAll(ctx context.Context) (EvaluationSummary, error) {
	objectives, err := s.objectiveRepo.GetActiveObjectives()
	if err != nil {
		return EvaluationSummary{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}

	summary := EvaluationSummary{}

	for _, objective := range objectives {
		notified, err := s.EvaluateObjective(ctx, objective)
		if err != nil {
			log.Printf("objective %s evaluation failed: %v", objective.ID, err)
			summary.Failures = append(summary.Failures, EvaluationFailure{
				ObjectiveID: objective.ID,
				Error:       err.Error(),
			})
			continue
		}
		summary.Evaluated++
		if notified {
			summary.Notified++
		}
	}

	return summary, nil
}
