package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// advanceConcurrency bounds how many recurring series are advanced in
// parallel. Each series is independent, so the batch is safe to fan out.
const advanceConcurrency = 4

// RecurringService handles recurring-transaction business logic:
// managing the templates and materializing due occurrences.
type RecurringService struct {
	db              *sql.DB
	recurringRepo   *repository.RecurringRepository
	transactionRepo *repository.TransactionRepository
}

// NewRecurringService creates a new RecurringService with the provided dependencies.
func NewRecurringService(
	db *sql.DB,
	recurringRepo *repository.RecurringRepository,
	transactionRepo *repository.TransactionRepository,
) *RecurringService {
	return &RecurringService{
		db:              db,
		recurringRepo:   recurringRepo,
		transactionRepo: transactionRepo,
	}
}

// GetRecurringTransactions retrieves all recurring transactions for a user.
func (s *RecurringService) GetRecurringTransactions(userID string) ([]model.RecurringTransaction, error) {
	return s.recurringRepo.GetRecurringTransactions(userID)
}

// GetRecurringTransaction retrieves a single recurring transaction by
// ID. A template owned by another user is reported as not found so
// existence is not leaked.
func (s *RecurringService) GetRecurringTransaction(userID, recurringID string) (model.RecurringTransaction, error) {
	recurring, err := s.recurringRepo.GetRecurringTransaction(recurringID)
	if err != nil {
		return model.RecurringTransaction{}, err
	}
	if recurring.UserID != userID {
		return model.RecurringTransaction{}, apperrors.ErrRecurringNotFound
	}
	return recurring, nil
}

// CreateRecurringTransaction stores a new template. The first due date
// is the start date itself; the anchor day defaults to the start date's
// day-of-month when the request omits it.
func (s *RecurringService) CreateRecurringTransaction(ctx context.Context, userID string, req request.CreateRecurringRequest) (*model.RecurringTransaction, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end date: %w", err)
		}
		endDate = &parsed
	}

	anchorDay := req.AnchorDay
	if anchorDay == 0 {
		anchorDay = startDate.Day()
	}

	recurring := &model.RecurringTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Direction:   model.Direction(req.Direction),
		Frequency:   model.Frequency(req.Frequency),
		AnchorDay:   anchorDay,
		StartDate:   startDate,
		EndDate:     endDate,
		NextDueDate: startDate,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.recurringRepo.InsertRecurringTransaction(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	return recurring, nil
}

// DeleteRecurringTransaction removes a user's template. Materialized
// transactions keep their recurring_id reference and are not touched.
func (s *RecurringService) DeleteRecurringTransaction(ctx context.Context, userID, recurringID string) error {
	if _, err := s.GetRecurringTransaction(userID, recurringID); err != nil {
		return err
	}
	return s.recurringRepo.DeleteRecurringTransaction(ctx, recurringID)
}

// AdvanceSummary reports the outcome of an advancement batch.
type AdvanceSummary struct {
	Processed    int              `json:"processed"`
	Materialized int              `json:"materialized"`
	Exhausted    int              `json:"exhausted"`
	Failures     []AdvanceFailure `json:"failures,omitempty"`
}

// AdvanceFailure records a single series whose advancement failed.
type AdvanceFailure struct {
	RecurringID string `json:"recurringId"`
	Error       string `json:"error"`
}

// AdvanceDue materializes every recurring transaction due on or before
// asOf and moves each series to its next due date. Series are processed
// in parallel; one series failing is recorded in the summary and leaves
// the rest of the batch untouched.
func (s *RecurringService) AdvanceDue(ctx context.Context, asOf time.Time) (AdvanceSummary, error) {
	due, err := s.recurringRepo.GetDue(asOf)
	if err != nil {
		return AdvanceSummary{}, fmt.Errorf("failed to load due series: %w", err)
	}

	var mu sync.Mutex
	summary := AdvanceSummary{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(advanceConcurrency)

	for _, rt := range due {
		g.Go(func() error {
			materialized, exhausted, err := s.advanceSeries(ctx, rt, asOf)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("recurring %s advancement failed: %v", rt.ID, err)
				summary.Failures = append(summary.Failures, AdvanceFailure{
					RecurringID: rt.ID,
					Error:       err.Error(),
				})
				// Failure isolation: never abort the batch.
				return nil
			}
			summary.Processed++
			summary.Materialized += materialized
			if exhausted {
				summary.Exhausted++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}

	return summary, nil
}

// advanceSeries materializes occurrences of one series until its next
// due date passes asOf. Each occurrence is written in its own database
// transaction so the materialized row commits together with the moved
// due date, or with the deactivation when the series is exhausted.
func (s *RecurringService) advanceSeries(ctx context.Context, rt model.RecurringTransaction, asOf time.Time) (int, bool, error) {
	materialized := 0

	for !rt.NextDueDate.After(asOf) {
		next, err := NextDueDate(rt.Frequency, rt.AnchorDay, rt.NextDueDate, rt.EndDate)
		if errors.Is(err, apperrors.ErrSeriesExhausted) {
			if err := s.materializeOccurrence(ctx, rt, nil); err != nil {
				return materialized, false, err
			}
			materialized++
			return materialized, true, nil
		}
		if err != nil {
			return materialized, false, err
		}

		if err := s.materializeOccurrence(ctx, rt, &next); err != nil {
			return materialized, false, err
		}
		materialized++
		rt.NextDueDate = next
	}

	return materialized, false, nil
}

// materializeOccurrence inserts the transaction for the series' current
// due date and moves the series forward in the same database
// transaction: to the next due date when next is set, or to inactive
// when next is nil (the final occurrence). Committing both together
// means a crash can never leave the occurrence written with the series
// still due, which would duplicate it on the next run.
func (s *RecurringService) materializeOccurrence(ctx context.Context, rt model.RecurringTransaction, next *time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	transaction := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      rt.UserID,
		CategoryID:  rt.CategoryID,
		Date:        rt.NextDueDate,
		Amount:      rt.Amount,
		Direction:   rt.Direction,
		Description: rt.Description,
		RecurringID: &rt.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, transaction); err != nil {
		return err
	}

	if next != nil {
		if err := s.recurringRepo.WithTx(tx).AdvanceNextDueDate(ctx, rt.ID, *next); err != nil {
			return err
		}
	} else {
		if err := s.recurringRepo.WithTx(tx).Deactivate(ctx, rt.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit occurrence: %w", err)
	}

	return nil
}
