package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rkbisoi/demo-loan-app-api/internal/decision"
	"github.com/rkbisoi/demo-loan-app-api/internal/metrics"
	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/rkbisoi/demo-loan-app-api/internal/repository"
	"github.com/rkbisoi/demo-loan-app-api/internal/validation"
	"github.com/sirupsen/logrus"
)

// Kind classifies application-service failures
type Kind int

const (
	// ValidationFailed means the submission was rejected by the validator.
	ValidationFailed Kind = iota
	// ProcessingFailed covers any other failure while creating a record.
	ProcessingFailed
)

// ApplicationError is the error surface of the application service.
type ApplicationError struct {
	Kind Kind
	Err  error
}

func (e *ApplicationError) Error() string {
	switch e.Kind {
	case ValidationFailed:
		return fmt.Sprintf("validation failed: %v", e.Err)
	default:
		return fmt.Sprintf("failed to process application: %v", e.Err)
	}
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// Notifier sends a back-office notification for a decided application.
type Notifier interface {
	SendDecisionNotification(record models.ApplicationRecord) error
}

// Service orchestrates validate, decide and persist for loan applications.
type Service struct {
	store     repository.Store
	validator *validation.Validator
	log       *logrus.Logger
	notifier  Notifier

	// Serializes the load-append-save cycle so concurrent creations cannot
	// overwrite each other's snapshot.
	mu sync.Mutex
}

// NewService initializes a new service. notifier may be nil.
func NewService(store repository.Store, validator *validation.Validator, log *logrus.Logger, notifier Notifier) *Service {
	return &Service{store: store, validator: validator, log: log, notifier: notifier}
}

// CreateApplication validates a raw submission, applies the decision rules,
// assigns identity and timestamp, and appends the record to the store.
func (s *Service) CreateApplication(ctx context.Context, doc []byte) (models.ApplicationRecord, error) {
	input, err := s.validator.Parse(doc)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				metrics.ValidationFailures.WithLabelValues(fe.Code).Inc()
			}
		}
		return models.ApplicationRecord{}, &ApplicationError{Kind: ValidationFailed, Err: err}
	}

	outcome := decision.Decide(input)

	record := models.ApplicationRecord{
		ApplicationInput: input,
		ID:               uuid.NewString(),
		Status:           outcome.Status,
		DecisionCode:     outcome.DecisionCode,
		CreatedAt:        time.Now().UTC(),
	}

	s.mu.Lock()
	records := s.store.LoadAll(ctx)
	records = append(records, record)
	err = s.store.SaveAll(ctx, records)
	s.mu.Unlock()
	if err != nil {
		metrics.StorageSaveFailures.Inc()
		return models.ApplicationRecord{}, &ApplicationError{Kind: ProcessingFailed, Err: err}
	}

	metrics.ApplicationsDecided.WithLabelValues(record.Status).Inc()
	s.log.Infof("Application %s %s (%s)", record.ID, record.Status, outcome.Message)

	if s.notifier != nil {
		if err := s.notifier.SendDecisionNotification(record); err != nil {
			s.log.Errorf("Failed to send decision notification for %s: %v", record.ID, err)
		}
	}

	return record, nil
}

// ListApplicationSummaries loads the full collection and projects each record
// to its summary. Never fails: unreadable storage degrades to an empty list.
func (s *Service) ListApplicationSummaries(ctx context.Context) []models.ApplicationSummary {
	records := s.store.LoadAll(ctx)
	summaries := make([]models.ApplicationSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, models.ApplicationSummary{
			ID:               r.ID,
			Name:             r.Name,
			EmploymentStatus: r.EmploymentStatus,
			Income:           r.Income,
			LoanAmount:       r.LoanAmount,
			DecisionCode:     r.DecisionCode,
			Status:           r.Status,
			CreatedAt:        r.CreatedAt,
		})
	}
	return summaries
}
