package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

var (
	ErrFeedbackExists = repository.ErrFeedbackExists

	// ErrNotRegistered rejects feedback from accounts without a paid
	// registration for the event.
	ErrNotRegistered = errors.New("account has no paid registration for this event")
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error)
	AverageByEvent(ctx context.Context, eventID uint) (*float64, error)
}

type FeedbackRegistrationRepository interface {
	FindByEventAndUsername(ctx context.Context, eventID uint, username string) (domain.Registration, error)
}

type FeedbackService struct {
	repo    FeedbackRepository
	regRepo FeedbackRegistrationRepository
}

func NewFeedbackService(repo FeedbackRepository, regRepo FeedbackRegistrationRepository) *FeedbackService {
	return &FeedbackService{
		repo:    repo,
		regRepo: regRepo,
	}
}

// Submit records one rating per (account, event). The account must hold a
// paid registration for the event; pending, cancelled or absent ones are
// rejected the same way.
func (s *FeedbackService) Submit(ctx context.Context, account domain.Account, eventID uint, rating int, comments string) (domain.Feedback, error) {
	if err := validation.Rating(rating); err != nil {
		return domain.Feedback{}, err
	}

	registration, err := s.regRepo.FindByEventAndUsername(ctx, eventID, account.Username)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return domain.Feedback{}, ErrNotRegistered
		}

		return domain.Feedback{}, fmt.Errorf("s.regRepo.FindByEventAndUsername -> %w", err)
	}
	if registration.Status != domain.RegistrationPaid {
		return domain.Feedback{}, ErrNotRegistered
	}

	created, err := s.repo.Create(ctx, domain.Feedback{
		EventID:         eventID,
		AccountUsername: account.Username,
		Rating:          rating,
		Comments:        comments,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FeedbackService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	feedbacks, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return feedbacks, nil
}

// AverageRating returns nil when the event has no feedback.
func (s *FeedbackService) AverageRating(ctx context.Context, eventID uint) (*float64, error) {
	average, err := s.repo.AverageByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.AverageByEvent -> %w", err)
	}

	return average, nil
}
