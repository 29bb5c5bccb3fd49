package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByEventAndUsername(ctx context.Context, eventID uint, username string) (domain.Registration, error)
	MarkPaid(ctx context.Context, id uint) (domain.Registration, error)
	MarkCancelled(ctx context.Context, id uint) (domain.Registration, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Registration, error)
	CountActive(ctx context.Context) (int64, error)
}

type RegistrationEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// RegistrationService is the lifecycle manager for attendee records:
// pending on creation, then forward-only to paid or cancelled.
type RegistrationService struct {
	repo      RegistrationRepository
	eventRepo RegistrationEventRepository
}

func NewRegistrationService(repo RegistrationRepository, eventRepo RegistrationEventRepository) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// Register validates the attendee fields, checks the event exists and
// creates the registration in pending. Payment confirmation is a separate
// step; a registration left unpaid simply stays pending.
func (s *RegistrationService) Register(ctx context.Context, account domain.Account, eventID uint, name, email, phone string) (domain.Registration, error) {
	if err := validation.AttendeeFields(name, email, phone); err != nil {
		return domain.Registration{}, err
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Registration{}, ErrEventNotFound
		}

		return domain.Registration{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		EventID:         eventID,
		AccountUsername: account.Username,
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Phone:           strings.TrimSpace(phone),
		Status:          domain.RegistrationPending,
		RegisteredAt:    time.Now(),
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ConfirmPayment transitions pending -> paid. Confirming an already paid or
// cancelled registration is idempotent success, so a caller retrying a slow
// confirmation is never penalized.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, id uint) (domain.Registration, error) {
	updated, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkPaid -> %w", err)
	}

	return updated, nil
}

// Cancel transitions pending|paid -> cancelled. Only the owning account or
// an admin may cancel; cancelling twice is idempotent success.
func (s *RegistrationService) Cancel(ctx context.Context, account domain.Account, id uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if registration.AccountUsername != account.Username && !account.IsAdmin() {
		return domain.Registration{}, ErrForbidden
	}

	updated, err := s.repo.MarkCancelled(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkCancelled -> %w", err)
	}

	return updated, nil
}

// ListByEvent is admin-only and ordered by registration time for
// deterministic output.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListByAccount(ctx context.Context, username string) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	return registrations, nil
}
