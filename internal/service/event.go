package service

import (
	"context"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
	ErrEventInUse    = repository.ErrEventInUse
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, search string) ([]domain.Event, error)
	Count(ctx context.Context) (int64, error)
}

type StatsRegistrationRepository interface {
	CountActive(ctx context.Context) (int64, error)
}

// Stats are the admin dashboard counters.
type Stats struct {
	TotalEvents        int64 `json:"total_events"`
	TotalRegistrations int64 `json:"total_registrations"`
}

type EventService struct {
	repo    EventRepository
	regRepo StatsRegistrationRepository
}

func NewEventService(repo EventRepository, regRepo StatsRegistrationRepository) *EventService {
	return &EventService{
		repo:    repo,
		regRepo: regRepo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) EditEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteEvent rejects deletion while pending or paid registrations exist
// (ErrEventInUse). Cancelling those registrations first is the explicit path
// to removal; nothing is cascaded silently.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, search string) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetStats(ctx context.Context) (Stats, error) {
	events, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("s.repo.Count -> %w", err)
	}

	registrations, err := s.regRepo.CountActive(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("s.regRepo.CountActive -> %w", err)
	}

	return Stats{
		TotalEvents:        events,
		TotalRegistrations: registrations,
	}, nil
}
