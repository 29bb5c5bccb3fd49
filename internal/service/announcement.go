package service

import (
	"context"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
)

var ErrAnnouncementNotFound = repository.ErrAnnouncementNotFound

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error)
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]domain.Announcement, error)
}

type AnnouncementService struct {
	repo AnnouncementRepository
}

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{
		repo: repo,
	}
}

func (s *AnnouncementService) PostAnnouncement(ctx context.Context, message string) (domain.Announcement, error) {
	created, err := s.repo.Create(ctx, domain.Announcement{
		Message: message,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ListAnnouncements returns announcements newest first.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return announcements, nil
}
