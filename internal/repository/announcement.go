package repository

import (
	"context"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository/dao"
)

var ErrAnnouncementNotFound = dao.ErrAnnouncementNotFound

type AnnouncementDAO interface {
	Insert(ctx context.Context, announcement dao.Announcement) (dao.Announcement, error)
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]dao.Announcement, error)
}

type AnnouncementRepository struct {
	dao AnnouncementDAO
}

func NewAnnouncementRepository(dao AnnouncementDAO) *AnnouncementRepository {
	return &AnnouncementRepository{
		dao: dao,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	created, err := r.dao.Insert(ctx, dao.Announcement{
		Message: announcement.Message,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AnnouncementRepository) FindAll(ctx context.Context) ([]domain.Announcement, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	announcements := make([]domain.Announcement, 0, len(found))
	for _, a := range found {
		announcements = append(announcements, r.daoToDomain(a))
	}

	return announcements, nil
}

func (r *AnnouncementRepository) daoToDomain(a dao.Announcement) domain.Announcement {
	return domain.Announcement{
		ID:        a.ID,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}
