package repository

import (
	"context"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByEventAndUsername(ctx context.Context, eventID uint, username string) (dao.Registration, error)
	MarkPaid(ctx context.Context, id uint) (dao.Registration, error)
	MarkCancelled(ctx context.Context, id uint) (dao.Registration, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Registration, error)
	FindByUsername(ctx context.Context, username string) ([]dao.Registration, error)
	CountActive(ctx context.Context) (int64, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		EventID:         registration.EventID,
		AccountUsername: registration.AccountUsername,
		Name:            registration.Name,
		Email:           registration.Email,
		Phone:           registration.Phone,
		Status:          registration.Status,
		RegisteredAt:    registration.RegisteredAt,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindByEventAndUsername(ctx context.Context, eventID uint, username string) (domain.Registration, error) {
	found, err := r.dao.FindByEventAndUsername(ctx, eventID, username)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByEventAndUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) MarkPaid(ctx context.Context, id uint) (domain.Registration, error) {
	updated, err := r.dao.MarkPaid(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.MarkPaid -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) MarkCancelled(ctx context.Context, id uint) (domain.Registration, error) {
	updated, err := r.dao.MarkCancelled(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.MarkCancelled -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *RegistrationRepository) FindByUsername(ctx context.Context, username string) ([]domain.Registration, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *RegistrationRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:              reg.ID,
		EventID:         reg.EventID,
		AccountUsername: reg.AccountUsername,
		Name:            reg.Name,
		Email:           reg.Email,
		Phone:           reg.Phone,
		Status:          reg.Status,
		RegisteredAt:    reg.RegisteredAt,
	}
}

func (r *RegistrationRepository) daoSliceToDomain(regs []dao.Registration) []domain.Registration {
	registrations := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		registrations = append(registrations, r.daoToDomain(reg))
	}

	return registrations
}
