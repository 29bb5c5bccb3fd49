package repository

import (
	"context"
	"fmt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository/dao"
)

var ErrFeedbackExists = dao.ErrFeedbackExists

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Feedback, error)
	AverageByEvent(ctx context.Context, eventID uint) (*float64, error)
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.Feedback{
		EventID:         feedback.EventID,
		AccountUsername: feedback.AccountUsername,
		Rating:          feedback.Rating,
		Comments:        feedback.Comments,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FeedbackRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	feedbacks := make([]domain.Feedback, 0, len(found))
	for _, f := range found {
		feedbacks = append(feedbacks, r.daoToDomain(f))
	}

	return feedbacks, nil
}

func (r *FeedbackRepository) AverageByEvent(ctx context.Context, eventID uint) (*float64, error) {
	average, err := r.dao.AverageByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AverageByEvent -> %w", err)
	}

	return average, nil
}

func (r *FeedbackRepository) daoToDomain(f dao.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:              f.ID,
		EventID:         f.EventID,
		AccountUsername: f.AccountUsername,
		Rating:          f.Rating,
		Comments:        f.Comments,
		CreatedAt:       f.CreatedAt,
	}
}
