package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

type fakeFeedbackRepo struct {
	feedbacks []domain.Feedback
	nextID    uint
}

func (f *fakeFeedbackRepo) Create(_ context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	for _, existing := range f.feedbacks {
		if existing.EventID == feedback.EventID && existing.AccountUsername == feedback.AccountUsername {
			return domain.Feedback{}, repository.ErrFeedbackExists
		}
	}

	f.nextID++
	feedback.ID = f.nextID
	f.feedbacks = append(f.feedbacks, feedback)

	return feedback, nil
}

func (f *fakeFeedbackRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Feedback, error) {
	var result []domain.Feedback
	for _, feedback := range f.feedbacks {
		if feedback.EventID == eventID {
			result = append(result, feedback)
		}
	}

	return result, nil
}

func (f *fakeFeedbackRepo) AverageByEvent(_ context.Context, eventID uint) (*float64, error) {
	var sum, count float64
	for _, feedback := range f.feedbacks {
		if feedback.EventID == eventID {
			sum += float64(feedback.Rating)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}

	average := sum / count

	return &average, nil
}

func newFeedbackService(registrations ...domain.Registration) (*FeedbackService, *fakeFeedbackRepo) {
	regRepo := newFakeRegistrationRepo()
	for _, registration := range registrations {
		regRepo.nextID++
		registration.ID = regRepo.nextID
		regRepo.registrations[registration.ID] = registration
	}

	repo := &fakeFeedbackRepo{}

	return NewFeedbackService(repo, regRepo), repo
}

func TestFeedbackService_Submit(t *testing.T) {
	svc, _ := newFeedbackService(domain.Registration{
		EventID:         1,
		AccountUsername: "alice",
		Status:          domain.RegistrationPaid,
	})

	created, err := svc.Submit(context.Background(), alice, 1, 5, "great talks")
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, "alice", created.AccountUsername)
}

func TestFeedbackService_Submit_NotRegistered(t *testing.T) {
	svc, _ := newFeedbackService()

	_, err := svc.Submit(context.Background(), alice, 1, 4, "")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestFeedbackService_Submit_PendingRegistration(t *testing.T) {
	svc, _ := newFeedbackService(domain.Registration{
		EventID:         1,
		AccountUsername: "alice",
		Status:          domain.RegistrationPending,
	})

	_, err := svc.Submit(context.Background(), alice, 1, 4, "")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestFeedbackService_Submit_CancelledRegistration(t *testing.T) {
	svc, _ := newFeedbackService(domain.Registration{
		EventID:         1,
		AccountUsername: "alice",
		Status:          domain.RegistrationCancelled,
	})

	_, err := svc.Submit(context.Background(), alice, 1, 4, "")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestFeedbackService_Submit_InvalidRating(t *testing.T) {
	svc, repo := newFeedbackService(domain.Registration{
		EventID:         1,
		AccountUsername: "alice",
		Status:          domain.RegistrationPaid,
	})

	_, err := svc.Submit(context.Background(), alice, 1, 6, "")
	assert.ErrorIs(t, err, validation.ErrInvalidRating)

	_, err = svc.Submit(context.Background(), alice, 1, 0, "")
	assert.ErrorIs(t, err, validation.ErrInvalidRating)

	assert.Empty(t, repo.feedbacks)
}

func TestFeedbackService_Submit_Duplicate(t *testing.T) {
	svc, _ := newFeedbackService(domain.Registration{
		EventID:         1,
		AccountUsername: "alice",
		Status:          domain.RegistrationPaid,
	})

	_, err := svc.Submit(context.Background(), alice, 1, 5, "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), alice, 1, 3, "changed my mind")
	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestFeedbackService_AverageRating(t *testing.T) {
	svc, repo := newFeedbackService()

	average, err := svc.AverageRating(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, average)

	for i, rating := range []int{4, 5, 3} {
		repo.feedbacks = append(repo.feedbacks, domain.Feedback{
			ID:      uint(i + 1),
			EventID: 1,
			Rating:  rating,
		})
	}

	average, err = svc.AverageRating(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, average)
	assert.InDelta(t, 4.0, *average, 0.001)
}
