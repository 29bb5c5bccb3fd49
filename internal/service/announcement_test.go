package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
)

type fakeAnnouncementRepo struct {
	announcements map[uint]domain.Announcement
	nextID        uint
	now           time.Time
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		announcements: map[uint]domain.Announcement{},
		now:           time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	f.nextID++
	f.now = f.now.Add(time.Minute)
	announcement.ID = f.nextID
	announcement.CreatedAt = f.now
	f.announcements[announcement.ID] = announcement

	return announcement, nil
}

func (f *fakeAnnouncementRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.announcements[id]; !ok {
		return repository.ErrAnnouncementNotFound
	}
	delete(f.announcements, id)

	return nil
}

func (f *fakeAnnouncementRepo) FindAll(_ context.Context) ([]domain.Announcement, error) {
	result := make([]domain.Announcement, 0, len(f.announcements))
	for _, announcement := range f.announcements {
		result = append(result, announcement)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func TestAnnouncementService_PostAndList(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())

	for _, message := range []string{"doors open at 9", "lunch moved to hall B", "closing keynote added"} {
		_, err := svc.PostAnnouncement(context.Background(), message)
		require.NoError(t, err)
	}

	announcements, err := svc.ListAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, announcements, 3)
	assert.Equal(t, "closing keynote added", announcements[0].Message)
	assert.Equal(t, "doors open at 9", announcements[2].Message)
}

func TestAnnouncementService_Delete(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())

	created, err := svc.PostAnnouncement(context.Background(), "doors open at 9")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAnnouncement(context.Background(), created.ID))

	err = svc.DeleteAnnouncement(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	announcements, err := svc.ListAnnouncements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, announcements)
}
