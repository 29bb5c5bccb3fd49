package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
)

type fakeEventRepo struct {
	events map[uint]domain.Event
	inUse  map[uint]bool
	nextID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: map[uint]domain.Event{},
		inUse:  map[uint]bool{},
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	if f.inUse[id] {
		return repository.ErrEventInUse
	}
	delete(f.events, id)

	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, search string) ([]domain.Event, error) {
	var result []domain.Event
	for _, event := range f.events {
		if search == "" || strings.Contains(strings.ToLower(event.Name), strings.ToLower(search)) {
			result = append(result, event)
		}
	}

	return result, nil
}

func (f *fakeEventRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

func newEventService() (*EventService, *fakeEventRepo, *fakeRegistrationRepo) {
	repo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo()

	return NewEventService(repo, regRepo), repo, regRepo
}

func TestEventService_CreateAndEdit(t *testing.T) {
	svc, _, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Name: "GopherCon",
		Date: time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC),
		Time: "09:30",
		Hall: "Main Hall",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	created.Hall = "Hall B"
	updated, err := svc.EditEvent(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, "Hall B", updated.Hall)
}

func TestEventService_EditEvent_NotFound(t *testing.T) {
	svc, _, _ := newEventService()

	_, err := svc.EditEvent(context.Background(), domain.Event{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_DeleteEvent_InUse(t *testing.T) {
	svc, repo, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), domain.Event{Name: "GopherCon"})
	require.NoError(t, err)

	repo.inUse[created.ID] = true
	err = svc.DeleteEvent(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrEventInUse)

	// Once nothing active references the event, deletion goes through.
	repo.inUse[created.ID] = false
	require.NoError(t, svc.DeleteEvent(context.Background(), created.ID))

	_, err = svc.GetEvent(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_ListEvents_Search(t *testing.T) {
	svc, _, _ := newEventService()

	for _, name := range []string{"GopherCon", "RustConf", "GopherSummit"} {
		_, err := svc.CreateEvent(context.Background(), domain.Event{Name: name})
		require.NoError(t, err)
	}

	events, err := svc.ListEvents(context.Background(), "gopher")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = svc.ListEvents(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventService_GetStats(t *testing.T) {
	svc, _, regRepo := newEventService()

	for _, name := range []string{"GopherCon", "RustConf"} {
		_, err := svc.CreateEvent(context.Background(), domain.Event{Name: name})
		require.NoError(t, err)
	}

	// Cancelled registrations are excluded from the active count.
	for id, status := range map[uint]string{
		1: domain.RegistrationPending,
		2: domain.RegistrationPaid,
		3: domain.RegistrationCancelled,
	} {
		regRepo.registrations[id] = domain.Registration{ID: id, EventID: 1, Status: status}
	}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(2), stats.TotalRegistrations)
}
