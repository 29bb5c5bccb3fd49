package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

type fakeRegistrationRepo struct {
	registrations map[uint]domain.Registration
	nextID        uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: map[uint]domain.Registration{},
	}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	for _, existing := range f.registrations {
		if existing.EventID == registration.EventID && existing.AccountUsername == registration.AccountUsername {
			return domain.Registration{}, repository.ErrAlreadyRegistered
		}
	}

	f.nextID++
	registration.ID = f.nextID
	f.registrations[registration.ID] = registration

	return registration, nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}

	return registration, nil
}

func (f *fakeRegistrationRepo) FindByEventAndUsername(_ context.Context, eventID uint, username string) (domain.Registration, error) {
	for _, registration := range f.registrations {
		if registration.EventID == eventID && registration.AccountUsername == username {
			return registration, nil
		}
	}

	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) MarkPaid(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}

	if registration.Status == domain.RegistrationPending {
		registration.Status = domain.RegistrationPaid
		f.registrations[id] = registration
	}

	return f.registrations[id], nil
}

func (f *fakeRegistrationRepo) MarkCancelled(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}

	if registration.Status != domain.RegistrationCancelled {
		registration.Status = domain.RegistrationCancelled
		f.registrations[id] = registration
	}

	return f.registrations[id], nil
}

func (f *fakeRegistrationRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Registration, error) {
	var result []domain.Registration
	for _, registration := range f.registrations {
		if registration.EventID == eventID {
			result = append(result, registration)
		}
	}

	return result, nil
}

func (f *fakeRegistrationRepo) FindByUsername(_ context.Context, username string) ([]domain.Registration, error) {
	var result []domain.Registration
	for _, registration := range f.registrations {
		if registration.AccountUsername == username {
			result = append(result, registration)
		}
	}

	return result, nil
}

func (f *fakeRegistrationRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, registration := range f.registrations {
		if registration.Active() {
			count++
		}
	}

	return count, nil
}

type fakeEventFinder struct {
	events map[uint]domain.Event
}

func (f *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func newRegistrationService() (*RegistrationService, *fakeRegistrationRepo) {
	repo := newFakeRegistrationRepo()
	events := &fakeEventFinder{events: map[uint]domain.Event{
		1: {ID: 1, Name: "GopherCon", Date: time.Now().AddDate(0, 1, 0), Hall: "Main Hall"},
	}}

	return NewRegistrationService(repo, events), repo
}

var alice = domain.Account{ID: 2, Username: "alice", Role: domain.RoleUser}

func TestRegistrationService_Register(t *testing.T) {
	svc, _ := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, " Alice ", "alice@gmail.com", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, created.Status)
	assert.Equal(t, "alice", created.AccountUsername)
	assert.Equal(t, "Alice", created.Name)
	assert.False(t, created.RegisteredAt.IsZero())
}

func TestRegistrationService_Register_InvalidFields(t *testing.T) {
	svc, repo := newRegistrationService()

	_, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@yahoo.com", "1234567890")
	assert.ErrorIs(t, err, validation.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "123")
	assert.ErrorIs(t, err, validation.ErrInvalidPhone)

	_, err = svc.Register(context.Background(), alice, 1, "  ", "alice@gmail.com", "1234567890")
	assert.Error(t, err)

	// Validation failures never reach the store.
	assert.Empty(t, repo.registrations)
}

func TestRegistrationService_Register_EventNotFound(t *testing.T) {
	svc, _ := newRegistrationService()

	_, err := svc.Register(context.Background(), alice, 42, "Alice", "alice@gmail.com", "1234567890")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	svc, _ := newRegistrationService()

	_, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistrationService_ConfirmPayment_Idempotent(t *testing.T) {
	svc, _ := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	first, err := svc.ConfirmPayment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPaid, first.Status)

	second, err := svc.ConfirmPayment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPaid, second.Status)
}

func TestRegistrationService_ConfirmPayment_OnCancelled(t *testing.T) {
	svc, _ := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), alice, created.ID)
	require.NoError(t, err)

	// Confirming a cancelled registration is a no-op, not an error.
	confirmed, err := svc.ConfirmPayment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, confirmed.Status)
}

func TestRegistrationService_Cancel_Forbidden(t *testing.T) {
	svc, repo := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	bob := domain.Account{ID: 3, Username: "bob", Role: domain.RoleUser}
	_, err = svc.Cancel(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.RegistrationPending, repo.registrations[created.ID].Status)
}

func TestRegistrationService_Cancel_AdminOverride(t *testing.T) {
	svc, _ := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	admin := domain.Account{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	cancelled, err := svc.Cancel(context.Background(), admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, cancelled.Status)
}

func TestRegistrationService_Cancel_Idempotent(t *testing.T) {
	svc, _ := newRegistrationService()

	created, err := svc.Register(context.Background(), alice, 1, "Alice", "alice@gmail.com", "1234567890")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), alice, created.ID)
	require.NoError(t, err)

	again, err := svc.Cancel(context.Background(), alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, again.Status)
}
