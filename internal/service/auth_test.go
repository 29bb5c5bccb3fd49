package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

type fakeAccountRepo struct {
	accounts map[string]domain.Account
	nextID   uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: map[string]domain.Account{},
	}
}

func (f *fakeAccountRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	if _, ok := f.accounts[account.Username]; ok {
		return domain.Account{}, repository.ErrUsernameExists
	}

	f.nextID++
	account.ID = f.nextID
	f.accounts[account.Username] = account

	return account, nil
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (domain.Account, error) {
	account, ok := f.accounts[username]
	if !ok {
		return domain.Account{}, repository.ErrAccountNotFound
	}

	return account, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uint) (domain.Account, error) {
	for _, account := range f.accounts {
		if account.ID == id {
			return account, nil
		}
	}

	return domain.Account{}, repository.ErrAccountNotFound
}

func TestAuthService_Signup(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, domain.RoleUser, created.Role)

	// The stored password is a digest, never the plaintext.
	stored := repo.accounts["alice"].Password
	assert.NotEqual(t, "secret1", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret1")))
}

func TestAuthService_Signup_WeakPassword(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo())

	_, err := svc.Signup(context.Background(), "alice", "abc")
	assert.ErrorIs(t, err, validation.ErrWeakPassword)

	_, err = svc.Signup(context.Background(), "alice", "abcdef")
	assert.ErrorIs(t, err, validation.ErrWeakPassword)
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "alice", "other123")
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Len(t, repo.accounts, 1)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	account, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	_, err = svc.Login(context.Background(), "alice", "wrong99")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo)

	err := svc.EnsureAdmin(context.Background(), "admin", "")
	assert.ErrorIs(t, err, ErrAdminPasswordNotSet)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "bootme1"))
	assert.Equal(t, domain.RoleAdmin, repo.accounts["admin"].Role)

	// Second boot finds the account and leaves it alone.
	before := repo.accounts["admin"].Password
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "changed2"))
	assert.Equal(t, before, repo.accounts["admin"].Password)
}
