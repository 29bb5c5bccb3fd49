package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventorg/smart-event-api/internal/domain"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/validation"
)

var (
	ErrUsernameExists      = repository.ErrUsernameExists
	ErrAccountNotFound     = repository.ErrAccountNotFound
	ErrTransient           = repository.ErrTransient
	ErrWrongPassword       = errors.New("wrong password")
	ErrAdminPasswordNotSet = errors.New("admin password is not configured")

	// ErrForbidden is returned when an authenticated account attempts an
	// operation outside its role or ownership.
	ErrForbidden = errors.New("operation not permitted for this account")
)

type AuthAccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

type AuthService struct {
	repo AuthAccountRepository
}

func NewAuthService(repo AuthAccountRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates an ordinary user account. The password is checked against
// the policy and stored as a bcrypt digest.
func (s *AuthService) Signup(ctx context.Context, username, password string) (domain.Account, error) {
	if err := validation.Password(password); err != nil {
		return domain.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Account{
		Username: username,
		Password: string(hash),
		Role:     domain.RoleUser,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Login verifies the credential pair. bcrypt's comparison is constant-time,
// so a wrong password and a wrong username take indistinguishable paths out.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}

		return domain.Account{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return domain.Account{}, ErrWrongPassword
	}

	return account, nil
}

func (s *AuthService) GetAccount(ctx context.Context, id uint) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return account, nil
}

// EnsureAdmin seeds the administrator account on first boot. The credential
// comes from configuration; refusing a blank password keeps a default secret
// out of the binary.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrAdminPasswordNotSet
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	_, err = s.repo.Create(ctx, domain.Account{
		Username: username,
		Password: string(hash),
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("s.repo.Create -> %w", err)
	}

	return nil
}
