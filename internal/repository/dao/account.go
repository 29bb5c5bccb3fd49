package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"
)

var (
	ErrUsernameExists  = errors.New("username already exists")
	ErrAccountNotFound = errors.New("account not found")
)

type Account struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"` // bcrypt digest, never plaintext
	Role     string `gorm:"not null;default:user"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AccountDAO struct {
	db *gorm.DB
}

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{
		db: db,
	}
}

func (d *AccountDAO) Insert(ctx context.Context, account Account) (Account, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		if pgConstraint(result.Error, pgerrcode.UniqueViolation, "uni_accounts_username") {
			return Account{}, ErrUsernameExists
		}

		return Account{}, translateTransient(result.Error)
	}

	return account, nil
}

func (d *AccountDAO) FindByUsername(ctx context.Context, username string) (Account, error) {
	var account Account

	result := d.db.WithContext(ctx).First(&account, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, translateTransient(result.Error)
	}

	return account, nil
}

func (d *AccountDAO) FindByID(ctx context.Context, id uint) (Account, error) {
	var account Account

	result := d.db.WithContext(ctx).First(&account, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, translateTransient(result.Error)
	}

	return account, nil
}
