package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("account already registered for this event")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:uniq_registrations_event_account"`
	Event   Event `gorm:"constraint:OnDelete:RESTRICT"`

	AccountUsername string  `gorm:"not null;uniqueIndex:uniq_registrations_event_account"`
	Account         Account `gorm:"foreignKey:AccountUsername;references:Username"`

	Name   string `gorm:"not null"`
	Email  string `gorm:"not null"`
	Phone  string `gorm:"not null"`
	Status string `gorm:"not null;default:pending"`

	RegisteredAt time.Time `gorm:"not null"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		if pgConstraint(result.Error, pgerrcode.UniqueViolation, "uniq_registrations_event_account") {
			return Registration{}, ErrAlreadyRegistered
		}
		if pgConstraint(result.Error, pgerrcode.ForeignKeyViolation, "fk_registrations_event") {
			return Registration{}, ErrEventNotFound
		}
		if pgConstraint(result.Error, pgerrcode.ForeignKeyViolation, "fk_registrations_account") {
			return Registration{}, ErrAccountNotFound
		}

		return Registration{}, translateTransient(result.Error)
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, translateTransient(result.Error)
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByEventAndUsername(ctx context.Context, eventID uint, username string) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		First(&registration, "event_id = ? AND account_username = ?", eventID, username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, translateTransient(result.Error)
	}

	return registration, nil
}

// MarkPaid moves a pending registration to paid. The row is locked for the
// duration so two racing confirmations serialize; whichever runs second sees
// a non-pending row and succeeds without touching it. Only a missing row is
// an error.
func (d *RegistrationDAO) MarkPaid(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&registration, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}

			return result.Error
		}

		if registration.Status != "pending" {
			return nil
		}

		registration.Status = "paid"

		return tx.Model(&registration).Update("status", "paid").Error
	})
	if err != nil {
		return Registration{}, translateTransient(err)
	}

	return registration, nil
}

// MarkCancelled moves a pending or paid registration to cancelled, with the
// same locking and idempotency discipline as MarkPaid.
func (d *RegistrationDAO) MarkCancelled(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&registration, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}

			return result.Error
		}

		if registration.Status == "cancelled" {
			return nil
		}

		registration.Status = "cancelled"

		return tx.Model(&registration).Update("status", "cancelled").Error
	})
	if err != nil {
		return Registration{}, translateTransient(err)
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC, id ASC").
		Find(&registrations)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByUsername(ctx context.Context, username string) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("account_username = ?", username).
		Order("registered_at ASC, id ASC").
		Find(&registrations)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return registrations, nil
}

// CountActive counts registrations that still hold a place, i.e. pending or
// paid ones, across all events.
func (d *RegistrationDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("status IN ?", []string{"pending", "paid"}).
		Count(&count)
	if result.Error != nil {
		return 0, translateTransient(result.Error)
	}

	return count, nil
}
