package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventInUse    = errors.New("event has active registrations")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Time        string
	Hall        string `gorm:"not null"`
	Description string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, translateTransient(result.Error)
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).
		Select("Name", "Date", "Time", "Hall", "Description").
		Updates(event)
	if result.Error != nil {
		return Event{}, translateTransient(result.Error)
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

// Delete removes an event, but only when no pending or paid registration
// still points at it. The check and the delete run in one transaction with
// the event row locked, so a concurrent register cannot slip in between.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return result.Error
		}

		var active int64
		result = tx.Model(&Registration{}).
			Where("event_id = ? AND status IN ?", id, []string{"pending", "paid"}).
			Count(&active)
		if result.Error != nil {
			return result.Error
		}
		if active > 0 {
			return ErrEventInUse
		}

		return tx.Delete(&Event{}, id).Error
	})
	if err != nil {
		return translateTransient(err)
	}

	return nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, translateTransient(result.Error)
	}

	return event, nil
}

// FindAll lists events soonest first. A non-empty search narrows the list to
// events whose name contains the term, case-insensitively.
func (d *EventDAO) FindAll(ctx context.Context, search string) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Order("date ASC, id ASC")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	result := query.Find(&events)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return events, nil
}

func (d *EventDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Count(&count)
	if result.Error != nil {
		return 0, translateTransient(result.Error)
	}

	return count, nil
}
