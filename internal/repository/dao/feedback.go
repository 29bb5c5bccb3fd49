package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"
)

var ErrFeedbackExists = errors.New("feedback already submitted for this event")

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:uniq_feedbacks_event_account"`
	Event   Event `gorm:"constraint:OnDelete:CASCADE"`

	AccountUsername string  `gorm:"not null;uniqueIndex:uniq_feedbacks_event_account"`
	Account         Account `gorm:"foreignKey:AccountUsername;references:Username"`

	Rating   int `gorm:"not null"`
	Comments string

	CreatedAt time.Time `gorm:"not null"`
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback Feedback) (Feedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		if pgConstraint(result.Error, pgerrcode.UniqueViolation, "uniq_feedbacks_event_account") {
			return Feedback{}, ErrFeedbackExists
		}
		if pgConstraint(result.Error, pgerrcode.ForeignKeyViolation, "fk_feedbacks_event") {
			return Feedback{}, ErrEventNotFound
		}

		return Feedback{}, translateTransient(result.Error)
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByEvent(ctx context.Context, eventID uint) ([]Feedback, error) {
	var feedbacks []Feedback

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&feedbacks)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return feedbacks, nil
}

// AverageByEvent computes the mean rating in the database. The pointer is
// nil when the event has no feedback, so callers never divide by zero.
func (d *FeedbackDAO) AverageByEvent(ctx context.Context, eventID uint) (*float64, error) {
	var average *float64

	result := d.db.WithContext(ctx).Model(&Feedback{}).
		Where("event_id = ?", eventID).
		Select("AVG(rating)").
		Scan(&average)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return average, nil
}
