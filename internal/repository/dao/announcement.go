package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type Announcement struct {
	ID uint `gorm:"primaryKey"`

	Message string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type AnnouncementDAO struct {
	db *gorm.DB
}

func NewAnnouncementDAO(db *gorm.DB) *AnnouncementDAO {
	return &AnnouncementDAO{
		db: db,
	}
}

func (d *AnnouncementDAO) Insert(ctx context.Context, announcement Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Create(&announcement)
	if result.Error != nil {
		return Announcement{}, translateTransient(result.Error)
	}

	return announcement, nil
}

func (d *AnnouncementDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Announcement{}, id)
	if result.Error != nil {
		return translateTransient(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}

// FindAll returns announcements newest first.
func (d *AnnouncementDAO) FindAll(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&announcements)
	if result.Error != nil {
		return nil, translateTransient(result.Error)
	}

	return announcements, nil
}
