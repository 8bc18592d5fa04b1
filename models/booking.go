package models

import "time"

const BookingStatusConfirmed = "CONFIRMED"

type Booking struct {
	ID                    uint             `gorm:"primaryKey" json:"id"`
	Reference             string           `gorm:"type:varchar(64);unique;not null" json:"reference"`
	StartDatetime         time.Time        `gorm:"not null;index" json:"start_datetime"`
	EndDatetime           time.Time        `gorm:"not null" json:"end_datetime"`
	DurationHours         int              `gorm:"not null" json:"duration_hours"`
	RequestedCleanerCount int              `gorm:"not null" json:"requested_cleaner_count"`
	Status                string           `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	AssignedCleaners      []BookingCleaner `gorm:"foreignKey:BookingID" json:"assigned_cleaners,omitempty"`
	CreatedAt             time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time        `gorm:"not null" json:"updated_at"`
}

// CleanerIDs lists the crew in assignment order.
func (b *Booking) CleanerIDs() []uint {
	ids := make([]uint, 0, len(b.AssignedCleaners))
	for _, bc := range b.AssignedCleaners {
		ids = append(ids, bc.CleanerID)
	}
	return ids
}
