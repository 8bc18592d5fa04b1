package models

import "time"

const (
	BlockTypeBooked = "BOOKED"
	BlockTypeBreak  = "BREAK"
	BlockTypeFree   = "FREE"
)

// AvailabilityBlock reserves a slice of one cleaner's day. A block
// never spans midnight; a break after the last job of the day may sit
// past the end of the working window.
type AvailabilityBlock struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CleanerID     uint      `gorm:"not null;index" json:"cleaner_id"`
	BookingID     *uint     `gorm:"index" json:"booking_id,omitempty"`
	StartDatetime time.Time `gorm:"not null;index" json:"start_datetime"`
	EndDatetime   time.Time `gorm:"not null" json:"end_datetime"`
	BlockType     string    `gorm:"type:varchar(10);not null" json:"block_type"`
}

// IsBusy reports whether the block blocks new work (FREE blocks do not).
func (b *AvailabilityBlock) IsBusy() bool {
	return b.BlockType != BlockTypeFree
}
