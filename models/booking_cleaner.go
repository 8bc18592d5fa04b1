package models

// BookingCleaner links one booking to one crew member.
type BookingCleaner struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	CleanerID uint    `gorm:"not null;index" json:"cleaner_id"`
	Cleaner   Cleaner `gorm:"foreignKey:CleanerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"cleaner,omitempty"`
}
