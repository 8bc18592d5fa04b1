package models

import "time"

// Cleaner belongs to exactly one vehicle at any time.
type Cleaner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	VehicleID uint      `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   Vehicle   `gorm:"foreignKey:VehicleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"vehicle,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
