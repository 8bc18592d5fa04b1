package services

import (
	"time"

	"github.com/yeremiapane/cleaning-app/models"
	"gorm.io/gorm"
)

// FleetStore exposes the vehicles and their attached cleaners.
type FleetStore interface {
	ListVehicles() ([]models.Vehicle, error)
	ListCleanersByVehicle(vehicleID uint) ([]models.Cleaner, error)
	ListCleanersByIDs(ids []uint) ([]models.Cleaner, error)
}

// BlockStore is the single source of truth for reserved time. The
// engines never cache blocks across requests.
type BlockStore interface {
	// FindBusyBlocksForCleaners returns every busy block for the given
	// cleaners on the given calendar day in one batched lookup, ordered
	// by start time.
	FindBusyBlocksForCleaners(cleanerIDs []uint, day time.Time) ([]models.AvailabilityBlock, error)
	// HasOverlap reports whether any block of the cleaner overlaps
	// [start, end) in the half-open sense.
	HasOverlap(cleanerID uint, start, end time.Time) (bool, error)
	// HasOverlapExcludingBooking is HasOverlap minus the blocks owned by
	// the given booking, so a booking cannot conflict with itself.
	HasOverlapExcludingBooking(cleanerID, bookingID uint, start, end time.Time) (bool, error)
	// BlockExists reports whether a block with these exact bounds exists
	// for the cleaner.
	BlockExists(cleanerID uint, start, end time.Time) (bool, error)
	InsertBlock(block *models.AvailabilityBlock) error
	// UpdateBlock relocates a block identified by its old bounds to the
	// new bounds, preserving its identity and linkage.
	UpdateBlock(cleanerID uint, oldStart, oldEnd, newStart, newEnd time.Time, blockType string) error
	DeleteBlocks(cleanerID uint, start, end time.Time, blockType string) error
	// WithTx binds the store to a transaction.
	WithTx(tx *gorm.DB) BlockStore
}

// BookingStore persists bookings together with their crew links.
type BookingStore interface {
	FindByID(id uint) (*models.Booking, error)
	Create(b *models.Booking) error
	Update(b *models.Booking) error
	Delete(b *models.Booking) error
	WithTx(tx *gorm.DB) BookingStore
}
