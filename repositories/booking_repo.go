package repositories

import (
	"errors"

	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepo implements services.BookingStore on GORM.
type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) WithTx(tx *gorm.DB) services.BookingStore {
	return &BookingRepo{db: tx}
}

func (r *BookingRepo) FindByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("AssignedCleaners.Cleaner").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &services.NotFoundError{Resource: "booking", ID: id}
		}
		return nil, err
	}
	return &booking, nil
}

// Create persists the booking together with its crew links.
func (r *BookingRepo) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

// Update writes the booking row only; crew links stay untouched.
func (r *BookingRepo) Update(b *models.Booking) error {
	return r.db.Omit(clause.Associations).Save(b).Error
}

func (r *BookingRepo) Delete(b *models.Booking) error {
	if err := r.db.Where("booking_id = ?", b.ID).Delete(&models.BookingCleaner{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Booking{}, b.ID).Error
}
