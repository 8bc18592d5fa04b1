package repositories

import (
	"github.com/yeremiapane/cleaning-app/models"
	"gorm.io/gorm"
)

// FleetRepo implements services.FleetStore on GORM.
type FleetRepo struct {
	db *gorm.DB
}

func NewFleetRepo(db *gorm.DB) *FleetRepo {
	return &FleetRepo{db: db}
}

// ListVehicles returns all vehicles in ascending id order. The booking
// engine relies on this order for its first-fit selection.
func (r *FleetRepo) ListVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.Order("id asc").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *FleetRepo) ListCleanersByVehicle(vehicleID uint) ([]models.Cleaner, error) {
	var cleaners []models.Cleaner
	if err := r.db.Where("vehicle_id = ?", vehicleID).Order("id asc").Find(&cleaners).Error; err != nil {
		return nil, err
	}
	return cleaners, nil
}

func (r *FleetRepo) ListCleanersByIDs(ids []uint) ([]models.Cleaner, error) {
	var cleaners []models.Cleaner
	if len(ids) == 0 {
		return cleaners, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id asc").Find(&cleaners).Error; err != nil {
		return nil, err
	}
	return cleaners, nil
}
