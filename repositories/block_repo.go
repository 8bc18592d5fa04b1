package repositories

import (
	"time"

	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/services"
	"gorm.io/gorm"
)

// BlockRepo implements services.BlockStore on GORM. FREE blocks never
// count as busy in the overlap queries.
type BlockRepo struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

func (r *BlockRepo) WithTx(tx *gorm.DB) services.BlockStore {
	return &BlockRepo{db: tx}
}

func (r *BlockRepo) FindBusyBlocksForCleaners(cleanerIDs []uint, day time.Time) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	if len(cleanerIDs) == 0 {
		return blocks, nil
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	err := r.db.
		Where("cleaner_id IN ?", cleanerIDs).
		Where("start_datetime >= ? AND start_datetime < ?", dayStart, dayEnd).
		Where("block_type <> ?", models.BlockTypeFree).
		Order("start_datetime asc").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BlockRepo) HasOverlap(cleanerID uint, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.AvailabilityBlock{}).
		Where("cleaner_id = ?", cleanerID).
		Where("start_datetime < ? AND end_datetime > ?", end, start).
		Where("block_type <> ?", models.BlockTypeFree).
		Count(&count).Error
	return count > 0, err
}

func (r *BlockRepo) HasOverlapExcludingBooking(cleanerID, bookingID uint, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.AvailabilityBlock{}).
		Where("cleaner_id = ?", cleanerID).
		Where("start_datetime < ? AND end_datetime > ?", end, start).
		Where("block_type <> ?", models.BlockTypeFree).
		Where("booking_id IS NULL OR booking_id <> ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

func (r *BlockRepo) BlockExists(cleanerID uint, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.AvailabilityBlock{}).
		Where("cleaner_id = ? AND start_datetime = ? AND end_datetime = ?", cleanerID, start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *BlockRepo) InsertBlock(block *models.AvailabilityBlock) error {
	return r.db.Create(block).Error
}

func (r *BlockRepo) UpdateBlock(cleanerID uint, oldStart, oldEnd, newStart, newEnd time.Time, blockType string) error {
	return r.db.Model(&models.AvailabilityBlock{}).
		Where("cleaner_id = ? AND start_datetime = ? AND end_datetime = ? AND block_type = ?",
			cleanerID, oldStart, oldEnd, blockType).
		Updates(map[string]interface{}{
			"start_datetime": newStart,
			"end_datetime":   newEnd,
		}).Error
}

func (r *BlockRepo) DeleteBlocks(cleanerID uint, start, end time.Time, blockType string) error {
	return r.db.
		Where("cleaner_id = ? AND start_datetime = ? AND end_datetime = ? AND block_type = ?",
			cleanerID, start, end, blockType).
		Delete(&models.AvailabilityBlock{}).Error
}
