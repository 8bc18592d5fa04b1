package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/schedule"
	"github.com/yeremiapane/cleaning-app/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	Date                  string `json:"date" binding:"required"`       // yyyy-MM-dd
	StartTime             string `json:"start_time" binding:"required"` // HH:mm
	DurationHours         int    `json:"duration_hours" binding:"required"`
	RequestedCleanerCount int    `json:"requested_cleaner_count" binding:"required"`
	PreferredVehicleID    *uint  `json:"preferred_vehicle_id"`
}

type RescheduleBookingRequest struct {
	Date          *string `json:"date"`       // yyyy-MM-dd, defaults to current date
	StartTime     *string `json:"start_time"` // HH:mm, defaults to current start
	DurationHours *int    `json:"duration_hours"`
	CleanerCount  *int    `json:"cleaner_count"`
}

type BookingResult struct {
	BookingID          uint      `json:"booking_id"`
	Reference          string    `json:"reference"`
	StartDatetime      time.Time `json:"start_datetime"`
	EndDatetime        time.Time `json:"end_datetime"`
	DurationHours      int       `json:"duration_hours"`
	AssignedCleanerIDs []uint    `json:"assigned_cleaner_ids"`
	AssignedVehicleID  uint      `json:"assigned_vehicle_id"`
	Status             string    `json:"status"`
}

type RescheduleResult struct {
	BookingID uint   `json:"booking_id"`
	Message   string `json:"message"`
}

// BookingService assigns crews to bookings and moves them. Every
// decide-and-commit sequence runs inside one transaction and is
// serialized by mu, so concurrent writers cannot double-book a cleaner.
type BookingService struct {
	db       *gorm.DB
	fleet    FleetStore
	blocks   BlockStore
	bookings BookingStore
	cfg      schedule.Config
	mu       sync.Mutex
}

func NewBookingService(db *gorm.DB, fleet FleetStore, blocks BlockStore, bookings BookingStore, cfg schedule.Config) *BookingService {
	return &BookingService{db: db, fleet: fleet, blocks: blocks, bookings: bookings, cfg: cfg}
}

// CreateBooking reserves the first vehicle that can field a full crew
// for the requested window, writing one BOOKED block plus a trailing
// BREAK block per crew member. First-fit across vehicles in ascending
// id order, first-fit within a vehicle in repository order.
func (s *BookingService) CreateBooking(req CreateBookingRequest) (*BookingResult, error) {
	if !s.cfg.DurationAllowed(req.DurationHours) {
		return nil, &ValidationError{Message: "duration_hours must be 2 or 4"}
	}
	if !s.cfg.CrewCountAllowed(req.RequestedCleanerCount) {
		return nil, &ValidationError{Message: fmt.Sprintf("requested_cleaner_count must be %d..%d", s.cfg.MinCleaners, s.cfg.MaxCleaners)}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected yyyy-MM-dd", req.Date)}
	}
	startMin, err := parseMinuteOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}

	if err := s.checkPolicy(date, startMin, req.DurationHours); err != nil {
		return nil, err
	}

	startDt := date.Add(time.Duration(startMin) * time.Minute)
	endDt := startDt.Add(time.Duration(req.DurationHours) * time.Hour)

	utils.InfoLogger.Printf("Attempting booking on %s %s -> %s for %d cleaners (preferred vehicle=%v)",
		req.Date, req.StartTime, endDt.Format("15:04"), req.RequestedCleanerCount, req.PreferredVehicleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	var result *BookingResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		blocks := s.blocks.WithTx(tx)
		bookings := s.bookings.WithTx(tx)

		vehicleIDs, err := s.resolveVehicleOrder(req.PreferredVehicleID)
		if err != nil {
			return err
		}

		crew, vehicleID, err := s.findAvailableCrew(blocks, vehicleIDs, startDt, endDt, req.RequestedCleanerCount)
		if err != nil {
			return err
		}

		// Re-verify right before the write to close the race between
		// selection and commit.
		for _, c := range crew {
			busy, err := blocks.HasOverlap(c.ID, startDt, endDt)
			if err != nil {
				return fmt.Errorf("failed to re-check cleaner %d: %w", c.ID, err)
			}
			if busy {
				return &ConflictError{
					Message:   fmt.Sprintf("cleaner %d is no longer available for the requested slot", c.ID),
					CleanerID: c.ID,
				}
			}
		}

		booking := &models.Booking{
			Reference:             uuid.NewString(),
			StartDatetime:         startDt,
			EndDatetime:           endDt,
			DurationHours:         req.DurationHours,
			RequestedCleanerCount: req.RequestedCleanerCount,
			Status:                models.BookingStatusConfirmed,
		}
		for _, c := range crew {
			booking.AssignedCleaners = append(booking.AssignedCleaners, models.BookingCleaner{CleanerID: c.ID})
		}
		if err := bookings.Create(booking); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		if err := s.writeBlocks(blocks, booking, crew); err != nil {
			return err
		}

		cleanerIDs := make([]uint, 0, len(crew))
		for _, c := range crew {
			cleanerIDs = append(cleanerIDs, c.ID)
		}
		result = &BookingResult{
			BookingID:          booking.ID,
			Reference:          booking.Reference,
			StartDatetime:      booking.StartDatetime,
			EndDatetime:        booking.EndDatetime,
			DurationHours:      booking.DurationHours,
			AssignedCleanerIDs: cleanerIDs,
			AssignedVehicleID:  vehicleID,
			Status:             booking.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %d confirmed on vehicle %d for cleaners %v",
		result.BookingID, result.AssignedVehicleID, result.AssignedCleanerIDs)
	return result, nil
}

// RescheduleBooking moves an existing booking to a new window, keeping
// its crew. Blocks are relocated in place, so no other block's linkage
// is disturbed. On any conflict nothing is mutated.
func (s *BookingService) RescheduleBooking(bookingID uint, req RescheduleBookingRequest) (*RescheduleResult, error) {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}

	duration := booking.DurationHours
	if req.DurationHours != nil {
		if !s.cfg.DurationAllowed(*req.DurationHours) {
			return nil, &ValidationError{Message: "duration_hours must be 2 or 4"}
		}
		duration = *req.DurationHours
	}
	// Crew size is bounds-checked but the crew itself is preserved.
	if req.CleanerCount != nil && !s.cfg.CrewCountAllowed(*req.CleanerCount) {
		return nil, &ValidationError{Message: fmt.Sprintf("cleaner_count must be %d..%d", s.cfg.MinCleaners, s.cfg.MaxCleaners)}
	}

	date := dayOf(booking.StartDatetime)
	if req.Date != nil {
		date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected yyyy-MM-dd", *req.Date)}
		}
	}
	startMin := booking.StartDatetime.Hour()*60 + booking.StartDatetime.Minute()
	if req.StartTime != nil {
		startMin, err = parseMinuteOfDay(*req.StartTime)
		if err != nil {
			return nil, err
		}
	}

	if err := s.checkPolicy(date, startMin, duration); err != nil {
		return nil, err
	}

	if len(booking.AssignedCleaners) == 0 {
		return nil, &ConflictError{Message: fmt.Sprintf("booking %d has no assigned cleaners", bookingID)}
	}

	newStart := date.Add(time.Duration(startMin) * time.Minute)
	newEnd := newStart.Add(time.Duration(duration) * time.Hour)
	breakLen := time.Duration(s.cfg.BreakMinutes) * time.Minute

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		blocks := s.blocks.WithTx(tx)
		bookings := s.bookings.WithTx(tx)

		// The booking's own blocks must not veto its move.
		for _, bc := range booking.AssignedCleaners {
			busy, err := blocks.HasOverlapExcludingBooking(bc.CleanerID, bookingID, newStart, newEnd)
			if err != nil {
				return fmt.Errorf("failed to check cleaner %d: %w", bc.CleanerID, err)
			}
			if busy {
				return &ConflictError{
					Message:   fmt.Sprintf("cleaner %d is busy during the new requested time", bc.CleanerID),
					CleanerID: bc.CleanerID,
				}
			}
		}

		oldStart := booking.StartDatetime
		oldEnd := booking.EndDatetime

		booking.StartDatetime = newStart
		booking.EndDatetime = newEnd
		booking.DurationHours = duration
		if err := bookings.Update(booking); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		for _, bc := range booking.AssignedCleaners {
			if err := blocks.UpdateBlock(bc.CleanerID, oldStart, oldEnd, newStart, newEnd, models.BlockTypeBooked); err != nil {
				return fmt.Errorf("failed to move booked block for cleaner %d: %w", bc.CleanerID, err)
			}
			if err := blocks.UpdateBlock(bc.CleanerID, oldEnd, oldEnd.Add(breakLen), newEnd, newEnd.Add(breakLen), models.BlockTypeBreak); err != nil {
				return fmt.Errorf("failed to move break block for cleaner %d: %w", bc.CleanerID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %d rescheduled to %s -> %s",
		bookingID, newStart.Format("2006-01-02 15:04"), newEnd.Format("15:04"))
	return &RescheduleResult{BookingID: bookingID, Message: "Booking updated successfully"}, nil
}

// GetBooking returns a single booking with its crew.
func (s *BookingService) GetBooking(bookingID uint) (*BookingResult, error) {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}

	result := &BookingResult{
		BookingID:          booking.ID,
		Reference:          booking.Reference,
		StartDatetime:      booking.StartDatetime,
		EndDatetime:        booking.EndDatetime,
		DurationHours:      booking.DurationHours,
		AssignedCleanerIDs: booking.CleanerIDs(),
		Status:             booking.Status,
	}
	if len(booking.AssignedCleaners) > 0 {
		result.AssignedVehicleID = booking.AssignedCleaners[0].Cleaner.VehicleID
	}
	return result, nil
}

// CancelBooking removes a booking together with its BOOKED and BREAK
// blocks, freeing the crew's time.
func (s *BookingService) CancelBooking(bookingID uint) error {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return err
	}

	breakLen := time.Duration(s.cfg.BreakMinutes) * time.Minute

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		blocks := s.blocks.WithTx(tx)
		bookings := s.bookings.WithTx(tx)

		for _, bc := range booking.AssignedCleaners {
			if err := blocks.DeleteBlocks(bc.CleanerID, booking.StartDatetime, booking.EndDatetime, models.BlockTypeBooked); err != nil {
				return fmt.Errorf("failed to delete booked block for cleaner %d: %w", bc.CleanerID, err)
			}
			if err := blocks.DeleteBlocks(bc.CleanerID, booking.EndDatetime, booking.EndDatetime.Add(breakLen), models.BlockTypeBreak); err != nil {
				return fmt.Errorf("failed to delete break block for cleaner %d: %w", bc.CleanerID, err)
			}
		}
		if err := bookings.Delete(booking); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Booking %d cancelled", bookingID)
	return nil
}

// checkPolicy rejects the non-working day and windows outside working
// hours. Minutes are not wrapped, so a job running past midnight fails
// the end-of-window check.
func (s *BookingService) checkPolicy(date time.Time, startMin, durationHours int) error {
	if date.Weekday() == s.cfg.NonWorkingDay {
		return &PolicyError{Message: fmt.Sprintf("bookings are not possible on %s", s.cfg.NonWorkingDay)}
	}
	endMin := startMin + durationHours*60
	if !s.cfg.InsideWorkingWindow(startMin, endMin) {
		return &PolicyError{Message: fmt.Sprintf("bookings are only allowed between %s and %s",
			schedule.FormatMinutes(s.cfg.WorkStartMinutes), schedule.FormatMinutes(s.cfg.WorkEndMinutes))}
	}
	return nil
}

// resolveVehicleOrder returns the candidate vehicles: the preferred one
// alone when given, otherwise all vehicles in ascending id order.
func (s *BookingService) resolveVehicleOrder(preferredVehicleID *uint) ([]uint, error) {
	if preferredVehicleID != nil {
		return []uint{*preferredVehicleID}, nil
	}
	vehicles, err := s.fleet.ListVehicles()
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	ids := make([]uint, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

// findAvailableCrew walks the candidate vehicles and takes the first
// one with enough simultaneously free cleaners. No backtracking.
func (s *BookingService) findAvailableCrew(blocks BlockStore, vehicleIDs []uint, start, end time.Time, count int) ([]models.Cleaner, uint, error) {
	for _, vid := range vehicleIDs {
		cleaners, err := s.fleet.ListCleanersByVehicle(vid)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list cleaners for vehicle %d: %w", vid, err)
		}
		if len(cleaners) < count {
			continue
		}

		var crew []models.Cleaner
		for _, c := range cleaners {
			busy, err := blocks.HasOverlap(c.ID, start, end)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to check cleaner %d: %w", c.ID, err)
			}
			if !busy {
				crew = append(crew, c)
				if len(crew) == count {
					break
				}
			}
		}
		if len(crew) == count {
			return crew, vid, nil
		}
	}
	return nil, 0, &ConflictError{Message: "no available team found for requested time and cleaner count"}
}

// writeBlocks persists one BOOKED block per crew member plus the
// trailing BREAK, skipping a BREAK whose exact bounds already exist.
func (s *BookingService) writeBlocks(blocks BlockStore, booking *models.Booking, crew []models.Cleaner) error {
	breakStart := booking.EndDatetime
	breakEnd := breakStart.Add(time.Duration(s.cfg.BreakMinutes) * time.Minute)

	for _, c := range crew {
		exists, err := blocks.BlockExists(c.ID, booking.StartDatetime, booking.EndDatetime)
		if err != nil {
			return fmt.Errorf("failed to check existing blocks for cleaner %d: %w", c.ID, err)
		}
		if exists {
			return &ConflictError{
				Message:   fmt.Sprintf("cleaner %d already has a booking at the requested time", c.ID),
				CleanerID: c.ID,
			}
		}

		if err := blocks.InsertBlock(&models.AvailabilityBlock{
			CleanerID:     c.ID,
			BookingID:     &booking.ID,
			StartDatetime: booking.StartDatetime,
			EndDatetime:   booking.EndDatetime,
			BlockType:     models.BlockTypeBooked,
		}); err != nil {
			return fmt.Errorf("failed to insert booked block for cleaner %d: %w", c.ID, err)
		}

		breakExists, err := blocks.BlockExists(c.ID, breakStart, breakEnd)
		if err != nil {
			return fmt.Errorf("failed to check existing break for cleaner %d: %w", c.ID, err)
		}
		if !breakExists {
			if err := blocks.InsertBlock(&models.AvailabilityBlock{
				CleanerID:     c.ID,
				BookingID:     &booking.ID,
				StartDatetime: breakStart,
				EndDatetime:   breakEnd,
				BlockType:     models.BlockTypeBreak,
			}); err != nil {
				return fmt.Errorf("failed to insert break block for cleaner %d: %w", c.ID, err)
			}
		}
	}
	return nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
