package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/schedule"
)

type AvailabilityRequest struct {
	Date          string  `json:"date" binding:"required"` // yyyy-MM-dd
	StartTime     *string `json:"start_time"`              // optional HH:mm
	DurationHours *int    `json:"duration_hours"`          // 2 or 4
	CleanerCount  *int    `json:"cleaner_count"`           // 1..3
}

type CleanerAvailability struct {
	CleanerID      uint     `json:"cleaner_id"`
	Name           string   `json:"name"`
	AvailableSlots []string `json:"available_slots,omitempty"`
}

type VehicleAvailability struct {
	VehicleID   uint                  `json:"vehicle_id"`
	VehicleName string                `json:"vehicle_name"`
	Cleaners    []CleanerAvailability `json:"cleaners"`
}

type AvailabilityReport struct {
	Date              string                `json:"date"`
	AvailableVehicles []VehicleAvailability `json:"available_vehicles"`
	Count             int                   `json:"count"`
}

// AvailabilityService answers availability queries. It is a pure read:
// no blocks are written and nothing is cached across requests.
type AvailabilityService struct {
	fleet  FleetStore
	blocks BlockStore
	cfg    schedule.Config
}

func NewAvailabilityService(fleet FleetStore, blocks BlockStore, cfg schedule.Config) *AvailabilityService {
	return &AvailabilityService{fleet: fleet, blocks: blocks, cfg: cfg}
}

// CheckAvailability reports, per vehicle, which cleaners can take the
// requested window, or their full free-slot lists when no window is
// given. A vehicle only appears when it has at least one qualifying
// cleaner; with a window, it also needs at least CleanerCount cleaners
// that each fit the exact window.
func (s *AvailabilityService) CheckAvailability(req AvailabilityRequest) (*AvailabilityReport, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected yyyy-MM-dd", req.Date)}
	}

	report := &AvailabilityReport{
		Date:              req.Date,
		AvailableVehicles: []VehicleAvailability{},
	}

	if date.Weekday() == s.cfg.NonWorkingDay {
		return report, nil
	}

	filterByTime := req.StartTime != nil && req.DurationHours != nil && req.CleanerCount != nil

	var reqStart, reqEnd int
	if filterByTime {
		startMin, err := parseMinuteOfDay(*req.StartTime)
		if err != nil {
			return nil, err
		}
		if !s.cfg.DurationAllowed(*req.DurationHours) {
			return nil, &ValidationError{Message: "duration_hours must be 2 or 4"}
		}
		if !s.cfg.CrewCountAllowed(*req.CleanerCount) {
			return nil, &ValidationError{Message: fmt.Sprintf("cleaner_count must be %d..%d", s.cfg.MinCleaners, s.cfg.MaxCleaners)}
		}
		reqStart = startMin
		reqEnd = startMin + *req.DurationHours*60
	}

	vehicles, err := s.fleet.ListVehicles()
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	for _, v := range vehicles {
		cleaners, err := s.fleet.ListCleanersByVehicle(v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cleaners for vehicle %d: %w", v.ID, err)
		}
		if len(cleaners) == 0 {
			continue
		}

		cleanerIDs := make([]uint, 0, len(cleaners))
		for _, c := range cleaners {
			cleanerIDs = append(cleanerIDs, c.ID)
		}

		// One batched lookup for the whole vehicle, not one per cleaner.
		blocks, err := s.blocks.FindBusyBlocksForCleaners(cleanerIDs, date)
		if err != nil {
			return nil, fmt.Errorf("failed to load blocks: %w", err)
		}

		blocksByCleaner := make(map[uint][]models.AvailabilityBlock, len(cleaners))
		for _, b := range blocks {
			blocksByCleaner[b.CleanerID] = append(blocksByCleaner[b.CleanerID], b)
		}

		var cleanerReports []CleanerAvailability
		cleanersThatFit := 0

		for _, c := range cleaners {
			free := s.freeSlotsFor(blocksByCleaner[c.ID])

			if filterByTime {
				if !schedule.Fits(free, reqStart, reqEnd) {
					continue
				}
				cleanersThatFit++
			}

			ca := CleanerAvailability{CleanerID: c.ID, Name: c.Name}
			if !filterByTime {
				ca.AvailableSlots = schedule.FormatSlots(free)
			}
			cleanerReports = append(cleanerReports, ca)
		}

		if filterByTime && cleanersThatFit < *req.CleanerCount {
			continue
		}

		if len(cleanerReports) > 0 {
			report.AvailableVehicles = append(report.AvailableVehicles, VehicleAvailability{
				VehicleID:   v.ID,
				VehicleName: v.Name,
				Cleaners:    cleanerReports,
			})
			report.Count++
		}
	}

	return report, nil
}

// freeSlotsFor computes a cleaner's free intervals from their busy
// blocks for one day.
func (s *AvailabilityService) freeSlotsFor(blocks []models.AvailabilityBlock) []schedule.Interval {
	var busy []schedule.Interval
	for _, b := range blocks {
		if !b.IsBusy() {
			continue
		}
		busy = append(busy, schedule.Interval{
			Start: b.StartDatetime.Hour()*60 + b.StartDatetime.Minute(),
			End:   b.EndDatetime.Hour()*60 + b.EndDatetime.Minute(),
		})
	}
	merged := schedule.MergeBusy(busy)
	return schedule.FreeSlots(merged, s.cfg.WorkStartMinutes, s.cfg.WorkEndMinutes)
}

func parseMinuteOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, &ValidationError{Message: fmt.Sprintf("invalid time %q, expected HH:mm", hhmm)}
	}
	return t.Hour()*60 + t.Minute(), nil
}
