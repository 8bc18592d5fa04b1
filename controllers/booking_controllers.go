package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cleaning-app/board"
	"github.com/yeremiapane/cleaning-app/services"
	"github.com/yeremiapane/cleaning-app/utils"
)

type BookingController struct {
	svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{svc: svc}
}

// CreateBooking assigns a crew and reserves its time.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := bc.svc.CreateBooking(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	board.BroadcastMessage(board.Message{
		Event: board.EventBookingCreated,
		Data:  result,
	})

	utils.RespondJSON(c, http.StatusCreated, "Booking confirmed", result)
}

// RescheduleBooking moves an existing booking to a new window.
func (bc *BookingController) RescheduleBooking(c *gin.Context) {
	bookingID, err := parseBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req services.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := bc.svc.RescheduleBooking(bookingID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	board.BroadcastMessage(board.Message{
		Event: board.EventBookingRescheduled,
		Data:  result,
	})

	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// GetBookingByID returns one booking with its crew.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	bookingID, err := parseBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := bc.svc.GetBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", result)
}

// CancelBooking deletes a booking and frees its blocks.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bookingID, err := parseBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.svc.CancelBooking(bookingID); err != nil {
		respondServiceError(c, err)
		return
	}

	board.BroadcastMessage(board.Message{
		Event: board.EventBookingCancelled,
		Data:  gin.H{"booking_id": bookingID},
	})

	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{"booking_id": bookingID})
}

func parseBookingID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid booking id")
	}
	return uint(id), nil
}

// respondServiceError maps the engine's error taxonomy onto HTTP status
// codes: bad input, policy/availability conflict, not found.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		policyErr     *services.PolicyError
		conflictErr   *services.ConflictError
		notFoundErr   *services.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &policyErr):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &conflictErr):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &notFoundErr):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.ErrorLogger.Printf("internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
