package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cleaning-app/services"
	"github.com/yeremiapane/cleaning-app/utils"
)

type AvailabilityController struct {
	svc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{svc: svc}
}

// CheckAvailability reports free crews for a date, optionally filtered
// by an exact requested window.
func (ac *AvailabilityController) CheckAvailability(c *gin.Context) {
	var req services.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := ac.svc.CheckAvailability(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability report", report)
}
