package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/utils"
	"gorm.io/gorm"
)

var errVehicleHasCleaners = errors.New("vehicle still has cleaners attached")

type CleanerController struct {
	DB *gorm.DB
}

func NewCleanerController(db *gorm.DB) *CleanerController {
	return &CleanerController{DB: db}
}

// CreateCleaner attaches a new cleaner to an existing vehicle.
func (cc *CleanerController) CreateCleaner(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		VehicleID uint   `json:"vehicle_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var vehicle models.Vehicle
	if err := cc.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vehicle not found"))
		return
	}

	cleaner := models.Cleaner{
		Name:      req.Name,
		VehicleID: req.VehicleID,
	}
	if err := cc.DB.Create(&cleaner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New cleaner created: %s (vehicle=%d)", cleaner.Name, cleaner.VehicleID)
	utils.RespondJSON(c, http.StatusCreated, "Cleaner created successfully", cleaner)
}

// GetAllCleaners lists cleaners, optionally filtered by vehicle.
func (cc *CleanerController) GetAllCleaners(c *gin.Context) {
	query := cc.DB.Order("id asc")
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var cleaners []models.Cleaner
	if err := query.Find(&cleaners).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of cleaners", cleaners)
}

// GetCleanerByID returns one cleaner with its vehicle.
func (cc *CleanerController) GetCleanerByID(c *gin.Context) {
	cleanerID := c.Param("cleaner_id")
	var cleaner models.Cleaner
	if err := cc.DB.Preload("Vehicle").First(&cleaner, cleanerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaner detail", cleaner)
}

// DeleteCleaner removes a cleaner from the fleet.
func (cc *CleanerController) DeleteCleaner(c *gin.Context) {
	cleanerID := c.Param("cleaner_id")
	var cleaner models.Cleaner

	if err := cc.DB.First(&cleaner, cleanerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&cleaner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Cleaner %d deleted", cleaner.ID)
	utils.RespondJSON(c, http.StatusOK, "Cleaner deleted", gin.H{"id": cleaner.ID})
}
