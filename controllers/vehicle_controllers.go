package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/utils"
	"gorm.io/gorm"
)

type VehicleController struct {
	DB *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// CreateVehicle adds a new service vehicle to the fleet.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	vehicle := models.Vehicle{Name: req.Name}
	if err := vc.DB.Create(&vehicle).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New vehicle created: %s (id=%d)", vehicle.Name, vehicle.ID)
	utils.RespondJSON(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// GetAllVehicles lists the fleet with attached cleaners.
func (vc *VehicleController) GetAllVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := vc.DB.Preload("Cleaners").Order("id asc").Find(&vehicles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vehicles", vehicles)
}

// GetVehicleByID returns one vehicle with its cleaners.
func (vc *VehicleController) GetVehicleByID(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	var vehicle models.Vehicle
	if err := vc.DB.Preload("Cleaners").First(&vehicle, vehicleID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vehicle detail", vehicle)
}

// DeleteVehicle removes a vehicle; attached cleaners block the delete.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	var vehicle models.Vehicle

	if err := vc.DB.First(&vehicle, vehicleID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var cleanerCount int64
	vc.DB.Model(&models.Cleaner{}).Where("vehicle_id = ?", vehicle.ID).Count(&cleanerCount)
	if cleanerCount > 0 {
		utils.RespondError(c, http.StatusConflict, errVehicleHasCleaners)
		return
	}

	if err := vc.DB.Delete(&vehicle).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Vehicle %d deleted", vehicle.ID)
	utils.RespondJSON(c, http.StatusOK, "Vehicle deleted", gin.H{"id": vehicle.ID})
}
