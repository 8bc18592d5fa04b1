package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cleaning-app/controllers"
	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/utils"
)

func setupTestDBForVehicles(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Vehicle{}, &models.Cleaner{}); err != nil {
		panic(err)
	}
	return db
}

func setupVehicleRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	vehicleCtrl := controllers.NewVehicleController(db)
	cleanerCtrl := controllers.NewCleanerController(db)
	router.POST("/vehicles", vehicleCtrl.CreateVehicle)
	router.GET("/vehicles", vehicleCtrl.GetAllVehicles)
	router.GET("/vehicles/:vehicle_id", vehicleCtrl.GetVehicleByID)
	router.DELETE("/vehicles/:vehicle_id", vehicleCtrl.DeleteVehicle)
	router.POST("/cleaners", cleanerCtrl.CreateCleaner)
	router.GET("/cleaners", cleanerCtrl.GetAllCleaners)
	router.DELETE("/cleaners/:cleaner_id", cleanerCtrl.DeleteCleaner)
	return router
}

func TestCreateAndListVehicles(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	router := setupVehicleRouter(db)

	w := postJSON(t, router, "POST", "/vehicles", map[string]string{"name": "Van 1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Vehicle created successfully", response["message"])

	req, _ := http.NewRequest("GET", "/vehicles", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "Van 1", data[0].(map[string]interface{})["name"])
}

func TestCreateCleanerRequiresVehicle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	router := setupVehicleRouter(db)

	w := postJSON(t, router, "POST", "/cleaners", map[string]interface{}{
		"name":       "Ana",
		"vehicle_id": 42,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	vehicle := models.Vehicle{Name: "Van 1"}
	db.Create(&vehicle)

	w = postJSON(t, router, "POST", "/cleaners", map[string]interface{}{
		"name":       "Ana",
		"vehicle_id": vehicle.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteVehicleWithCleanersIsBlocked(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	router := setupVehicleRouter(db)

	vehicle := models.Vehicle{Name: "Van 1"}
	db.Create(&vehicle)
	cleaner := models.Cleaner{Name: "Ana", VehicleID: vehicle.ID}
	db.Create(&cleaner)

	url := "/vehicles/" + strconv.Itoa(int(vehicle.ID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// After the cleaner is removed, the vehicle can go too.
	req, _ = http.NewRequest("DELETE", "/cleaners/"+strconv.Itoa(int(cleaner.ID)), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCleanersFilteredByVehicle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	router := setupVehicleRouter(db)

	van1 := models.Vehicle{Name: "Van 1"}
	van2 := models.Vehicle{Name: "Van 2"}
	db.Create(&van1)
	db.Create(&van2)
	db.Create(&models.Cleaner{Name: "Ana", VehicleID: van1.ID})
	db.Create(&models.Cleaner{Name: "Bram", VehicleID: van2.ID})

	req, _ := http.NewRequest("GET", "/cleaners?vehicle_id="+strconv.Itoa(int(van2.ID)), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "Bram", data[0].(map[string]interface{})["name"])
}
