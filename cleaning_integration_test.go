package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/router"
	"github.com/yeremiapane/cleaning-app/schedule"
	"github.com/yeremiapane/cleaning-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main dispatcher flow:
// 1. Login as admin -> token
// 2. Build the fleet (vehicle + two cleaners)
// 3. Check availability for a working day
// 4. Create a booking for a two-cleaner job
// 5. Reschedule it to the afternoon
// 6. Cancel it and confirm the day is free again
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, schedule.DefaultConfig())

	token := loginTest(t, r)

	vehicleID := createVehicleTest(t, r, token)
	createCleanerTest(t, r, token, "Ana", vehicleID)
	createCleanerTest(t, r, token, "Bram", vehicleID)

	checkAvailabilityTest(t, r, "2025-06-02", 1)

	bookingID := createBookingTest(t, r, token)

	rescheduleBookingTest(t, r, token, bookingID)

	cancelBookingTest(t, r, token, bookingID)
	checkAvailabilityTest(t, r, "2025-06-02", 1)

	var blockCount int64
	db.Model(&models.AvailabilityBlock{}).Count(&blockCount)
	if blockCount != 0 {
		t.Fatalf("expected all blocks freed after cancel, got %d", blockCount)
	}
}

// setupIntegrationDB opens a named shared-memory sqlite DB so that the
// booking engine's non-transactional reads see the same database as the
// transaction's pinned connection.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Cleaner{},
		&models.Booking{},
		&models.BookingCleaner{},
		&models.AvailabilityBlock{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	})

	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.Token == "" {
		t.Fatalf("loginTest: status=%v, msg=%s", resp.Status, resp.Message)
	}
	return resp.Data.Token
}

func createVehicleTest(t *testing.T, r *gin.Engine, token string) uint {
	bodyBytes, _ := json.Marshal(map[string]string{"name": "Van 1"})

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createVehicleTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.ID == 0 {
		t.Fatalf("createVehicleTest: bad response body=%s", w.Body.String())
	}
	return resp.Data.ID
}

func createCleanerTest(t *testing.T, r *gin.Engine, token, name string, vehicleID uint) {
	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"name":       name,
		"vehicle_id": vehicleID,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cleaners", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createCleanerTest(%s): expected 201, got %d, body=%s", name, w.Code, w.Body.String())
	}
}

// checkAvailabilityTest hits the public availability endpoint and
// verifies the vehicle count in the report.
func checkAvailabilityTest(t *testing.T, r *gin.Engine, date string, wantCount int) {
	bodyBytes, _ := json.Marshal(map[string]string{"date": date})

	req := httptest.NewRequest(http.MethodPost, "/api/availability", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("checkAvailabilityTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Count != wantCount {
		t.Fatalf("checkAvailabilityTest: want count=%d, got %d", wantCount, resp.Data.Count)
	}
}

func createBookingTest(t *testing.T, r *gin.Engine, token string) uint {
	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"date":                    "2025-06-02",
		"start_time":              "10:00",
		"duration_hours":          2,
		"requested_cleaner_count": 2,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createBookingTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			BookingID          uint   `json:"booking_id"`
			Reference          string `json:"reference"`
			Status             string `json:"status"`
			AssignedCleanerIDs []uint `json:"assigned_cleaner_ids"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.BookingID == 0 {
		t.Fatalf("createBookingTest: bad response body=%s", w.Body.String())
	}
	if resp.Data.Status != "CONFIRMED" {
		t.Fatalf("createBookingTest: want status CONFIRMED, got %s", resp.Data.Status)
	}
	if len(resp.Data.AssignedCleanerIDs) != 2 {
		t.Fatalf("createBookingTest: want 2 assigned cleaners, got %d", len(resp.Data.AssignedCleanerIDs))
	}
	return resp.Data.BookingID
}

func rescheduleBookingTest(t *testing.T, r *gin.Engine, token string, bookingID uint) {
	bodyBytes, _ := json.Marshal(map[string]string{"start_time": "14:00"})

	req := httptest.NewRequest(http.MethodPut,
		"/api/bookings/"+uintToString(bookingID), bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("rescheduleBookingTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status {
		t.Fatalf("rescheduleBookingTest: status=false, msg=%s", resp.Message)
	}
}

func cancelBookingTest(t *testing.T, r *gin.Engine, token string, bookingID uint) {
	req := httptest.NewRequest(http.MethodDelete,
		"/api/bookings/"+uintToString(bookingID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cancelBookingTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func uintToString(num uint) string {
	return strconv.FormatUint(uint64(num), 10)
}
