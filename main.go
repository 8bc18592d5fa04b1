package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/cleaning-app/config"
	"github.com/yeremiapane/cleaning-app/middlewares"
	"github.com/yeremiapane/cleaning-app/models"
	"github.com/yeremiapane/cleaning-app/router"
	"github.com/yeremiapane/cleaning-app/schedule"
	"github.com/yeremiapane/cleaning-app/utils"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	cfg := schedule.ConfigFromEnv()
	utils.InfoLogger.Printf("Schedule policy: window %s-%s, break %dmin, non-working day %s",
		schedule.FormatMinutes(cfg.WorkStartMinutes),
		schedule.FormatMinutes(cfg.WorkEndMinutes),
		cfg.BreakMinutes,
		cfg.NonWorkingDay)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, cfg)
	r.Use(rateLimiter.RateLimit())
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Cleaner{},
		&models.Booking{},
		&models.BookingCleaner{},
		&models.AvailabilityBlock{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
