package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cleaning-app/controllers"
	"github.com/yeremiapane/cleaning-app/middlewares"
	"github.com/yeremiapane/cleaning-app/repositories"
	"github.com/yeremiapane/cleaning-app/schedule"
	"github.com/yeremiapane/cleaning-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg schedule.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	fleetRepo := repositories.NewFleetRepo(db)
	blockRepo := repositories.NewBlockRepo(db)
	bookingRepo := repositories.NewBookingRepo(db)

	availabilitySvc := services.NewAvailabilityService(fleetRepo, blockRepo, cfg)
	bookingSvc := services.NewBookingService(db, fleetRepo, blockRepo, bookingRepo, cfg)

	userCtrl := controllers.NewUserController(db)
	vehicleCtrl := controllers.NewVehicleController(db)
	cleanerCtrl := controllers.NewCleanerController(db)
	availabilityCtrl := controllers.NewAvailabilityController(availabilitySvc)
	bookingCtrl := controllers.NewBookingController(bookingSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Availability is a pure read, open to booking front-ends.
	r.POST("/api/availability", availabilityCtrl.CheckAvailability)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/bookings", bookingCtrl.CreateBooking)
		api.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		api.PUT("/bookings/:booking_id", bookingCtrl.RescheduleBooking)
		api.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)

		api.GET("/vehicles", vehicleCtrl.GetAllVehicles)
		api.GET("/vehicles/:vehicle_id", vehicleCtrl.GetVehicleByID)

		api.GET("/cleaners", cleanerCtrl.GetAllCleaners)
		api.GET("/cleaners/:cleaner_id", cleanerCtrl.GetCleanerByID)

		admin := api.Group("/")
		admin.Use(middlewares.RequireRole("admin"))
		{
			admin.POST("/vehicles", vehicleCtrl.CreateVehicle)
			admin.DELETE("/vehicles/:vehicle_id", vehicleCtrl.DeleteVehicle)
			admin.POST("/cleaners", cleanerCtrl.CreateCleaner)
			admin.DELETE("/cleaners/:cleaner_id", cleanerCtrl.DeleteCleaner)
		}
	}

	// Dispatch board websocket (admin, dispatcher).
	r.GET("/board/ws", middlewares.AuthMiddleware(), controllers.BoardHandler)

	return r
}
