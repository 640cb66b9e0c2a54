package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/controllers"
	"github.com/2582034744-ui/yisu-hotel-platform/middleware"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Hotel    *controllers.HotelController
	Booking  *controllers.BookingController
	Merchant *controllers.MerchantController
	Admin    *controllers.AdminController
	System   *controllers.SystemController
}

type Options struct {
	CORSOrigins []string
	UploadDir   string
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter mounts the API under /api plus the root, health, debug and
// upload routes.
func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	r.GET("/", ctl.System.Index)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/debug/hotels", ctl.System.DebugHotels)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/register", ctl.Auth.Register)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", ctl.Hotel.GetHotels)

			// static segments before /:id
			hotels.GET("/recommended", ctl.Hotel.GetRecommended)
			hotels.GET("/search", ctl.Hotel.SearchHotels)
			hotels.GET("/transitions", ctl.System.Transitions)

			hotels.GET("/:id", ctl.Hotel.GetHotel)
			hotels.POST("", ctl.Hotel.CreateHotel)
			hotels.PUT("/:id", ctl.Hotel.UpdateHotel)
			hotels.DELETE("/:id", ctl.Hotel.DeleteHotel)
			hotels.PUT("/:id/submit", ctl.Hotel.SubmitHotel)
			hotels.PUT("/:id/online", ctl.Hotel.SetOnline)
			hotels.PUT("/:id/offline", ctl.Hotel.SetOffline)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", ctl.Booking.CreateBooking)
			bookings.GET("/:id", ctl.Booking.GetBooking)
		}

		api.GET("/merchant/hotels", ctl.Merchant.GetHotels)

		admin := api.Group("/admin")
		{
			admin.GET("/hotels", ctl.Admin.GetHotels)
			admin.PUT("/hotels/:id/status", ctl.Admin.UpdateStatus)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "接口不存在")
	})

	return r
}
