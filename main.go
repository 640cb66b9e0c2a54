package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/config"
	"github.com/2582034744-ui/yisu-hotel-platform/controllers"
	"github.com/2582034744-ui/yisu-hotel-platform/routes"
	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env not found, continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	config.SetupLogging(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	snap, closeSnap, err := config.OpenSnapshotter(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("snapshot backend unavailable")
	}
	defer func() {
		if err := closeSnap(); err != nil {
			logrus.WithError(err).Warn("closing snapshot backend")
		}
	}()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	st := store.Open(loadCtx, snap)
	cancelLoad()

	// Initialize services
	listingService := services.NewListingService(st)
	imageService := services.NewImageService(cfg.UploadDir)
	moderationService := services.NewModerationService(st, imageService, cfg.Autosave)
	bookingService := services.NewBookingService(st, cfg.Autosave)
	authService := services.NewAuthService(st, cfg.Autosave)

	// Build router
	router := routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Hotel:    controllers.NewHotelController(listingService, moderationService),
		Booking:  controllers.NewBookingController(bookingService),
		Merchant: controllers.NewMerchantController(listingService),
		Admin:    controllers.NewAdminController(listingService, moderationService),
		System:   controllers.NewSystemController(listingService),
	}, routes.Options{
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   cfg.UploadDir,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     addr,
			"backend":  snap.Name(),
			"autosave": cfg.Autosave,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("ListenAndServe")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}

	if err := st.Save(ctx); err != nil {
		logrus.WithError(err).Error("final snapshot failed")
	} else {
		logrus.Info("final snapshot written")
	}
	logrus.Info("server stopped gracefully")
}
