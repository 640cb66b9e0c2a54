package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/statemachine"
)

const apiVersion = "1.0"

var endpoints = []string{
	"GET /api/hotels",
	"GET /api/hotels/:id",
	"GET /api/hotels/recommended",
	"GET /api/hotels/search",
	"POST /api/bookings",
	"GET /api/bookings/:id",
	"POST /api/auth/login",
	"POST /api/auth/register",
	"GET /api/admin/hotels",
	"GET /api/merchant/hotels",
	"POST /api/hotels",
	"PUT /api/hotels/:id",
	"DELETE /api/hotels/:id",
	"PUT /api/hotels/:id/submit",
	"PUT /api/hotels/:id/online",
	"PUT /api/hotels/:id/offline",
	"PUT /api/admin/hotels/:id/status",
	"GET /api/hotels/transitions",
}

type SystemController struct {
	ListingSvc *services.ListingService
}

func NewSystemController(listing *services.ListingService) *SystemController {
	return &SystemController{ListingSvc: listing}
}

// GET /
func (sc *SystemController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "酒店预订平台API服务器",
		"version":   apiVersion,
		"endpoints": endpoints,
	})
}

// GET /debug/hotels
func (sc *SystemController) DebugHotels(c *gin.Context) {
	c.JSON(http.StatusOK, sc.ListingSvc.StatusReport())
}

// GET /api/hotels/transitions
func (sc *SystemController) Transitions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": statemachine.Transitions()})
}
