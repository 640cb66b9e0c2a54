package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "请提供完整的预订信息")
		return
	}

	confirmation, err := bc.BookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, confirmation, "预订成功")
}

// GET /api/bookings/:id
func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.BookingSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, booking)
}
