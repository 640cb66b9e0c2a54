package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// reviewPayload accepts both spellings of the reason; the back office
// sends rejectReason.
type reviewPayload struct {
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
	ReasonCamel  string `json:"rejectReason"`
}

func (p reviewPayload) reason() string {
	if p.RejectReason != "" {
		return p.RejectReason
	}
	return p.ReasonCamel
}

type AdminController struct {
	ListingSvc    *services.ListingService
	ModerationSvc *services.ModerationService
}

func NewAdminController(listing *services.ListingService, moderation *services.ModerationService) *AdminController {
	return &AdminController{ListingSvc: listing, ModerationSvc: moderation}
}

// GET /api/admin/hotels
func (ac *AdminController) GetHotels(c *gin.Context) {
	rows, pagination := ac.ListingSvc.AdminList(models.ParseAdminHotelQuery(c.Request.URL.Query()))
	utils.JSONPage(c, http.StatusOK, rows, pagination)
}

var reviewMessages = map[models.HotelStatus]string{
	models.StatusPublished: "审核通过",
	models.StatusRejected:  "审核拒绝",
	models.StatusOffline:   "酒店已下线",
}

// PUT /api/admin/hotels/:id/status
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "无效的状态值")
		return
	}

	hotel, err := ac.ModerationSvc.Review(c.Request.Context(), id, payload.Status, payload.reason())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, hotel, reviewMessages[hotel.Status])
}
