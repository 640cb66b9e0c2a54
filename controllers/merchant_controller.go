package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

type MerchantController struct {
	ListingSvc *services.ListingService
}

func NewMerchantController(listing *services.ListingService) *MerchantController {
	return &MerchantController{ListingSvc: listing}
}

// GET /api/merchant/hotels?merchantId=
func (mc *MerchantController) GetHotels(c *gin.Context) {
	merchantID, err := strconv.Atoi(strings.TrimSpace(c.Query("merchantId")))
	if err != nil || merchantID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "请提供商户ID")
		return
	}
	utils.JSONData(c, http.StatusOK, mc.ListingSvc.MerchantList(merchantID))
}
