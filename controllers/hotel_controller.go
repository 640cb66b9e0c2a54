package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// HotelController serves the public catalog and the merchant-side writes
// on /api/hotels.
type HotelController struct {
	ListingSvc    *services.ListingService
	ModerationSvc *services.ModerationService
}

func NewHotelController(listing *services.ListingService, moderation *services.ModerationService) *HotelController {
	return &HotelController{ListingSvc: listing, ModerationSvc: moderation}
}

// GET /api/hotels
func (hc *HotelController) GetHotels(c *gin.Context) {
	rows, pagination := hc.ListingSvc.List(models.ParseHotelQuery(c.Request.URL.Query()))
	utils.JSONPage(c, http.StatusOK, rows, pagination)
}

// GET /api/hotels/recommended
func (hc *HotelController) GetRecommended(c *gin.Context) {
	utils.JSONData(c, http.StatusOK, hc.ListingSvc.Recommended())
}

// GET /api/hotels/search?keyword=
func (hc *HotelController) SearchHotels(c *gin.Context) {
	rows, err := hc.ListingSvc.Search(c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, rows)
}

// GET /api/hotels/:id
func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	hotel, err := hc.ListingSvc.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, hotel)
}

// POST /api/hotels
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req services.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "请提供完整的酒店信息")
		return
	}

	hotel, err := hc.ModerationSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "酒店创建成功，等待审核"
	if hotel.Status == models.StatusDraft {
		message = "草稿已保存"
	}
	utils.JSONData(c, http.StatusCreated, hotel, message)
}

// PUT /api/hotels/:id
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "请求数据格式错误")
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	hotel, err := hc.ModerationSvc.Edit(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, hotel, "酒店更新成功，等待审核")
}

// DELETE /api/hotels/:id
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	if err := hc.ModerationSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "删除成功")
}

type ownerPayload struct {
	MerchantID services.FlexibleInt `json:"merchantId"`
	Role       string               `json:"role"`
}

// owner reads merchantId and role from the JSON body, falling back to the
// query string.
func owner(c *gin.Context) (services.Owner, bool) {
	var payload ownerPayload
	body, err := c.GetRawData()
	if err == nil && len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "请求数据格式错误")
			return services.Owner{}, false
		}
	}
	if payload.MerchantID == 0 {
		if n, err := strconv.Atoi(c.Query("merchantId")); err == nil {
			payload.MerchantID = services.FlexibleInt(n)
		}
	}
	if payload.Role == "" {
		payload.Role = c.Query("role")
	}
	return services.Owner{
		MerchantID: int(payload.MerchantID),
		Admin:      models.UserRole(payload.Role) == models.RoleAdmin,
	}, true
}

// PUT /api/hotels/:id/online
func (hc *HotelController) SetOnline(c *gin.Context) {
	hc.toggle(c, true)
}

// PUT /api/hotels/:id/offline
func (hc *HotelController) SetOffline(c *gin.Context) {
	hc.toggle(c, false)
}

func (hc *HotelController) toggle(c *gin.Context, online bool) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	who, ok := owner(c)
	if !ok {
		return
	}

	hotel, err := hc.ModerationSvc.SetOnline(c.Request.Context(), id, online, who)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "酒店已下线"
	if online {
		message = "酒店已上线"
	}
	utils.JSONData(c, http.StatusOK, hotel, message)
}

// PUT /api/hotels/:id/submit
func (hc *HotelController) SubmitHotel(c *gin.Context) {
	id, ok := hotelID(c)
	if !ok {
		return
	}
	who, ok := owner(c)
	if !ok {
		return
	}

	hotel, err := hc.ModerationSvc.Submit(c.Request.Context(), id, who.MerchantID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, hotel, "已提交审核")
}
