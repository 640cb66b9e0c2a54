package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "请提供用户名和密码")
		return
	}

	account, err := ac.AuthSvc.Login(payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, account, "登录成功")
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "请提供完整的注册信息")
		return
	}

	account, err := ac.AuthSvc.Register(c.Request.Context(), payload.Username, payload.Password, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, account, "注册成功")
}
