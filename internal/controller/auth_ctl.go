package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/service"
	"shopify_creator_v1/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController 店铺安装授权
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// Install
// @Summary 发起店铺安装授权
// @Description 校验 shop 域名后 302 跳转到 Shopify 授权页
// @Tags Auth
// @Param shop query string true "店铺域名，如 demo.myshopify.com"
// @Success 302 {string} string "跳转到授权页"
// @Failure 400 {string} string "Missing shop parameter"
// @Router /auth [get]
func (ctrl *AuthController) Install(c *gin.Context) {
	shop := c.Query("shop")
	if shop == "" {
		c.String(http.StatusBadRequest, "Missing shop parameter")
		return
	}

	authURL, err := ctrl.authService.InstallURL(shop)
	if err != nil {
		if errors.Is(err, service.ErrInvalidShop) {
			c.String(http.StatusBadRequest, "Invalid shop parameter")
			return
		}
		logger.FromGin(c).Error("生成授权地址失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal error")
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback
// @Summary Shopify 授权回调
// @Description 用 code 换取店铺 token 并保存，订阅 webhook 后跳回店铺后台
// @Tags Auth
// @Param shop query string true "店铺域名"
// @Param code query string true "授权码"
// @Param state query string false "安装时下发的 state"
// @Param hmac query string false "Shopify 回调签名"
// @Success 302 {string} string "跳转到 https://{shop}/admin/apps"
// @Failure 400 {string} string "Missing shop or code"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "OAuth failed"
// @Router /auth/callback [get]
func (ctrl *AuthController) Callback(c *gin.Context) {
	redirect, err := ctrl.authService.HandleCallback(c.Request.Context(), service.CallbackParams{
		Shop:  c.Query("shop"),
		Code:  c.Query("code"),
		State: c.Query("state"),
		URL:   c.Request.URL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingOAuthParams):
			c.String(http.StatusBadRequest, "Missing shop or code")
		case errors.Is(err, service.ErrInvalidShop):
			c.String(http.StatusBadRequest, "Invalid shop parameter")
		case errors.Is(err, service.ErrInvalidState):
			c.String(http.StatusBadRequest, "Invalid state")
		case errors.Is(err, service.ErrInvalidSignature):
			c.String(http.StatusUnauthorized, "Unauthorized")
		default:
			logger.FromGin(c).Error("OAuth 回调失败", zap.Error(err))
			c.String(http.StatusInternalServerError, "OAuth failed")
		}
		return
	}

	c.Redirect(http.StatusFound, redirect)
}
