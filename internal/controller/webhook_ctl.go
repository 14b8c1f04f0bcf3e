package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/service"
	"shopify_creator_v1/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HMACHeader Shopify webhook 签名头
const HMACHeader = "X-Shopify-Hmac-Sha256"

// WebhookController Shopify webhook 接收
type WebhookController struct {
	webhookService *service.WebhookService
}

func NewWebhookController(s *service.WebhookService) *WebhookController {
	return &WebhookController{webhookService: s}
}

// Receive
// @Summary 接收 Shopify webhook
// @Description 校验签名后按 {resource}/{event} 分发；除签名和解析失败外一律 200，避免上游重投
// @Tags Webhook
// @Accept json
// @Produce plain
// @Param resource path string true "资源，如 orders"
// @Param event path string true "事件，如 create"
// @Param X-Shopify-Hmac-Sha256 header string true "Base64 HMAC-SHA256"
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "Invalid payload"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /webhook/{resource}/{event} [post]
func (ctrl *WebhookController) Receive(c *gin.Context) {
	topic := service.ParseTopic(c.Param("resource"), c.Param("event"))
	log := logger.FromGin(c).With(zap.String("topic", c.Param("resource")+"/"+c.Param("event")))

	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	// 1. 签名校验在解析之前
	if err := ctrl.webhookService.VerifySignature(body, c.GetHeader(HMACHeader)); err != nil {
		log.Warn("webhook 签名校验失败")
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	// 2. 分发
	if err := ctrl.webhookService.Handle(c.Request.Context(), topic, body); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			log.Warn("webhook 载荷无法解析", zap.Error(err))
			c.String(http.StatusBadRequest, "Invalid payload")
			return
		}
		log.Error("webhook 处理失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal error")
		return
	}

	c.String(http.StatusOK, "OK")
}
