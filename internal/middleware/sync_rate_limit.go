package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// OrderSyncKey 订单全量同步的限流键
const OrderSyncKey = "global:order_sync"

// SyncCooldown 同步接口冷却中间件
// 冷却期内返回 429 和 retry_after（秒）；handler 返回 5xx 时清除冷却
//
// 使用示例:
//
//	router.GET("/sync/orders",
//	    middleware.SyncCooldown(limiter, middleware.OrderSyncKey, time.Minute),
//	    syncCtl.SyncOrders,
//	)
func SyncCooldown(limiter *CooldownLimiter, key string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		result := limiter.Check(key, interval)
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       formatRetryMessage(result.RetryAfter),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			limiter.Reset(key)
		}
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 60 {
		return fmt.Sprintf("Sync cooling down, retry in %d seconds", seconds)
	}

	minutes, rest := seconds/60, seconds%60
	if rest == 0 {
		return fmt.Sprintf("Sync cooling down, retry in %d minutes", minutes)
	}
	return fmt.Sprintf("Sync cooling down, retry in %d minutes %d seconds", minutes, rest)
}
