package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewHTTPClient 统一的出站 Resty 客户端
// timeout 为 0 时使用 30 秒
func NewHTTPClient(timeout time.Duration, debug bool) *resty.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return resty.New().
		SetDebug(debug).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Shopify-Creator-App/1.0").
		SetHeader("Accept", "application/json")
}
