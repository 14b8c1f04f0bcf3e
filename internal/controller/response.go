package controller

import (
	"errors"
	"reflect"
	"strings"

	"shopify_creator_v1/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func init() {
	// 校验错误里使用 json 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// ==================== 响应辅助 ====================

// ErrorResponse 统一错误体
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// abortInternal 记录原始错误，只向调用方返回概要信息
func abortInternal(c *gin.Context, status int, msg string, err error) {
	logger.FromGin(c).Error(msg, zap.Error(err))
	_ = c.Error(err)
	abortJSON(c, status, msg)
}

// abortBinding 参数校验失败，按字段列出违反的规则
func abortBinding(c *gin.Context, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Fields[fe.Field()] = fe.Tag()
		}
	}
	c.AbortWithStatusJSON(status, resp)
}
