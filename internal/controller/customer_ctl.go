package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerController 创作者账号
type CustomerController struct {
	customerService *service.CustomerService
}

func NewCustomerController(s *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: s}
}

// Signup
// @Summary 创作者注册
// @Description 创建 Shopify 客户并打上创作者标签，同时写入本地客户表
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "注册信息"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "缺少字段或上游拒绝"
// @Failure 404 {object} ErrorResponse "Customer created, but not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/signup [post]
func (ctrl *CustomerController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	if err := ctrl.customerService.Signup(c.Request.Context(), &req); err != nil {
		var userErr *service.UserError
		switch {
		case errors.As(err, &userErr):
			abortJSON(c, http.StatusBadRequest, userErr.Message)
		case errors.Is(err, service.ErrCustomerNotFound):
			abortJSON(c, http.StatusNotFound, "Customer created, but not found")
		default:
			abortInternal(c, http.StatusInternalServerError, "Signup failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account created, tagged, and stored!"})
}

// Login
// @Summary 创作者登录
// @Description 换取 Storefront 客户 token，并返回客户的创作者标签
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "邮箱和密码"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Missing email or password"
// @Failure 401 {object} ErrorResponse "账号或密码错误"
// @Failure 403 {object} ErrorResponse "Missing access token for shop"
// @Failure 500 {object} ErrorResponse
// @Router /api/login [post]
func (ctrl *CustomerController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, http.StatusBadRequest, "Missing email or password", err)
		return
	}

	resp, err := ctrl.customerService.Login(c.Request.Context(), &req)
	if err != nil {
		var userErr *service.UserError
		switch {
		case errors.As(err, &userErr):
			abortJSON(c, http.StatusUnauthorized, userErr.Message)
		case errors.Is(err, service.ErrMissingShopToken):
			abortJSON(c, http.StatusForbidden, "Missing access token for shop")
		default:
			abortInternal(c, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile
// @Summary 创作者资料
// @Description 校验客户 token 与邮箱一致后返回本地资料，附带前端占位字段
// @Tags Customer
// @Produce json
// @Param email query string true "邮箱"
// @Param token query string true "Storefront 客户 token"
// @Success 200 {object} dto.CustomerProfileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized: Missing email or token"
// @Failure 403 {object} ErrorResponse "Invalid or expired token"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/customer [get]
func (ctrl *CustomerController) Profile(c *gin.Context) {
	resp, err := ctrl.customerService.Profile(c.Request.Context(), c.Query("email"), c.Query("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentity):
			abortJSON(c, http.StatusUnauthorized, "Unauthorized: Missing email or token")
		case errors.Is(err, service.ErrInvalidCustomerToken):
			abortJSON(c, http.StatusForbidden, "Invalid or expired token")
		case errors.Is(err, service.ErrCustomerProfileMissing):
			abortJSON(c, http.StatusNotFound, "Customer not found")
		default:
			abortInternal(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
