package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/pkg/shopify"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ==================== 依赖接口 ====================

// StorefrontAPI 客户侧 Storefront 操作
type StorefrontAPI interface {
	CustomerCreate(ctx context.Context, input shopify.CustomerInput) (string, error)
	CustomerAccessTokenCreate(ctx context.Context, email, password string) (string, error)
	Customer(ctx context.Context, accessToken string) (*shopify.StorefrontCustomer, error)
}

// CustomerAdmin Admin API 客户操作
type CustomerAdmin interface {
	SearchCustomerByEmail(ctx context.Context, email string) (*shopify.Customer, error)
	UpdateCustomerTags(ctx context.Context, customerID int64, tags string) error
}

// AdminForToken 按店铺 token 构造 Admin 客户端
type AdminForToken func(accessToken string) CustomerAdmin

// LookupPolicy 注册后查找新客户的重试策略
type LookupPolicy struct {
	Attempts int
	Interval time.Duration
}

// errNotYetVisible 新建客户在 Admin 搜索中尚不可见
var errNotYetVisible = errors.New("customer not yet visible")

// ==================== CustomerService ====================

// CustomerService 创作者注册、登录与资料
type CustomerService struct {
	storefront    StorefrontAPI
	admin         CustomerAdmin
	adminForToken AdminForToken
	customerRepo  repository.CustomerRepository
	tokenRepo     repository.ShopTokenRepository
	shop          string
	lookup        LookupPolicy
	logger        *zap.Logger
}

// NewCustomerService 创建客户服务
// shop 为登录时读取店铺 token 的店铺域名
func NewCustomerService(
	storefront StorefrontAPI,
	admin CustomerAdmin,
	adminForToken AdminForToken,
	customerRepo repository.CustomerRepository,
	tokenRepo repository.ShopTokenRepository,
	shop string,
	lookup LookupPolicy,
	logger *zap.Logger,
) *CustomerService {
	if lookup.Attempts <= 0 {
		lookup.Attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		storefront:    storefront,
		admin:         admin,
		adminForToken: adminForToken,
		customerRepo:  customerRepo,
		tokenRepo:     tokenRepo,
		shop:          shop,
		lookup:        lookup,
		logger:        logger,
	}
}

// ==================== 注册 ====================

// Signup 创建 Storefront 客户，等待 Admin 可见后打标签并落库
func (s *CustomerService) Signup(ctx context.Context, req *dto.SignupRequest) error {
	log := s.logger.With(zap.String("email", req.Email))

	// 1. 创建客户
	if _, err := s.storefront.CustomerCreate(ctx, shopify.CustomerInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
	}); err != nil {
		var userErrs shopify.UserErrors
		if errors.As(err, &userErrs) {
			return &UserError{Message: userErrs.Error()}
		}
		return fmt.Errorf("创建客户失败: %w", err)
	}

	// 2. 等待 Admin 搜索可见
	customer, err := s.waitForCustomer(ctx, req.Email)
	if err != nil {
		return err
	}

	// 3. 打创作者标签
	if err := s.admin.UpdateCustomerTags(ctx, customer.ID, req.CreatorName); err != nil {
		return fmt.Errorf("更新客户标签失败: %w", err)
	}

	// 4. 落库
	if err := s.customerRepo.Upsert(ctx, &model.Customer{
		ShopifyID: customer.ID,
		Email:     req.Email,
		Tag:       req.CreatorName,
		Name:      req.FirstName,
	}); err != nil {
		return fmt.Errorf("保存客户失败: %w", err)
	}

	log.Info("创作者注册完成", zap.Int64("customer_id", customer.ID), zap.String("tag", req.CreatorName))
	return nil
}

// waitForCustomer 固定间隔重试查找，用尽次数返回 ErrCustomerNotFound
func (s *CustomerService) waitForCustomer(ctx context.Context, email string) (*shopify.Customer, error) {
	var found *shopify.Customer
	attempt := 0

	op := func() error {
		attempt++
		c, err := s.admin.SearchCustomerByEmail(ctx, email)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c == nil {
			return errNotYetVisible
		}
		found = c
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Info("新客户暂不可见，稍后重试",
			zap.String("email", email),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.lookup.Interval), uint64(s.lookup.Attempts-1)),
		ctx,
	)
	err := backoff.RetryNotify(op, policy, notify)
	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, errNotYetVisible):
		return nil, ErrCustomerNotFound
	default:
		return nil, fmt.Errorf("查找客户失败: %w", err)
	}
}

// ==================== 登录 ====================

// Login 换取客户 token，并用店铺 token 查询创作者标签
func (s *CustomerService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	accessToken, err := s.storefront.CustomerAccessTokenCreate(ctx, req.Email, req.Password)
	if err != nil {
		var userErrs shopify.UserErrors
		if errors.As(err, &userErrs) {
			return nil, &UserError{Message: userErrs.Error()}
		}
		return nil, fmt.Errorf("创建客户 token 失败: %w", err)
	}

	shopToken, err := s.tokenRepo.GetToken(ctx, s.shop)
	if err != nil {
		return nil, fmt.Errorf("读取店铺 token 失败: %w", err)
	}
	if shopToken == "" {
		s.logger.Error("店铺没有可用的 Admin token", zap.String("shop", s.shop))
		return nil, ErrMissingShopToken
	}

	customer, err := s.adminForToken(shopToken).SearchCustomerByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}

	resp := &dto.LoginResponse{AccessToken: accessToken, Email: req.Email}
	if customer != nil {
		if tag := customer.FirstTag(); tag != "" {
			resp.Tag = &tag
		}
	}
	return resp, nil
}

// ==================== 资料 ====================

// Profile 校验客户 token 与邮箱一致后返回本地资料
func (s *CustomerService) Profile(ctx context.Context, email, token string) (*dto.CustomerProfileResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || token == "" {
		return nil, ErrMissingIdentity
	}

	sc, err := s.storefront.Customer(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("校验客户 token 失败: %w", err)
	}
	if sc == nil || !strings.EqualFold(sc.Email, email) {
		s.logger.Warn("客户 token 无效或邮箱不匹配", zap.String("email", email))
		return nil, ErrInvalidCustomerToken
	}

	c, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	if c == nil {
		return nil, ErrCustomerProfileMissing
	}

	return &dto.CustomerProfileResponse{
		Customer: dto.CustomerProfile{
			Name:       c.Name,
			Email:      c.Email,
			Tag:        c.Tag,
			CreatedAt:  c.CreatedAt,
			Address:    map[string]string{},
			TotalSpent: "0.00",
		},
	}, nil
}
