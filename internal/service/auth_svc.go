package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/pkg/shopify"
	"shopify_creator_v1/pkg/utils"

	"go.uber.org/zap"
)

// StateTTL OAuth state 有效期
const StateTTL = 10 * time.Minute

// ==================== 依赖接口 ====================

// OAuthProvider 店铺安装授权
type OAuthProvider interface {
	AuthorizeURL(shop, state string) string
	VerifyCallback(u *url.URL) (bool, error)
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
}

// WebhookRegistrar 安装后订阅 webhook
type WebhookRegistrar interface {
	Register(ctx context.Context, shop, accessToken string) error
}

// ==================== AuthService ====================

// AuthService 店铺 OAuth 安装流程
type AuthService struct {
	oauth     OAuthProvider
	tokenRepo repository.ShopTokenRepository
	registrar WebhookRegistrar
	states    *utils.TTLCache // state -> shop
	logger    *zap.Logger
}

// NewAuthService 创建授权服务
func NewAuthService(oauth OAuthProvider, tokenRepo repository.ShopTokenRepository, registrar WebhookRegistrar, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		oauth:     oauth,
		tokenRepo: tokenRepo,
		registrar: registrar,
		states:    utils.NewTTLCache(StateTTL),
		logger:    logger,
	}
}

// InstallURL 生成授权跳转地址，并缓存一次性 state
func (s *AuthService) InstallURL(shop string) (string, error) {
	shop = strings.ToLower(strings.TrimSpace(shop))
	if !shopify.ValidShopDomain(shop) {
		return "", ErrInvalidShop
	}

	state, err := utils.GenerateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("生成 state 失败: %w", err)
	}
	s.states.Set(state, shop)

	return s.oauth.AuthorizeURL(shop, state), nil
}

// CallbackParams /auth/callback 的查询参数
type CallbackParams struct {
	Shop  string
	Code  string
	State string
	URL   *url.URL // 完整回调地址，带 hmac 时用于校验
}

// HandleCallback 用 code 换取店铺 token 并保存，返回店铺后台地址
// token 保存和 webhook 订阅失败只记录日志，不影响跳转
func (s *AuthService) HandleCallback(ctx context.Context, p CallbackParams) (string, error) {
	shop := strings.ToLower(strings.TrimSpace(p.Shop))
	if shop == "" || p.Code == "" {
		return "", ErrMissingOAuthParams
	}
	if !shopify.ValidShopDomain(shop) {
		return "", ErrInvalidShop
	}

	// 1. 校验 state（只在回调带了 state 时）
	if p.State != "" {
		cached, ok := s.states.Take(p.State)
		if !ok || cached != shop {
			return "", ErrInvalidState
		}
	}

	// 2. 校验回调签名
	if p.URL != nil && p.URL.Query().Get("hmac") != "" {
		ok, err := s.oauth.VerifyCallback(p.URL)
		if err != nil || !ok {
			return "", ErrInvalidSignature
		}
	}

	// 3. 换取 token
	token, err := s.oauth.ExchangeToken(ctx, shop, p.Code)
	if err != nil {
		return "", fmt.Errorf("换取 token 失败: %w", err)
	}

	log := s.logger.With(zap.String("shop", shop))

	// 4. 保存 token
	if err := s.tokenRepo.Upsert(ctx, shop, token); err != nil {
		log.Error("保存店铺 token 失败", zap.Error(err))
	} else {
		log.Info("店铺 token 已保存")
	}

	// 5. 订阅 webhook
	if s.registrar != nil {
		if err := s.registrar.Register(ctx, shop, token); err != nil {
			log.Warn("webhook 订阅失败", zap.Error(err))
		}
	}

	return "https://" + shop + "/admin/apps", nil
}
