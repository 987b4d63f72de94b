package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/middleware"
	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户注册/登录/Token 生命周期
type UserService struct {
	userRepo  repository.UserRepository
	blocklist repository.TokenBlocklist
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, blocklist repository.TokenBlocklist) *UserService {
	return &UserService{userRepo: userRepo, blocklist: blocklist}
}

// ==================== 认证相关 ====================

// Register 注册用户，用户名冲突返回 ErrUserExists
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Password: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 检查和插入之间有并发注册时兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	metrics.IncUserRegistered()
	return user, nil
}

// Login 登录，签发 fresh Access Token + Refresh Token
func (s *UserService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err = middleware.GenerateTokenPair(user.ID)
	if err != nil {
		return "", "", err
	}

	metrics.IncUserLogin()
	return accessToken, refreshToken, nil
}

// Refresh 用 Refresh Token 换新的 Access Token
// 换出来的 Access Token 永远是非 fresh 的
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Subject != "refresh" {
		return "", middleware.ErrInvalidToken
	}

	revoked, err := s.blocklist.Contains(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", middleware.ErrTokenRevoked
	}

	accessToken, err := middleware.GenerateAccessToken(claims.UserID, false)
	if err != nil {
		return "", err
	}

	metrics.IncTokenRefresh()
	return accessToken, nil
}

// Logout 注销：把 Token 的 jti 拉进黑名单，TTL 为 Token 剩余有效期。幂等。
func (s *UserService) Logout(ctx context.Context, claims *middleware.UserClaims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.blocklist.Add(ctx, claims.ID, ttl); err != nil {
		return err
	}

	metrics.IncUserLogout()
	return nil
}

// ==================== 用户管理 ====================

// Get 获取用户
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, id)
}
