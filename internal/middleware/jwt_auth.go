package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:       "store-api-secret-change-in-production",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
		Issuer:          "store-api",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== 错误定义 ====================

// 鉴权失败的细分错误，逐一对应机器可读的 error code
var (
	ErrAuthorizationRequired = errors.New("authorization header is missing")
	ErrInvalidToken          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrFreshTokenRequired    = errors.New("fresh token required")
	ErrAdminRequired         = errors.New("admin privilege is required")
)

// IsAuthError 是否为鉴权类错误（对应 401）
// 黑名单后端等基础设施故障不属于鉴权错误，应按 500 处理
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthorizationRequired) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenRevoked) ||
		errors.Is(err, ErrFreshTokenRequired) ||
		errors.Is(err, ErrAdminRequired)
}

// ErrorCode 鉴权错误对应的机器可读 code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorizationRequired):
		return "authorization_required"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrFreshTokenRequired):
		return "fresh_token_required"
	case errors.Is(err, ErrAdminRequired):
		return "admin_required"
	default:
		return "invalid_token"
	}
}

// ==================== Claims 定义 ====================

// UserClaims 用户声明
// IsAdmin 和 Fresh 都在签发时算好，之后只读
type UserClaims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	Fresh   bool  `json:"fresh"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

// GenerateAccessToken 生成 Access Token
// fresh: 登录直发为 true，刷新得来的为 false
func GenerateAccessToken(userID int64, fresh bool) (string, error) {
	return generateToken(userID, "access", fresh, jwtConfig.AccessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token（永远非 fresh）
func GenerateRefreshToken(userID int64) (string, error) {
	return generateToken(userID, "refresh", false, jwtConfig.RefreshTokenTTL)
}

// GenerateTokenPair 生成 Token 对（登录时用）
func GenerateTokenPair(userID int64) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, true)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func generateToken(userID int64, subject string, fresh bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		// 管理员身份由用户身份现场推导，不单独存储
		IsAdmin: model.RoleFor(userID) == model.RoleAdmin,
		Fresh:   fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(), // jti，注销时进黑名单
			Issuer:    jwtConfig.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ==================== Token 解析 ====================

// ParseToken 解析并校验 Token（签名 + 过期）
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(jwtConfig.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// BearerToken 从 Authorization 头取出 Bearer Token
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrAuthorizationRequired
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyIsAdmin = "is_admin"
	ContextKeyClaims  = "claims"
)

// JWTAuth JWT 认证中间件
// 校验签名/过期、检查黑名单、要求 Access Token，然后把身份注入 Context
func JWTAuth(blocklist repository.TokenBlocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := BearerToken(c)
		if err != nil {
			abortAuth(c, err)
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			abortAuth(c, err)
			return
		}

		// 检查是否为 Access Token
		if claims.Subject != "access" {
			abortAuth(c, ErrInvalidToken)
			return
		}

		// 黑名单：已注销的 Token 即使签名、有效期都合法也要拒绝
		revoked, err := blocklist.Contains(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"error":   "internal_error",
				"message": "Failed to check token revocation.",
			})
			return
		}
		if revoked {
			abortAuth(c, ErrTokenRevoked)
			return
		}

		// 注入用户信息到 Context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RequireFresh 要求 fresh Token（破坏性操作用）
// 必须挂在 JWTAuth 之后
func RequireFresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetUserClaims(c)
		if claims == nil {
			abortAuth(c, ErrAuthorizationRequired)
			return
		}
		if !claims.Fresh {
			abortAuth(c, ErrFreshTokenRequired)
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员身份
// 必须挂在 JWTAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetUserClaims(c)
		if claims == nil {
			abortAuth(c, ErrAuthorizationRequired)
			return
		}
		if !claims.IsAdmin {
			abortAuth(c, ErrAdminRequired)
			return
		}
		c.Next()
	}
}

func abortAuth(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"error":   ErrorCode(err),
		"message": err.Error(),
	})
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID（未认证时为 0）
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUserClaims 从 Context 获取完整 Claims
func GetUserClaims(c *gin.Context) *UserClaims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		return claims.(*UserClaims)
	}
	return nil
}
