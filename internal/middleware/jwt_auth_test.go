package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setTestJWTConfig(t *testing.T, accessTTL time.Duration) {
	t.Helper()
	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "test",
	})
	t.Cleanup(func() { SetJWTConfig(old) })
}

func setupAuthRouter(blocklist repository.TokenBlocklist, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{JWTAuth(blocklist)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	r.GET("/protected", handlers...)
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCodeOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return resp.Error
}

// ==================== Claims 测试 ====================

func TestGenerateTokenPair_Claims(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)

	access, refresh, err := GenerateTokenPair(1)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	ac, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if ac.Subject != "access" {
		t.Errorf("subject = %s, want access", ac.Subject)
	}
	if !ac.Fresh {
		t.Error("登录直发的 Access Token 应当是 fresh")
	}
	if !ac.IsAdmin {
		t.Error("用户 1 的 is_admin 应当为 true")
	}
	if ac.ID == "" {
		t.Error("jti 不应为空")
	}

	rc, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if rc.Subject != "refresh" {
		t.Errorf("subject = %s, want refresh", rc.Subject)
	}
	if rc.Fresh {
		t.Error("Refresh Token 不应是 fresh")
	}
}

func TestIsAdminClaim_OnlyForAdminIdentity(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)

	for _, tc := range []struct {
		userID int64
		want   bool
	}{
		{1, true},
		{2, false},
		{100, false},
	} {
		token, err := GenerateAccessToken(tc.userID, true)
		if err != nil {
			t.Fatalf("生成 Token 失败: %v", err)
		}
		claims, err := ParseToken(token)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if claims.IsAdmin != tc.want {
			t.Errorf("user %d: is_admin = %v, want %v", tc.userID, claims.IsAdmin, tc.want)
		}
	}
}

func TestRefreshIssuedAccessToken_NotFresh(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)

	token, err := GenerateAccessToken(2, false)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.Fresh {
		t.Error("刷新得来的 Access Token 不应是 fresh")
	}
}

// ==================== 中间件测试 ====================

func TestJWTAuth_MissingToken(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist())

	w := doAuthRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "authorization_required" {
		t.Errorf("error = %s, want authorization_required", code)
	}
}

func TestJWTAuth_InvalidSignature(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist())

	token, _ := GenerateAccessToken(2, true)
	w := doAuthRequest(t, r, token+"tampered")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "invalid_token" {
		t.Errorf("error = %s, want invalid_token", code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	setTestJWTConfig(t, -1*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist())

	token, _ := GenerateAccessToken(2, true)
	w := doAuthRequest(t, r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "token_expired" {
		t.Errorf("error = %s, want token_expired", code)
	}
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	blocklist := repository.NewMemoryBlocklist()
	r := setupAuthRouter(blocklist)

	token, _ := GenerateAccessToken(2, true)
	claims, _ := ParseToken(token)

	// 注销前正常通过
	if w := doAuthRequest(t, r, token); w.Code != http.StatusOK {
		t.Fatalf("注销前 status = %d, want 200", w.Code)
	}

	// 进黑名单后，签名和有效期依旧合法，也必须拒绝
	blocklist.Add(context.Background(), claims.ID, time.Hour)
	w := doAuthRequest(t, r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("注销后 status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "token_revoked" {
		t.Errorf("error = %s, want token_revoked", code)
	}
}

func TestJWTAuth_RefreshTokenRejectedAsAccess(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist())

	refresh, _ := GenerateRefreshToken(2)
	w := doAuthRequest(t, r, refresh)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireFresh(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist(), RequireFresh())

	// 非 fresh Token 被拒
	stale, _ := GenerateAccessToken(2, false)
	w := doAuthRequest(t, r, stale)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "fresh_token_required" {
		t.Errorf("error = %s, want fresh_token_required", code)
	}

	// fresh Token 放行
	freshToken, _ := GenerateAccessToken(2, true)
	if w := doAuthRequest(t, r, freshToken); w.Code != http.StatusOK {
		t.Errorf("fresh token status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	setTestJWTConfig(t, 15*time.Minute)
	r := setupAuthRouter(repository.NewMemoryBlocklist(), RequireAdmin())

	// 普通用户被拒
	token, _ := GenerateAccessToken(2, true)
	w := doAuthRequest(t, r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCodeOf(t, w); code != "admin_required" {
		t.Errorf("error = %s, want admin_required", code)
	}

	// 管理员放行
	adminToken, _ := GenerateAccessToken(1, true)
	if w := doAuthRequest(t, r, adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}
