package service

import (
	"context"
	"errors"
	"testing"

	"stores_api_v1/internal/middleware"
	"stores_api_v1/internal/repository"
)

func newUserService(t *testing.T) (*UserService, repository.TokenBlocklist) {
	t.Helper()
	db := setupTestDB(t)
	blocklist := repository.NewMemoryBlocklist()
	return NewUserService(repository.NewUserRepository(db), blocklist), blocklist
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("重名注册 err = %v, want ErrUserExists", err)
	}
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Password == "secret" {
		t.Error("密码不应明文落库")
	}
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	svc.Register(ctx, "alice", "secret")

	// 密码错误
	if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码 err = %v, want ErrInvalidCredentials", err)
	}
	// 用户不存在：同样的错误，不泄露用户是否存在
	if _, _, err := svc.Login(ctx, "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知用户 err = %v, want ErrInvalidCredentials", err)
	}

	access, refresh, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	claims, err := middleware.ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if !claims.Fresh {
		t.Error("登录签发的 Access Token 应是 fresh")
	}

	rc, err := middleware.ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if rc.Subject != "refresh" {
		t.Errorf("subject = %s, want refresh", rc.Subject)
	}
}

func TestUserService_Refresh(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	svc.Register(ctx, "alice", "secret")
	access, refresh, _ := svc.Login(ctx, "alice", "secret")

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.Refresh(ctx, access); !errors.Is(err, middleware.ErrInvalidToken) {
		t.Errorf("用 Access Token 刷新 err = %v, want ErrInvalidToken", err)
	}

	newAccess, err := svc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	claims, err := middleware.ParseToken(newAccess)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.Fresh {
		t.Error("刷新得到的 Access Token 不应是 fresh")
	}
}

func TestUserService_Logout_RevokesToken(t *testing.T) {
	svc, blocklist := newUserService(t)
	ctx := context.Background()

	svc.Register(ctx, "alice", "secret")
	access, _, _ := svc.Login(ctx, "alice", "secret")
	claims, _ := middleware.ParseToken(access)

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("注销失败: %v", err)
	}

	revoked, err := blocklist.Contains(ctx, claims.ID)
	if err != nil {
		t.Fatalf("查黑名单失败: %v", err)
	}
	if !revoked {
		t.Error("注销后 jti 应在黑名单里")
	}

	// 重复注销幂等
	if err := svc.Logout(ctx, claims); err != nil {
		t.Errorf("重复注销失败: %v", err)
	}
}

func TestUserService_Refresh_RevokedRefreshToken(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	svc.Register(ctx, "alice", "secret")
	_, refresh, _ := svc.Login(ctx, "alice", "secret")
	claims, _ := middleware.ParseToken(refresh)

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("注销失败: %v", err)
	}
	if _, err := svc.Refresh(ctx, refresh); !errors.Is(err, middleware.ErrTokenRevoked) {
		t.Errorf("已注销的 Refresh Token err = %v, want ErrTokenRevoked", err)
	}
}

func TestUserService_GetDelete(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, _ := svc.Register(ctx, "alice", "secret")

	got, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("username = %s, want alice", got.Username)
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.Get(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("删除后 err = %v, want ErrUserNotFound", err)
	}
	if err := svc.Delete(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("重复删除 err = %v, want ErrUserNotFound", err)
	}
}
