package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/middleware"
	"stores_api_v1/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户控制器
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ==================== 请求体 ====================

// CredentialsRequest 注册/登录共用的凭证请求
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ==================== 认证接口 ====================

// Register 注册用户
// @Summary 注册用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "用户名和密码"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /user/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	if _, err := c.userService.Register(ctx.Request.Context(), req.Username, req.Password); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User created successfully."})
}

// Login 登录
// @Summary 登录，返回 access_token（fresh）和 refresh_token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "用户名和密码"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /user/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	accessToken, refreshToken, err := c.userService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh 刷新 Token
// Refresh Token 走 Authorization 头，换出来的 Access Token 是非 fresh 的
// @Summary 刷新 Access Token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /refresh [post]
func (c *UserController) Refresh(ctx *gin.Context) {
	tokenString, err := middleware.BearerToken(ctx)
	if err != nil {
		respondError(ctx, http.StatusUnauthorized, middleware.ErrorCode(err), err.Error())
		return
	}

	accessToken, err := c.userService.Refresh(ctx.Request.Context(), tokenString)
	if err != nil {
		if middleware.IsAuthError(err) {
			respondError(ctx, http.StatusUnauthorized, middleware.ErrorCode(err), err.Error())
			return
		}
		// 黑名单后端故障等基础设施错误
		respondError(ctx, http.StatusInternalServerError, "internal_error", "An internal error occurred.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout 注销
// @Summary 注销当前 Access Token（幂等）
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	claims := middleware.GetUserClaims(ctx)
	if claims == nil {
		respondError(ctx, http.StatusUnauthorized, "authorization_required", "Authorization header is missing.")
		return
	}

	if err := c.userService.Logout(ctx.Request.Context(), claims); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully logged out."})
}

// ==================== 用户管理 ====================

// Get 获取用户详情
// @Summary 获取用户详情
// @Tags User
// @Produce json
// @Param id path int true "用户 ID"
// @Success 200 {object} model.User
// @Failure 404 {object} map[string]interface{}
// @Router /user/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Delete 删除用户
// @Summary 删除用户（管理员）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
