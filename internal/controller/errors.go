package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/service"
)

// ==================== 错误映射 ====================

// respondError 输出统一错误体：HTTP 状态 + 机器可读 error + 人类可读 message
func respondError(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{
		"code":    status,
		"error":   code,
		"message": message,
	})
}

// respondServiceError 把业务哨兵错误映射成 HTTP 响应
// 未识别的错误一律按 500 处理，不向客户端泄露内部细节
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrItemNotInStore),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrTagNotLinked),
		errors.Is(err, service.ErrUserNotFound):
		respondError(ctx, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, service.ErrStoreExists),
		errors.Is(err, service.ErrTagExists),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrStoreHasItems),
		errors.Is(err, service.ErrTagHasItems),
		errors.Is(err, service.ErrStoreProtected):
		respondError(ctx, http.StatusBadRequest, "conflict", err.Error())

	case errors.Is(err, service.ErrTagStoreMismatch):
		respondError(ctx, http.StatusBadRequest, "validation_error", err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(ctx, http.StatusUnauthorized, "invalid_credentials", err.Error())

	default:
		respondError(ctx, http.StatusInternalServerError, "internal_error", "An internal error occurred.")
	}
}
