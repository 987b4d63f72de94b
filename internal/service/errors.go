package service

import "errors"

// ==================== 业务错误 ====================

// 各服务共用的哨兵错误，controller 层据此映射 HTTP 状态码和 error code
var (
	// 店铺
	ErrStoreNotFound  = errors.New("store not found")
	ErrStoreExists    = errors.New("a store with that name already exists")
	ErrStoreHasItems  = errors.New("store still has items assigned")
	ErrStoreProtected = errors.New("the Unassigned store cannot be deleted")

	// 商品
	ErrItemNotFound   = errors.New("item not found")
	ErrItemNotInStore = errors.New("item not found under this store")

	// 标签
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagExists        = errors.New("a tag with that name already exists in this store")
	ErrTagHasItems      = errors.New("tag still has items linked")
	ErrTagStoreMismatch = errors.New("item and tag belong to different stores")
	ErrTagNotLinked     = errors.New("tag is not linked to this item")

	// 用户
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
