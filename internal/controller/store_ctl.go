package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/service"
)

// ==================== StoreController 店铺控制器 ====================

// StoreController 店铺控制器
type StoreController struct {
	storeService *service.StoreService
}

// NewStoreController 创建店铺控制器
func NewStoreController(storeService *service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// ==================== 请求体 ====================

// CreateStoreRequest 创建店铺请求
type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// ==================== CRUD ====================

// List 店铺列表
// @Summary 店铺列表
// @Tags Store
// @Produce json
// @Success 200 {array} model.Store
// @Router /store [get]
func (c *StoreController) List(ctx *gin.Context) {
	stores, err := c.storeService.List(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

// Create 创建店铺
// @Summary 创建店铺
// @Tags Store
// @Accept json
// @Produce json
// @Param request body CreateStoreRequest true "店铺信息"
// @Success 201 {object} model.Store
// @Failure 400 {object} map[string]interface{}
// @Router /store [post]
func (c *StoreController) Create(ctx *gin.Context) {
	var req CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	store, err := c.storeService.Create(ctx.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, store)
}

// Get 获取店铺详情
// @Summary 获取店铺详情
// @Tags Store
// @Produce json
// @Param id path int true "店铺 ID"
// @Success 200 {object} model.Store
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id} [get]
func (c *StoreController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	store, err := c.storeService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Delete 删除店铺
// @Summary 删除店铺
// @Tags Store
// @Produce json
// @Param id path int true "店铺 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id} [delete]
func (c *StoreController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.storeService.Delete(ctx.Request.Context(), id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Store deleted."})
}

// Search 按名称搜索店铺
// @Summary 按名称搜索店铺（不区分大小写的子串匹配）
// @Tags Store
// @Produce json
// @Param name query string true "名称子串"
// @Success 200 {array} model.Store
// @Failure 400 {object} map[string]interface{}
// @Router /store/search [get]
func (c *StoreController) Search(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Provide ?name=<term>")
		return
	}

	stores, err := c.storeService.Search(ctx.Request.Context(), name)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

// ItemCount 店铺商品数
// @Summary 店铺商品数
// @Tags Store
// @Produce json
// @Param id path int true "店铺 ID"
// @Success 200 {object} map[string]interface{}
// @Router /store/{id}/count [get]
func (c *StoreController) ItemCount(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	count, err := c.storeService.ItemCount(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"store_id": id, "item_count": count})
}

// ==================== 商品挂接 ====================

// LinkItem 把商品挂到店铺
// @Summary 把商品挂到店铺（重复挂接幂等）
// @Tags Store
// @Produce json
// @Param id path int true "店铺 ID"
// @Param item_id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id}/item/{item_id} [put]
func (c *StoreController) LinkItem(ctx *gin.Context) {
	storeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(ctx, "item_id")
	if !ok {
		return
	}

	item, already, err := c.storeService.LinkItem(ctx.Request.Context(), storeID, itemID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	message := "Item linked to store"
	if already {
		message = "Item already assigned to this store"
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message, "item": item})
}

// UnlinkItem 把商品从店铺解绑
// @Summary 把商品从店铺解绑，改挂到 Unassigned
// @Tags Store
// @Produce json
// @Param id path int true "店铺 ID"
// @Param item_id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id}/item/{item_id} [delete]
func (c *StoreController) UnlinkItem(ctx *gin.Context) {
	storeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(ctx, "item_id")
	if !ok {
		return
	}

	item, err := c.storeService.UnlinkItem(ctx.Request.Context(), storeID, itemID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item moved to Unassigned store", "item": item})
}

// ==================== 辅助 ====================

// pathID 解析路径里的数字 ID，非法时直接响应 400
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid "+name+" in path")
		return 0, false
	}
	return id, true
}
