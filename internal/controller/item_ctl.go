package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/service"
)

// ==================== ItemController 商品控制器 ====================

// ItemController 商品控制器
type ItemController struct {
	itemService *service.ItemService
}

// NewItemController 创建商品控制器
func NewItemController(itemService *service.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

// ==================== 请求体 ====================

// CreateItemRequest 创建商品请求
// Price 用指针以便区分「没传」和「传了 0」
type CreateItemRequest struct {
	Name    string   `json:"name" binding:"required"`
	Price   *float64 `json:"price" binding:"required,gte=0"`
	StoreID int64    `json:"store_id" binding:"required"`
}

// UpdateItemRequest 更新商品请求（全量替换可变字段）
type UpdateItemRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// ==================== CRUD ====================

// List 商品列表
// @Summary 商品列表
// @Tags Item
// @Produce json
// @Success 200 {array} model.Item
// @Router /item [get]
func (c *ItemController) List(ctx *gin.Context) {
	items, err := c.itemService.List(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get 获取商品详情
// @Summary 获取商品详情
// @Tags Item
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} map[string]interface{}
// @Router /item/{id} [get]
func (c *ItemController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	item, err := c.itemService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create 创建商品
// @Summary 创建商品（管理员）
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "商品信息"
// @Success 201 {object} model.Item
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /item [post]
func (c *ItemController) Create(ctx *gin.Context) {
	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	item, err := c.itemService.Create(ctx.Request.Context(), req.Name, *req.Price, req.StoreID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// Update 更新商品（带 ID 的 upsert）
// @Summary 更新商品，ID 不存在则按该 ID 创建（管理员 + fresh Token）
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Param request body UpdateItemRequest true "商品信息"
// @Success 200 {object} model.Item
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /item/{id} [put]
func (c *ItemController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	item, err := c.itemService.Update(ctx.Request.Context(), id, req.Name, *req.Price)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// Delete 删除商品
// @Summary 删除商品（管理员 + fresh Token）
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /item/{id} [delete]
func (c *ItemController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.itemService.Delete(ctx.Request.Context(), id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted."})
}
