package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/service"
)

// ==================== TagController 标签控制器 ====================

// TagController 标签控制器
type TagController struct {
	tagService *service.TagService
}

// NewTagController 创建标签控制器
func NewTagController(tagService *service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// ==================== 请求体 ====================

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ==================== CRUD ====================

// List 全部标签
// @Summary 全部标签
// @Tags Tag
// @Produce json
// @Success 200 {array} model.Tag
// @Router /tag [get]
func (c *TagController) List(ctx *gin.Context) {
	tags, err := c.tagService.List(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// Get 获取标签详情
// @Summary 获取标签详情
// @Tags Tag
// @Produce json
// @Param id path int true "标签 ID"
// @Success 200 {object} model.Tag
// @Failure 404 {object} map[string]interface{}
// @Router /tag/{id} [get]
func (c *TagController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tag, err := c.tagService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// Delete 删除标签
// @Summary 删除标签（还挂着商品时拒绝）
// @Tags Tag
// @Produce json
// @Param id path int true "标签 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tag/{id} [delete]
func (c *TagController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.tagService.Delete(ctx.Request.Context(), id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Tag deleted."})
}

// ==================== 店铺维度 ====================

// ListByStore 店铺下的标签
// @Summary 店铺下的标签
// @Tags Tag
// @Produce json
// @Param id path int true "店铺 ID"
// @Success 200 {array} model.Tag
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id}/tag [get]
func (c *TagController) ListByStore(ctx *gin.Context) {
	storeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tags, err := c.tagService.ListByStore(ctx.Request.Context(), storeID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// CreateForStore 在店铺下创建标签
// @Summary 在店铺下创建标签（店铺内名称唯一）
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path int true "店铺 ID"
// @Param request body CreateTagRequest true "标签信息"
// @Success 201 {object} model.Tag
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/{id}/tag [post]
func (c *TagController) CreateForStore(ctx *gin.Context) {
	storeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return
	}

	tag, err := c.tagService.CreateForStore(ctx.Request.Context(), storeID, req.Name)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, tag)
}

// ==================== 商品关联 ====================

// LinkItem 给商品打标签
// @Summary 给商品打标签（同店铺限定，重复打标幂等）
// @Tags Tag
// @Produce json
// @Param id path int true "商品 ID"
// @Param tag_id path int true "标签 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /item/{id}/tag/{tag_id} [post]
func (c *TagController) LinkItem(ctx *gin.Context) {
	itemID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, "tag_id")
	if !ok {
		return
	}

	tag, already, err := c.tagService.LinkItem(ctx.Request.Context(), itemID, tagID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	message := "Tag linked to item"
	if already {
		message = "Tag already linked to this item"
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message, "tag": tag})
}

// UnlinkItem 移除商品上的标签
// @Summary 移除商品上的标签
// @Tags Tag
// @Produce json
// @Param id path int true "商品 ID"
// @Param tag_id path int true "标签 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /item/{id}/tag/{tag_id} [delete]
func (c *TagController) UnlinkItem(ctx *gin.Context) {
	itemID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, "tag_id")
	if !ok {
		return
	}

	tag, err := c.tagService.UnlinkItem(ctx.Request.Context(), itemID, tagID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tag unlinked from item", "tag": tag})
}
