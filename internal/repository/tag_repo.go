package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stores_api_v1/internal/model"
)

// ==================== TagRepository 标签仓库 ====================

// TagRepository 标签仓库接口
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.Tag, error)
	Delete(ctx context.Context, id int64) error
	LinkItem(ctx context.Context, item *model.Item, tag *model.Tag) error
	UnlinkItem(ctx context.Context, item *model.Item, tag *model.Tag) error
	IsLinked(ctx context.Context, itemID, tagID int64) (bool, error)
	CountItems(ctx context.Context, tagID int64) (int64, error)
}

// ==================== 实现 ====================

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create 创建标签
func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetByID 根据 ID 获取标签
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tag, err
}

// List 标签列表
func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, err
}

// ListByStore 某店铺下的标签列表
func (r *tagRepository) ListByStore(ctx context.Context, storeID int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id").
		Find(&tags).Error
	return tags, err
}

// Delete 删除标签
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
}

// LinkItem 建立商品-标签关联
func (r *tagRepository) LinkItem(ctx context.Context, item *model.Item, tag *model.Tag) error {
	return r.db.WithContext(ctx).Model(item).Association("Tags").Append(tag)
}

// UnlinkItem 移除商品-标签关联
func (r *tagRepository) UnlinkItem(ctx context.Context, item *model.Item, tag *model.Tag) error {
	return r.db.WithContext(ctx).Model(item).Association("Tags").Delete(tag)
}

// IsLinked 商品与标签是否已关联
func (r *tagRepository) IsLinked(ctx context.Context, itemID, tagID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("item_tags").
		Where("item_id = ? AND tag_id = ?", itemID, tagID).
		Count(&count).Error
	return count > 0, err
}

// CountItems 统计标签挂接的商品数
func (r *tagRepository) CountItems(ctx context.Context, tagID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("item_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
