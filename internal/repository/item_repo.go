package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stores_api_v1/internal/model"
)

// ==================== ItemRepository 商品仓库 ====================

// ItemRepository 商品仓库接口
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id int64) error
	CountByStore(ctx context.Context, storeID int64) (int64, error)
	AssignStore(ctx context.Context, itemID, storeID int64) error
}

// ==================== 实现 ====================

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓库
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create 创建商品
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 根据 ID 获取商品
func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// List 商品列表
func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// Save 保存商品（全字段）
func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete 删除商品，连同 item_tags 关联一起清掉
func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	item := model.Item{BaseModel: model.BaseModel{ID: id}}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&item).Error
}

// CountByStore 统计某店铺下的商品数，不缓存，每次现算
func (r *itemRepository) CountByStore(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

// AssignStore 原地改挂店铺（挂接/解绑共用）
func (r *itemRepository) AssignStore(ctx context.Context, itemID, storeID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("store_id", storeID).Error
}
