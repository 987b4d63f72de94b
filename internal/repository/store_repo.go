package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stores_api_v1/internal/model"
)

// ==================== StoreRepository 店铺仓库 ====================

// StoreRepository 店铺仓库接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	SearchByName(ctx context.Context, name string) ([]model.Store, error)
	Delete(ctx context.Context, id int64) error
	EnsureUnassigned(ctx context.Context) error
}

// ==================== 实现 ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create 创建店铺
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// GetByID 根据 ID 获取店铺
func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

// List 店铺列表
func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).Order("id").Find(&stores).Error
	return stores, err
}

// SearchByName 按名称子串搜索（不区分大小写）
func (r *storeRepository) SearchByName(ctx context.Context, name string) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		Find(&stores).Error
	return stores, err
}

// Delete 删除店铺
func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Store{}, id).Error
}

// EnsureUnassigned 确保哨兵店铺存在（懒初始化时调用一次）
func (r *storeRepository) EnsureUnassigned(ctx context.Context) error {
	var store model.Store
	err := r.db.WithContext(ctx).
		Where("id = ?", model.UnassignedStoreID).
		First(&store).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sentinel := model.Store{
		BaseModel: model.BaseModel{ID: model.UnassignedStoreID},
		Name:      model.UnassignedStoreName,
	}
	err = r.db.WithContext(ctx).Create(&sentinel).Error
	// 并发初始化时另一个请求可能已经插入
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
