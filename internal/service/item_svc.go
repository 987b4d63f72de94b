package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
)

// ==================== ItemService 商品服务 ====================

// ItemService 商品服务
type ItemService struct {
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewItemService 创建商品服务
func NewItemService(itemRepo repository.ItemRepository, storeRepo repository.StoreRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo, storeRepo: storeRepo}
}

// Create 创建商品，所属店铺必须存在
func (s *ItemService) Create(ctx context.Context, name string, price float64, storeID int64) (*model.Item, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	item := &model.Item{Name: name, Price: price, StoreID: storeID}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	metrics.IncItemCreated()
	return item, nil
}

// Get 获取商品
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// List 商品列表
func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.List(ctx)
}

// Update 更新商品（带 ID 的 upsert）
// ID 存在则整体替换可变字段；不存在则按该 ID 创建，挂到哨兵店铺
func (s *ItemService) Update(ctx context.Context, id int64, name string, price float64) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item == nil {
		item = &model.Item{
			BaseModel: model.BaseModel{ID: id},
			Name:      name,
			Price:     price,
			StoreID:   model.UnassignedStoreID,
		}
	} else {
		item.Name = name
		item.Price = price
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除商品
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.itemRepo.Delete(ctx, id)
}
