package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
)

// ==================== StoreService 店铺服务 ====================

// StoreService 店铺服务
type StoreService struct {
	storeRepo repository.StoreRepository
	itemRepo  repository.ItemRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, itemRepo repository.ItemRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, itemRepo: itemRepo}
}

// ==================== CRUD ====================

// Create 创建店铺，名称冲突返回 ErrStoreExists
func (s *StoreService) Create(ctx context.Context, name string) (*model.Store, error) {
	store := &model.Store{Name: name}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStoreExists
		}
		return nil, err
	}

	metrics.IncStoreCreated()
	return store, nil
}

// Get 获取店铺
func (s *StoreService) Get(ctx context.Context, id int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// List 店铺列表
func (s *StoreService) List(ctx context.Context) ([]model.Store, error) {
	return s.storeRepo.List(ctx)
}

// Search 按名称子串搜索店铺（不区分大小写）
func (s *StoreService) Search(ctx context.Context, name string) ([]model.Store, error) {
	stores, err := s.storeRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	metrics.IncStoreSearch()
	return stores, nil
}

// Delete 删除店铺
// 哨兵店铺不可删；还挂着商品的店铺拒绝删除
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	if id == model.UnassignedStoreID {
		return ErrStoreProtected
	}

	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrStoreNotFound
	}

	count, err := s.itemRepo.CountByStore(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrStoreHasItems
	}

	if err := s.storeRepo.Delete(ctx, id); err != nil {
		// 计数和删除之间有并发写入时兜底
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrStoreHasItems
		}
		return err
	}
	return nil
}

// ItemCount 统计店铺商品数，每次现算
func (s *StoreService) ItemCount(ctx context.Context, storeID int64) (int64, error) {
	return s.itemRepo.CountByStore(ctx, storeID)
}

// ==================== 商品挂接 ====================

// LinkItem 把商品挂到店铺
// 已挂在该店铺时幂等返回 already=true，不产生状态变化
func (s *StoreService) LinkItem(ctx context.Context, storeID, itemID int64) (item *model.Item, already bool, err error) {
	item, err = s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, ErrItemNotFound
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, false, err
	}
	if store == nil {
		return nil, false, ErrStoreNotFound
	}

	if item.StoreID == storeID {
		metrics.IncStoreItemLink()
		return item, true, nil
	}

	if err := s.itemRepo.AssignStore(ctx, itemID, storeID); err != nil {
		return nil, false, err
	}
	item.StoreID = storeID

	metrics.IncStoreItemLink()
	return item, false, nil
}

// UnlinkItem 把商品从店铺解绑，改挂到哨兵店铺
// 商品不在该店铺下时返回 ErrItemNotInStore
func (s *StoreService) UnlinkItem(ctx context.Context, storeID, itemID int64) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if item.StoreID != storeID {
		return nil, ErrItemNotInStore
	}

	if err := s.itemRepo.AssignStore(ctx, itemID, model.UnassignedStoreID); err != nil {
		return nil, err
	}
	item.StoreID = model.UnassignedStoreID

	metrics.IncStoreItemUnlink()
	return item, nil
}
