package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
)

// ==================== TagService 标签服务 ====================

// TagService 标签服务
type TagService struct {
	tagRepo   repository.TagRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewTagService 创建标签服务
func NewTagService(tagRepo repository.TagRepository, itemRepo repository.ItemRepository, storeRepo repository.StoreRepository) *TagService {
	return &TagService{tagRepo: tagRepo, itemRepo: itemRepo, storeRepo: storeRepo}
}

// ==================== CRUD ====================

// CreateForStore 在店铺下创建标签，店铺内名称唯一
func (s *TagService) CreateForStore(ctx context.Context, storeID int64, name string) (*model.Tag, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	tag := &model.Tag{Name: name, StoreID: storeID}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	metrics.IncTagCreated()
	return tag, nil
}

// Get 获取标签
func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// List 全部标签
func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tagRepo.List(ctx)
}

// ListByStore 某店铺下的标签
func (s *TagService) ListByStore(ctx context.Context, storeID int64) ([]model.Tag, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return s.tagRepo.ListByStore(ctx, storeID)
}

// Delete 删除标签，还挂着商品的标签拒绝删除
func (s *TagService) Delete(ctx context.Context, id int64) error {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}

	count, err := s.tagRepo.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagHasItems
	}

	return s.tagRepo.Delete(ctx, id)
}

// ==================== 商品关联 ====================

// LinkItem 给商品打标签
// 商品和标签必须同店铺；已关联时幂等返回 already=true
func (s *TagService) LinkItem(ctx context.Context, itemID, tagID int64) (tag *model.Tag, already bool, err error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, ErrItemNotFound
	}

	tag, err = s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, false, err
	}
	if tag == nil {
		return nil, false, ErrTagNotFound
	}

	if item.StoreID != tag.StoreID {
		return nil, false, ErrTagStoreMismatch
	}

	linked, err := s.tagRepo.IsLinked(ctx, itemID, tagID)
	if err != nil {
		return nil, false, err
	}
	if linked {
		metrics.IncItemTagLink()
		return tag, true, nil
	}

	if err := s.tagRepo.LinkItem(ctx, item, tag); err != nil {
		return nil, false, err
	}

	metrics.IncItemTagLink()
	return tag, false, nil
}

// UnlinkItem 移除商品上的标签，未关联时返回 ErrTagNotLinked
func (s *TagService) UnlinkItem(ctx context.Context, itemID, tagID int64) (*model.Tag, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}

	linked, err := s.tagRepo.IsLinked(ctx, itemID, tagID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrTagNotLinked
	}

	if err := s.tagRepo.UnlinkItem(ctx, item, tag); err != nil {
		return nil, err
	}

	metrics.IncItemTagUnlink()
	return tag, nil
}
