package repository

import (
	"context"

	"salelog/internal/model"

	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for the item catalog.
// Services depend on this interface, not on the concrete GORM implementation.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	CreateBatch(ctx context.Context, items []model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) CreateBatch(ctx context.Context, items []model.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
}

func (r *itemRepo) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, id).Error
	return &it, err
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itemRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error
	return n, err
}
