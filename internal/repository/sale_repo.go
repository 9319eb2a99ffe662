package repository

import (
	"context"

	"salelog/internal/config"
	"salelog/internal/model"

	"gorm.io/gorm"
)

// SaleRepository is the sale log store. List is the full scan every report and
// export is computed from.
type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	Delete(ctx context.Context, id uint) error
	// List returns every sale in the given config.Order* order.
	List(ctx context.Context, order string) ([]model.Sale, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *saleRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) List(ctx context.Context, order string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order(orderClause(order)).Find(&sales).Error
	return sales, err
}

// orderClause maps a configured ordering to SQL. id breaks created_at ties so
// the order is stable between requests.
func orderClause(order string) string {
	switch order {
	case config.OrderNewestFirst:
		return "created_at DESC, id DESC"
	case config.OrderOldestFirst:
		return "created_at ASC, id ASC"
	default:
		return "id ASC"
	}
}
