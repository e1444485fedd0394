package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"huerto/domain/sale"
	"huerto/infrastructure/persistence"
	"huerto/infrastructure/persistence/mysql/po"
)

// SaleRepository is the GORM implementation of sale.Repository. Sales
// are insert-only snapshots, so Save never takes the update path.
type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	salePO, itemPOs := po.FromSaleDomain(s)

	db := r.getDB(ctx)
	if err := db.Create(salePO).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := db.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	db := r.getDB(ctx)

	var salePO po.SalePO
	result := db.First(&salePO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, sale.NewSaleNotFoundError(id)
		}
		return nil, result.Error
	}

	itemPOs, err := r.loadItems(db, id)
	if err != nil {
		return nil, err
	}
	return salePO.ToDomain(itemPOs), nil
}

func (r *SaleRepository) loadItems(db *gorm.DB, saleID string) ([]po.SaleItemPO, error) {
	var itemPOs []po.SaleItemPO
	if err := db.Where("sale_id = ?", saleID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return itemPOs, nil
}

func (r *SaleRepository) findWhere(ctx context.Context, query func(db *gorm.DB) *gorm.DB) ([]*sale.Sale, error) {
	db := r.getDB(ctx)

	var salePOs []po.SalePO
	if err := query(db).Order("created_at DESC").Find(&salePOs).Error; err != nil {
		return nil, err
	}

	sales := make([]*sale.Sale, len(salePOs))
	for i, salePO := range salePOs {
		itemPOs, err := r.loadItems(db, salePO.ID)
		if err != nil {
			return nil, err
		}
		sales[i] = salePO.ToDomain(itemPOs)
	}
	return sales, nil
}

func (r *SaleRepository) FindAll(ctx context.Context) ([]*sale.Sale, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db
	})
}

func (r *SaleRepository) FindByUserID(ctx context.Context, userID string) ([]*sale.Sale, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (r *SaleRepository) FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*sale.Sale, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", start, end)
	})
}

// SumTotalsBetween aggregates revenue in SQL rather than loading rows.
func (r *SaleRepository) SumTotalsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total *int64
	err := r.getDB(ctx).Model(&po.SalePO{}).
		Select("SUM(total_amount)").
		Where("created_at BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *SaleRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.SalePO{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

var _ sale.Repository = (*SaleRepository)(nil)
