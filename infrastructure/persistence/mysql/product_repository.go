package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"huerto/domain/product"
	"huerto/infrastructure/persistence"
	"huerto/infrastructure/persistence/mysql/po"
)

// ProductRepository is the GORM implementation of product.Repository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save upserts the product row. Products carry no version column:
// stock writes happen inside the delivery transaction, which is
// serialized by the order's optimistic lock.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	return r.getDB(ctx).Save(po.FromProductDomain(p)).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) findWhere(ctx context.Context, query func(db *gorm.DB) *gorm.DB) ([]*product.Product, error) {
	var productPOs []po.ProductPO
	if err := query(r.getDB(ctx)).Order("created_at DESC").Find(&productPOs).Error; err != nil {
		return nil, err
	}
	products := make([]*product.Product, len(productPOs))
	for i, productPO := range productPOs {
		products[i] = productPO.ToDomain()
	}
	return products, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db
	})
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

func (r *ProductRepository) SearchByName(ctx context.Context, query string) ([]*product.Product, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("name LIKE ?", "%"+query+"%")
	})
}

func (r *ProductRepository) FindNew(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_new = ?", true)
	})
}

func (r *ProductRepository) FindOnSale(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_sale = ?", true)
	})
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.ProductPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.NewProductNotFoundError(id)
	}
	return nil
}

var _ product.Repository = (*ProductRepository)(nil)
