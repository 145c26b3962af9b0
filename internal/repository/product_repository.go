package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindOrCreate resolves a product by (item_id, product_description)
func (r *ProductRepository) FindOrCreate(ctx context.Context, candidate *domain.Product) (int64, error) {
	var existing domain.Product
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND product_description = ?",
			candidate.ItemID, candidate.ProductDescription).
		First(&existing).Error
	if err == nil {
		updates := map[string]any{}
		if existing.Model == nil && candidate.Model != nil {
			updates["model"] = *candidate.Model
		}
		if existing.Brand == nil && candidate.Brand != nil {
			updates["brand"] = *candidate.Brand
		}
		if existing.Style == nil && candidate.Style != nil {
			updates["style"] = *candidate.Style
		}
		if existing.SKU == nil && candidate.SKU != nil {
			updates["sku"] = *candidate.SKU
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return existing.ProductID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, err
	}
	return candidate.ProductID, nil
}
