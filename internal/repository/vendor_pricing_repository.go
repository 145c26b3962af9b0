package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type VendorPricingRepository struct {
	db *gorm.DB
}

func NewVendorPricingRepository(db *gorm.DB) *VendorPricingRepository {
	return &VendorPricingRepository{db: db}
}

// PriceUpdate describes an incoming price observation for a (vendor, product)
// pair. Optional attributes carry forward from the prior current row when nil.
type PriceUpdate struct {
	VendorID      int64
	ProductID     int64
	Price         float64
	UnitOfMeasure *string
	PriceType     *string
	CreatedBy     *string
}

// UpsertPrice maintains the temporal price timeline for one (vendor, product)
// pair. No current row: a new current row is opened. Unchanged price: no-op.
// Changed price: the prior current row is closed (is_current=false,
// expiration_date set) and a new current row is opened, carrying forward
// unit_of_measure and price_type unless the update overrides them. Price is
// never mutated in place, so the full history stays queryable.
func (r *VendorPricingRepository) UpsertPrice(ctx context.Context, upd PriceUpdate) (int64, error) {
	var current domain.VendorPricing
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND product_id = ? AND is_current = ? AND is_active = ?",
			upd.VendorID, upd.ProductID, true, true).
		First(&current).Error

	now := time.Now().UTC()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		notes := "Created from data load"
		row := domain.VendorPricing{
			VendorID:      upd.VendorID,
			ProductID:     upd.ProductID,
			Price:         upd.Price,
			UnitOfMeasure: orDefault(upd.UnitOfMeasure, "EA"),
			PriceType:     upd.PriceType,
			EffectiveDate: now,
			IsCurrent:     true,
			IsActive:      true,
			Notes:         &notes,
			CreatedBy:     upd.CreatedBy,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, err
		}
		return row.PricingID, nil
	}
	if err != nil {
		return 0, err
	}

	if current.Price == upd.Price {
		return current.PricingID, nil
	}

	if err := r.db.WithContext(ctx).Model(&current).Updates(map[string]any{
		"is_current":      false,
		"expiration_date": now,
	}).Error; err != nil {
		return 0, err
	}

	notes := fmt.Sprintf("Updated price from %.4f to %.4f", current.Price, upd.Price)
	row := domain.VendorPricing{
		VendorID:      upd.VendorID,
		ProductID:     upd.ProductID,
		Price:         upd.Price,
		UnitOfMeasure: coalesceStr(upd.UnitOfMeasure, current.UnitOfMeasure),
		PriceType:     coalesceStr(upd.PriceType, current.PriceType),
		EffectiveDate: now,
		IsCurrent:     true,
		IsActive:      true,
		Notes:         &notes,
		CreatedBy:     upd.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.PricingID, nil
}

// CurrentPrice returns the current active pricing row for a pair, or
// domain.ErrNotFound when none exists
func (r *VendorPricingRepository) CurrentPrice(ctx context.Context, vendorID, productID int64) (*domain.VendorPricing, error) {
	var current domain.VendorPricing
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND product_id = ? AND is_current = ? AND is_active = ?",
			vendorID, productID, true, true).
		First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// History returns all pricing rows for a pair, oldest first
func (r *VendorPricingRepository) History(ctx context.Context, vendorID, productID int64) ([]domain.VendorPricing, error) {
	var rows []domain.VendorPricing
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND product_id = ?", vendorID, productID).
		Order("effective_date ASC, created_date ASC, pricing_id ASC").
		Find(&rows).Error
	return rows, err
}

func orDefault(v *string, def string) *string {
	if v != nil {
		return v
	}
	return &def
}

func coalesceStr(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
