package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// FindOrCreate resolves a vendor by its unique name
func (r *VendorRepository) FindOrCreate(ctx context.Context, vendorName string) (int64, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).
		Where("vendor_name = ?", vendorName).
		First(&vendor).Error
	if err == nil {
		return vendor.VendorID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	vendor = domain.Vendor{VendorName: vendorName}
	if err := r.db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return 0, err
	}
	return vendor.VendorID, nil
}
