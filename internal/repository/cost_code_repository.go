package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type CostCodeRepository struct {
	db *gorm.DB
}

func NewCostCodeRepository(db *gorm.DB) *CostCodeRepository {
	return &CostCodeRepository{db: db}
}

// FindOrCreate resolves a cost code scoped by its cost group. The same code
// string under two different groups is two distinct cost codes.
func (r *CostCodeRepository) FindOrCreate(ctx context.Context, costGroupID int64, code string, description *string) (int64, error) {
	var costCode domain.CostCode
	err := r.db.WithContext(ctx).
		Where("cost_group_id = ? AND cost_code = ?", costGroupID, code).
		First(&costCode).Error
	if err == nil {
		if costCode.Description == nil && description != nil {
			if err := r.db.WithContext(ctx).Model(&costCode).
				Update("cost_code_description", *description).Error; err != nil {
				return 0, err
			}
		}
		return costCode.CostCodeID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	costCode = domain.CostCode{
		CostGroupID: costGroupID,
		Code:        code,
		Description: description,
	}
	if err := r.db.WithContext(ctx).Create(&costCode).Error; err != nil {
		return 0, err
	}
	return costCode.CostCodeID, nil
}
