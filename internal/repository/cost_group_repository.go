package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type CostGroupRepository struct {
	db *gorm.DB
}

func NewCostGroupRepository(db *gorm.DB) *CostGroupRepository {
	return &CostGroupRepository{db: db}
}

// FindOrCreate resolves a cost group by its code, filling in the display
// name when a later row supplies one
func (r *CostGroupRepository) FindOrCreate(ctx context.Context, code string, name *string) (int64, error) {
	var group domain.CostGroup
	err := r.db.WithContext(ctx).
		Where("cost_group_code = ?", code).
		First(&group).Error
	if err == nil {
		if group.CostGroupName == nil && name != nil {
			if err := r.db.WithContext(ctx).Model(&group).
				Update("cost_group_name", *name).Error; err != nil {
				return 0, err
			}
		}
		return group.CostGroupID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	group = domain.CostGroup{
		CostGroupCode: code,
		CostGroupName: name,
	}
	if err := r.db.WithContext(ctx).Create(&group).Error; err != nil {
		return 0, err
	}
	return group.CostGroupID, nil
}
