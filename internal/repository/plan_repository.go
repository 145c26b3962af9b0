package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FindOrCreate resolves a plan by its unique name. On a hit, architect and
// engineer are merged with coalesce semantics: an incoming value only fills a
// column that is still null, and a known value is never overwritten.
func (r *PlanRepository) FindOrCreate(ctx context.Context, planName string, architect, engineer *string) (int64, error) {
	var plan domain.Plan
	err := r.db.WithContext(ctx).
		Where("plan_name = ?", planName).
		First(&plan).Error
	if err == nil {
		updates := map[string]any{}
		if plan.Architect == nil && architect != nil {
			updates["architect"] = *architect
		}
		if plan.Engineer == nil && engineer != nil {
			updates["engineer"] = *engineer
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&plan).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return plan.PlanID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	plan = domain.Plan{
		PlanName:  planName,
		Architect: architect,
		Engineer:  engineer,
	}
	if err := r.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return 0, err
	}
	return plan.PlanID, nil
}
