package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type PlanOptionRepository struct {
	db *gorm.DB
}

func NewPlanOptionRepository(db *gorm.DB) *PlanOptionRepository {
	return &PlanOptionRepository{db: db}
}

// FindOrCreate resolves an option by (plan_elevation_id, option_name) with
// the same fill-only merge semantics as elevations
func (r *PlanOptionRepository) FindOrCreate(ctx context.Context, candidate *domain.PlanOption) (int64, error) {
	var existing domain.PlanOption
	err := r.db.WithContext(ctx).
		Where("plan_elevation_id = ? AND option_name = ?",
			candidate.PlanElevationID, candidate.OptionName).
		First(&existing).Error
	if err == nil {
		updates := optionMergeUpdates(&existing, candidate)
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return existing.PlanOptionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, err
	}
	return candidate.PlanOptionID, nil
}

func optionMergeUpdates(existing, candidate *domain.PlanOption) map[string]any {
	updates := map[string]any{}

	if existing.OptionType == nil && candidate.OptionType != nil {
		updates["option_type"] = *candidate.OptionType
	}
	if existing.OptionDescription == nil && candidate.OptionDescription != nil {
		updates["option_description"] = *candidate.OptionDescription
	}
	if existing.BedroomCount == nil && candidate.BedroomCount != nil {
		updates["bedroom_count"] = *candidate.BedroomCount
	}
	if existing.BathroomCount == nil && candidate.BathroomCount != nil {
		updates["bathroom_count"] = *candidate.BathroomCount
	}
	if existing.HeatedSFInsideStuds == nil && candidate.HeatedSFInsideStuds != nil {
		updates["heated_sf_inside_studs"] = *candidate.HeatedSFInsideStuds
	}
	if existing.HeatedSFOutsideStuds == nil && candidate.HeatedSFOutsideStuds != nil {
		updates["heated_sf_outside_studs"] = *candidate.HeatedSFOutsideStuds
	}
	if existing.HeatedSFOutsideVeneer == nil && candidate.HeatedSFOutsideVeneer != nil {
		updates["heated_sf_outside_veneer"] = *candidate.HeatedSFOutsideVeneer
	}
	if existing.UnheatedSFInsideStuds == nil && candidate.UnheatedSFInsideStuds != nil {
		updates["unheated_sf_inside_studs"] = *candidate.UnheatedSFInsideStuds
	}
	if existing.UnheatedSFOutsideStuds == nil && candidate.UnheatedSFOutsideStuds != nil {
		updates["unheated_sf_outside_studs"] = *candidate.UnheatedSFOutsideStuds
	}
	if existing.UnheatedSFOutsideVeneer == nil && candidate.UnheatedSFOutsideVeneer != nil {
		updates["unheated_sf_outside_veneer"] = *candidate.UnheatedSFOutsideVeneer
	}
	if existing.TotalSFInsideStuds == nil && candidate.TotalSFInsideStuds != nil {
		updates["total_sf_inside_studs"] = *candidate.TotalSFInsideStuds
	}
	if existing.TotalSFOutsideStuds == nil && candidate.TotalSFOutsideStuds != nil {
		updates["total_sf_outside_studs"] = *candidate.TotalSFOutsideStuds
	}
	if existing.TotalSFOutsideVeneer == nil && candidate.TotalSFOutsideVeneer != nil {
		updates["total_sf_outside_veneer"] = *candidate.TotalSFOutsideVeneer
	}

	return updates
}
