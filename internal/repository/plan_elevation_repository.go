package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type PlanElevationRepository struct {
	db *gorm.DB
}

func NewPlanElevationRepository(db *gorm.DB) *PlanElevationRepository {
	return &PlanElevationRepository{db: db}
}

// FindOrCreate resolves an elevation by (plan_id, elevation_name, foundation).
// The candidate carries the dimensional attributes from the current row; on a
// hit those merge fill-only so previously-recorded values survive re-imports.
func (r *PlanElevationRepository) FindOrCreate(ctx context.Context, candidate *domain.PlanElevation) (int64, error) {
	var existing domain.PlanElevation
	err := r.db.WithContext(ctx).
		Where("plan_id = ? AND elevation_name = ? AND foundation = ?",
			candidate.PlanID, candidate.ElevationName, candidate.Foundation).
		First(&existing).Error
	if err == nil {
		updates := elevationMergeUpdates(&existing, candidate)
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return existing.PlanElevationID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, err
	}
	return candidate.PlanElevationID, nil
}

// elevationMergeUpdates collects candidate values whose existing column is
// still null. Field list is fixed at compile time rather than reflected so the
// merge is type-checked against the model.
func elevationMergeUpdates(existing, candidate *domain.PlanElevation) map[string]any {
	updates := map[string]any{}

	if existing.PlanFullName == nil && candidate.PlanFullName != nil {
		updates["plan_full_name"] = *candidate.PlanFullName
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
	if existing.StairCount == nil && candidate.StairCount != nil {
		updates["stair_count"] = *candidate.StairCount
	}
	if existing.BedroomCount == nil && candidate.BedroomCount != nil {
		updates["bedroom_count"] = *candidate.BedroomCount
	}
	if existing.BathroomCount == nil && candidate.BathroomCount != nil {
		updates["bathroom_count"] = *candidate.BathroomCount
	}
	if existing.VersionNumber == nil && candidate.VersionNumber != nil {
		updates["version_number"] = *candidate.VersionNumber
	}
	if existing.VersionDate == nil && candidate.VersionDate != nil {
		updates["version_date"] = *candidate.VersionDate
	}
	if existing.IsCurrentVersion == nil && candidate.IsCurrentVersion != nil {
		updates["is_current_version"] = *candidate.IsCurrentVersion
	}

	return updates
}
