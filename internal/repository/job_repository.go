package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// FindOrCreate resolves a job by (plan_option_id, job_name). Template jobs
// act as the parent for takeoff lines loaded from spreadsheet templates.
func (r *JobRepository) FindOrCreate(ctx context.Context, candidate *domain.Job) (int64, error) {
	var existing domain.Job
	err := r.db.WithContext(ctx).
		Where("plan_option_id = ? AND job_name = ?",
			candidate.PlanOptionID, candidate.JobName).
		First(&existing).Error
	if err == nil {
		updates := map[string]any{}
		if existing.JobNumber == nil && candidate.JobNumber != nil {
			updates["job_number"] = *candidate.JobNumber
		}
		if existing.LotNumber == nil && candidate.LotNumber != nil {
			updates["lot_number"] = *candidate.LotNumber
		}
		if existing.CustomerName == nil && candidate.CustomerName != nil {
			updates["customer_name"] = *candidate.CustomerName
		}
		if existing.DivisionID == nil && candidate.DivisionID != nil {
			updates["division_id"] = *candidate.DivisionID
		}
		if existing.CommunityID == nil && candidate.CommunityID != nil {
			updates["community_id"] = *candidate.CommunityID
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return existing.JobID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, err
	}
	return candidate.JobID, nil
}
