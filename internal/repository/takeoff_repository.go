package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type TakeoffRepository struct {
	db *gorm.DB
}

func NewTakeoffRepository(db *gorm.DB) *TakeoffRepository {
	return &TakeoffRepository{db: db}
}

// Upsert inserts a takeoff line, or updates the measured fields of the
// existing line carrying the same source identifier. Lines without a source
// identifier are always inserted; de-duplication for those is the caller's
// problem (spreadsheets that omit TakeoffID have no stable identity).
func (r *TakeoffRepository) Upsert(ctx context.Context, line *domain.TakeoffLine) (int64, error) {
	if line.TakeoffIDSource == nil {
		if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
			return 0, err
		}
		return line.TakeoffID, nil
	}

	var existing domain.TakeoffLine
	err := r.db.WithContext(ctx).
		Where("takeoff_id_source = ?", *line.TakeoffIDSource).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
			return 0, err
		}
		return line.TakeoffID, nil
	}
	if err != nil {
		return 0, err
	}

	// Re-import of a known line: replace the measured values, keep identity
	updates := map[string]any{
		"job_id":          line.JobID,
		"product_id":      line.ProductID,
		"vendor_id":       line.VendorID,
		"quantity":        line.Quantity,
		"quantity_source": line.QuantitySource,
		"unit_price":      line.UnitPrice,
		"extended_price":  line.ExtendedPrice,
	}
	if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return 0, err
	}
	return existing.TakeoffID, nil
}

// CountByJob returns the number of takeoff lines attached to a job
func (r *TakeoffRepository) CountByJob(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TakeoffLine{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}
