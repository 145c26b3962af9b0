package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type DivisionRepository struct {
	db *gorm.DB
}

func NewDivisionRepository(db *gorm.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

// FindOrCreate resolves a division by name, creating it when missing.
// Division names are immutable identity; nothing is merged on a hit.
func (r *DivisionRepository) FindOrCreate(ctx context.Context, divisionName string) (int64, error) {
	var division domain.Division
	err := r.db.WithContext(ctx).
		Where("division_name = ?", divisionName).
		First(&division).Error
	if err == nil {
		return division.DivisionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	division = domain.Division{DivisionName: divisionName}
	if err := r.db.WithContext(ctx).Create(&division).Error; err != nil {
		return 0, err
	}
	return division.DivisionID, nil
}
