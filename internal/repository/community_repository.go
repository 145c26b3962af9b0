package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// FindOrCreate resolves a community by (division, name), creating it when missing
func (r *CommunityRepository) FindOrCreate(ctx context.Context, divisionID int64, communityName string) (int64, error) {
	var community domain.Community
	err := r.db.WithContext(ctx).
		Where("division_id = ? AND community_name = ?", divisionID, communityName).
		First(&community).Error
	if err == nil {
		return community.CommunityID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	community = domain.Community{
		DivisionID:    divisionID,
		CommunityName: communityName,
	}
	if err := r.db.WithContext(ctx).Create(&community).Error; err != nil {
		return 0, err
	}
	return community.CommunityID, nil
}
