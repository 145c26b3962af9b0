package repository

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindOrCreate resolves an item by its unique name, merging missing catalog
// attributes fill-only on a hit
func (r *ItemRepository) FindOrCreate(ctx context.Context, candidate *domain.Item) (int64, error) {
	var existing domain.Item
	err := r.db.WithContext(ctx).
		Where("item_name = ?", candidate.ItemName).
		First(&existing).Error
	if err == nil {
		updates := itemMergeUpdates(&existing, candidate)
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return 0, err
			}
		}
		return existing.ItemID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, err
	}
	return candidate.ItemID, nil
}

// GetWithFormula fetches an item by name with its structured formula joined.
// Returns domain.ErrNotFound when no such item exists.
func (r *ItemRepository) GetWithFormula(ctx context.Context, itemName string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).
		Preload("Formula").
		Where("item_name = ?", itemName).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FormulaText returns the expression to evaluate for an item's quantity:
// the structured formula when one is attached, else the inline qty_formula
func FormulaText(item *domain.Item) *string {
	if item == nil {
		return nil
	}
	if item.Formula != nil && item.Formula.FormulaText != "" {
		return &item.Formula.FormulaText
	}
	return item.QtyFormula
}

func itemMergeUpdates(existing, candidate *domain.Item) map[string]any {
	updates := map[string]any{}

	if existing.CostCodeID == nil && candidate.CostCodeID != nil {
		updates["cost_code_id"] = *candidate.CostCodeID
	}
	if existing.QtyType == nil && candidate.QtyType != nil {
		updates["qty_type"] = *candidate.QtyType
	}
	if existing.DefaultUnit == nil && candidate.DefaultUnit != nil {
		updates["default_unit"] = *candidate.DefaultUnit
	}
	if existing.AttributeLevel == nil && candidate.AttributeLevel != nil {
		updates["attribute_level"] = *candidate.AttributeLevel
	}
	if existing.Model == nil && candidate.Model != nil {
		updates["model"] = *candidate.Model
	}
	if existing.QtyFormula == nil && candidate.QtyFormula != nil {
		updates["qty_formula"] = *candidate.QtyFormula
	}
	if existing.TakeoffType == nil && candidate.TakeoffType != nil {
		updates["takeoff_type"] = *candidate.TakeoffType
	}

	return updates
}
