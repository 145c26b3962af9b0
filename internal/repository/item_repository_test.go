package repository_test

import (
	"context"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/halebuild/takeoff-engine/internal/repository"
	"github.com/halebuild/takeoff-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemFindOrCreateMergesAttributes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewItemRepository(db)
	ctx := context.Background()

	id, err := repo.FindOrCreate(ctx, &domain.Item{
		ItemName:   "Carpet Standard",
		QtyFormula: strPtr("heated_sf_inside_studs * 1.1"),
	})
	require.NoError(t, err)

	again, err := repo.FindOrCreate(ctx, &domain.Item{
		ItemName:    "Carpet Standard",
		QtyFormula:  strPtr("some other formula"),
		DefaultUnit: strPtr("SF"),
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	item, err := repo.GetWithFormula(ctx, "Carpet Standard")
	require.NoError(t, err)
	require.NotNil(t, item.QtyFormula)
	assert.Equal(t, "heated_sf_inside_studs * 1.1", *item.QtyFormula)
	require.NotNil(t, item.DefaultUnit)
	assert.Equal(t, "SF", *item.DefaultUnit)
}

func TestGetWithFormulaPrefersStructuredFormula(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewItemRepository(db)
	ctx := context.Background()

	f := domain.Formula{
		FormulaName: "carpet_sf",
		FormulaText: "heated_sf_inside_studs / 9",
	}
	require.NoError(t, db.Create(&f).Error)

	_, err := repo.FindOrCreate(ctx, &domain.Item{
		ItemName:   "Carpet Standard",
		QtyFormula: strPtr("heated_sf_inside_studs * 1.1"),
		FormulaID:  &f.FormulaID,
	})
	require.NoError(t, err)

	item, err := repo.GetWithFormula(ctx, "Carpet Standard")
	require.NoError(t, err)

	text := repository.FormulaText(item)
	require.NotNil(t, text)
	assert.Equal(t, "heated_sf_inside_studs / 9", *text)
}

func TestGetWithFormulaNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewItemRepository(db)

	_, err := repo.GetWithFormula(context.Background(), "No Such Item")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFormulaTextFallsBackToInline(t *testing.T) {
	item := &domain.Item{QtyFormula: strPtr("stair_count * 13")}
	text := repository.FormulaText(item)
	require.NotNil(t, text)
	assert.Equal(t, "stair_count * 13", *text)

	assert.Nil(t, repository.FormulaText(nil))
	assert.Nil(t, repository.FormulaText(&domain.Item{}))
}
