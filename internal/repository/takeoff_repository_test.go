package repository_test

import (
	"context"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/halebuild/takeoff-engine/internal/repository"
	"github.com/halebuild/takeoff-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTakeoffFixtures(t *testing.T, db *gorm.DB) (jobID, productID int64) {
	t.Helper()
	ctx := context.Background()

	planID, err := repository.NewPlanRepository(db).FindOrCreate(ctx, "Magnolia", nil, nil)
	require.NoError(t, err)

	elevationID, err := repository.NewPlanElevationRepository(db).FindOrCreate(ctx, &domain.PlanElevation{
		PlanID:        planID,
		ElevationName: "A",
		Foundation:    "Basement",
	})
	require.NoError(t, err)

	optionID, err := repository.NewPlanOptionRepository(db).FindOrCreate(ctx, &domain.PlanOption{
		PlanElevationID: elevationID,
		OptionName:      "Base",
	})
	require.NoError(t, err)

	jobID, err = repository.NewJobRepository(db).FindOrCreate(ctx, &domain.Job{
		JobName:      "Magnolia_A_Basement_Base",
		PlanOptionID: optionID,
		IsTemplate:   true,
	})
	require.NoError(t, err)

	itemID, err := repository.NewItemRepository(db).FindOrCreate(ctx, &domain.Item{ItemName: "Drywall 1/2in"})
	require.NoError(t, err)

	productID, err = repository.NewProductRepository(db).FindOrCreate(ctx, &domain.Product{
		ItemID:             itemID,
		ProductDescription: "Drywall 1/2in 4x8 sheet",
	})
	require.NoError(t, err)
	return jobID, productID
}

func TestTakeoffUpsertBySourceID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTakeoffRepository(db)
	ctx := context.Background()
	jobID, productID := setupTakeoffFixtures(t, db)

	source := int64(1001)
	qty := 120.0
	id, err := repo.Upsert(ctx, &domain.TakeoffLine{
		TakeoffIDSource: &source,
		JobID:           jobID,
		ProductID:       productID,
		Quantity:        &qty,
		QuantitySource:  strPtr("Excel"),
	})
	require.NoError(t, err)

	// Re-import with the same source id updates in place
	newQty := 130.0
	again, err := repo.Upsert(ctx, &domain.TakeoffLine{
		TakeoffIDSource: &source,
		JobID:           jobID,
		ProductID:       productID,
		Quantity:        &newQty,
		QuantitySource:  strPtr("Formula: heated_sf_inside_studs / 32"),
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	count, err := repo.CountByJob(ctx, jobID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var line domain.TakeoffLine
	require.NoError(t, db.First(&line, id).Error)
	require.NotNil(t, line.Quantity)
	assert.Equal(t, 130.0, *line.Quantity)
	require.NotNil(t, line.QuantitySource)
	assert.Equal(t, "Formula: heated_sf_inside_studs / 32", *line.QuantitySource)
}

func TestTakeoffWithoutSourceIDAlwaysInserts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTakeoffRepository(db)
	ctx := context.Background()
	jobID, productID := setupTakeoffFixtures(t, db)

	for i := 0; i < 2; i++ {
		_, err := repo.Upsert(ctx, &domain.TakeoffLine{
			JobID:     jobID,
			ProductID: productID,
		})
		require.NoError(t, err)
	}

	count, err := repo.CountByJob(ctx, jobID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
