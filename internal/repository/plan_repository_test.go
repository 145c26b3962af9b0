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

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestPlanRepositoryFindOrCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPlanRepository(db)
	ctx := context.Background()

	id, err := repo.FindOrCreate(ctx, "Magnolia", nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Same name resolves to the same row
	again, err := repo.FindOrCreate(ctx, "Magnolia", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	var count int64
	require.NoError(t, db.Model(&domain.Plan{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlanRepositoryMergeFillsOnlyNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPlanRepository(db)
	ctx := context.Background()

	id, err := repo.FindOrCreate(ctx, "Magnolia", strPtr("Smith & Assoc"), nil)
	require.NoError(t, err)

	// Later import fills engineer but must not overwrite architect
	_, err = repo.FindOrCreate(ctx, "Magnolia", strPtr("Other Architect"), strPtr("Jones Eng"))
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, db.First(&plan, id).Error)
	require.NotNil(t, plan.Architect)
	assert.Equal(t, "Smith & Assoc", *plan.Architect)
	require.NotNil(t, plan.Engineer)
	assert.Equal(t, "Jones Eng", *plan.Engineer)
}

func TestPlanElevationRepositoryMerge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	plans := repository.NewPlanRepository(db)
	elevations := repository.NewPlanElevationRepository(db)
	ctx := context.Background()

	planID, err := plans.FindOrCreate(ctx, "Magnolia", nil, nil)
	require.NoError(t, err)

	id, err := elevations.FindOrCreate(ctx, &domain.PlanElevation{
		PlanID:              planID,
		ElevationName:       "A",
		Foundation:          "Basement",
		HeatedSFInsideStuds: intPtr(2400),
	})
	require.NoError(t, err)

	// Same key with new attributes merges into the existing row
	again, err := elevations.FindOrCreate(ctx, &domain.PlanElevation{
		PlanID:              planID,
		ElevationName:       "A",
		Foundation:          "Basement",
		HeatedSFInsideStuds: intPtr(9999),
		StairCount:          intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	var elev domain.PlanElevation
	require.NoError(t, db.First(&elev, id).Error)
	require.NotNil(t, elev.HeatedSFInsideStuds)
	assert.Equal(t, 2400, *elev.HeatedSFInsideStuds)
	require.NotNil(t, elev.StairCount)
	assert.Equal(t, 2, *elev.StairCount)

	// Different foundation is a different elevation
	other, err := elevations.FindOrCreate(ctx, &domain.PlanElevation{
		PlanID:        planID,
		ElevationName: "A",
		Foundation:    "Slab",
	})
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
