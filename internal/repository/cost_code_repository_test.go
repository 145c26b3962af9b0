package repository_test

import (
	"context"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/repository"
	"github.com/halebuild/takeoff-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostCodeScopedByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	groups := repository.NewCostGroupRepository(db)
	codes := repository.NewCostCodeRepository(db)
	ctx := context.Background()

	finishes, err := groups.FindOrCreate(ctx, "09", strPtr("Finishes"))
	require.NoError(t, err)
	concrete, err := groups.FindOrCreate(ctx, "03", strPtr("Concrete"))
	require.NoError(t, err)

	a, err := codes.FindOrCreate(ctx, finishes, "100", strPtr("Drywall"))
	require.NoError(t, err)
	b, err := codes.FindOrCreate(ctx, finishes, "100", nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// The same code under a different group is a distinct cost code
	c, err := codes.FindOrCreate(ctx, concrete, "100", strPtr("Footings"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestCostGroupFillsNameOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	groups := repository.NewCostGroupRepository(db)
	ctx := context.Background()

	id, err := groups.FindOrCreate(ctx, "09", nil)
	require.NoError(t, err)

	again, err := groups.FindOrCreate(ctx, "09", strPtr("Finishes"))
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
