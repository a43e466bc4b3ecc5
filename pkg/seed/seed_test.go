package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricks_backend/internal/model"
	"bricks_backend/internal/testutil"
	"bricks_backend/pkg/seed"
)

func TestRun_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, seed.Run(db))
	require.NoError(t, seed.Run(db))

	assert.EqualValues(t, 5, testutil.Count(t, db, &model.Category{}, "1 = 1"))
	assert.EqualValues(t, 1, testutil.Count(t, db, &model.Seller{}, "1 = 1"))
	assert.EqualValues(t, 1, testutil.Count(t, db, &model.Buyer{}, "1 = 1"))
	assert.EqualValues(t, 3, testutil.Count(t, db, &model.Property{}, "is_available = ?", true))
}
