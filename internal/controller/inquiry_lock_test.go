package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricks_backend/internal/testutil"
)

func TestLockInquirySelectsForUpdate(t *testing.T) {
	db, stmts := testutil.NewDryRunDB(t)

	_, err := lockInquiry(context.Background(), db, 7, 3)
	require.NoError(t, err)

	reads := stmts.Matching(`FROM "inquiries"`)
	require.Len(t, reads, 1)
	assert.Contains(t, reads[0], "seller_id")
	assert.Contains(t, reads[0], "FOR UPDATE")
}
