package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricks_backend/internal/store"
	"bricks_backend/internal/testutil"
)

// sqlite satır kilidi üretmez, kilitli okumalar postgres diyalektiyle kontrol edilir
func TestLockedReadsSelectForUpdate(t *testing.T) {
	db, stmts := testutil.NewDryRunDB(t)
	ctx := context.Background()

	_, err := store.NewRegistry(db).LockAvailable(ctx, 1)
	require.NoError(t, err)
	_, err = store.NewLedger(db).LockBuyer(ctx, 2)
	require.NoError(t, err)

	for _, table := range []string{`FROM "properties"`, `FROM "buyers"`} {
		reads := stmts.Matching(table)
		require.Len(t, reads, 1, table)
		assert.Contains(t, reads[0], "FOR UPDATE", table)
	}
}

func TestPlainReadsDoNotLock(t *testing.T) {
	db, stmts := testutil.NewDryRunDB(t)
	ctx := context.Background()

	_, _ = store.NewLedger(db).GetBalance(ctx, 2)
	_, _ = store.NewRegistry(db).Get(ctx, 1)

	for _, sql := range stmts.All() {
		assert.NotContains(t, sql, "FOR UPDATE")
	}
}
