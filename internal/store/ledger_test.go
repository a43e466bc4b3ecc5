package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricks_backend/internal/store"
	"bricks_backend/internal/testutil"
)

func TestLedger_Credit(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)
	buyer := testutil.CreateBuyer(t, db, 0)

	balance, err := ledger.Credit(context.Background(), buyer.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1000)))

	balance, err = ledger.Credit(context.Background(), buyer.ID, decimal.RequireFromString("250.50"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("1250.50")))

	stored, err := ledger.GetBalance(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.True(t, stored.Equal(decimal.RequireFromString("1250.50")), "got %s", stored)
}

func TestLedger_CreditRejectsNonPositive(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)
	buyer := testutil.CreateBuyer(t, db, 500)

	for _, amount := range []int64{0, -10} {
		_, err := ledger.Credit(context.Background(), buyer.ID, decimal.NewFromInt(amount))
		assert.ErrorIs(t, err, store.ErrInvalidAmount, "amount %d", amount)
	}

	assert.True(t, testutil.Balance(t, db, buyer.ID).Equal(decimal.NewFromInt(500)))
}

func TestLedger_CreditRejectsUnstorableAmounts(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)
	buyer := testutil.CreateBuyer(t, db, 100)

	for _, amount := range []string{"0.001", "0.005", "0.0000000000000000001", "1e13", "1000000000000"} {
		_, err := ledger.Credit(context.Background(), buyer.ID, decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, store.ErrInvalidAmount, "amount %s", amount)
	}
	assert.True(t, testutil.Balance(t, db, buyer.ID).Equal(decimal.NewFromInt(100)))

	balance, err := ledger.Credit(context.Background(), buyer.ID, decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(testutil.Balance(t, db, buyer.ID)), "returned %s", balance)
}

func TestLedger_CreditCannotOverflowBalance(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)
	buyer := testutil.CreateBuyer(t, db, 999999999999)

	_, err := ledger.Credit(context.Background(), buyer.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, store.ErrInvalidAmount)

	balance, err := ledger.Credit(context.Background(), buyer.ID, decimal.RequireFromString("0.99"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(store.MaxAmount))
}

func TestLedger_UnknownBuyer(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)

	_, err := ledger.Credit(context.Background(), 9999, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, store.ErrBuyerNotFound)

	_, err = ledger.GetBalance(context.Background(), 9999)
	assert.ErrorIs(t, err, store.ErrBuyerNotFound)
}

func TestLedger_DebitNeverGoesNegative(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := store.NewLedger(db)
	buyer := testutil.CreateBuyer(t, db, 100)

	_, err := ledger.Debit(context.Background(), buyer, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, store.ErrInsufficientFunds)

	_, err = ledger.Debit(context.Background(), buyer, decimal.RequireFromString("0.001"))
	assert.ErrorIs(t, err, store.ErrInvalidAmount)

	balance, err := ledger.Debit(context.Background(), buyer, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.True(t, testutil.Balance(t, db, buyer.ID).IsZero())
}
