package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricks_backend/internal/model"
	"bricks_backend/internal/store"
	"bricks_backend/internal/testutil"
)

// sell kaydı orkestratör olmadan elle oluşturur
func sell(t *testing.T, p *model.Property, b *model.Buyer, logs *store.TransactionLog, owners *store.OwnershipLog) *model.Transaction {
	t.Helper()
	ctx := context.Background()
	tx := &model.Transaction{BuyerID: b.ID, PropertyID: p.ID, SellerID: p.SellerID, Price: p.Price}
	require.NoError(t, logs.Record(ctx, tx))
	require.NoError(t, owners.RecordOwnership(ctx, model.SnapshotOwnership(p, b.ID, tx.ID)))
	return tx
}

func TestLogs_Projections(t *testing.T) {
	db := testutil.NewDB(t)
	txLog := store.NewTransactionLog(db)
	ownership := store.NewOwnershipLog(db)

	seller := testutil.CreateSeller(t, db)
	category := testutil.CreateCategory(t, db, "Villa")
	buyer := testutil.CreateBuyer(t, db, 0)
	villa := testutil.CreateProperty(t, db, seller, 5000000, testutil.WithCategory(category))
	studio := testutil.CreateProperty(t, db, seller, 4500000, testutil.WithLocation("Bangalore", "Karnataka"))

	first := sell(t, villa, buyer, txLog, ownership)
	second := sell(t, studio, buyer, txLog, ownership)

	owned, err := ownership.OwnedBy(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, studio.Name, owned[0].PropertyName)
	assert.Equal(t, villa.Name, owned[1].PropertyName)
	assert.Equal(t, seller.FullName(), owned[1].SellerName)
	assert.True(t, owned[1].PricePaid.Equal(decimal.NewFromInt(5000000)))

	sold, err := txLog.SoldBy(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, sold, 2)
	assert.Equal(t, second.ID, sold[0].TransactionID)
	assert.Equal(t, buyer.FullName(), sold[0].BuyerName)

	txs, err := txLog.BySeller(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, first.ID, txs[1].TransactionID)
	assert.Equal(t, first.Reference, txs[1].Reference)
	assert.Equal(t, "Villa", txs[1].Category)
	assert.Equal(t, "Mumbai, Maharashtra 400001", txs[1].Location)
	assert.Equal(t, buyer.Email, txs[1].BuyerEmail)
}

func TestLogs_EmptyHistory(t *testing.T) {
	db := testutil.NewDB(t)

	owned, err := store.NewOwnershipLog(db).OwnedBy(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)

	sold, err := store.NewTransactionLog(db).SoldBy(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, sold)
}

func TestLogs_RecordsAreImmutable(t *testing.T) {
	db := testutil.NewDB(t)
	txLog := store.NewTransactionLog(db)
	seller := testutil.CreateSeller(t, db)
	buyer := testutil.CreateBuyer(t, db, 0)
	p := testutil.CreateProperty(t, db, seller, 100)

	tx := sell(t, p, buyer, txLog, store.NewOwnershipLog(db))

	err := db.Model(tx).Update("price", decimal.NewFromInt(1)).Error
	assert.ErrorIs(t, err, model.ErrImmutableRecord)
	assert.ErrorIs(t, db.Delete(tx).Error, model.ErrImmutableRecord)
}
