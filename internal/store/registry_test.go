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

func names(properties []model.Property) []string {
	out := make([]string, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.Name)
	}
	return out
}

func TestRegistry_ListAvailableFilters(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	villas := testutil.CreateCategory(t, db, "Villa")
	apartments := testutil.CreateCategory(t, db, "Apartment")

	villa := testutil.CreateProperty(t, db, seller, 5000000, testutil.WithCategory(villas))
	flat := testutil.CreateProperty(t, db, seller, 7500000, testutil.WithCategory(apartments))
	studio := testutil.CreateProperty(t, db, seller, 4500000,
		testutil.WithCategory(apartments), testutil.WithLocation("Bangalore", "Karnataka"))
	sold := testutil.CreateProperty(t, db, seller, 100, testutil.WithCategory(villas))
	require.NoError(t, registry.MarkUnavailable(context.Background(), sold.ID))

	min := decimal.NewFromInt(4500000)
	max := decimal.NewFromInt(5000000)

	tests := []struct {
		name   string
		filter store.PropertyFilter
		want   []string
	}{
		{"no filter newest first", store.PropertyFilter{}, []string{studio.Name, flat.Name, villa.Name}},
		{"city case insensitive", store.PropertyFilter{City: "mumBAI"}, []string{flat.Name, villa.Name}},
		{"city partial", store.PropertyFilter{City: "bang"}, []string{studio.Name}},
		{"state", store.PropertyFilter{State: "karnataka"}, []string{studio.Name}},
		{"category", store.PropertyFilter{CategoryID: apartments.ID}, []string{studio.Name, flat.Name}},
		{"inclusive price range", store.PropertyFilter{MinPrice: &min, MaxPrice: &max}, []string{studio.Name, villa.Name}},
		{"combined", store.PropertyFilter{City: "Mumbai", CategoryID: apartments.ID}, []string{flat.Name}},
		{"wildcards are literal", store.PropertyFilter{City: "%"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.ListAvailable(context.Background(), tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestRegistry_LockAvailable(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	p := testutil.CreateProperty(t, db, seller, 1000)

	got, err := registry.LockAvailable(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, registry.MarkUnavailable(context.Background(), p.ID))

	_, err = registry.LockAvailable(context.Background(), p.ID)
	assert.ErrorIs(t, err, store.ErrPropertyUnavailable)

	_, err = registry.LockAvailable(context.Background(), 424242)
	assert.ErrorIs(t, err, store.ErrPropertyUnavailable)
}

func TestRegistry_MarkUnavailableOnce(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	p := testutil.CreateProperty(t, db, seller, 1000)

	require.NoError(t, registry.MarkUnavailable(context.Background(), p.ID))
	assert.ErrorIs(t, registry.MarkUnavailable(context.Background(), p.ID), store.ErrPropertyUnavailable)

	got, err := registry.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
}

func TestRegistry_SlugIsUniquePerSeller(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	category := testutil.CreateCategory(t, db, "Land")

	first := &model.Property{SellerID: seller.ID, CategoryID: category.ID, Name: "Sea View Plot",
		Price: decimal.NewFromInt(10), City: "Goa", State: "Goa", Country: "India", Pincode: "403001", IsAvailable: true}
	second := *first
	require.NoError(t, registry.Create(context.Background(), first))
	require.NoError(t, registry.Create(context.Background(), &second))

	assert.Equal(t, "sea-view-plot", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestRegistry_DeleteAvailable(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	other := testutil.CreateSeller(t, db)
	buyer := testutil.CreateBuyer(t, db, 0)
	p := testutil.CreateProperty(t, db, seller, 1000)
	require.NoError(t, db.Create(&model.WishlistItem{BuyerID: buyer.ID, PropertyID: p.ID}).Error)

	err := registry.DeleteAvailable(context.Background(), p.ID, other.ID)
	assert.ErrorIs(t, err, store.ErrPropertyNotFound)

	require.NoError(t, registry.DeleteAvailable(context.Background(), p.ID, seller.ID))
	_, err = registry.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, store.ErrPropertyNotFound)
	assert.Zero(t, testutil.Count(t, db, &model.WishlistItem{}, "property_id = ?", p.ID))
}

func TestRegistry_DeleteSoldProperty(t *testing.T) {
	db := testutil.NewDB(t)
	registry := store.NewRegistry(db)
	seller := testutil.CreateSeller(t, db)
	p := testutil.CreateProperty(t, db, seller, 1000)
	require.NoError(t, registry.MarkUnavailable(context.Background(), p.ID))

	err := registry.DeleteAvailable(context.Background(), p.ID, seller.ID)
	assert.ErrorIs(t, err, store.ErrPropertySold)
}
