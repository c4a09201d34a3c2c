package repository_test

import (
	"context"
	"testing"

	"artmarket/internal/domain/billing"
	"artmarket/internal/domain/brands"
	"artmarket/internal/domain/entity"
	"artmarket/internal/domain/profiles"
	"artmarket/internal/domain/works"
	"artmarket/internal/repository"
	"artmarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func artist(first string) *profiles.Artist {
	return &profiles.Artist{Profile: profiles.Profile{
		FirstName:    first,
		LastName:     "Doe",
		Gender:       profiles.GenderOther,
		Email:        first + "@example.com",
		Phone:        "555",
		AddressLine1: "1 Main St",
		City:         "Lisbon",
		Country:      "PT",
	}}
}

func collection(name string) *works.Collection {
	return &works.Collection{Name: name, Title: name + " title"}
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore[profiles.Artist](db, testutil.Logger(t))

	created, err := store.Create(ctx, nil, artist("ann"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := store.FindByID(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.FirstName)
	assert.True(t, entity.Same(created, got))

	got.City = "Porto"
	_, err = store.Save(ctx, nil, got)
	require.NoError(t, err)

	again, err := store.FindByID(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porto", again.City)

	exists, err := store.ExistsByID(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.DeleteByID(ctx, nil, created.ID))
	_, err = store.FindByID(ctx, nil, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting twice is not an error.
	require.NoError(t, store.DeleteByID(ctx, nil, created.ID))

	n, err := store.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreFindAllPagesAndSorts(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore[profiles.Collector](db, testutil.Logger(t))

	for _, name := range []string{"carol", "alice", "bob"} {
		c := &profiles.Collector{Profile: artist(name).Profile}
		_, err := store.Create(ctx, nil, c)
		require.NoError(t, err)
	}

	rows, total, err := store.FindAll(ctx, nil, repository.Page{Number: 0, Size: 2,
		Sort: []repository.Order{{Column: "first_name"}}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].FirstName)
	assert.Equal(t, "bob", rows[1].FirstName)

	rows, _, err = store.FindAll(ctx, nil, repository.Page{Number: 1, Size: 2,
		Sort: []repository.Order{{Column: "first_name"}}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "carol", rows[0].FirstName)

	rows, _, err = store.FindAll(ctx, nil, repository.Page{Size: 10,
		Sort: []repository.Order{{Column: "first_name", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "carol", rows[0].FirstName)
}

func TestStoreStreamBatches(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore[works.Feature](db, testutil.Logger(t))

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, nil, &works.Feature{Name: "f"})
		require.NoError(t, err)
	}

	var batches, seen int
	err := store.Stream(ctx, nil, nil, 2, func(rows []*works.Feature) error {
		batches++
		seen += len(rows)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, batches)
	assert.Equal(t, 5, seen)
}

func TestStoreRejectsUnknownReference(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore[works.Feature](db, testutil.Logger(t))

	missing := uint(42)
	_, err := store.Create(ctx, nil, &works.Feature{Name: "f", CollectionID: &missing})
	assert.ErrorIs(t, err, entity.ErrMissingReference)

	n, err := store.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "failed write must roll back")
}

func TestStoreDuplicateUniqueValue(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore[works.Collection](db, testutil.Logger(t))

	_, err := store.Create(ctx, nil, collection("dup"))
	require.NoError(t, err)
	_, err = store.Create(ctx, nil, collection("dup"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestArtCollectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	collections := repository.NewStore[works.Collection](db, log)
	arts := repository.NewStore[works.Art](db, log)

	c1, err := collections.Create(ctx, nil, collection("one"))
	require.NoError(t, err)
	c2, err := collections.Create(ctx, nil, collection("two"))
	require.NoError(t, err)

	art := &works.Art{Name: "a", Handle: "a", AssetType: works.AssetImage, Type: works.ArtDigital,
		Collections: []works.Collection{{Base: entity.Base{ID: c1.ID}}, {Base: entity.Base{ID: c2.ID}}}}
	_, err = arts.Create(ctx, nil, art)
	require.NoError(t, err)

	loaded, err := arts.FindByID(ctx, nil, art.ID, "Collections")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{c1.ID, c2.ID}, loaded.CollectionIDs())

	// Deleting a collection removes its join rows.
	require.NoError(t, collections.DeleteByID(ctx, nil, c1.ID))
	loaded, err = arts.FindByID(ctx, nil, art.ID, "Collections")
	require.NoError(t, err)
	assert.Equal(t, []uint{c2.ID}, loaded.CollectionIDs())

	links := repository.NewLinks(db, log)
	inTwo, err := links.CollectionArts(ctx, nil, c2.ID)
	require.NoError(t, err)
	require.Len(t, inTwo, 1)
	assert.Equal(t, art.ID, inTwo[0].ID)
}

func TestCollectionDeleteNullsDependents(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	collections := repository.NewStore[works.Collection](db, log)
	features := repository.NewStore[works.Feature](db, log)
	transactions := repository.NewStore[billing.Transaction](db, log)

	c, err := collections.Create(ctx, nil, collection("c"))
	require.NoError(t, err)
	f, err := features.Create(ctx, nil, &works.Feature{Name: "f", CollectionID: &c.ID})
	require.NoError(t, err)
	tr, err := transactions.Create(ctx, nil, &billing.Transaction{Title: "t", Status: billing.TransactionDraft, CollectionID: &c.ID})
	require.NoError(t, err)

	require.NoError(t, collections.DeleteByID(ctx, nil, c.ID))

	gotF, err := features.FindByID(ctx, nil, f.ID)
	require.NoError(t, err)
	assert.Nil(t, gotF.CollectionID)
	gotT, err := transactions.FindByID(ctx, nil, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, gotT.CollectionID)
}

func TestReplaceCollectionFeatures(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	collections := repository.NewStore[works.Collection](db, log)
	features := repository.NewStore[works.Feature](db, log)
	links := repository.NewLinks(db, log)

	a, err := collections.Create(ctx, nil, collection("a"))
	require.NoError(t, err)
	b, err := collections.Create(ctx, nil, collection("b"))
	require.NoError(t, err)

	f1, err := features.Create(ctx, nil, &works.Feature{Name: "f1", CollectionID: &a.ID})
	require.NoError(t, err)
	f2, err := features.Create(ctx, nil, &works.Feature{Name: "f2"})
	require.NoError(t, err)

	// f2 moves into b; a keeps f1.
	require.NoError(t, links.ReplaceCollectionFeatures(ctx, nil, b.ID, []uint{f2.ID}))
	// f1 moves from a to b.
	require.NoError(t, links.ReplaceCollectionFeatures(ctx, nil, b.ID, []uint{f1.ID, f2.ID}))

	inA, err := links.CollectionFeatures(ctx, nil, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inA)
	inB, err := links.CollectionFeatures(ctx, nil, b.ID)
	require.NoError(t, err)
	assert.Len(t, inB, 2)

	// Dropping f1 from b clears its owner.
	require.NoError(t, links.ReplaceCollectionFeatures(ctx, nil, b.ID, []uint{f2.ID}))
	gotF1, err := features.FindByID(ctx, nil, f1.ID)
	require.NoError(t, err)
	assert.Nil(t, gotF1.CollectionID)

	err = links.ReplaceCollectionFeatures(ctx, nil, 999, []uint{f2.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	err = links.ReplaceCollectionFeatures(ctx, nil, b.ID, []uint{999})
	assert.ErrorIs(t, err, entity.ErrMissingReference)
}

func TestReplaceBrandCategoriesFromBrandSide(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	brandStore := repository.NewStore[brands.Brand](db, log)
	categories := repository.NewStore[brands.BrandCategory](db, log)
	links := repository.NewLinks(db, log)

	brand, err := brandStore.Create(ctx, nil, &brands.Brand{Title: "b"})
	require.NoError(t, err)
	c1, err := categories.Create(ctx, nil, &brands.BrandCategory{Title: "c1"})
	require.NoError(t, err)
	c2, err := categories.Create(ctx, nil, &brands.BrandCategory{Title: "c2"})
	require.NoError(t, err)

	require.NoError(t, links.ReplaceBrandCategories(ctx, nil, brand.ID, []uint{c2.ID, c1.ID, c2.ID}))
	loaded, err := categories.FindByID(ctx, nil, c2.ID, "Brands")
	require.NoError(t, err)
	assert.Equal(t, []uint{brand.ID}, loaded.BrandIDs())

	linked, err := links.BrandCategories(ctx, nil, brand.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, c1.ID, linked[0].ID)
	assert.Equal(t, c2.ID, linked[1].ID)

	_, err = links.BrandCategories(ctx, nil, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, links.ReplaceBrandCategories(ctx, nil, brand.ID, []uint{c1.ID}))
	loaded, err = categories.FindByID(ctx, nil, c2.ID, "Brands")
	require.NoError(t, err)
	assert.Empty(t, loaded.BrandIDs())

	require.NoError(t, brandStore.DeleteByID(ctx, nil, brand.ID))
	loaded, err = categories.FindByID(ctx, nil, c1.ID, "Brands")
	require.NoError(t, err)
	assert.Empty(t, loaded.BrandIDs())
}

func TestTransactionOutputIsUnique(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	transactions := repository.NewStore[billing.Transaction](db, log)
	outputs := repository.NewStore[billing.Output](db, log)
	links := repository.NewLinks(db, log)

	tr, err := transactions.Create(ctx, nil, &billing.Transaction{Title: "t", Status: billing.TransactionSubmitted})
	require.NoError(t, err)

	_, err = links.TransactionOutput(ctx, nil, tr.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	out, err := outputs.Create(ctx, nil, &billing.Output{Result: "ok", TransactionID: &tr.ID})
	require.NoError(t, err)
	_, err = outputs.Create(ctx, nil, &billing.Output{Result: "again", TransactionID: &tr.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	got, err := links.TransactionOutput(ctx, nil, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	require.NoError(t, transactions.DeleteByID(ctx, nil, tr.ID))
	gotOut, err := outputs.FindByID(ctx, nil, out.ID)
	require.NoError(t, err)
	assert.Nil(t, gotOut.TransactionID)
}
